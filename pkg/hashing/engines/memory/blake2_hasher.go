// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package memory

import (
	"hash"

	"github.com/dchest/blake256"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"

	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
)

func init() {
	registerBLAKE("blake2b-256", blake2b.Size256, func() (hash.Hash, error) {
		return blake2b.New256(nil)
	}, "blake2b256")
	registerBLAKE("blake2b-384", blake2b.Size384, func() (hash.Hash, error) {
		return blake2b.New384(nil)
	}, "blake2b384")
	registerBLAKE("blake2b-512", blake2b.Size, func() (hash.Hash, error) {
		return blake2b.New512(nil)
	}, "blake2b", "blake2b512")
	registerBLAKE("blake2s-256", blake2s.Size, func() (hash.Hash, error) {
		return blake2s.New256(nil)
	}, "blake2s", "blake2s256")
	// blake256 keeps no marshalable state, so sessions over it cannot be copied.
	registerBLAKE("blake256", blake256.Size, func() (hash.Hash, error) {
		return blake256.New(), nil
	})
}

func registerBLAKE(name string, size int, factory HashFactoryFunc, aliases ...string) {
	hashengines.MustRegister(name, func() (hashengines.StreamingHashEngine, error) {
		return NewGenericHashEngine(name, size, factory, nil)
	})
	hashengines.MustRegisterAliases(name, aliases...)
}

// BLAKE2 is a GenericHashEngine configured for BLAKE2b-512.
type BLAKE2 = GenericHashEngine

// NewBLAKE2 creates a new unkeyed BLAKE2b-512 engine.
//
// If initialData is non-nil and non-empty, it is hashed immediately.
func NewBLAKE2(initialData []byte) (*BLAKE2, error) {
	return NewGenericHashEngine("blake2b-512", blake2b.Size, func() (hash.Hash, error) {
		return blake2b.New512(nil)
	}, initialData)
}
