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
	stdsha256 "crypto/sha256"
	"crypto/sha512"
	"hash"

	sha256 "github.com/minio/sha256-simd"

	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
)

func init() {
	registerSHA2("sha224", stdsha256.Size224, stdsha256.New224,
		"sha-224", "sha2-224", "rsa-sha224")
	registerSHA2("sha256", sha256.Size, sha256.New,
		"sha-256", "sha2-256", "rsa-sha256")
	registerSHA2("sha384", sha512.Size384, sha512.New384,
		"sha-384", "sha2-384", "rsa-sha384")
	registerSHA2("sha512", sha512.Size, sha512.New,
		"sha-512", "sha2-512", "rsa-sha512")
	registerSHA2("sha512-224", sha512.Size224, sha512.New512_224,
		"sha512/224", "sha-512/224", "sha2-512-224", "rsa-sha512/224")
	registerSHA2("sha512-256", sha512.Size256, sha512.New512_256,
		"sha512/256", "sha-512/256", "sha2-512-256", "rsa-sha512/256")
}

func registerSHA2(name string, size int, newHash func() hash.Hash, aliases ...string) {
	hashengines.MustRegister(name, func() (hashengines.StreamingHashEngine, error) {
		return NewSHA2(name, size, newHash, nil)
	})
	hashengines.MustRegisterAliases(name, aliases...)
}

// SHA2 is a GenericHashEngine configured for one SHA-2 variant.
type SHA2 = GenericHashEngine

// NewSHA2 creates an engine for the SHA-2 variant built by newHash.
func NewSHA2(name string, size int, newHash func() hash.Hash, initialData []byte) (*SHA2, error) {
	return NewGenericHashEngine(name, size, func() (hash.Hash, error) {
		return newHash(), nil
	}, initialData)
}

// NewSHA256Engine creates a SHA-256 engine backed by sha256-simd.
func NewSHA256Engine(initialData []byte) (*SHA2, error) {
	return NewSHA2("sha256", sha256.Size, sha256.New, initialData)
}

// NewSHA512Engine creates a SHA-512 engine.
func NewSHA512Engine(initialData []byte) (*SHA2, error) {
	return NewSHA2("sha512", sha512.Size, sha512.New, initialData)
}
