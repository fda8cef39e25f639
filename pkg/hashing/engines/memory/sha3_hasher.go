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

	"golang.org/x/crypto/sha3"

	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
)

func init() {
	registerSHA3("sha3-224", 28, sha3.New224, "sha3224")
	registerSHA3("sha3-256", 32, sha3.New256, "sha3256")
	registerSHA3("sha3-384", 48, sha3.New384, "sha3384")
	registerSHA3("sha3-512", 64, sha3.New512, "sha3512")
	registerSHA3("keccak256", 32, sha3.NewLegacyKeccak256, "keccak-256")
}

func registerSHA3(name string, size int, newHash func() hash.Hash, aliases ...string) {
	hashengines.MustRegister(name, func() (hashengines.StreamingHashEngine, error) {
		return NewGenericHashEngine(name, size, func() (hash.Hash, error) {
			return newHash(), nil
		}, nil)
	})
	hashengines.MustRegisterAliases(name, aliases...)
}
