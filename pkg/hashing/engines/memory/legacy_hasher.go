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
	"crypto/md5"
	"crypto/sha1"
	"hash"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // kept for interoperability digests

	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
)

func init() {
	registerLegacy("md5", md5.Size, md5.New, "rsa-md5")
	registerLegacy("sha1", sha1.Size, sha1.New, "sha-1", "rsa-sha1")
	registerLegacy("ripemd160", ripemd160.Size, ripemd160.New, "ripemd", "ripemd-160", "rmd160")
}

func registerLegacy(name string, size int, newHash func() hash.Hash, aliases ...string) {
	hashengines.MustRegister(name, func() (hashengines.StreamingHashEngine, error) {
		return NewGenericHashEngine(name, size, func() (hash.Hash, error) {
			return newHash(), nil
		}, nil)
	})
	hashengines.MustRegisterAliases(name, aliases...)
}
