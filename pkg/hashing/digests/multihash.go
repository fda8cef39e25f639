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

package digests

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"

	"github.com/sigstore/streamdigest/pkg/errdefs"
)

// multicodecs maps canonical engine names to their multicodec hash codes.
var multicodecs = map[string]multicodec.Code{
	"md5":         multicodec.Md5,
	"sha1":        multicodec.Sha1,
	"sha224":      multicodec.Sha2_224,
	"sha256":      multicodec.Sha2_256,
	"sha384":      multicodec.Sha2_384,
	"sha512":      multicodec.Sha2_512,
	"sha512-224":  multicodec.Sha2_512_224,
	"sha512-256":  multicodec.Sha2_512_256,
	"sha3-224":    multicodec.Sha3_224,
	"sha3-256":    multicodec.Sha3_256,
	"sha3-384":    multicodec.Sha3_384,
	"sha3-512":    multicodec.Sha3_512,
	"keccak256":   multicodec.Keccak256,
	"blake2b-256": multicodec.Blake2b256,
	"blake2b-384": multicodec.Blake2b384,
	"blake2b-512": multicodec.Blake2b512,
	"blake2s-256": multicodec.Blake2s256,
	"blake3":      multicodec.Blake3,
	"ripemd160":   multicodec.Ripemd160,
}

// MulticodecFor returns the multicodec hash code for a canonical algorithm
// name. The second result is false when the algorithm has no assigned code.
func MulticodecFor(algorithm string) (multicodec.Code, bool) {
	code, ok := multicodecs[algorithm]
	return code, ok
}

// Multihash returns the digest as a multihash: varint code, varint length,
// then the raw bytes.
func (d Digest) Multihash() (multihash.Multihash, error) {
	code, ok := MulticodecFor(d.algorithm)
	if !ok {
		return nil, errdefs.Newf(errdefs.ErrTypeUnsupportedOperation, "multihash",
			"no multicodec assigned to %q", d.algorithm)
	}
	mh, err := multihash.Encode(d.value, uint64(code))
	if err != nil {
		return nil, errdefs.New(errdefs.ErrTypeUnsupportedOperation, "multihash",
			"encode multihash", err)
	}
	return multihash.Multihash(mh), nil
}

// CID returns a CIDv1 addressing the hashed content as raw bytes.
func (d Digest) CID() (cid.Cid, error) {
	mh, err := d.Multihash()
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(uint64(multicodec.Raw), mh), nil
}
