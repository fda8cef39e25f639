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
	"errors"
	"testing"

	"github.com/sigstore/streamdigest/pkg/errdefs"
	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
)

func TestRegisteredVectors(t *testing.T) {
	tests := []struct {
		algorithm string
		input     string
		want      string
	}{
		{"md5", "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"sha1", "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"sha224", "abc", "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
		{"sha256", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"sha384", "abc", "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
		{"sha3-256", "abc", "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{"keccak256", "", "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"blake2b-256", "abc", "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"},
		{"blake2s-256", "abc", "508c5e8c327c14e2e1a72ba34eeb452f37458b209ed63a294d999b4c86675982"},
		{"blake3", "", "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
		{"ripemd160", "abc", "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			engine, err := hashengines.Create(tt.algorithm)
			if err != nil {
				t.Fatalf("Create(%q) error = %v", tt.algorithm, err)
			}
			engine.Update([]byte(tt.input))

			d, err := engine.Compute()
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got := d.Hex(); got != tt.want {
				t.Errorf("%s(%q) = %s, want %s", tt.algorithm, tt.input, got, tt.want)
			}
			if d.Size() != engine.DigestSize() {
				t.Errorf("Size() = %d, DigestSize() = %d", d.Size(), engine.DigestSize())
			}
			if d.Algorithm() != tt.algorithm {
				t.Errorf("Algorithm() = %q, want %q", d.Algorithm(), tt.algorithm)
			}
		})
	}
}

func TestAliasesResolve(t *testing.T) {
	tests := map[string]string{
		"SHA512":     "sha512",
		"sha-512":    "sha512",
		"RSA-SHA256": "sha256",
		"blake2b":    "blake2b-512",
		"sha512/256": "sha512-256",
		"keccak-256": "keccak256",
	}

	for alias, want := range tests {
		t.Run(alias, func(t *testing.T) {
			got, ok := hashengines.Canonical(alias)
			if !ok {
				t.Fatalf("Canonical(%q) not found", alias)
			}
			if got != want {
				t.Errorf("Canonical(%q) = %q, want %q", alias, got, want)
			}
		})
	}
}

func TestComputeRootDigest(t *testing.T) {
	a, _ := NewSHA256Engine([]byte("a"))
	b, _ := NewSHA256Engine([]byte("b"))
	da, _ := a.Compute()
	db, _ := b.Compute()

	root, err := ComputeRootDigest("sha256", nil)
	if err != nil {
		t.Fatalf("ComputeRootDigest(nil) error = %v", err)
	}
	empty, _ := NewSHA256Engine(nil)
	emptyDigest, _ := empty.Compute()
	if !root.Equal(emptyDigest) {
		t.Errorf("root of no digests = %s, want %s", root.Hex(), emptyDigest.Hex())
	}

	ab, err := ComputeRootDigest("sha256", []digests.Digest{da, db})
	if err != nil {
		t.Fatalf("ComputeRootDigest() error = %v", err)
	}
	ba, err := ComputeRootDigest("sha256", []digests.Digest{db, da})
	if err != nil {
		t.Fatalf("ComputeRootDigest() error = %v", err)
	}
	if ab.Equal(ba) {
		t.Error("root digest is insensitive to order")
	}

	if _, err := ComputeRootDigest("nope", nil); err == nil {
		t.Error("ComputeRootDigest(unknown) error = nil, want error")
	}
}

func TestCloneAcrossRegistry(t *testing.T) {
	notCloneable := map[string]bool{"blake256": true, "ripemd160": true}

	for _, name := range hashengines.SupportedAlgorithms() {
		t.Run(name, func(t *testing.T) {
			h, err := hashengines.Create(name)
			if err != nil {
				t.Fatalf("Create(%q) error = %v", name, err)
			}
			h.Update([]byte("hello "))

			cloner, ok := h.(hashengines.Cloner)
			if !ok {
				if !notCloneable[name] {
					t.Fatalf("%s engine does not implement Cloner", name)
				}
				return
			}
			c, err := cloner.Clone()
			if notCloneable[name] {
				if !errors.Is(err, errdefs.ErrUnsupportedOperation) {
					t.Fatalf("Clone() error = %v, want UnsupportedOperation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Clone() error = %v", err)
			}

			h.Update([]byte("world"))
			c.Update([]byte("there"))

			want, _ := hashengines.Create(name)
			want.Update([]byte("hello there"))
			wd, _ := want.Compute()
			cd, _ := c.Compute()
			if !cd.Equal(wd) {
				t.Errorf("clone digest = %s, want %s", cd.Hex(), wd.Hex())
			}
			if cd.Size() != h.DigestSize() {
				t.Errorf("clone digest size = %d, want %d", cd.Size(), h.DigestSize())
			}

			hd, _ := h.Compute()
			orig, _ := hashengines.Create(name)
			orig.Update([]byte("hello world"))
			od, _ := orig.Compute()
			if !hd.Equal(od) {
				t.Errorf("original digest = %s, want %s", hd.Hex(), od.Hex())
			}
		})
	}
}
