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
	"testing"

	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
)

// Test that SHA2 implements StreamingHashEngine at compile time.
func TestSHA2_ImplementsStreamingHashEngine(t *testing.T) {
	var _ hashengines.StreamingHashEngine = (*SHA2)(nil)
	var _ hashengines.Cloner = (*SHA2)(nil)
}

// helper to compute hex from a digests.Digest.
func digestHex(t *testing.T, d interface{ Hex() string }) string {
	t.Helper()
	return d.Hex()
}

func TestSHA256_UpdateThenCompute(t *testing.T) {
	const want = "88d4266fd4e6338d13b845fcf289579d209c897823b9217da3e161936f031589"

	h, err := NewSHA256Engine(nil)
	if err != nil {
		t.Fatalf("NewSHA256Engine(nil) error = %v", err)
	}
	h.Update([]byte("abcd"))

	d, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	got := digestHex(t, d)
	if got != want {
		t.Errorf("Compute() = %q, want %q", got, want)
	}
}

func TestSHA256_InitialDataConstructor(t *testing.T) {
	const want = "88d4266fd4e6338d13b845fcf289579d209c897823b9217da3e161936f031589"

	h, err := NewSHA256Engine([]byte("abcd"))
	if err != nil {
		t.Fatalf("NewSHA256Engine(initial) error = %v", err)
	}

	d, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	got := digestHex(t, d)
	if got != want {
		t.Errorf("Compute() = %q, want %q", got, want)
	}
}

func TestSHA256_ResetAndRecompute(t *testing.T) {
	const want = "88d4266fd4e6338d13b845fcf289579d209c897823b9217da3e161936f031589"

	h, err := NewSHA256Engine(nil)
	if err != nil {
		t.Fatalf("NewSHA256Engine(nil) error = %v", err)
	}

	h.Update([]byte("junk"))
	h.Reset(nil)
	h.Update([]byte("abcd"))

	d, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	got := digestHex(t, d)
	if got != want {
		t.Errorf("Compute() after Reset() = %q, want %q", got, want)
	}
}

func TestSHA512_ComputeDoesNotSealState(t *testing.T) {
	// sha512("hello world")
	const want = "309ecc489c12d6eb4cc40f50c902f2b4d0ed77ee511a7c7a9bcd3ca86d4cd86f" +
		"989dd35bc5ff499670da34255b45b0cfd830e81f605dcf7dc5542e93ae9cd76f"

	h, err := NewSHA512Engine(nil)
	if err != nil {
		t.Fatalf("NewSHA512Engine(nil) error = %v", err)
	}

	h.Update([]byte("hello "))
	if _, err := h.Compute(); err != nil {
		t.Fatalf("intermediate Compute() error = %v", err)
	}
	h.Update([]byte("world"))

	d, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := digestHex(t, d); got != want {
		t.Errorf("Compute() = %q, want %q", got, want)
	}
	if d.Size() != h.DigestSize() {
		t.Errorf("Size() = %d, want DigestSize() %d", d.Size(), h.DigestSize())
	}
}

func TestSHA512_CloneIsIndependent(t *testing.T) {
	h, err := NewSHA512Engine([]byte("hello "))
	if err != nil {
		t.Fatalf("NewSHA512Engine() error = %v", err)
	}

	c, err := h.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}

	h.Update([]byte("world"))
	c.Update([]byte("there"))

	hd, _ := h.Compute()
	cd, _ := c.Compute()
	if hd.Equal(cd) {
		t.Fatal("original and clone produced equal digests after diverging updates")
	}

	want, _ := NewSHA512Engine([]byte("hello there"))
	wd, _ := want.Compute()
	if !cd.Equal(wd) {
		t.Errorf("clone digest = %s, want %s", cd.Hex(), wd.Hex())
	}
}
