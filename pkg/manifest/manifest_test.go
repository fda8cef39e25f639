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

package manifest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sigstore/streamdigest/pkg/errdefs"
	"github.com/sigstore/streamdigest/pkg/hashing/digests"
)

func newTestDigest(b ...byte) digests.Digest {
	return digests.NewDigest("sha256", b)
}

func TestNewManifestEntriesSorted(t *testing.T) {
	m := New("sha256",
		Entry{Path: "b.txt", Digest: newTestDigest(0x02)},
		Entry{Path: "a.txt", Digest: newTestDigest(0x01)},
	)

	if m.Algorithm() != "sha256" {
		t.Fatalf("Algorithm() = %q", m.Algorithm())
	}
	entries := m.Entries()
	if len(entries) != 2 || m.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Path != "a.txt" || entries[1].Path != "b.txt" {
		t.Fatalf("entries not sorted: %q, %q", entries[0].Path, entries[1].Path)
	}
	if d, ok := m.Lookup("b.txt"); !ok || !d.Equal(newTestDigest(0x02)) {
		t.Errorf("Lookup(b.txt) = %v, %v", d, ok)
	}
	if _, ok := m.Lookup("c.txt"); ok {
		t.Error("Lookup(c.txt) should miss")
	}
}

func TestManifestEqual(t *testing.T) {
	a := New("sha256", Entry{"a", newTestDigest(1)}, Entry{"b", newTestDigest(2)})
	b := New("sha256", Entry{"b", newTestDigest(2)}, Entry{"a", newTestDigest(1)})
	if !a.Equal(b) || !a.Equal(a) {
		t.Error("manifests with the same entries should be equal")
	}

	c := New("sha256", Entry{"a", newTestDigest(1)}, Entry{"b", newTestDigest(3)})
	if a.Equal(c) {
		t.Error("different digests should not be equal")
	}

	d := New("sha256", Entry{"a", newTestDigest(1)}, Entry{"b", digests.NewDigest("sha512", []byte{2})})
	if a.Equal(d) {
		t.Error("different algorithms should not be equal")
	}
	if a.Equal(nil) {
		t.Error("nil should not be equal")
	}
}

func TestComputeDiff(t *testing.T) {
	actual := New("sha256",
		Entry{"same.txt", newTestDigest(1)},
		Entry{"changed.txt", newTestDigest(2)},
		Entry{"extra.txt", newTestDigest(3)},
	)
	expected := New("sha256",
		Entry{"same.txt", newTestDigest(1)},
		Entry{"changed.txt", newTestDigest(9)},
		Entry{"missing.txt", newTestDigest(4)},
	)

	diff := ComputeDiff(actual, expected)
	if diff.IsEmpty() {
		t.Fatal("expected differences")
	}
	if len(diff.ExtraFiles) != 1 || diff.ExtraFiles[0] != "extra.txt" {
		t.Errorf("ExtraFiles = %v", diff.ExtraFiles)
	}
	if len(diff.MissingFiles) != 1 || diff.MissingFiles[0] != "missing.txt" {
		t.Errorf("MissingFiles = %v", diff.MissingFiles)
	}
	if len(diff.Mismatches) != 1 {
		t.Fatalf("Mismatches = %v", diff.Mismatches)
	}
	mm := diff.Mismatches[0]
	if mm.Path != "changed.txt" || mm.ExpectedHash != "09" || mm.ActualHash != "02" {
		t.Errorf("unexpected mismatch %+v", mm)
	}

	if !ComputeDiff(actual, actual).IsEmpty() {
		t.Error("a manifest should not differ from itself")
	}
}

func TestMarshalParseRoundTrip(t *testing.T) {
	m := New("sha256",
		Entry{"dir/b.bin", newTestDigest(bytes.Repeat([]byte{0xab}, 32)...)},
		Entry{"a file.txt", newTestDigest(bytes.Repeat([]byte{0x01}, 32)...)},
	)

	for _, enc := range []string{"", "hex", "base64"} {
		var buf bytes.Buffer
		if err := Marshal(&buf, m, enc); err != nil {
			t.Fatalf("Marshal(%q) error: %v", enc, err)
		}
		got, err := Parse(&buf, "sha256", 32, enc)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", enc, err)
		}
		if !got.Equal(m) {
			t.Errorf("round trip through %q lost entries: %v", enc, got.Entries())
		}
	}
}

func TestMarshalFormat(t *testing.T) {
	m := New("sha256", Entry{"x", newTestDigest(bytes.Repeat([]byte{0}, 32)...)})
	var buf bytes.Buffer
	if err := Marshal(&buf, m, "hex"); err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("0", 64) + "  x\n"
	if buf.String() != want {
		t.Errorf("Marshal() = %q, want %q", buf.String(), want)
	}

	if err := Marshal(&buf, m, "binary"); !errdefs.IsType(err, errdefs.ErrTypeUnsupportedEncoding) {
		t.Errorf("binary encoding: got %v", err)
	}
	if err := Marshal(&buf, m, "nope"); !errdefs.IsType(err, errdefs.ErrTypeUnsupportedEncoding) {
		t.Errorf("unknown encoding: got %v", err)
	}

	bad := New("sha256", Entry{"a\nb", newTestDigest(bytes.Repeat([]byte{0}, 32)...)})
	if err := Marshal(&buf, bad, "hex"); !errdefs.IsType(err, errdefs.ErrTypeUnsupportedInput) {
		t.Errorf("newline in path: got %v", err)
	}
}

func TestParseCoreutilsFormat(t *testing.T) {
	list := "# generated\n\n" +
		strings.Repeat("aa", 4) + " *bin.dat\n" +
		strings.Repeat("bb", 4) + "  text.txt\r\n"

	m, err := Parse(strings.NewReader(list), "crc", 4, "")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d", m.Len())
	}
	if d, ok := m.Lookup("bin.dat"); !ok || d.Hex() != "aaaaaaaa" {
		t.Errorf("bin.dat = %v, %v", d, ok)
	}
	if d, ok := m.Lookup("text.txt"); !ok || d.Hex() != "bbbbbbbb" {
		t.Errorf("text.txt = %v, %v", d, ok)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"no separator": "abcdef\n",
		"no path":      "abcdef  \n",
		"bad hex":      "zz  file\n",
		"wrong size":   "abcd  file\n",
	}
	for name, list := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(list), "sha256", 32, "hex")
			if !errdefs.IsType(err, errdefs.ErrTypeUnsupportedInput) {
				t.Errorf("Parse() error = %v, want UnsupportedInput", err)
			}
		})
	}
}
