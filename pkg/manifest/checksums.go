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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sigstore/streamdigest/pkg/encoding"
	"github.com/sigstore/streamdigest/pkg/errdefs"
	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	"github.com/sigstore/streamdigest/pkg/hashsession"
)

// DefaultEncoding is the digest text encoding of checksum lists.
const DefaultEncoding = "hex"

// Marshal writes one "DIGEST  PATH" line per entry, sorted by path, with
// digests rendered in textEncoding (hex when empty). Any text output
// encoding works, but only those known to pkg/encoding can be parsed back.
func Marshal(w io.Writer, m *Manifest, textEncoding string) error {
	if textEncoding == "" {
		textEncoding = DefaultEncoding
	}
	if strings.EqualFold(strings.TrimSpace(textEncoding), hashsession.EncodingBinary) {
		return errdefs.New(errdefs.ErrTypeUnsupportedEncoding, "manifest",
			"checksum lists need a text encoding", nil)
	}
	if err := hashsession.CheckOutputEncoding(textEncoding, m.algorithm); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, e := range m.Entries() {
		if strings.ContainsAny(e.Path, "\n\r") {
			return errdefs.Newf(errdefs.ErrTypeUnsupportedInput, "manifest",
				"path %q cannot be written to a checksum list", e.Path)
		}
		out, err := hashsession.Render(e.Digest, textEncoding)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%s  %s\n", out.String(), e.Path); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Parse reads a checksum list written by Marshal or by the coreutils *sum
// tools. Blank lines and lines starting with '#' are skipped. A '*' before
// the path (binary mode marker) is accepted and dropped. Each digest is
// decoded with textEncoding and must be size bytes long when size > 0.
func Parse(r io.Reader, algorithm string, size int, textEncoding string) (*Manifest, error) {
	if textEncoding == "" {
		textEncoding = DefaultEncoding
	}
	m := New(algorithm)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sum, path, ok := strings.Cut(line, " ")
		if !ok || sum == "" {
			return nil, errdefs.Newf(errdefs.ErrTypeUnsupportedInput, "manifest",
				"line %d: expected \"DIGEST  PATH\"", lineNo)
		}
		switch {
		case strings.HasPrefix(path, " "), strings.HasPrefix(path, "*"):
			path = path[1:]
		}
		if path == "" {
			return nil, errdefs.Newf(errdefs.ErrTypeUnsupportedInput, "manifest",
				"line %d: missing path", lineNo)
		}

		raw, err := encoding.Decode(textEncoding, sum)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if size > 0 && len(raw) != size {
			return nil, errdefs.Newf(errdefs.ErrTypeUnsupportedInput, "manifest",
				"line %d: %s digest must be %d bytes, got %d", lineNo, algorithm, size, len(raw))
		}
		m.Add(path, digests.NewDigest(algorithm, raw))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read checksum list: %w", err)
	}
	return m, nil
}
