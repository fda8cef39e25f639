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

package hashsession

import (
	"strings"

	"github.com/mr-tron/base58"

	"github.com/sigstore/streamdigest/pkg/encoding"
	"github.com/sigstore/streamdigest/pkg/errdefs"
	"github.com/sigstore/streamdigest/pkg/hashing/digests"
)

// Output encodings handled by the session itself rather than pkg/encoding.
const (
	EncodingBinary    = "binary"
	EncodingHex       = "hex"
	EncodingMultihash = "multihash"
	EncodingCID       = "cid"
)

// Output is a rendered digest: raw bytes for the binary encoding, text
// otherwise.
type Output struct {
	encoding string
	raw      []byte
	text     string
}

// IsBinary reports whether the output holds raw digest bytes.
func (o Output) IsBinary() bool {
	return o.encoding == EncodingBinary
}

// Encoding returns the encoding the output was rendered with.
func (o Output) Encoding() string {
	return o.encoding
}

// Bytes returns a fresh copy of the raw digest for binary output, or the
// bytes of the text rendering otherwise.
func (o Output) Bytes() []byte {
	if o.IsBinary() {
		out := make([]byte, len(o.raw))
		copy(out, o.raw)
		return out
	}
	return []byte(o.text)
}

// String returns the text rendering. For binary output it is the raw bytes
// reinterpreted as a string.
func (o Output) String() string {
	if o.IsBinary() {
		return string(o.raw)
	}
	return o.text
}

type renderFunc func(d digests.Digest) (Output, error)

// renderer resolves an output encoding up front, so an unknown name (or a
// self-describing format the algorithm has no code for) fails before the
// session is finalized.
func renderer(name, algorithm string) (renderFunc, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == EncodingMultihash || n == EncodingCID {
		if _, ok := digests.MulticodecFor(algorithm); !ok {
			return nil, errdefs.Newf(errdefs.ErrTypeUnsupportedEncoding, "digest",
				"%s output is not available for %s", n, algorithm)
		}
	}

	switch n {
	case "", EncodingBinary:
		return func(d digests.Digest) (Output, error) {
			return Output{encoding: EncodingBinary, raw: d.Value()}, nil
		}, nil
	case EncodingHex:
		return func(d digests.Digest) (Output, error) {
			return Output{encoding: EncodingHex, text: d.Hex()}, nil
		}, nil
	case EncodingMultihash:
		return func(d digests.Digest) (Output, error) {
			mh, err := d.Multihash()
			if err != nil {
				return Output{}, err
			}
			return Output{encoding: EncodingMultihash, text: base58.Encode(mh)}, nil
		}, nil
	case EncodingCID:
		return func(d digests.Digest) (Output, error) {
			c, err := d.CID()
			if err != nil {
				return Output{}, err
			}
			return Output{encoding: EncodingCID, text: c.String()}, nil
		}, nil
	}

	codec, err := encoding.Lookup(name)
	if err != nil {
		return nil, err
	}
	return func(d digests.Digest) (Output, error) {
		return Output{encoding: codec.Name(), text: codec.Encode(d.Value())}, nil
	}, nil
}

// Render formats an already computed digest, for callers that combine
// digests outside a session.
func Render(d digests.Digest, outputEncoding string) (Output, error) {
	render, err := renderer(outputEncoding, d.Algorithm())
	if err != nil {
		return Output{}, err
	}
	return render(d)
}

// CheckOutputEncoding reports whether outputEncoding can render digests of
// algorithm, without computing anything.
func CheckOutputEncoding(outputEncoding, algorithm string) error {
	_, err := renderer(outputEncoding, algorithm)
	return err
}
