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
	"github.com/sigstore/streamdigest/pkg/encoding"
	"github.com/sigstore/streamdigest/pkg/errdefs"
)

// InputKind identifies the shape of an Input before normalization.
type InputKind int

const (
	// KindText is a string, forwarded as UTF-8 unless an encoding is set.
	KindText InputKind = iota
	// KindBytes is a byte slice forwarded as-is.
	KindBytes
	// KindView is a window onto a larger backing buffer.
	KindView
)

func (k InputKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindView:
		return "view"
	default:
		return "unknown"
	}
}

// ByteView is a fixed window [Offset, Offset+Length) over Buffer. Only the
// window is ever hashed, never the whole backing buffer.
type ByteView struct {
	Buffer []byte
	Offset int
	Length int
}

// Input is one piece of data offered to Session.Update.
type Input struct {
	kind     InputKind
	text     string
	data     []byte
	view     ByteView
	encoding string
}

// Text returns an Input forwarding s as its UTF-8 bytes.
func Text(s string) Input {
	return Input{kind: KindText, text: s}
}

// EncodedText returns an Input whose bytes are obtained by decoding s with
// the named text encoding (e.g. "hex", "base64").
func EncodedText(s, encodingName string) Input {
	return Input{kind: KindText, text: s, encoding: encodingName}
}

// Bytes returns an Input forwarding b unchanged.
func Bytes(b []byte) Input {
	return Input{kind: KindBytes, data: b}
}

// View returns an Input forwarding buf[offset:offset+length].
func View(buf []byte, offset, length int) Input {
	return Input{kind: KindView, view: ByteView{Buffer: buf, Offset: offset, Length: length}}
}

// WithEncoding attaches an input encoding. Only text inputs may carry one;
// on any other kind the combination is rejected at Update time.
func (in Input) WithEncoding(encodingName string) Input {
	in.encoding = encodingName
	return in
}

// Kind reports the input shape.
func (in Input) Kind() InputKind {
	return in.kind
}

// Encoding returns the attached input encoding, if any.
func (in Input) Encoding() string {
	return in.encoding
}

// FromValue builds an Input from a dynamically typed value: string, []byte,
// ByteView, *ByteView or Input. An empty inputEncoding means none.
func FromValue(v interface{}, inputEncoding string) (Input, error) {
	var in Input
	switch val := v.(type) {
	case string:
		in = Text(val)
	case []byte:
		in = Bytes(val)
	case ByteView:
		in = View(val.Buffer, val.Offset, val.Length)
	case *ByteView:
		if val == nil {
			return Input{}, errdefs.Newf(errdefs.ErrTypeUnsupportedInput, "update", "nil byte view")
		}
		in = View(val.Buffer, val.Offset, val.Length)
	case Input:
		in = val
	default:
		return Input{}, errdefs.Newf(errdefs.ErrTypeUnsupportedInput, "update",
			"unsupported input type %T", v)
	}
	if inputEncoding != "" {
		in = in.WithEncoding(inputEncoding)
	}
	return in, nil
}

type variant int

const (
	variantText variant = iota
	variantBytes
)

// normalized is the tagged form every Input is reduced to before it reaches
// the hash engine.
type normalized struct {
	tag  variant
	text string
	data []byte
}

func (n normalized) bytes() []byte {
	if n.tag == variantText {
		return []byte(n.text)
	}
	return n.data
}

func normalize(in Input) (normalized, error) {
	switch in.kind {
	case KindText:
		if in.encoding == "" {
			return normalized{tag: variantText, text: in.text}, nil
		}
		b, err := encoding.Decode(in.encoding, in.text)
		if err != nil {
			if errdefs.IsType(err, errdefs.ErrTypeUnsupportedInput) {
				return normalized{}, err
			}
			return normalized{}, errdefs.New(errdefs.ErrTypeUnsupportedInput, "update",
				"cannot decode input", err)
		}
		return normalized{tag: variantBytes, data: b}, nil

	case KindBytes:
		if in.encoding != "" {
			return normalized{}, errdefs.Newf(errdefs.ErrTypeUnsupportedInput, "update",
				"input encoding %q requires string input, got bytes", in.encoding)
		}
		return normalized{tag: variantBytes, data: in.data}, nil

	case KindView:
		if in.encoding != "" {
			return normalized{}, errdefs.Newf(errdefs.ErrTypeUnsupportedInput, "update",
				"input encoding %q requires string input, got byte view", in.encoding)
		}
		v := in.view
		if v.Offset < 0 || v.Length < 0 || v.Offset > len(v.Buffer)-v.Length {
			return normalized{}, errdefs.Newf(errdefs.ErrTypeRange, "update",
				"view [%d, %d+%d) exceeds buffer of %d bytes", v.Offset, v.Offset, v.Length, len(v.Buffer))
		}
		return normalized{tag: variantBytes, data: v.Buffer[v.Offset : v.Offset+v.Length]}, nil

	default:
		return normalized{}, errdefs.Newf(errdefs.ErrTypeUnsupportedInput, "update",
			"unknown input kind %d", in.kind)
	}
}
