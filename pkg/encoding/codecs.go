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

package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-base32"
	"github.com/multiformats/go-base36"
)

func init() {
	Register(funcCodec{"hex", hex.EncodeToString, hex.DecodeString})
	Register(funcCodec{"base64", base64.StdEncoding.EncodeToString, decodeBase64})
	Register(funcCodec{"base64url", base64.RawURLEncoding.EncodeToString, decodeBase64URL})
	Register(funcCodec{"latin1", encodeLatin1, decodeLatin1}, "binary", "iso-8859-1")
	Register(funcCodec{"utf8", encodeUTF8, decodeUTF8}, "utf-8")
	Register(funcCodec{"utf16le", encodeUTF16LE, decodeUTF16LE}, "utf-16le", "ucs2", "ucs-2")
	Register(funcCodec{"base32", base32.StdEncoding.EncodeToString, base32.StdEncoding.DecodeString})
	Register(funcCodec{"base32hex", base32.HexEncoding.EncodeToString, base32.HexEncoding.DecodeString})
	Register(funcCodec{"base36", base36.EncodeToStringLc, base36.DecodeString})
	Register(funcCodec{"base58btc", base58.Encode, base58.Decode}, "base58")
	Register(multibaseCodec{}, "mb")
}

type funcCodec struct {
	name   string
	encode func([]byte) string
	decode func(string) ([]byte, error)
}

func (c funcCodec) Name() string                    { return c.name }
func (c funcCodec) Encode(data []byte) string       { return c.encode(data) }
func (c funcCodec) Decode(s string) ([]byte, error) { return c.decode(s) }

// decodeBase64 accepts padded and unpadded standard base64.
func decodeBase64(s string) ([]byte, error) {
	if len(s)%4 != 0 {
		return base64.RawStdEncoding.DecodeString(s)
	}
	return base64.StdEncoding.DecodeString(s)
}

// decodeBase64URL accepts padded and unpadded URL-safe base64.
func decodeBase64URL(s string) ([]byte, error) {
	if len(s)%4 == 0 && len(s) > 0 && s[len(s)-1] == '=' {
		return base64.URLEncoding.DecodeString(s)
	}
	return base64.RawURLEncoding.DecodeString(s)
}

// encodeLatin1 maps each byte to the code point of the same value.
func encodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// decodeLatin1 keeps the low byte of every code point. Bytes that are not
// valid UTF-8 are taken as they are, so raw byte strings round-trip.
func decodeLatin1(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			out = append(out, s[i])
		} else {
			out = append(out, byte(r))
		}
		i += size
	}
	return out, nil
}

func encodeUTF8(data []byte) string {
	return string(data)
}

func decodeUTF8(s string) ([]byte, error) {
	return []byte(s), nil
}

func encodeUTF16LE(data []byte) string {
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	return string(utf16.Decode(units))
}

func decodeUTF16LE(s string) ([]byte, error) {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, 2*len(units))
	for _, u := range units {
		out = append(out, byte(u), byte(u>>8))
	}
	return out, nil
}

