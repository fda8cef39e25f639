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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sigstore/streamdigest/pkg/errdefs"
)

func TestRoundTrip(t *testing.T) {
	data := []byte{0x00, 0x01, 0x7f, 0x80, 0xfe, 0xff, 'h', 'i'}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Encode(name, data)
			require.NoError(t, err)

			got, err := Decode(name, s)
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}
}

func TestKnownRenderings(t *testing.T) {
	data := []byte("hello")

	tests := []struct {
		name string
		want string
	}{
		{"hex", "68656c6c6f"},
		{"base64", "aGVsbG8="},
		{"base64url", "aGVsbG8"},
		{"latin1", "hello"},
		{"binary", "hello"},
		{"utf8", "hello"},
		{"base32", "NBSWY3DP"},
		{"base58btc", "Cn8eVZg"},
		{"multibase", "bnbswy3dp"},
		{"multibase:base16", "f68656c6c6f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.name, data)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"HEX", "Base64", " base64url ", "UTF-8", "UCS2", "Base58"} {
		c, err := Lookup(name)
		require.NoError(t, err, name)
		require.NotEmpty(t, c.Name())
	}
}

func TestLatin1MapsBytesToCodePoints(t *testing.T) {
	s, err := Encode("latin1", []byte{0xe9})
	require.NoError(t, err)
	require.Equal(t, "é", s)

	b, err := Decode("latin1", "é")
	require.NoError(t, err)
	require.Equal(t, []byte{0xe9}, b)
}

func TestLatin1KeepsInvalidUTF8Bytes(t *testing.T) {
	b, err := Decode("binary", "\xff\xfe\x80é")
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xfe, 0x80, 0xe9}, b)

	s, err := Encode("latin1", b)
	require.NoError(t, err)
	back, err := Decode("latin1", s)
	require.NoError(t, err)
	require.Equal(t, b, back)
}

func TestUTF16LE(t *testing.T) {
	b, err := Decode("utf16le", "hi")
	require.NoError(t, err)
	require.Equal(t, []byte{'h', 0, 'i', 0}, b)
}

func TestBase64AcceptsMissingPadding(t *testing.T) {
	b, err := Decode("base64", "aGVsbG8")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), b)

	b, err = Decode("base64url", "aGVsbG8=")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), b)
}

func TestMultibaseDecodeDetectsBase(t *testing.T) {
	for _, s := range []string{"bnbswy3dp", "f68656c6c6f", "zCn8eVZg"} {
		b, err := Decode("multibase", s)
		require.NoError(t, err, s)
		require.Equal(t, []byte("hello"), b)
	}

	_, err := Decode("multibase:base16", "bnbswy3dp")
	require.ErrorIs(t, err, errdefs.ErrUnsupportedInput)
}

func TestUnknownEncoding(t *testing.T) {
	_, err := Lookup("ebcdic")
	require.ErrorIs(t, err, errdefs.ErrUnsupportedEncoding)
	require.False(t, IsSupported("ebcdic"))
	require.False(t, IsSupported("multibase:nope"))

	_, err = Encode("ebcdic", nil)
	require.ErrorIs(t, err, errdefs.ErrUnsupportedEncoding)
}

func TestMalformedInput(t *testing.T) {
	_, err := Decode("hex", "zz")
	require.ErrorIs(t, err, errdefs.ErrUnsupportedInput)

	_, err = Decode("base58btc", "0OIl")
	require.ErrorIs(t, err, errdefs.ErrUnsupportedInput)
}
