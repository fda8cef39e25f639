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
	"fmt"

	"github.com/multiformats/go-multibase"
)

const multibasePrefix = "multibase:"

// multibaseCodec emits self-describing multibase strings. Decoding detects
// the base from the leading prefix character.
type multibaseCodec struct {
	base multibase.Encoding
	name string
}

func newMultibaseCodec(baseName string) (Codec, error) {
	base, ok := multibase.Encodings[baseName]
	if !ok {
		return nil, fmt.Errorf("unknown multibase %q", baseName)
	}
	return multibaseCodec{base: base, name: multibasePrefix + baseName}, nil
}

func (c multibaseCodec) Name() string {
	if c.name == "" {
		return "multibase"
	}
	return c.name
}

func (c multibaseCodec) Encode(data []byte) string {
	base := c.base
	if c.name == "" {
		base = multibase.Base32
	}
	// Encode only fails for unknown bases, which newMultibaseCodec rules out.
	s, _ := multibase.Encode(base, data)
	return s
}

func (c multibaseCodec) Decode(s string) ([]byte, error) {
	enc, data, err := multibase.Decode(s)
	if err != nil {
		return nil, err
	}
	if c.name != "" && enc != c.base {
		return nil, fmt.Errorf("expected %s, got %s", multibase.EncodingToStr[c.base], multibase.EncodingToStr[enc])
	}
	return data, nil
}
