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

package config

import (
	"fmt"
	"strings"

	"github.com/sigstore/streamdigest/pkg/encoding"
	"github.com/sigstore/streamdigest/pkg/errdefs"
	"github.com/sigstore/streamdigest/pkg/logging"
	"github.com/sigstore/streamdigest/pkg/randomfill"
)

// Random byte sources.
const (
	SourceCrypto = "crypto"
	SourcePseudo = "pseudo"
)

// RandomConfig describes a random byte run.
type RandomConfig struct {
	size     int
	encoding string
	source   string
	seed     uint64
	logger   logging.Logger
}

// NewRandomConfig returns the defaults: 32 bytes from crypto/rand, hex
// encoded.
func NewRandomConfig() *RandomConfig {
	return &RandomConfig{
		size:     32,
		encoding: "hex",
		source:   SourceCrypto,
	}
}

func (c *RandomConfig) SetSize(size int) *RandomConfig {
	c.size = size
	return c
}

// SetEncoding sets the text rendering; empty or "binary" writes raw bytes.
func (c *RandomConfig) SetEncoding(name string) *RandomConfig {
	c.encoding = name
	return c
}

// UsePseudo switches to the seeded ChaCha8 source. Output is reproducible
// and unsuitable for secrets.
func (c *RandomConfig) UsePseudo(seed uint64) *RandomConfig {
	c.source = SourcePseudo
	c.seed = seed
	return c
}

func (c *RandomConfig) UseCrypto() *RandomConfig {
	c.source = SourceCrypto
	c.seed = 0
	return c
}

func (c *RandomConfig) SetLogger(l logging.Logger) *RandomConfig {
	c.logger = l
	return c
}

func (c *RandomConfig) Size() int        { return c.size }
func (c *RandomConfig) Encoding() string { return c.encoding }
func (c *RandomConfig) Source() string   { return c.source }
func (c *RandomConfig) Seed() uint64     { return c.seed }

func isRaw(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return n == "" || n == "binary"
}

// Validate checks the size range, the encoding name and the source.
func (c *RandomConfig) Validate() error {
	if c.size < 0 || c.size > randomfill.MaxSize {
		return errdefs.Newf(errdefs.ErrTypeRange, "config",
			"size must be between 0 and %d, got %d", randomfill.MaxSize, c.size)
	}
	if !isRaw(c.encoding) && !encoding.IsSupported(c.encoding) {
		return errdefs.Newf(errdefs.ErrTypeUnsupportedEncoding, "config",
			"unsupported output encoding %q", c.encoding)
	}
	switch c.source {
	case SourceCrypto, SourcePseudo:
	default:
		return fmt.Errorf("unknown random source %q", c.source)
	}
	return nil
}

// NewGenerator validates the config and builds the matching generator.
func (c *RandomConfig) NewGenerator() (*randomfill.Generator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opt := randomfill.WithLogger(c.logger)
	if c.source == SourcePseudo {
		return randomfill.NewPseudo(c.seed, opt), nil
	}
	return randomfill.New(nil, opt), nil
}

// Generate draws size bytes and renders them. Raw output is returned as-is.
func (c *RandomConfig) Generate() ([]byte, error) {
	g, err := c.NewGenerator()
	if err != nil {
		return nil, err
	}
	buf, err := g.GenerateBytes(c.size)
	if err != nil {
		return nil, err
	}
	if isRaw(c.encoding) {
		return buf, nil
	}
	text, err := encoding.Encode(c.encoding, buf)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}
