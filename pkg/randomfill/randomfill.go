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

// Package randomfill fills caller buffers with uniformly distributed bytes.
//
// The default generator reads from crypto/rand. A seeded, non-cryptographic
// generator is available through NewPseudo for reproducible output; it must
// not be used for keys, nonces or any other secret material.
package randomfill

import (
	"crypto/rand"
	"io"
	"math"
	mrand "math/rand/v2"

	"github.com/sigstore/streamdigest/pkg/errdefs"
	"github.com/sigstore/streamdigest/pkg/logging"
)

// MaxSize is the largest buffer GenerateBytes will allocate.
const MaxSize = math.MaxInt32

// Callback receives the result of GenerateBytesAsync. Exactly one of err and
// buf is meaningful.
type Callback func(err error, buf []byte)

// Generator draws bytes from a source.
type Generator struct {
	src    io.Reader
	logger logging.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the generator logger.
func WithLogger(l logging.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// New returns a generator reading from src. A nil src means crypto/rand.
func New(src io.Reader, opts ...GeneratorOption) *Generator {
	if src == nil {
		src = rand.Reader
	}
	g := &Generator{src: src}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.EnsureLogger(g.logger)
	return g
}

// NewPseudo returns a deterministic generator seeded from seed, backed by
// math/rand/v2's ChaCha8. Its output is predictable to anyone who knows the
// seed.
func NewPseudo(seed uint64, opts ...GeneratorOption) *Generator {
	var key [32]byte
	for i := 0; i < 4; i++ {
		v := seed ^ (0x9e3779b97f4a7c15 * uint64(i+1))
		for j := 0; j < 8; j++ {
			key[i*8+j] = byte(v >> (8 * j))
		}
	}
	return New(mrand.NewChaCha8(key), opts...)
}

var defaultGenerator = New(rand.Reader)

// Default returns the package generator backed by crypto/rand.
func Default() *Generator {
	return defaultGenerator
}

// FillOption narrows the region written by FillBuffer.
type FillOption func(*fillRange)

type fillRange struct {
	offset    int
	length    int
	hasLength bool
}

// WithOffset sets the first index to overwrite. Defaults to 0.
func WithOffset(offset int) FillOption {
	return func(r *fillRange) { r.offset = offset }
}

// WithLength sets how many bytes to overwrite. Defaults to everything from
// the offset to the end of the buffer.
func WithLength(length int) FillOption {
	return func(r *fillRange) {
		r.length = length
		r.hasLength = true
	}
}

// FillBuffer overwrites buf[offset:offset+length] with random bytes and
// returns buf.
//
// The bounds are checked before anything is written, and the bytes are
// drawn into scratch space first, so on any error buf is left untouched.
func (g *Generator) FillBuffer(buf []byte, opts ...FillOption) ([]byte, error) {
	r := fillRange{}
	for _, opt := range opts {
		opt(&r)
	}

	if r.offset < 0 || r.offset > len(buf) {
		return buf, errdefs.Newf(errdefs.ErrTypeRange, "fillBuffer",
			"offset %d out of range [0, %d]", r.offset, len(buf))
	}
	if !r.hasLength {
		r.length = len(buf) - r.offset
	}
	if r.length < 0 || r.length > len(buf)-r.offset {
		return buf, errdefs.Newf(errdefs.ErrTypeRange, "fillBuffer",
			"length %d out of range [0, %d]", r.length, len(buf)-r.offset)
	}

	if r.length == 0 {
		return buf, nil
	}

	scratch := make([]byte, r.length)
	if _, err := io.ReadFull(g.src, scratch); err != nil {
		return buf, errdefs.New(errdefs.ErrTypeUnknown, "fillBuffer", "read random source", err)
	}
	copy(buf[r.offset:], scratch)

	g.logger.Debug("filled %d bytes at offset %d", r.length, r.offset)
	return buf, nil
}

// GenerateBytes returns a new buffer of size random bytes.
func (g *Generator) GenerateBytes(size int) ([]byte, error) {
	if size < 0 || size > MaxSize {
		return nil, errdefs.Newf(errdefs.ErrTypeRange, "generateBytes",
			"size %d out of range [0, %d]", size, MaxSize)
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(g.src, buf); err != nil {
		return nil, errdefs.New(errdefs.ErrTypeUnknown, "generateBytes", "read random source", err)
	}
	return buf, nil
}

// GenerateBytesAsync generates size bytes on a new goroutine and calls cb
// exactly once, with either an error or the buffer. cb must not be nil.
func (g *Generator) GenerateBytesAsync(size int, cb Callback) {
	go func() {
		buf, err := g.GenerateBytes(size)
		if err != nil {
			cb(err, nil)
			return
		}
		cb(nil, buf)
	}()
}

// FillBuffer fills buf using the default generator.
func FillBuffer(buf []byte, opts ...FillOption) ([]byte, error) {
	return defaultGenerator.FillBuffer(buf, opts...)
}

// GenerateBytes returns size random bytes from the default generator.
func GenerateBytes(size int) ([]byte, error) {
	return defaultGenerator.GenerateBytes(size)
}

// GenerateBytesAsync generates size random bytes from the default generator
// and delivers them to cb.
func GenerateBytesAsync(size int, cb Callback) {
	defaultGenerator.GenerateBytesAsync(size, cb)
}
