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

// Package hashsession implements incremental digest sessions.
//
// A Session wraps one hash engine. Callers feed it data with Update (or the
// io.Writer / io.ReaderFrom methods) and then ask for the digest in an
// output encoding. The first successful Digest call seals the session:
// later Digest calls return the same value in any encoding, while further
// input is rejected with an errdefs.ErrFinalizedState error.
//
//	s, _ := hashsession.New("sha512")
//	s.UpdateString("hello world")
//	hex, _ := s.DigestString("hex")
//
// A Session is not safe for concurrent use.
package hashsession

import (
	"io"
	"strings"

	"github.com/sigstore/streamdigest/pkg/errdefs"
	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
	_ "github.com/sigstore/streamdigest/pkg/hashing/engines/memory" // registers the built-in engines
	"github.com/sigstore/streamdigest/pkg/logging"
)

// DefaultChunkSize is the read buffer size used by ReadFrom.
const DefaultChunkSize = 32 * 1024

var (
	_ io.Writer     = (*Session)(nil)
	_ io.ReaderFrom = (*Session)(nil)
)

// Options configures a Session.
type Options struct {
	// Logger receives debug output about finalization and copies.
	Logger logging.Logger

	// Engine binds the session to an existing engine instead of creating
	// one from the registry. The session takes ownership of it.
	Engine hashengines.StreamingHashEngine

	// ChunkSize is the buffer size used by ReadFrom. Zero means
	// DefaultChunkSize.
	ChunkSize int
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the session logger.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithEngine binds the session to engine.
func WithEngine(engine hashengines.StreamingHashEngine) Option {
	return func(o *Options) { o.Engine = engine }
}

// WithChunkSize sets the ReadFrom buffer size.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}

// Session accumulates input for one digest.
type Session struct {
	algorithm string
	engine    hashengines.StreamingHashEngine
	chunkSize int
	logger    logging.Logger

	finalized bool
	digest    digests.Digest
}

// New creates a session for the named algorithm (any registered name or
// alias, matched case-insensitively). With WithEngine, algorithm may be
// empty; otherwise it must name the engine's algorithm.
func New(algorithm string, opts ...Option) (*Session, error) {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}

	engine := o.Engine
	if engine == nil {
		var err error
		engine, err = hashengines.Create(algorithm)
		if err != nil {
			return nil, err
		}
	} else if algorithm != "" && canonicalName(algorithm) != canonicalName(engine.DigestName()) {
		return nil, errdefs.Newf(errdefs.ErrTypeUnknownAlgorithm, "new",
			"algorithm %q does not match engine %q", algorithm, engine.DigestName())
	}

	chunkSize := o.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Session{
		algorithm: engine.DigestName(),
		engine:    engine,
		chunkSize: chunkSize,
		logger:    logging.EnsureLogger(o.Logger).WithField("algorithm", engine.DigestName()),
	}, nil
}

// canonicalName resolves registered aliases and falls back to the
// lower-cased name for engines outside the registry.
func canonicalName(name string) string {
	if c, ok := hashengines.Canonical(name); ok {
		return c
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// Algorithm returns the canonical algorithm name.
func (s *Session) Algorithm() string {
	return s.algorithm
}

// Size returns the digest length in bytes.
func (s *Session) Size() int {
	return s.engine.DigestSize()
}

// Finalized reports whether the digest has been produced.
func (s *Session) Finalized() bool {
	return s.finalized
}

// Update normalizes in and forwards the resulting bytes to the engine. It
// returns the session for chaining.
//
// Nothing is forwarded when Update fails.
func (s *Session) Update(in Input) (*Session, error) {
	if s.finalized {
		return nil, finalizedError("update")
	}

	n, err := normalize(in)
	if err != nil {
		return nil, err
	}

	s.engine.Update(n.bytes())
	return s, nil
}

// UpdateString forwards the UTF-8 bytes of text.
func (s *Session) UpdateString(text string) (*Session, error) {
	return s.Update(Text(text))
}

// UpdateBytes forwards data unchanged.
func (s *Session) UpdateBytes(data []byte) (*Session, error) {
	return s.Update(Bytes(data))
}

// UpdateEncoded decodes text with the named encoding and forwards the bytes.
func (s *Session) UpdateEncoded(text, inputEncoding string) (*Session, error) {
	return s.Update(EncodedText(text, inputEncoding))
}

// UpdateValue accepts a string, []byte, ByteView or Input. A non-empty
// inputEncoding is only valid for strings.
func (s *Session) UpdateValue(v interface{}, inputEncoding string) (*Session, error) {
	if s.finalized {
		return nil, finalizedError("update")
	}
	in, err := FromValue(v, inputEncoding)
	if err != nil {
		return nil, err
	}
	return s.Update(in)
}

// Write implements io.Writer.
func (s *Session) Write(p []byte) (int, error) {
	if _, err := s.UpdateBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadFrom implements io.ReaderFrom, hashing r until EOF in chunks.
//
// Bytes read before a read error have already been hashed when the error is
// returned.
func (s *Session) ReadFrom(r io.Reader) (int64, error) {
	if s.finalized {
		return 0, finalizedError("update")
	}

	var total int64
	buf := make([]byte, s.chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.engine.Update(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Finalize seals the session and returns its digest. Calling it again
// returns the same digest.
func (s *Session) Finalize() (digests.Digest, error) {
	if s.finalized {
		return s.digest, nil
	}

	d, err := s.engine.Compute()
	if err != nil {
		return digests.Digest{}, err
	}

	s.digest = d
	s.finalized = true
	s.logger.Debug("finalized %d-byte digest", d.Size())
	return d, nil
}

// Digest finalizes the session (once) and renders the digest.
//
// Encodings:
//   - "" or "binary": the raw digest bytes
//   - "hex": the engine's lowercase hexadecimal rendering
//   - "multihash": base58btc multihash
//   - "cid": CIDv1 (raw codec) string
//   - any name known to pkg/encoding, e.g. "base64", "base64url"
//
// An unknown encoding fails without finalizing the session.
func (s *Session) Digest(outputEncoding string) (Output, error) {
	render, err := renderer(outputEncoding, s.algorithm)
	if err != nil {
		return Output{}, err
	}

	d, err := s.Finalize()
	if err != nil {
		return Output{}, err
	}

	return render(d)
}

// Sum returns the raw digest bytes.
func (s *Session) Sum() ([]byte, error) {
	out, err := s.Digest(EncodingBinary)
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DigestString returns the digest rendered with outputEncoding as a string.
func (s *Session) DigestString(outputEncoding string) (string, error) {
	out, err := s.Digest(outputEncoding)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Copy returns an independent session holding a snapshot of the input
// accumulated so far. It fails once the session is finalized, and when the
// engine cannot duplicate its state.
func (s *Session) Copy() (*Session, error) {
	if s.finalized {
		return nil, finalizedError("copy")
	}

	cloner, ok := s.engine.(hashengines.Cloner)
	if !ok {
		return nil, errdefs.Newf(errdefs.ErrTypeUnsupportedOperation, "copy",
			"%s engine does not support copying", s.algorithm)
	}

	engine, err := cloner.Clone()
	if err != nil {
		return nil, err
	}

	s.logger.Debugln("copied session state")
	return &Session{
		algorithm: s.algorithm,
		engine:    engine,
		chunkSize: s.chunkSize,
		logger:    s.logger,
	}, nil
}

func finalizedError(op string) error {
	return errdefs.New(errdefs.ErrTypeFinalizedState, op, "digest already called", nil)
}
