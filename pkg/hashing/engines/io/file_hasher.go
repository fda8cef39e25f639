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

// Package io streams files and readers into digest sessions in fixed-size
// chunks.
package io

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
	"github.com/sigstore/streamdigest/pkg/hashsession"
	"github.com/sigstore/streamdigest/pkg/logging"
)

var _ hashengines.HashEngine = (*FileHasher)(nil)

// Options configures FileHasher and ShardedFileHasher.
type Options struct {
	ChunkSize int
	Logger    logging.Logger
}

type Option func(*Options)

// WithChunkSize sets the read buffer size. 0 selects
// hashsession.DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}

func WithLogger(l logging.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func buildOptions(opts []Option) (Options, error) {
	o := Options{ChunkSize: hashsession.DefaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ChunkSize < 0 {
		return o, fmt.Errorf("chunk size must be non-negative, got %d", o.ChunkSize)
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = hashsession.DefaultChunkSize
	}
	o.Logger = logging.EnsureLogger(o.Logger)
	return o, nil
}

// Feed copies r into s in chunkSize pieces, checking ctx between chunks.
// It returns the number of bytes consumed.
func Feed(ctx context.Context, s *hashsession.Session, r io.Reader, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = hashsession.DefaultChunkSize
	}
	buf := make([]byte, chunkSize)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if _, uerr := s.UpdateBytes(buf[:n]); uerr != nil {
				return total, uerr
			}
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// FileHasher hashes a whole file with one algorithm.
type FileHasher struct {
	filePath  string
	algorithm string
	size      int
	opts      Options
}

// NewFileHasher validates the path and algorithm up front; the file is not
// opened until Session or Compute is called.
func NewFileHasher(filePath, algorithm string, opts ...Option) (*FileHasher, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path must be non-empty")
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	engine, err := hashengines.Create(algorithm)
	if err != nil {
		return nil, err
	}
	return &FileHasher{
		filePath:  filePath,
		algorithm: engine.DigestName(),
		size:      engine.DigestSize(),
		opts:      o,
	}, nil
}

func (h *FileHasher) DigestName() string {
	return h.algorithm
}

func (h *FileHasher) DigestSize() int {
	return h.size
}

// Session returns a session that has consumed the whole file and is not yet
// finalized, so the caller picks the output encoding.
func (h *FileHasher) Session(ctx context.Context) (*hashsession.Session, error) {
	f, err := os.Open(h.filePath)
	if err != nil {
		return nil, fmt.Errorf("open file %q: %w", h.filePath, err)
	}
	//nolint:errcheck
	defer f.Close()

	s, err := hashsession.New(h.algorithm,
		hashsession.WithLogger(h.opts.Logger),
		hashsession.WithChunkSize(h.opts.ChunkSize))
	if err != nil {
		return nil, err
	}
	n, err := Feed(ctx, s, f, h.opts.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", h.filePath, err)
	}
	h.opts.Logger.WithField("file", h.filePath).Debug("hashed %d bytes", n)
	return s, nil
}

// Compute hashes the file and returns its digest.
func (h *FileHasher) Compute() (digests.Digest, error) {
	s, err := h.Session(context.Background())
	if err != nil {
		return digests.Digest{}, err
	}
	return s.Finalize()
}
