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

// Package config holds builder-style configuration for digest and random
// byte runs.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/sigstore/streamdigest/pkg/encoding"
	"github.com/sigstore/streamdigest/pkg/errdefs"
	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
	hashio "github.com/sigstore/streamdigest/pkg/hashing/engines/io"
	"github.com/sigstore/streamdigest/pkg/hashing/engines/memory"
	"github.com/sigstore/streamdigest/pkg/hashsession"
	"github.com/sigstore/streamdigest/pkg/logging"
	"github.com/sigstore/streamdigest/pkg/manifest"
)

// DigestConfig describes how to hash input and render the result.
type DigestConfig struct {
	// Hash algorithm name or alias (e.g., "sha512", "SHA-256")
	algorithm string

	// Encoding applied to text input; empty means UTF-8
	inputEncoding string

	// Rendering of the final digest; empty or "binary" means raw bytes
	outputEncoding string

	// Read buffer size for streamed input
	chunkSize int

	// When positive, files are hashed in shards of this size and the shard
	// digests are condensed into one root digest
	shardSize int64

	logger logging.Logger
}

// NewDigestConfig returns the defaults: sha256, UTF-8 text input, hex
// output, hashsession.DefaultChunkSize reads, no sharding.
func NewDigestConfig() *DigestConfig {
	return &DigestConfig{
		algorithm:      "sha256",
		outputEncoding: hashsession.EncodingHex,
		chunkSize:      hashsession.DefaultChunkSize,
	}
}

func (c *DigestConfig) SetAlgorithm(algorithm string) *DigestConfig {
	c.algorithm = algorithm
	return c
}

func (c *DigestConfig) SetInputEncoding(name string) *DigestConfig {
	c.inputEncoding = name
	return c
}

func (c *DigestConfig) SetOutputEncoding(name string) *DigestConfig {
	c.outputEncoding = name
	return c
}

func (c *DigestConfig) SetChunkSize(size int) *DigestConfig {
	c.chunkSize = size
	return c
}

func (c *DigestConfig) SetShardSize(size int64) *DigestConfig {
	c.shardSize = size
	return c
}

func (c *DigestConfig) SetLogger(l logging.Logger) *DigestConfig {
	c.logger = l
	return c
}

func (c *DigestConfig) Algorithm() string      { return c.algorithm }
func (c *DigestConfig) InputEncoding() string  { return c.inputEncoding }
func (c *DigestConfig) OutputEncoding() string { return c.outputEncoding }
func (c *DigestConfig) ChunkSize() int         { return c.chunkSize }
func (c *DigestConfig) ShardSize() int64       { return c.shardSize }

// Validate checks every setting without hashing anything.
func (c *DigestConfig) Validate() error {
	engine, err := hashengines.Create(c.algorithm)
	if err != nil {
		return err
	}
	canonical := engine.DigestName()
	if c.inputEncoding != "" && !encoding.IsSupported(c.inputEncoding) {
		return errdefs.Newf(errdefs.ErrTypeUnsupportedEncoding, "config",
			"unsupported input encoding %q", c.inputEncoding)
	}
	if err := hashsession.CheckOutputEncoding(c.outputEncoding, canonical); err != nil {
		return err
	}
	if c.chunkSize < 0 {
		return errdefs.Newf(errdefs.ErrTypeRange, "config", "chunk size must be non-negative, got %d", c.chunkSize)
	}
	if c.shardSize < 0 {
		return errdefs.Newf(errdefs.ErrTypeRange, "config", "shard size must be non-negative, got %d", c.shardSize)
	}
	return nil
}

// NewSession validates the config and opens a session for it.
func (c *DigestConfig) NewSession() (*hashsession.Session, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return hashsession.New(c.algorithm,
		hashsession.WithLogger(c.logger),
		hashsession.WithChunkSize(c.chunkSize))
}

// HashText digests text decoded with the configured input encoding.
func (c *DigestConfig) HashText(text string) (hashsession.Output, error) {
	s, err := c.NewSession()
	if err != nil {
		return hashsession.Output{}, err
	}
	if _, err := s.UpdateEncoded(text, c.inputEncoding); err != nil {
		return hashsession.Output{}, err
	}
	return s.Digest(c.outputEncoding)
}

// HashReader digests everything r yields.
func (c *DigestConfig) HashReader(ctx context.Context, r io.Reader) (hashsession.Output, error) {
	s, err := c.NewSession()
	if err != nil {
		return hashsession.Output{}, err
	}
	if _, err := hashio.Feed(ctx, s, r, c.chunkSize); err != nil {
		return hashsession.Output{}, fmt.Errorf("read input: %w", err)
	}
	return s.Digest(c.outputEncoding)
}

// FileDigest digests one file, shard by shard when a shard size is set.
func (c *DigestConfig) FileDigest(ctx context.Context, path string) (digests.Digest, error) {
	if err := c.Validate(); err != nil {
		return digests.Digest{}, err
	}
	opts := []hashio.Option{hashio.WithChunkSize(c.chunkSize), hashio.WithLogger(c.logger)}

	if c.shardSize > 0 {
		return hashio.ShardedRootDigest(ctx, path, c.algorithm, c.shardSize, opts...)
	}
	h, err := hashio.NewFileHasher(path, c.algorithm, opts...)
	if err != nil {
		return digests.Digest{}, err
	}
	s, err := h.Session(ctx)
	if err != nil {
		return digests.Digest{}, err
	}
	return s.Finalize()
}

// HashFile digests one file and renders the result.
func (c *DigestConfig) HashFile(ctx context.Context, path string) (hashsession.Output, error) {
	d, err := c.FileDigest(ctx, path)
	if err != nil {
		return hashsession.Output{}, err
	}
	return hashsession.Render(d, c.outputEncoding)
}

// HashFilesRoot digests each file in order and renders the digest of their
// concatenated raw digests.
func (c *DigestConfig) HashFilesRoot(ctx context.Context, paths []string) (hashsession.Output, error) {
	list := make([]digests.Digest, 0, len(paths))
	for _, p := range paths {
		d, err := c.FileDigest(ctx, p)
		if err != nil {
			return hashsession.Output{}, err
		}
		list = append(list, d)
	}
	root, err := memory.ComputeRootDigest(c.algorithm, list)
	if err != nil {
		return hashsession.Output{}, err
	}
	return hashsession.Render(root, c.outputEncoding)
}

// BuildManifest digests each path into a manifest keyed by the path as
// given.
func (c *DigestConfig) BuildManifest(ctx context.Context, paths []string) (*manifest.Manifest, error) {
	engine, err := hashengines.Create(c.algorithm)
	if err != nil {
		return nil, err
	}
	m := manifest.New(engine.DigestName())
	for _, p := range paths {
		d, err := c.FileDigest(ctx, p)
		if err != nil {
			return nil, err
		}
		m.Add(p, d)
	}
	return m, nil
}

// ListEncoding is the digest encoding used for checksum lists: the output
// encoding when it is a printable codec that can be parsed back, hex
// otherwise.
func (c *DigestConfig) ListEncoding() string {
	n := strings.ToLower(strings.TrimSpace(c.outputEncoding))
	if n == "" || n == hashsession.EncodingBinary {
		return manifest.DefaultEncoding
	}
	codec, err := encoding.Lookup(n)
	if err != nil {
		return manifest.DefaultEncoding
	}
	switch codec.Name() {
	case "latin1", "utf8", "utf16le":
		return manifest.DefaultEncoding
	}
	return n
}

// CheckResult is the outcome of verifying a checksum list.
type CheckResult struct {
	// Expected holds the parsed list.
	Expected *manifest.Manifest
	// Diff compares the recomputed digests against Expected. ExtraFiles is
	// always empty.
	Diff *manifest.Diff
}

// Failed reports how many listed files were missing or mismatched.
func (r *CheckResult) Failed() int {
	return len(r.Diff.MissingFiles) + len(r.Diff.Mismatches)
}

// Check reads a checksum list from r and re-digests every listed file.
// Files that cannot be opened are reported as missing.
func (c *DigestConfig) Check(ctx context.Context, r io.Reader) (*CheckResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	engine, err := hashengines.Create(c.algorithm)
	if err != nil {
		return nil, err
	}
	expected, err := manifest.Parse(r, engine.DigestName(), engine.DigestSize(), c.ListEncoding())
	if err != nil {
		return nil, err
	}

	actual := manifest.New(expected.Algorithm())
	for _, e := range expected.Entries() {
		d, err := c.FileDigest(ctx, e.Path)
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			logging.EnsureLogger(c.logger).WithField("file", e.Path).Warn("cannot read: %v", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		actual.Add(e.Path, d)
	}
	return &CheckResult{
		Expected: expected,
		Diff:     manifest.ComputeDiff(actual, expected),
	}, nil
}
