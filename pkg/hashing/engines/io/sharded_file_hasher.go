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

package io

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	"github.com/sigstore/streamdigest/pkg/hashing/engines/memory"
	"github.com/sigstore/streamdigest/pkg/hashsession"
)

// ShardedFileHasher hashes the [start, end) slice of a file.
type ShardedFileHasher struct {
	*FileHasher

	start     int64
	end       int64
	shardSize int64
}

// NewShardedFileHasher builds a hasher for one shard. end-start must not
// exceed shardSize.
func NewShardedFileHasher(filePath, algorithm string, start, end, shardSize int64, opts ...Option) (*ShardedFileHasher, error) {
	if shardSize <= 0 {
		return nil, fmt.Errorf("shard size must be strictly positive, got %d", shardSize)
	}
	base, err := NewFileHasher(filePath, algorithm, opts...)
	if err != nil {
		return nil, err
	}
	h := &ShardedFileHasher{FileHasher: base, shardSize: shardSize}
	if err := h.SetShard(start, end); err != nil {
		return nil, err
	}
	return h, nil
}

// SetShard redefines the slice hashed by the next call. An empty shard is
// only accepted at offset 0, for empty files.
func (h *ShardedFileHasher) SetShard(start, end int64) error {
	if start < 0 {
		return fmt.Errorf("file start offset must be non-negative, got %d", start)
	}
	if end < start || (end == start && start != 0) {
		return fmt.Errorf("file end offset must be greater than start, got start=%d, end=%d", start, end)
	}
	if end-start > h.shardSize {
		return fmt.Errorf("must not read more than shardSize=%d, got %d", h.shardSize, end-start)
	}
	h.start = start
	h.end = end
	return nil
}

func (h *ShardedFileHasher) ShardSize() int64 {
	return h.shardSize
}

// Session returns an unfinalized session over the shard.
func (h *ShardedFileHasher) Session(ctx context.Context) (*hashsession.Session, error) {
	f, err := os.Open(h.filePath)
	if err != nil {
		return nil, fmt.Errorf("open file %q: %w", h.filePath, err)
	}
	//nolint:errcheck
	defer f.Close()

	s, err := hashsession.New(h.algorithm, hashsession.WithLogger(h.opts.Logger))
	if err != nil {
		return nil, err
	}
	section := io.NewSectionReader(f, h.start, h.end-h.start)
	if _, err := Feed(ctx, s, section, h.opts.ChunkSize); err != nil {
		return nil, fmt.Errorf("read shard %s[%d:%d]: %w", h.filePath, h.start, h.end, err)
	}
	return s, nil
}

func (h *ShardedFileHasher) Compute() (digests.Digest, error) {
	s, err := h.Session(context.Background())
	if err != nil {
		return digests.Digest{}, err
	}
	return s.Finalize()
}

// ShardDigests splits the file into shardSize pieces and hashes each in
// order. An empty file yields one digest of the empty input.
func ShardDigests(ctx context.Context, filePath, algorithm string, shardSize int64, opts ...Option) ([]digests.Digest, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", filePath, err)
	}
	size := info.Size()

	h, err := NewShardedFileHasher(filePath, algorithm, 0, min(shardSize, size), shardSize, opts...)
	if err != nil {
		return nil, err
	}

	numShards := max((size+shardSize-1)/shardSize, 1)
	out := make([]digests.Digest, 0, numShards)
	for i := int64(0); i < numShards; i++ {
		start := i * shardSize
		end := min(start+shardSize, size)
		if err := h.SetShard(start, end); err != nil {
			return nil, err
		}
		s, err := h.Session(ctx)
		if err != nil {
			return nil, err
		}
		d, err := s.Finalize()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ShardedRootDigest hashes the file shard by shard and condenses the shard
// digests with memory.ComputeRootDigest under the same algorithm.
func ShardedRootDigest(ctx context.Context, filePath, algorithm string, shardSize int64, opts ...Option) (digests.Digest, error) {
	shards, err := ShardDigests(ctx, filePath, algorithm, shardSize, opts...)
	if err != nil {
		return digests.Digest{}, err
	}
	return memory.ComputeRootDigest(algorithm, shards)
}
