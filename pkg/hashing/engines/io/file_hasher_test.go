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
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigstore/streamdigest/pkg/errdefs"
	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	"github.com/sigstore/streamdigest/pkg/hashsession"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(p, content, 0o600))
	return p
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func TestFileHasherCompute(t *testing.T) {
	content := bytes.Repeat([]byte("streamdigest"), 1000)
	p := writeFile(t, content)

	for _, chunk := range []int{0, 1, 7, 4096, 1 << 20} {
		h, err := NewFileHasher(p, "SHA-256", WithChunkSize(chunk))
		require.NoError(t, err)
		assert.Equal(t, "sha256", h.DigestName())
		assert.Equal(t, 32, h.DigestSize())

		d, err := h.Compute()
		require.NoError(t, err)
		assert.Equal(t, sha256Hex(content), d.Hex(), "chunk=%d", chunk)
	}
}

func TestFileHasherSessionNotFinalized(t *testing.T) {
	p := writeFile(t, []byte("hello "))
	h, err := NewFileHasher(p, "sha256")
	require.NoError(t, err)

	s, err := h.Session(context.Background())
	require.NoError(t, err)
	assert.False(t, s.Finalized())

	_, err = s.UpdateString("world")
	require.NoError(t, err)
	out, err := s.DigestString("hex")
	require.NoError(t, err)
	assert.Equal(t, sha256Hex([]byte("hello world")), out)
}

func TestNewFileHasherErrors(t *testing.T) {
	_, err := NewFileHasher("", "sha256")
	assert.Error(t, err)

	_, err = NewFileHasher("x", "sha256", WithChunkSize(-1))
	assert.Error(t, err)

	_, err = NewFileHasher("x", "nope")
	assert.ErrorIs(t, err, errdefs.ErrUnknownAlgorithm)

	h, err := NewFileHasher(filepath.Join(t.TempDir(), "missing"), "sha256")
	require.NoError(t, err)
	_, err = h.Compute()
	assert.Error(t, err)
}

func TestFeedHonoursContext(t *testing.T) {
	s, err := hashsession.New("sha256")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Feed(ctx, s, strings.NewReader("data"), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFeedAfterFinalize(t *testing.T) {
	s, err := hashsession.New("sha256")
	require.NoError(t, err)
	_, err = s.Finalize()
	require.NoError(t, err)

	_, err = Feed(context.Background(), s, strings.NewReader("data"), 2)
	assert.ErrorIs(t, err, errdefs.ErrFinalizedState)
}

func TestShardedFileHasher(t *testing.T) {
	content := []byte("0123456789abcdef")
	p := writeFile(t, content)

	h, err := NewShardedFileHasher(p, "sha256", 4, 10, 8, WithChunkSize(3))
	require.NoError(t, err)
	assert.EqualValues(t, 8, h.ShardSize())

	d, err := h.Compute()
	require.NoError(t, err)
	assert.Equal(t, sha256Hex(content[4:10]), d.Hex())

	assert.Error(t, h.SetShard(-1, 2))
	assert.Error(t, h.SetShard(5, 5))
	assert.Error(t, h.SetShard(0, 9))
	assert.NoError(t, h.SetShard(0, 0))

	_, err = NewShardedFileHasher(p, "sha256", 0, 1, 0)
	assert.Error(t, err)
}

func TestShardDigests(t *testing.T) {
	content := []byte("0123456789")
	p := writeFile(t, content)

	shards, err := ShardDigests(context.Background(), p, "sha256", 4)
	require.NoError(t, err)
	require.Len(t, shards, 3)
	assert.Equal(t, sha256Hex(content[0:4]), shards[0].Hex())
	assert.Equal(t, sha256Hex(content[4:8]), shards[1].Hex())
	assert.Equal(t, sha256Hex(content[8:]), shards[2].Hex())

	root, err := ShardedRootDigest(context.Background(), p, "sha256", 4)
	require.NoError(t, err)

	var concat []byte
	for _, s := range shards {
		concat = append(concat, s.Value()...)
	}
	assert.Equal(t, sha256Hex(concat), root.Hex())
}

func TestShardDigestsEmptyFile(t *testing.T) {
	p := writeFile(t, nil)

	shards, err := ShardDigests(context.Background(), p, "sha256", 4)
	require.NoError(t, err)
	require.Len(t, shards, 1)
	assert.True(t, shards[0].Equal(digests.NewDigest("sha256", mustHex(t, sha256Hex(nil)))))
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
