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

package options

import (
	"github.com/spf13/cobra"

	"github.com/sigstore/streamdigest/pkg/config"
)

// DigestOptions are the flags of `streamdigest digest`.
type DigestOptions struct {
	AlgorithmFlags
	OutputEncodingFlags
	PathFlags
	InputEncoding string   // --input-encoding
	Texts         []string // --text, repeatable, hashed in order
	ChunkSize     int      // --chunk-size
	ShardSize     int64    // --shard-size
	Root          bool     // --root
	Check         string   // --check
}

var _ Interface = (*DigestOptions)(nil)

func (o *DigestOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.AlgorithmFlags, &o.OutputEncodingFlags, &o.PathFlags)

	cmd.Flags().StringVar(&o.InputEncoding, "input-encoding", envDefault("input-encoding", ""),
		"decode --text values with this encoding before hashing (default utf8)")
	cmd.Flags().StringArrayVar(&o.Texts, "text", nil,
		"hash this text instead of files; repeat to feed several updates into one digest")
	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", config.NewDigestConfig().ChunkSize(),
		"read buffer size in bytes")
	cmd.Flags().Int64Var(&o.ShardSize, "shard-size", 0,
		"hash each file in shards of this many bytes and print the root digest of the shards")
	cmd.Flags().BoolVar(&o.Root, "root", false,
		"print one root digest over the digests of all files instead of one line per file")

	cmd.Flags().StringVarP(&o.Check, "check", "c", "",
		"verify the files named in this checksum list (- for stdin)")
	_ = cmd.MarkFlagFilename("check")

	cmd.MarkFlagsMutuallyExclusive("text", "shard-size")
	cmd.MarkFlagsMutuallyExclusive("text", "check")
	cmd.MarkFlagsMutuallyExclusive("root", "check")
	cmd.MarkFlagsMutuallyExclusive("text", "root")
	cmd.MarkFlagsMutuallyExclusive("recursive", "check")
}

// ToConfig converts the flags into a library config.
func (o *DigestOptions) ToConfig() *config.DigestConfig {
	return config.NewDigestConfig().
		SetAlgorithm(o.Algorithm).
		SetInputEncoding(o.InputEncoding).
		SetOutputEncoding(o.Encoding).
		SetChunkSize(o.ChunkSize).
		SetShardSize(o.ShardSize)
}
