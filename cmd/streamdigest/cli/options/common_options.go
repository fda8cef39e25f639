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

	"github.com/sigstore/streamdigest/pkg/hashing"
)

// AlgorithmFlags selects the hash algorithm.
type AlgorithmFlags struct {
	Algorithm string
}

func (o *AlgorithmFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Algorithm, "algorithm", "a", envDefault("algorithm", "sha256"),
		"hash algorithm name or alias (see: streamdigest algorithms)")
}

// OutputEncodingFlags selects how results are rendered.
type OutputEncodingFlags struct {
	Encoding string
}

func (o *OutputEncodingFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Encoding, "encoding", "e", envDefault("encoding", "hex"),
		"output encoding; \"binary\" writes raw bytes (see: streamdigest encodings)")
}

// PathFlags control how directories given as FILE arguments are expanded.
type PathFlags struct {
	// Recursive replaces directories with the files below them.
	Recursive bool
	// IgnorePaths lists paths skipped while walking directories.
	IgnorePaths []string
	// IgnoreGitPaths skips .git and related files while walking.
	IgnoreGitPaths bool
	// AllowSymlinks follows symlinks to files while walking.
	AllowSymlinks bool
}

func (o *PathFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.Recursive, "recursive", "r", false, "digest every file below directory arguments")
	cmd.Flags().StringSliceVar(&o.IgnorePaths, "ignore-paths", nil, "paths to skip when walking directories")
	cmd.Flags().BoolVar(&o.IgnoreGitPaths, "ignore-git-paths", true, "skip git-related files when walking directories")
	cmd.Flags().BoolVar(&o.AllowSymlinks, "allow-symlinks", false, "follow symbolic links to files when walking directories")
}

// Walker builds the directory walker for these flags.
func (o *PathFlags) Walker() *hashing.Walker {
	return &hashing.Walker{
		IgnorePaths:    o.IgnorePaths,
		IgnoreGitPaths: o.IgnoreGitPaths,
		AllowSymlinks:  o.AllowSymlinks,
	}
}

// AddAllFlags registers several flag groups at once.
func AddAllFlags(cmd *cobra.Command, groups ...Interface) {
	for _, g := range groups {
		g.AddFlags(cmd)
	}
}
