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

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigstore/streamdigest/pkg/encoding"
	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
	"github.com/sigstore/streamdigest/pkg/hashsession"
)

func isBinary(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return n == "" || n == hashsession.EncodingBinary
}

// Algorithms creates the algorithms subcommand.
func Algorithms() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List supported hash algorithms.",
		Long: `List supported hash algorithms.

Each line shows the canonical name, the digest size in bytes, whether the
algorithm has a multihash code (required by the multihash and cid output
encodings) and the accepted aliases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, name := range hashengines.SupportedAlgorithms() {
				engine, err := hashengines.Create(name)
				if err != nil {
					return err
				}
				mh := "-"
				if _, ok := digests.MulticodecFor(name); ok {
					mh = "multihash"
				}
				line := fmt.Sprintf("%-12s %3d  %-9s  %s", name, engine.DigestSize(), mh,
					strings.Join(hashengines.Aliases(name), ", "))
				if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Encodings creates the encodings subcommand.
func Encodings() *cobra.Command {
	return &cobra.Command{
		Use:   "encodings",
		Short: "List supported input and output encodings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(w, "output only:", strings.Join([]string{
				hashsession.EncodingBinary, hashsession.EncodingMultihash, hashsession.EncodingCID,
			}, ", ")); err != nil {
				return err
			}
			_, err := fmt.Fprintln(w, "input and output:", strings.Join(encoding.Names(), ", "))
			return err
		},
	}
}
