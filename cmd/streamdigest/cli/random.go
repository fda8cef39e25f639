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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigstore/streamdigest/cmd/streamdigest/cli/options"
	"github.com/sigstore/streamdigest/pkg/tracing"
)

// Random creates the random subcommand.
func Random() *cobra.Command {
	o := &options.RandomOptions{}

	long := `Generate random bytes.

Bytes come from the operating system CSPRNG unless --pseudo is given, in
which case a ChaCha8 stream seeded with --seed is used. Pseudo output is
reproducible and must never be used for keys, nonces or tokens.`

	cmd := &cobra.Command{
		Use:   "random [OPTIONS]",
		Short: "Generate random bytes.",
		Long:  long,
		Example: `  streamdigest random --size 16
  streamdigest random -n 32 -e base64url
  streamdigest random -n 8 --pseudo --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := o.ToConfig().SetLogger(ro.NewObservability().Logger)
			attrs := map[string]interface{}{
				"streamdigest.size":     o.Size,
				"streamdigest.encoding": o.Encoding,
				"streamdigest.source":   cfg.Source(),
			}
			err := tracing.Run(cmd.Context(), "Random", attrs, func(context.Context) error {
				out, err := cfg.Generate()
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if _, err := w.Write(out); err != nil {
					return err
				}
				if len(out) > 0 && !isBinary(o.Encoding) {
					_, err = fmt.Fprintln(w)
				}
				return err
			})
			return withExitCode(err)
		},
	}

	o.AddFlags(cmd)
	return cmd
}
