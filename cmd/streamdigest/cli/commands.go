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
	"os"

	"github.com/spf13/cobra"
	cobracompletefig "github.com/withfig/autocomplete-tools/integrations/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/sigstore/streamdigest/cmd/streamdigest/cli/options"
)

var (
	ro = &options.RootOptions{}
)

// New builds the root command. Each call starts from fresh root options.
func New() *cobra.Command {
	var (
		out    *os.File
		cancel context.CancelFunc
	)
	ro = &options.RootOptions{}

	cmd := &cobra.Command{
		Use:               "streamdigest",
		Short:             "Streaming message digests and random bytes.",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if ro.OutputFile != "" {
				var err error
				out, err = os.Create(ro.OutputFile)
				if err != nil {
					return fmt.Errorf("error creating output file %s: %w", ro.OutputFile, err)
				}
				cmd.SetOut(out)
			}

			if ro.Timeout > 0 {
				var ctx context.Context
				ctx, cancel = context.WithTimeout(cmd.Context(), ro.Timeout)
				cmd.SetContext(ctx)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cancel != nil {
				cancel()
			}
			if out != nil {
				_ = out.Close()
			}
		},
	}
	ro.AddFlags(cmd)

	cmd.AddCommand(Digest())
	cmd.AddCommand(Random())
	cmd.AddCommand(Algorithms())
	cmd.AddCommand(Encodings())
	cmd.AddCommand(version.WithFont("starwars"))
	cmd.AddCommand(cobracompletefig.CreateCompletionSpecCommand())
	return cmd
}
