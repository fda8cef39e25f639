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
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigstore/streamdigest/cmd/streamdigest/cli/options"
	"github.com/sigstore/streamdigest/pkg/config"
	"github.com/sigstore/streamdigest/pkg/hashsession"
	"github.com/sigstore/streamdigest/pkg/manifest"
	"github.com/sigstore/streamdigest/pkg/tracing"
)

// Digest creates the digest subcommand.
func Digest() *cobra.Command {
	o := &options.DigestOptions{}

	long := `Compute a message digest.

With --text, each value is decoded with --input-encoding and fed to one
digest session in order. Otherwise each FILE is hashed and printed as
"DIGEST  FILE"; with no FILE, or when FILE is -, standard input is read.
Several files are listed sorted by path.

--root prints a single digest over the raw digests of all files, in the
order given. --shard-size hashes each file in fixed-size shards and prints
the digest over the shard digests.

--recursive replaces directory arguments with the files below them,
skipping --ignore-paths and, by default, git metadata.

--check reads such a list (- for stdin) and re-digests every file in it,
failing when any file is missing or differs.

The binary encoding writes raw digest bytes with no file names or newlines.`

	cmd := &cobra.Command{
		Use:   "digest [OPTIONS] [FILE...]",
		Short: "Compute a message digest of text, files or stdin.",
		Long:  long,
		Example: `  streamdigest digest --algorithm sha512 --text "hello world"
  streamdigest digest -a blake3 -e base64 model.bin
  streamdigest digest *.bin > SHA256SUMS && streamdigest digest --check SHA256SUMS
  streamdigest digest --input-encoding hex --text 68656c6c6f --text 20776f726c64`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(o.Texts) > 0 && len(args) > 0 {
				return fmt.Errorf("--text cannot be combined with FILE arguments")
			}
			if o.Check != "" && len(args) > 0 {
				return fmt.Errorf("--check reads file names from the checksum list, not from arguments")
			}
			if o.Recursive {
				expanded, err := o.Walker().Expand(args)
				if err != nil {
					return err
				}
				if len(args) > 0 && len(expanded) == 0 {
					return fmt.Errorf("no files found under %s", strings.Join(args, ", "))
				}
				args = expanded
			}
			obs := ro.NewObservability()
			cfg := o.ToConfig().SetLogger(obs.Logger)

			attrs := map[string]interface{}{
				"streamdigest.algorithm":      o.Algorithm,
				"streamdigest.encoding":       o.Encoding,
				"streamdigest.input_encoding": o.InputEncoding,
				"streamdigest.files":          len(args),
				"streamdigest.texts":          len(o.Texts),
				"streamdigest.shard_size":     o.ShardSize,
				"streamdigest.root":           o.Root,
				"streamdigest.check":          o.Check != "",
			}
			err := tracing.Run(cmd.Context(), "Digest", attrs, func(ctx context.Context) error {
				if err := cfg.Validate(); err != nil {
					return err
				}
				w := cmd.OutOrStdout()

				switch {
				case o.Check != "":
					return runCheck(ctx, w, cmd.InOrStdin(), o.Check, cfg)

				case len(o.Texts) > 0:
					s, err := cfg.NewSession()
					if err != nil {
						return err
					}
					for _, text := range o.Texts {
						if _, err := s.UpdateEncoded(text, o.InputEncoding); err != nil {
							return err
						}
					}
					out, err := s.Digest(o.Encoding)
					if err != nil {
						return err
					}
					return writeOutput(w, out)

				case len(args) == 0 || (len(args) == 1 && args[0] == "-"):
					out, err := cfg.HashReader(ctx, cmd.InOrStdin())
					if err != nil {
						return err
					}
					return writeOutput(w, out)

				case o.Root:
					out, err := cfg.HashFilesRoot(ctx, args)
					if err != nil {
						return err
					}
					return writeOutput(w, out)
				}

				if isBinary(o.Encoding) {
					for _, path := range args {
						out, err := cfg.HashFile(ctx, path)
						if err != nil {
							return err
						}
						if err := writeOutput(w, out); err != nil {
							return err
						}
					}
					return nil
				}
				m, err := cfg.BuildManifest(ctx, args)
				if err != nil {
					return err
				}
				return manifest.Marshal(w, m, cfg.ListEncoding())
			})
			return withExitCode(err)
		},
	}

	o.AddFlags(cmd)
	return cmd
}

// writeOutput prints text output as a line. Binary output is written as-is.
func writeOutput(w io.Writer, out hashsession.Output) error {
	if out.IsBinary() {
		_, err := w.Write(out.Bytes())
		return err
	}
	_, err := io.WriteString(w, strings.TrimRight(out.String(), "\n")+"\n")
	return err
}

// runCheck verifies a checksum list in the style of "sha256sum -c".
func runCheck(ctx context.Context, w io.Writer, stdin io.Reader, list string, cfg *config.DigestConfig) error {
	r := stdin
	if list != "-" {
		f, err := os.Open(list)
		if err != nil {
			return fmt.Errorf("open checksum list: %w", err)
		}
		//nolint:errcheck
		defer f.Close()
		r = f
	}

	res, err := cfg.Check(ctx, r)
	if err != nil {
		return err
	}

	missing := make(map[string]bool, len(res.Diff.MissingFiles))
	for _, p := range res.Diff.MissingFiles {
		missing[p] = true
	}
	mismatched := make(map[string]bool, len(res.Diff.Mismatches))
	for _, mm := range res.Diff.Mismatches {
		mismatched[mm.Path] = true
	}

	for _, e := range res.Expected.Entries() {
		status := "OK"
		switch {
		case missing[e.Path]:
			status = "FAILED open or read"
		case mismatched[e.Path]:
			status = "FAILED"
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", e.Path, status); err != nil {
			return err
		}
	}

	if n := res.Failed(); n > 0 {
		return fmt.Errorf("%d of %d listed files did not match", n, res.Expected.Len())
	}
	return nil
}
