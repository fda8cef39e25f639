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

// RandomOptions are the flags of `streamdigest random`.
type RandomOptions struct {
	OutputEncodingFlags
	Size   int    // --size
	Pseudo bool   // --pseudo
	Seed   uint64 // --seed
}

var _ Interface = (*RandomOptions)(nil)

func (o *RandomOptions) AddFlags(cmd *cobra.Command) {
	o.OutputEncodingFlags.AddFlags(cmd)

	cmd.Flags().IntVarP(&o.Size, "size", "n", config.NewRandomConfig().Size(),
		"number of random bytes to generate")
	cmd.Flags().BoolVar(&o.Pseudo, "pseudo", false,
		"use a seeded, reproducible generator (never for secrets)")
	cmd.Flags().Uint64Var(&o.Seed, "seed", 0,
		"seed for --pseudo")
}

func (o *RandomOptions) ToConfig() *config.RandomConfig {
	c := config.NewRandomConfig().
		SetSize(o.Size).
		SetEncoding(o.Encoding)
	if o.Pseudo {
		c.UsePseudo(o.Seed)
	}
	return c
}
