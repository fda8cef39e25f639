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

// Package options defines the command-line flags of the streamdigest CLI.
package options

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sigstore/streamdigest/pkg/logging"
)

// EnvPrefix is the prefix of environment variables that supply flag
// defaults, e.g. STREAMDIGEST_ALGORITHM.
const EnvPrefix = "STREAMDIGEST"

// DefaultTimeout bounds a whole command run.
const DefaultTimeout = 3 * time.Minute

// ValidLogLevels lists the accepted --log-level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "silent"}

// ValidLogFormats lists the accepted --log-format values.
var ValidLogFormats = []string{"text", "json"}

// ValidLogBackends lists the accepted --log-backend values.
var ValidLogBackends = []string{"default", "zap"}

var outputExts = []string{"txt", "bin", "out"}

// Interface is implemented by every flag group.
type Interface interface {
	AddFlags(cmd *cobra.Command)
}

// RootOptions holds the persistent flags shared by all subcommands.
type RootOptions struct {
	// OutputFile redirects command output from stdout to a file.
	OutputFile string
	LogLevel   string
	LogFormat  string
	LogBackend string
	Timeout    time.Duration
}

var _ Interface = (*RootOptions)(nil)

// EnvName returns the environment variable consulted for a flag.
func EnvName(flag string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// envDefault returns the value of the flag's environment variable, or def.
func envDefault(flag, def string) string {
	if v, ok := os.LookupEnv(EnvName(flag)); ok && v != "" {
		return v
	}
	return def
}

func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.OutputFile, "output-file", "",
		"write command output to a file instead of stdout")
	_ = cmd.MarkPersistentFlagFilename("output-file", outputExts...)

	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", envDefault("log-level", "info"),
		"set the minimum log level ("+strings.Join(ValidLogLevels, ", ")+")")

	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", envDefault("log-format", "text"),
		"set the log output format ("+strings.Join(ValidLogFormats, ", ")+")")

	cmd.PersistentFlags().StringVar(&o.LogBackend, "log-backend", envDefault("log-backend", "default"),
		"select the logger implementation ("+strings.Join(ValidLogBackends, ", ")+")")

	cmd.PersistentFlags().DurationVarP(&o.Timeout, "timeout", "t", DefaultTimeout,
		"timeout for commands")
}

func (o *RootOptions) GetLogLevel() logging.LogLevel {
	return logging.ParseLogLevel(o.LogLevel)
}

func (o *RootOptions) GetLogFormat() logging.LogFormat {
	return logging.ParseLogFormat(o.LogFormat)
}

func (o *RootOptions) GetLogBackend() logging.Backend {
	return logging.ParseBackend(o.LogBackend)
}

// NewLogger builds the logger selected by the root flags. A zap backend
// that fails to build falls back to the default logger.
func (o *RootOptions) NewLogger() logging.Logger {
	opts := logging.LoggerOptions{
		Level:  o.GetLogLevel(),
		Format: o.GetLogFormat(),
	}
	l, err := logging.New(o.GetLogBackend(), opts)
	if err != nil {
		fallback := logging.NewLoggerWithOptions(opts)
		fallback.Warn("falling back to default logger: %v", err)
		return fallback
	}
	return l
}
