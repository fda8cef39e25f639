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

package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = (*ZapLogger)(nil)

// ZapLogger adapts a *zap.Logger to Logger. Fields become zap fields.
type ZapLogger struct {
	z *zap.SugaredLogger
}

// NewZapLogger wraps z. A nil z yields a no-op logger.
func NewZapLogger(z *zap.Logger) *ZapLogger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{z: z.Sugar()}
}

// NewZapLoggerWithOptions builds a production zap logger writing to stderr
// at opts.Level, in JSON or console encoding depending on opts.Format.
func NewZapLoggerWithOptions(opts LoggerOptions) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(toZapLevel(opts.Level))
	if opts.Format == FormatText {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return NewZapLogger(z), nil
}

func toZapLevel(l LogLevel) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelSilent:
		return zapcore.FatalLevel + 1
	default:
		return zapcore.InfoLevel
	}
}

func fromZapLevel(l zapcore.Level) LogLevel {
	switch {
	case l <= zapcore.DebugLevel:
		return LevelDebug
	case l == zapcore.InfoLevel:
		return LevelInfo
	case l == zapcore.WarnLevel:
		return LevelWarn
	case l <= zapcore.FatalLevel:
		return LevelError
	default:
		return LevelSilent
	}
}

func (l *ZapLogger) Debug(format string, args ...interface{}) { l.z.Debugf(format, args...) }
func (l *ZapLogger) Debugln(msg string)                       { l.z.Debug(msg) }
func (l *ZapLogger) Info(format string, args ...interface{})  { l.z.Infof(format, args...) }
func (l *ZapLogger) Warn(format string, args ...interface{})  { l.z.Warnf(format, args...) }
func (l *ZapLogger) Error(format string, args ...interface{}) { l.z.Errorf(format, args...) }

// GetLevel reports the lowest level the underlying core accepts.
func (l *ZapLogger) GetLevel() LogLevel {
	return fromZapLevel(zapcore.LevelOf(l.z.Desugar().Core()))
}

func (l *ZapLogger) Silent() bool {
	return !l.z.Desugar().Core().Enabled(zapcore.DebugLevel)
}

func (l *ZapLogger) WithField(key string, value interface{}) Logger {
	return &ZapLogger{z: l.z.With(key, value)}
}

func (l *ZapLogger) WithFields(fields map[string]interface{}) Logger {
	args := make([]interface{}, 0, 2*len(fields))
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &ZapLogger{z: l.z.With(args...)}
}

