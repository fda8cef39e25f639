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
	"errors"

	"github.com/sigstore/streamdigest/pkg/errdefs"
)

// Exit codes beyond the generic failure (1).
const (
	ExitUsage = 2
	ExitState = 3
)

type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

// withExitCode tags errdefs failures so main exits with a code matching the
// failure class. Other errors pass through unchanged.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	var e *errdefs.Error
	if !errors.As(err, &e) {
		return err
	}
	switch e.Type {
	case errdefs.ErrTypeUnknownAlgorithm, errdefs.ErrTypeUnsupportedEncoding,
		errdefs.ErrTypeUnsupportedInput, errdefs.ErrTypeRange:
		return &exitError{err: err, code: ExitUsage}
	case errdefs.ErrTypeFinalizedState, errdefs.ErrTypeUnsupportedOperation:
		return &exitError{err: err, code: ExitState}
	default:
		return err
	}
}
