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

package hashengines

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sigstore/streamdigest/pkg/errdefs"
)

// HashEngineFactory creates a fresh engine with empty state.
type HashEngineFactory func() (StreamingHashEngine, error)

var (
	registry = make(map[string]HashEngineFactory)
	aliases  = make(map[string]string)
	mu       sync.RWMutex
)

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register registers a factory under a canonical algorithm name.
//
// Names are matched case-insensitively. Registering a name that is already
// taken, either as a canonical name or as an alias, is an error.
func Register(algorithm string, factory HashEngineFactory) error {
	mu.Lock()
	defer mu.Unlock()

	name := normalizeName(algorithm)
	if name == "" {
		return fmt.Errorf("algorithm name cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	if _, exists := registry[name]; exists {
		return fmt.Errorf("hash algorithm %q already registered", name)
	}
	if _, exists := aliases[name]; exists {
		return fmt.Errorf("hash algorithm %q already registered as an alias", name)
	}

	registry[name] = factory
	return nil
}

// MustRegister registers a factory or panics on error.
func MustRegister(algorithm string, factory HashEngineFactory) {
	if err := Register(algorithm, factory); err != nil {
		panic(fmt.Sprintf("failed to register hash algorithm %q: %v", algorithm, err))
	}
}

// RegisterAlias makes alias resolve to the registered canonical algorithm.
func RegisterAlias(alias, algorithm string) error {
	mu.Lock()
	defer mu.Unlock()

	a, name := normalizeName(alias), normalizeName(algorithm)
	if a == "" {
		return fmt.Errorf("alias cannot be empty")
	}
	if _, exists := registry[name]; !exists {
		return fmt.Errorf("hash algorithm %q not registered", name)
	}
	if _, exists := registry[a]; exists {
		return fmt.Errorf("alias %q collides with a registered algorithm", a)
	}
	if target, exists := aliases[a]; exists && target != name {
		return fmt.Errorf("alias %q already points to %q", a, target)
	}

	aliases[a] = name
	return nil
}

// MustRegisterAliases registers every alias for algorithm or panics.
func MustRegisterAliases(algorithm string, names ...string) {
	for _, alias := range names {
		if err := RegisterAlias(alias, algorithm); err != nil {
			panic(fmt.Sprintf("failed to register alias %q: %v", alias, err))
		}
	}
}

// Canonical resolves a name or alias to the canonical algorithm name.
func Canonical(algorithm string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return canonicalLocked(normalizeName(algorithm))
}

func canonicalLocked(name string) (string, bool) {
	if _, exists := registry[name]; exists {
		return name, true
	}
	if target, exists := aliases[name]; exists {
		return target, true
	}
	return "", false
}

// Create creates a new engine for the given algorithm name or alias.
func Create(algorithm string) (StreamingHashEngine, error) {
	mu.RLock()
	name, ok := canonicalLocked(normalizeName(algorithm))
	factory := registry[name]
	mu.RUnlock()

	if !ok {
		return nil, errdefs.Newf(errdefs.ErrTypeUnknownAlgorithm, "create",
			"unsupported hash algorithm: %s (supported: %v)", algorithm, SupportedAlgorithms())
	}

	engine, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create hash engine for %q: %w", name, err)
	}

	return engine, nil
}

// SupportedAlgorithms returns the sorted canonical algorithm names.
func SupportedAlgorithms() []string {
	mu.RLock()
	defer mu.RUnlock()

	algorithms := make([]string, 0, len(registry))
	for algo := range registry {
		algorithms = append(algorithms, algo)
	}
	sort.Strings(algorithms)
	return algorithms
}

// Aliases returns the sorted aliases that resolve to algorithm.
func Aliases(algorithm string) []string {
	mu.RLock()
	defer mu.RUnlock()

	name := normalizeName(algorithm)
	var out []string
	for alias, target := range aliases {
		if target == name {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// IsSupported reports whether a name or alias is registered.
func IsSupported(algorithm string) bool {
	_, ok := Canonical(algorithm)
	return ok
}

// Unregister removes an algorithm and its aliases.
//
// This is primarily useful for testing.
func Unregister(algorithm string) error {
	mu.Lock()
	defer mu.Unlock()

	name := normalizeName(algorithm)
	if _, exists := registry[name]; !exists {
		return fmt.Errorf("hash algorithm %q not registered", name)
	}

	delete(registry, name)
	for alias, target := range aliases {
		if target == name {
			delete(aliases, alias)
		}
	}
	return nil
}
