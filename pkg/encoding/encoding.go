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

// Package encoding maps names such as "hex", "base64" or "base58btc" to
// reversible byte/text codecs.
//
// The same registry serves both directions: decoding caller text into bytes
// before hashing, and rendering a finished digest as text.
package encoding

import (
	"sort"
	"strings"
	"sync"

	"github.com/sigstore/streamdigest/pkg/errdefs"
)

// Codec converts between raw bytes and one textual representation.
type Codec interface {
	// Name returns the canonical encoding name.
	Name() string
	// Encode renders data as text.
	Encode(data []byte) string
	// Decode parses text back into bytes.
	Decode(s string) ([]byte, error)
}

var (
	codecs  = make(map[string]Codec)
	aliases = make(map[string]string)
	mu      sync.RWMutex
)

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a codec under its canonical name plus any aliases.
func Register(c Codec, names ...string) {
	mu.Lock()
	defer mu.Unlock()

	name := normalize(c.Name())
	codecs[name] = c
	for _, alias := range names {
		aliases[normalize(alias)] = name
	}
}

// Lookup resolves a codec by canonical name or alias.
//
// Names of the form "multibase:<base>" resolve to a multibase codec for any
// base known to go-multibase, e.g. "multibase:base58btc".
func Lookup(name string) (Codec, error) {
	n := normalize(name)

	mu.RLock()
	if target, ok := aliases[n]; ok {
		n = target
	}
	c, ok := codecs[n]
	mu.RUnlock()
	if ok {
		return c, nil
	}

	if base, found := strings.CutPrefix(n, multibasePrefix); found {
		if mb, err := newMultibaseCodec(base); err == nil {
			return mb, nil
		}
	}

	return nil, errdefs.Newf(errdefs.ErrTypeUnsupportedEncoding, "lookup",
		"unknown encoding %q (supported: %s)", name, strings.Join(Names(), ", "))
}

// IsSupported reports whether name resolves to a codec.
func IsSupported(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// Encode renders data with the named codec.
func Encode(name string, data []byte) (string, error) {
	c, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return c.Encode(data), nil
}

// Decode parses s with the named codec. Malformed text is reported as an
// UnsupportedInput error wrapping the codec's own error.
func Decode(name string, s string) ([]byte, error) {
	c, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	b, err := c.Decode(s)
	if err != nil {
		return nil, errdefs.New(errdefs.ErrTypeUnsupportedInput, "decode",
			"invalid "+c.Name()+" text", err)
	}
	return b, nil
}

// Names returns the sorted canonical codec names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
