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

package memory

import (
	"github.com/zeebo/blake3"

	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
)

var (
	_ hashengines.StreamingHashEngine = (*BLAKE3Engine)(nil)
	_ hashengines.Cloner              = (*BLAKE3Engine)(nil)
)

func init() {
	hashengines.MustRegister("blake3", func() (hashengines.StreamingHashEngine, error) {
		return NewBLAKE3Engine(nil), nil
	})
	hashengines.MustRegisterAliases("blake3", "blake3-256")
}

// BLAKE3Engine produces 32-byte BLAKE3 digests.
//
// zeebo/blake3 can duplicate its tree state directly, so cloning does not
// go through a binary snapshot.
type BLAKE3Engine struct {
	h *blake3.Hasher
}

// NewBLAKE3Engine creates a BLAKE3 engine, hashing initialData if present.
func NewBLAKE3Engine(initialData []byte) *BLAKE3Engine {
	e := &BLAKE3Engine{h: blake3.New()}
	e.Update(initialData)
	return e
}

func (e *BLAKE3Engine) Update(data []byte) {
	if len(data) > 0 {
		_, _ = e.h.Write(data)
	}
}

func (e *BLAKE3Engine) Reset(data []byte) {
	e.h.Reset()
	e.Update(data)
}

func (e *BLAKE3Engine) Compute() (digests.Digest, error) {
	return digests.NewDigest(e.DigestName(), e.h.Sum(nil)), nil
}

func (e *BLAKE3Engine) DigestName() string {
	return "blake3"
}

func (e *BLAKE3Engine) DigestSize() int {
	return e.h.Size()
}

func (e *BLAKE3Engine) Clone() (hashengines.StreamingHashEngine, error) {
	return &BLAKE3Engine{h: e.h.Clone()}, nil
}
