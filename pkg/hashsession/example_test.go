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

package hashsession_test

import (
	"fmt"

	"github.com/sigstore/streamdigest/pkg/hashsession"
)

func ExampleSession() {
	s, err := hashsession.New("sha512")
	if err != nil {
		panic(err)
	}
	if _, err := s.UpdateString("hello world"); err != nil {
		panic(err)
	}

	b64, _ := s.DigestString("base64")
	fmt.Println(b64)

	_, err = s.UpdateString("more")
	fmt.Println(err)
	// Output:
	// MJ7MSJwS1utMxA9QyQLytNDtd+5RGnx6m808qG1M2G+YndNbxf9JlnDaNCVbRbDP2DDoH2Bdz33FVC6TrpzXbw==
	// update: FinalizedState: digest already called
}

func ExampleSession_Copy() {
	base, _ := hashsession.New("sha256")
	_, _ = base.UpdateString("ab")

	fork, _ := base.Copy()
	_, _ = fork.UpdateString("cd")

	short, _ := base.DigestString("hex")
	long, _ := fork.DigestString("hex")
	fmt.Println(short[:16])
	fmt.Println(long[:16])
	// Output:
	// fb8e20fc2e4c3f24
	// 88d4266fd4e6338d
}
