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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigstore/streamdigest/cmd/streamdigest/cli/options"
	"github.com/sigstore/streamdigest/pkg/errdefs"
)

const helloWorldSHA512 = "309ecc489c12d6eb4cc40f50c902f2b4d0ed77ee511a7c7a9bcd3ca86d4cd86f989dd35bc5ff499670da34255b45b0cfd830e81f605dcf7dc5542e93ae9cd76f"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level", "silent"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestDigestText(t *testing.T) {
	out, err := run(t, "", "digest", "-a", "sha512", "--text", "hello world")
	require.NoError(t, err)
	assert.Equal(t, helloWorldSHA512+"\n", out)

	out, err = run(t, "", "digest", "-a", "SHA-512", "--text", "hello", "--text", " world")
	require.NoError(t, err)
	assert.Equal(t, helloWorldSHA512+"\n", out)

	out, err = run(t, "", "digest", "-a", "sha512", "--input-encoding", "hex",
		"--text", "68656c6c6f", "--text", "20776f726c64")
	require.NoError(t, err)
	assert.Equal(t, helloWorldSHA512+"\n", out)
}

func TestDigestStdin(t *testing.T) {
	out, err := run(t, "hello world", "digest", "-a", "sha512")
	require.NoError(t, err)
	assert.Equal(t, helloWorldSHA512+"\n", out)

	out, err = run(t, "hello world", "digest", "-a", "sha512", "-")
	require.NoError(t, err)
	assert.Equal(t, helloWorldSHA512+"\n", out)
}

func TestDigestFiles(t *testing.T) {
	a := writeTemp(t, "a.txt", "hello world")
	b := writeTemp(t, "b.txt", "hello world")

	out, err := run(t, "", "digest", "-a", "sha512", a, b)
	require.NoError(t, err)
	assert.Equal(t, helloWorldSHA512+"  "+a+"\n"+helloWorldSHA512+"  "+b+"\n", out)

	root, err := run(t, "", "digest", "-a", "sha512", "--root", a, b)
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(root), 128)
	assert.NotEqual(t, helloWorldSHA512, strings.TrimSpace(root))

	sharded, err := run(t, "", "digest", "-a", "sha512", "--shard-size", "4", a)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sharded, "  "+a+"\n"))
	assert.NotContains(t, sharded, helloWorldSHA512)
}

func TestDigestBinaryOutput(t *testing.T) {
	out, err := run(t, "", "digest", "-a", "sha512", "-e", "binary", "--text", "hello world")
	require.NoError(t, err)
	assert.Len(t, out, 64)
}

func TestDigestSelfDescribingOutput(t *testing.T) {
	out, err := run(t, "", "digest", "-e", "cid", "--text", "hello world")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "bafkrei"), out)

	_, err = run(t, "", "digest", "-a", "blake256", "-e", "multihash", "--text", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrUnsupportedEncoding))
}

func TestDigestErrors(t *testing.T) {
	_, err := run(t, "", "digest", "-a", "md4", "--text", "x")
	require.Error(t, err)
	var ec interface{ ExitCode() int }
	require.True(t, errors.As(err, &ec))
	assert.Equal(t, ExitUsage, ec.ExitCode())

	_, err = run(t, "", "digest", "--input-encoding", "hex", "--text", "zz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrUnsupportedInput))

	f := writeTemp(t, "f", "x")
	_, err = run(t, "", "digest", "--text", "x", f)
	assert.Error(t, err)

	_, err = run(t, "", "digest", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestDigestAlgorithmFromEnv(t *testing.T) {
	t.Setenv(options.EnvName("algorithm"), "sha512")
	out, err := run(t, "", "digest", "--text", "hello world")
	require.NoError(t, err)
	assert.Equal(t, helloWorldSHA512+"\n", out)
}

func TestRandom(t *testing.T) {
	out, err := run(t, "", "random", "--size", "16")
	require.NoError(t, err)
	assert.Len(t, out, 33)

	out, err = run(t, "", "random", "-n", "8", "-e", "binary")
	require.NoError(t, err)
	assert.Len(t, out, 8)

	first, err := run(t, "", "random", "-n", "16", "--pseudo", "--seed", "7")
	require.NoError(t, err)
	second, err := run(t, "", "random", "-n", "16", "--pseudo", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	out, err = run(t, "", "random", "-n", "0")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "", "random", "-n", "-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrRange))
}

func TestAlgorithmsAndEncodings(t *testing.T) {
	out, err := run(t, "", "algorithms")
	require.NoError(t, err)

	var sha256Line string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "sha256 ") {
			sha256Line = line
		}
	}
	require.NotEmpty(t, sha256Line, out)
	assert.Contains(t, sha256Line, " 32 ")
	assert.Contains(t, sha256Line, "sha-256")
	assert.Contains(t, out, "blake256")

	out, err = run(t, "", "encodings")
	require.NoError(t, err)
	assert.Contains(t, out, "multihash")
	assert.Contains(t, out, "base64url")
}

func TestOutputFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "digest.txt")
	out, err := run(t, "", "--output-file", dest, "digest", "-a", "sha512", "--text", "hello world")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, helloWorldSHA512+"\n", string(data))
}

func TestDigestCheck(t *testing.T) {
	a := writeTemp(t, "a.txt", "hello world")
	b := writeTemp(t, "b.txt", "bye")

	list, err := run(t, "", "digest", a, b)
	require.NoError(t, err)
	listFile := writeTemp(t, "SUMS", list)

	out, err := run(t, "", "digest", "--check", listFile)
	require.NoError(t, err)
	assert.Equal(t, a+": OK\n"+b+": OK\n", out)

	out, err = run(t, list, "digest", "-c", "-")
	require.NoError(t, err)
	assert.Equal(t, a+": OK\n"+b+": OK\n", out)

	require.NoError(t, os.WriteFile(b, []byte("changed"), 0o600))
	require.NoError(t, os.Remove(a))
	out, err = run(t, "", "digest", "--check", listFile)
	require.Error(t, err)
	assert.Equal(t, a+": FAILED open or read\n"+b+": FAILED\n", out)

	_, err = run(t, "", "digest", "--check", listFile, a)
	assert.Error(t, err)

	_, err = run(t, "", "digest", "-a", "sha512", "--check", listFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrUnsupportedInput))
}

func TestDigestCheckNonPrintableEncoding(t *testing.T) {
	a := writeTemp(t, "a.txt", "hello world")
	b := writeTemp(t, "b.txt", "bye")

	for _, enc := range []string{"latin1", "utf8", "utf16le"} {
		t.Run(enc, func(t *testing.T) {
			list, err := run(t, "", "digest", "-a", "sha512", "-e", enc, a, b)
			require.NoError(t, err)
			hexList, err := run(t, "", "digest", "-a", "sha512", a, b)
			require.NoError(t, err)
			assert.Equal(t, hexList, list)
			assert.Equal(t, 2, strings.Count(list, "\n"))

			out, err := run(t, list, "digest", "-a", "sha512", "-e", enc, "-c", "-")
			require.NoError(t, err)
			assert.Equal(t, a+": OK\n"+b+": OK\n", out)
		})
	}
}

func TestDigestRecursive(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "x.txt"), []byte("hello world"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "y.txt"), []byte("hello world"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte("ref"), 0o600))

	out, err := run(t, "", "digest", "-a", "sha512", "-r", root)
	require.NoError(t, err)
	assert.Equal(t,
		helloWorldSHA512+"  "+filepath.Join(root, "sub", "x.txt")+"\n"+
			helloWorldSHA512+"  "+filepath.Join(root, "y.txt")+"\n",
		out)

	out, err = run(t, "", "digest", "-a", "sha512", "-r", "--ignore-paths", "sub", root)
	require.NoError(t, err)
	assert.Equal(t, helloWorldSHA512+"  "+filepath.Join(root, "y.txt")+"\n", out)
}
