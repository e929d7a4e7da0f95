// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmedit/internal/compress"
)

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(`
tolerance: 12.5
mode: full
generator: survey-kit
log-level: debug
progress: true
`))
	require.NoError(t, err)

	assert.Equal(t, Config{
		Tolerance: 12.5,
		Mode:      "full",
		Generator: "survey-kit",
		LogLevel:  "debug",
		Progress:  true,
	}, cfg)
}

func TestReadConfigDefaults(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = ReadConfig(strings.NewReader("mode: full\n"))
	require.NoError(t, err)
	assert.Equal(t, "full", cfg.Mode)
	assert.Equal(t, 5.0, cfg.Tolerance)
}

func TestReadConfigErrors(t *testing.T) {
	_, err := ReadConfig(strings.NewReader("tolerence: 3\n"))
	assert.Error(t, err)

	_, err = ReadConfig(strings.NewReader("tolerance: -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, "WARN", l.String())

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestFlagFallback(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Float64("tolerance", 5, "")
	cmd.Flags().String("mode", "diff", "")

	require.NoError(t, cmd.Flags().Parse([]string{"--mode", "full"}))

	assert.Equal(t, 9.0, Float(cmd, "tolerance", 9))
	assert.Equal(t, "full", String(cmd, "mode", "diff"))
}

func TestCompressedOutput(t *testing.T) {
	var path string

	v := NewOutputValue(&path, "file")
	assert.Equal(t, "file", v.Type())
	assert.Error(t, v.Set(""))

	out := filepath.Join(t.TempDir(), "out.osm.gz")
	require.NoError(t, v.Set(out))
	assert.Equal(t, out, v.String())

	_, err := os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist, "setting the flag creates nothing")

	w, err := Create(path)
	require.NoError(t, err)

	_, err = w.Write([]byte("<osm/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.Open(out)
	require.NoError(t, err)

	defer raw.Close()

	r, err := compress.NewReader(raw, compress.Gzip)
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "<osm/>", string(got))
}

func TestCreateStdout(t *testing.T) {
	for _, path := range []string{"", "-"} {
		w, err := Create(path)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.osm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
