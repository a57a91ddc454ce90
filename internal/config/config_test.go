package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `threads: 4
output: json
timing: false
lines: true
cache_dir: /var/cache/calib
verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	s, err := Load(nil, dir, Default())
	require.NoError(t, err)
	assert.Equal(t, 4, s.Threads)
	assert.Equal(t, "json", s.Output)
	assert.False(t, s.Timing)
	assert.True(t, s.Lines)
	assert.Equal(t, "/var/cache/calib", s.CacheDir)
	assert.True(t, s.Verbose)
}

func TestLoad_PartialKeepsBase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("threads: 2\n"), 0644))

	s, err := Load(nil, dir, Default())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Threads)
	assert.Equal(t, OutputText, s.Output)
	assert.True(t, s.Timing, "timing defaults to on when the file omits it")
}

func TestLoad_NotFound(t *testing.T) {
	s, err := Load(nil, t.TempDir(), Default())
	assert.True(t, errors.Is(err, ErrConfigNotFound))
	assert.Equal(t, Default(), s)
}

func TestLoad_Filesystem(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "proj/"+ConfigFileName, []byte("output: json\n"), 0o644))

	s, err := Load(fsys, "proj", Default())
	require.NoError(t, err)
	assert.Equal(t, "json", s.Output)

	_, err = Load(fsys, "other", Default())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("threads: [1, 2\n"), 0644))

	_, err := Load(nil, dir, Default())
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvThreads:  "3",
		EnvOutput:   "json",
		EnvCacheDir: "/tmp/c",
		EnvTiming:   "false",
		EnvVerbose:  "1",
	}
	s, err := ApplyEnv(Default(), func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, Settings{Threads: 3, Output: "json", CacheDir: "/tmp/c", Timing: false, Verbose: true}, s)
}

func TestApplyEnv_Invalid(t *testing.T) {
	_, err := ApplyEnv(Default(), func(k string) string {
		if k == EnvThreads {
			return "many"
		}
		return ""
	})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = ApplyEnv(Default(), func(k string) string {
		if k == EnvTiming {
			return "sometimes"
		}
		return ""
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CALIB_TEST_DOTENV=yes\n"), 0644))
	t.Setenv("CALIB_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("CALIB_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "yes", os.Getenv("CALIB_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestValidate(t *testing.T) {
	formats := []string{"json", "text"}
	assert.NoError(t, Default().Validate(formats))

	s := Default()
	s.Threads = -1
	assert.ErrorIs(t, s.Validate(formats), ErrInvalid)

	s = Default()
	s.Output = "xml"
	err := s.Validate(formats)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "json, text")

	s = Default()
	s.Output = "json"
	assert.ErrorIs(t, s.Validate([]string{"text"}), ErrInvalid, "only registered formats are valid")
}
