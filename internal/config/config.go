package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const ConfigFileName = "calib.yaml"

// OutputText is the default output format.
const OutputText = "text"

// Environment variables read by ApplyEnv.
const (
	EnvThreads  = "CALIB_THREADS"
	EnvOutput   = "CALIB_OUTPUT"
	EnvCacheDir = "CALIB_CACHE_DIR"
	EnvTiming   = "CALIB_TIMING"
	EnvVerbose  = "CALIB_VERBOSE"
)

// Settings is the resolved run configuration.
type Settings struct {
	Threads  int // 0 = all CPUs
	Output   string
	Timing   bool
	Lines    bool
	CacheDir string // empty disables the result cache
	Verbose  bool
}

// fileSettings mirrors calib.yaml; nil means the key was absent.
type fileSettings struct {
	Threads  *int    `yaml:"threads"`
	Output   *string `yaml:"output"`
	Timing   *bool   `yaml:"timing"`
	Lines    *bool   `yaml:"lines"`
	CacheDir *string `yaml:"cache_dir"`
	Verbose  *bool   `yaml:"verbose"`
}

// Default returns the built-in settings: all CPUs, text output, timing on.
func Default() Settings {
	return Settings{Output: OutputText, Timing: true}
}

// Load reads dir/calib.yaml from fsys over base. Keys missing from the file
// keep the value from base. A nil fsys means the host filesystem.
func Load(fsys billy.Filesystem, dir string, base Settings) (Settings, error) {
	if fsys == nil {
		fsys = osfs.Default
	}
	data, err := util.ReadFile(fsys, filepath.Join(dir, ConfigFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, ErrConfigNotFound
		}
		return base, err
	}

	var f fileSettings
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("%w: %s: %v", ErrInvalid, ConfigFileName, err)
	}
	s := base
	if f.Threads != nil {
		s.Threads = *f.Threads
	}
	if f.Output != nil {
		s.Output = *f.Output
	}
	if f.Timing != nil {
		s.Timing = *f.Timing
	}
	if f.Lines != nil {
		s.Lines = *f.Lines
	}
	if f.CacheDir != nil {
		s.CacheDir = *f.CacheDir
	}
	if f.Verbose != nil {
		s.Verbose = *f.Verbose
	}
	return s, nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// ApplyEnv overlays CALIB_* variables from getenv onto s.
func ApplyEnv(s Settings, getenv func(string) string) (Settings, error) {
	if v := getenv(EnvThreads); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvThreads, v, err)
		}
		s.Threads = n
	}
	if v := getenv(EnvOutput); v != "" {
		s.Output = v
	}
	if v := getenv(EnvCacheDir); v != "" {
		s.CacheDir = v
	}
	for name, dst := range map[string]*bool{EnvTiming: &s.Timing, EnvVerbose: &s.Verbose} {
		v := getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, name, v, err)
		}
		*dst = b
	}
	return s, nil
}

// Validate reports the first invalid field. formats lists the output
// formats that have a writer.
func (s Settings) Validate(formats []string) error {
	if s.Threads < 0 {
		return fmt.Errorf("%w: threads must be >= 0, got %d", ErrInvalid, s.Threads)
	}
	if !slices.Contains(formats, s.Output) {
		return fmt.Errorf("%w: output must be one of %s, got %q", ErrInvalid, strings.Join(formats, ", "), s.Output)
	}
	return nil
}
