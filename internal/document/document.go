// internal/document/document.go
package document

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/klauspost/compress/gzip"
)

// Error kinds reported by Load. They are fatal to the caller: a document is
// either read completely or not at all.
var (
	ErrNotFound        = errors.New("calibration document not found")
	ErrUnreadable      = errors.New("calibration document unreadable")
	ErrInvalidEncoding = errors.New("calibration document is not valid UTF-8")
)

// Stdin is the path that selects the loader's stdin reader.
const Stdin = "-"

// Document is a calibration document held wholly in memory.
type Document struct {
	Source string
	Text   string
}

// Loader reads documents from a billy filesystem. Paths ending in ".gz" are
// decompressed transparently.
type Loader struct {
	fs    billy.Filesystem
	stdin io.Reader
}

// NewLoader returns a Loader over fsys. A nil fsys means the host filesystem.
func NewLoader(fsys billy.Filesystem, stdin io.Reader) *Loader {
	if fsys == nil {
		fsys = osfs.Default
	}
	return &Loader{fs: fsys, stdin: stdin}
}

// Load reads the whole document at path.
func (l *Loader) Load(path string) (Document, error) {
	rc, err := l.open(path)
	if err != nil {
		return Document{}, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	if !utf8.Valid(data) {
		return Document{}, fmt.Errorf("%w: %s", ErrInvalidEncoding, path)
	}
	return Document{Source: path, Text: string(data)}, nil
}

func (l *Loader) open(path string) (io.ReadCloser, error) {
	if path == Stdin {
		if l.stdin == nil {
			return nil, fmt.Errorf("%w: no stdin attached", ErrUnreadable)
		}
		return io.NopCloser(l.stdin), nil
	}
	fh, err := l.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
