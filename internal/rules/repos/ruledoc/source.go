package ruledoc

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/file"
)

// DefaultFileName is the document's name inside the configuration directory.
const DefaultFileName = "defaultgamerules.json"

// ErrOutsideConfigDir is returned when a document path escapes its directory.
var ErrOutsideConfigDir = errors.New("rule document path is outside the config directory")

//go:embed defaultgamerules.json
var template []byte

// Template returns a copy of the bundled document written on first use.
func Template() []byte {
	out := make([]byte, len(template))
	copy(out, template)
	return out
}

// FileSource reads the rule document from a fixed path inside a config
// directory, creating it from the bundled template when missing.
type FileSource struct {
	dir  string
	path string
}

// NewFileSource binds a source to name inside dir. Names that resolve outside
// dir are rejected.
func NewFileSource(dir, name string) (*FileSource, error) {
	if dir == "" {
		return nil, fmt.Errorf("config directory must not be empty")
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory %s: %w", dir, err)
	}
	path := filepath.Join(absDir, name)
	rel, err := filepath.Rel(absDir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s", ErrOutsideConfigDir, name)
	}
	return &FileSource{dir: absDir, path: path}, nil
}

// Path returns the absolute document path.
func (s *FileSource) Path() string { return s.path }

// Exists reports whether the document is present on disk.
func (s *FileSource) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
}

// EnsureExists writes the template unless a document is already present.
func (s *FileSource) EnsureExists() error {
	ok, err := s.Exists()
	if err != nil || ok {
		return err
	}
	return s.create()
}

// Load reads the document. When it is missing, the template is written and
// created is true with no content: a freshly created document contributes no
// defaults until the next read.
func (s *FileSource) Load() (raw []byte, created bool, err error) {
	ok, err := s.Exists()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		if err := s.create(); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	raw, err = file.Provider(s.path).ReadBytes()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read rule document %s: %w", s.path, err)
	}
	return raw, false, nil
}

func (s *FileSource) create() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", s.dir, err)
	}
	if err := os.WriteFile(s.path, template, 0o644); err != nil {
		return fmt.Errorf("failed to write rule document %s: %w", s.path, err)
	}
	return nil
}
