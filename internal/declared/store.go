package declared

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"alertstate/pkg/logging"
)

// ErrFileExists is returned by Save when the target file exists and
// overwriting was not requested.
var ErrFileExists = errors.New("file already exists")

// supportedExtensions lists the monitor file formats, in lookup order.
var supportedExtensions = []string{".json", ".yaml", ".yml"}

// Store gives file level access to a project directory holding one monitor
// definition per file.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// NewStore creates a Store for the given project directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the project directory.
func (s *Store) Dir() string {
	return s.dir
}

// Files returns the monitor files of the project directory sorted by file
// name. A missing directory is an error: reconciling against "no declared
// monitors" would delete every remote monitor of the project.
func (s *Store) Files() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, err := os.Stat(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read project directory %s: %w", s.dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", s.dir)
	}

	var files []string
	for _, ext := range supportedExtensions {
		matches, err := filepath.Glob(filepath.Join(s.dir, "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s files: %w", ext, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	logging.Debug("Store", "Found %d monitor files in %s", len(files), s.dir)
	return files, nil
}

// Read returns the content of a monitor file.
func (s *Store) Read(path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// Path returns the file Save would write for name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, SanitizeFilename(name)+".json")
}

// Save writes data as <name>.json into the project directory and returns the
// written path. The name is sanitized first.
func (s *Store) Save(name string, data []byte, overwrite bool) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", s.dir, err)
	}

	filePath := s.Path(name)
	if !overwrite {
		if _, err := os.Stat(filePath); err == nil {
			return filePath, fmt.Errorf("%s: %w", filePath, ErrFileExists)
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	logging.Info("Store", "Saved monitor %q to %s", name, filePath)
	return filePath, nil
}

// IsMonitorFile reports whether path has one of the supported extensions.
func IsMonitorFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// SanitizeFilename turns a monitor name into a safe file name.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_",
		"<", "_", ">", "_", "|", "_", ".", "_", "{", "_", "}", "_", " ", "_",
	)
	sanitized := replacer.Replace(strings.TrimSpace(name))

	// Collapse multiple consecutive underscores to single underscore
	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}

	sanitized = strings.Trim(sanitized, "_")

	if sanitized == "" {
		sanitized = "unnamed"
	}

	return strings.ToLower(sanitized)
}
