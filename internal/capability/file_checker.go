package capability

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// grantsFile is the on-disk grants document.
//
//	grants:
//	  frontmatter: [metrics]
//	  themes: [metrics, storage]
type grantsFile struct {
	Grants map[string][]string `yaml:"grants"`
}

// FileChecker is a Checker backed by a YAML grants file. Reload swaps the
// grant set atomically; lookups between reloads see a consistent snapshot.
type FileChecker struct {
	path string
	StaticChecker
}

// NewFileChecker loads the grants file at path. The file must exist and parse.
func NewFileChecker(path string) (*FileChecker, error) {
	fc := &FileChecker{path: path}
	if err := fc.Reload(); err != nil {
		return nil, err
	}
	return fc, nil
}

// Reload re-reads the grants file and replaces the in-memory grant set.
// On error the previous grant set stays in effect.
func (fc *FileChecker) Reload() error {
	data, err := os.ReadFile(fc.path)
	if err != nil {
		return fmt.Errorf("read grants file: %w", err)
	}

	var doc grantsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse grants file %s: %w", fc.path, err)
	}

	fc.replace(doc.Grants)
	return nil
}

// Path returns the watched grants file path.
func (fc *FileChecker) Path() string {
	return fc.path
}
