package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/character"
	"gopkg.in/yaml.v3"
)

// exportDocument is the on-disk shape of a saved batch.
type exportDocument struct {
	Characters []character.Character `yaml:"characters"`
}

// ExportFileName returns the file name used when saving a batch.
func ExportFileName(level, count int) string {
	return fmt.Sprintf("characters_level_%d_count_%d.yaml", level, count)
}

// WriteYAML encodes characters as an export document.
func WriteYAML(w io.Writer, characters []character.Character) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exportDocument{Characters: characters}); err != nil {
		return fmt.Errorf("encode characters: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes an export document written by WriteYAML.
func ReadYAML(r io.Reader) ([]character.Character, error) {
	var doc exportDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode characters: %w", err)
	}
	return doc.Characters, nil
}

// SaveFile writes characters to dir using ExportFileName and returns the path.
func SaveFile(dir string, level, count int, characters []character.Character) (path string, err error) {
	if dir == "" {
		dir = "."
	}
	path = filepath.Join(dir, ExportFileName(level, count))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", closeErr)
		}
	}()
	if err := WriteYAML(f, characters); err != nil {
		return "", err
	}
	return path, nil
}
