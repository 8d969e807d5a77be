package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalidator/pkg/form"
)

// Format identifies a definition encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Definition is a validated form definition.
type Definition struct {
	ID     string
	Source string
	Root   FieldConfig
}

// Build creates a fresh form tree.
func (d Definition) Build() (*form.Node, error) {
	root := d.Root
	if strings.TrimSpace(root.Name) == "" {
		root.Name = d.ID
	}
	node, err := buildNode(root, d.ID)
	if err != nil {
		return nil, fmt.Errorf("definition: form %q (%s): %w", d.ID, d.Source, err)
	}
	return node, nil
}

// Store holds definitions keyed by form id.
type Store struct {
	forms map[string]Definition
}

// Form returns the definition for id.
func (s *Store) Form(id string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.forms[id]
	return def, ok
}

// IDs returns the known form ids, sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds no forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// LoadFS walks fsys and loads every JSON, YAML and TOML definition file. A nil
// fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		format, ok := FormatFromPath(path)
		if !ok {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		return store.add(data, format, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse loads a single document.
func Parse(data []byte, format Format, source string) (*Store, error) {
	store := &Store{forms: make(map[string]Definition)}
	if err := store.add(data, format, source); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(data []byte, format Format, source string) error {
	doc, err := decodeDocument(data, format, source)
	if err != nil {
		return err
	}
	if len(doc.Forms) == 0 {
		return fmt.Errorf("definition: file %s defines no forms", source)
	}
	for rawID, cfg := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("definition: file %s defines an empty form id", source)
		}
		if existing, exists := s.forms[id]; exists {
			return fmt.Errorf("definition: duplicate form %q (files %s and %s)", id, existing.Source, source)
		}
		def := Definition{ID: id, Source: source, Root: cfg}
		if _, err := def.Build(); err != nil {
			return err
		}
		s.forms[id] = def
	}
	return nil
}

func decodeDocument(data []byte, format Format, source string) (documentFile, error) {
	var doc documentFile
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, fmt.Errorf("definition: file %s is empty", source)
	}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		_, err = toml.Decode(string(data), &doc)
	default:
		return doc, fmt.Errorf("definition: file %s has unsupported format %q", source, format)
	}
	if err != nil {
		return doc, fmt.Errorf("definition: parse %s: %w", source, err)
	}
	return doc, nil
}
