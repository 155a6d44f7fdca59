package formspec

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Load decodes a JSON or YAML form spec document: an array of payment-method
// entries. source names the document in error messages.
func Load(data []byte, source string) ([]FormSpec, error) {
	root, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}

	entries, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("formspec: %s: expected an array of form specs, got %T", source, root)
	}

	specs := make([]FormSpec, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for idx, raw := range entries {
		node, ok := AsNode(raw)
		if !ok {
			return nil, fmt.Errorf("formspec: %s: entry %d: expected object, got %T", source, idx, raw)
		}
		spec, err := DecodeFormSpec(node)
		if err != nil {
			return nil, fmt.Errorf("formspec: %s: entry %d: %w", source, idx, err)
		}
		if _, dup := seen[spec.Type]; dup {
			return nil, fmt.Errorf("formspec: %s: duplicate payment method %q", source, spec.Type)
		}
		seen[spec.Type] = struct{}{}
		specs = append(specs, spec)
	}
	return specs, nil
}

// LoadFS walks fsys and loads every JSON/YAML document into a Store. A nil
// filesystem yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSpecFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formspec: read %s: %w", path, err)
		}
		specs, err := Load(data, path)
		if err != nil {
			return err
		}
		for _, spec := range specs {
			if _, exists := store.specs[spec.Type]; exists {
				return fmt.Errorf("formspec: duplicate payment method %q (file %s)", spec.Type, path)
			}
			store.put(spec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func parseDocument(data []byte, source string) (any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formspec: file %s is empty", source)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = nil
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return nil, fmt.Errorf("formspec: parse %s: invalid JSON or YAML", source)
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
