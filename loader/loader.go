// Package loader reads page, layout, and component schema documents from the
// filesystem. It is a collaborator of the validation core: the core consumes
// the decoded documents and never touches the filesystem itself.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ContractDir is the subdirectory whose schema files shadow root-level files
// sharing the same identifier.
const ContractDir = "contract"

// Document loads a single JSON or YAML document as a generic mapping. The
// format is chosen by file extension.
func Document(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return decode(path, raw)
}

func decode(path string, raw []byte) (map[string]any, error) {
	var doc map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("loader: decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("loader: decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("loader: unsupported document extension %q", filepath.Ext(path))
	}
	return doc, nil
}

// ComponentSchemas loads component schema documents from the given search
// directories. Within one directory, files in its contract/ subdirectory
// shadow root-level files sharing the same identifier; across directories,
// later directories shadow earlier ones. A schema's identifier is its "$id"
// when present, else the filename stem.
func ComponentSchemas(dirs ...string) (map[string]any, error) {
	out := map[string]any{}
	for _, dir := range dirs {
		if err := collectDir(dir, out); err != nil {
			return nil, err
		}
		contract := filepath.Join(dir, ContractDir)
		if info, err := os.Stat(contract); err == nil && info.IsDir() {
			if err := collectDir(contract, out); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func collectDir(dir string, out map[string]any) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("loader: read schema directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		doc, err := Document(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if declared, ok := doc["$id"].(string); ok && declared != "" {
			id = declared
		}
		out[id] = doc
	}
	return nil
}
