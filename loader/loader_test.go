package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDocument_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.json", `{"regions":{"main":{}}}`)
	writeFile(t, dir, "layout.yaml", "regions:\n  main:\n    slots:\n      - hero\n")

	page, err := Document(filepath.Join(dir, "page.json"))
	require.NoError(t, err)
	assert.Contains(t, page, "regions")

	layout, err := Document(filepath.Join(dir, "layout.yaml"))
	require.NoError(t, err)
	regions, ok := layout["regions"].(map[string]any)
	require.True(t, ok, "yaml mappings should decode as map[string]any")
	assert.Contains(t, regions, "main")
}

func TestDocument_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.txt", "whatever")

	_, err := Document(filepath.Join(dir, "page.txt"))
	assert.ErrorContains(t, err, "unsupported document extension")
}

func TestComponentSchemas_ContractDirShadowsRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "text.json", `{"$id":"Text@v1","type":"object","properties":{"text":{"type":"string"}}}`)
	writeFile(t, filepath.Join(dir, ContractDir), "text.json", `{"$id":"Text@v1","type":"object","required":["text"]}`)

	schemas, err := ComponentSchemas(dir)
	require.NoError(t, err)
	require.Contains(t, schemas, "Text@v1")

	doc, ok := schemas["Text@v1"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, doc, "required", "contract-directory schema should shadow the root-level one")
}

func TestComponentSchemas_LaterDirsShadowEarlier(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, first, "text.json", `{"$id":"Text@v1","version":1}`)
	writeFile(t, second, "text.yaml", "$id: Text@v1\nversion: 2\n")

	schemas, err := ComponentSchemas(first, second)
	require.NoError(t, err)

	doc := schemas["Text@v1"].(map[string]any)
	assert.EqualValues(t, 2, doc["version"])
}

func TestComponentSchemas_FilenameStemFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hero-banner.json", `{"type":"object"}`)

	schemas, err := ComponentSchemas(dir)
	require.NoError(t, err)
	assert.Contains(t, schemas, "hero-banner")
}

func TestComponentSchemas_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "not a schema")
	writeFile(t, dir, "text.json", `{"$id":"Text@v1","type":"object"}`)

	schemas, err := ComponentSchemas(dir)
	require.NoError(t, err)
	assert.Len(t, schemas, 1)
}

func TestComponentSchemas_MissingDirectory(t *testing.T) {
	_, err := ComponentSchemas(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
