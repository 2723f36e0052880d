package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/recipepdf/archive"
	"github.com/ByLCY/recipepdf/catalog"
)

const teaRecipe = `{"name":"Tea","serves":1,"duration":5,"tags":["drink"],
	"steps":[{"step":"Boil water","order":0}],
	"ingredients":[{"ingredient":{"name":"Water"},"quantity":{"amount":1,"quantityType":"CUP"}}]}`

const soupRecipe = `{"name":"Soup","serves":"4",
	"steps":[{"step":"Chop","order":1},{"step":"Simmer","order":0}],
	"ingredients":[
		{"ingredient":{"uuid":"no-name"},"quantity":{"amount":1}},
		{"ingredient":{"name":"Onion"},"quantity":{"amount":2,"quantityType":"ITEM"}}
	]}`

func writeArchive(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Crouton_Recipes")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("recipes/")
	require.NoError(t, err)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestRunConvertsEveryRecipe(t *testing.T) {
	archivePath := writeArchive(t, map[string]string{
		"recipes/1-tea.crumb":    teaRecipe,
		"recipes/2-broken.crumb": `{"name": "Broken",`,
		"recipes/3-soup.crumb":   soupRecipe,
		"recipes/4-empty.crumb":  `{}`,
	})
	out := filepath.Join(t.TempDir(), "output")
	debug := filepath.Join(t.TempDir(), "debug")
	var status bytes.Buffer

	sum, err := Run(context.Background(), Config{
		ArchivePath: archivePath,
		OutputDir:   out,
		DebugDir:    debug,
		Status:      &status,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Converted)
	assert.Equal(t, 1, sum.Failed)
	require.Len(t, sum.Entries, 4)

	for _, name := range []string{"Tea.pdf", "Soup.pdf", "Untitled Recipe.pdf"} {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), name)
	}
	assert.FileExists(t, filepath.Join(debug, "Tea.json"))

	tea := sum.Entries[0]
	assert.Equal(t, catalog.StatusConverted, tea.Status)
	assert.Equal(t, "Tea", tea.Title)
	assert.Equal(t, 1, tea.Pages)
	assert.Equal(t, 5, tea.PrepMinutes)
	assert.Equal(t, []string{"drink"}, tea.Tags)

	broken := sum.Entries[1]
	assert.Equal(t, catalog.StatusFailed, broken.Status)
	assert.Equal(t, "recipes/2-broken.crumb", broken.Source)
	assert.NotEmpty(t, broken.Error)

	soup := sum.Entries[2]
	assert.Equal(t, 1, soup.Ingredients, "ingredient without a name is skipped")
	assert.Len(t, soup.Warnings, 2, "missing name and out-of-order steps")

	lines := strings.Split(status.String(), "\n")
	assert.Equal(t, "converted: Tea -> "+filepath.Join(out, "Tea.pdf")+" (1 pages)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "failed: #2 2-broken.crumb ("), lines[1])
	assert.Contains(t, status.String(), "Batch summary: 3 converted, 1 failed (total: 4)")
}

func TestRunKeepsRecipeWithCorruptImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 40, 40))))
	payload := base64.StdEncoding.EncodeToString(buf.Bytes()[:40])

	archivePath := writeArchive(t, map[string]string{
		"cake.crumb": `{"name":"Cake","images":["` + payload + `"],"steps":[{"step":"Bake"}]}`,
	})
	out := t.TempDir()
	var status bytes.Buffer

	sum, err := Run(context.Background(), Config{ArchivePath: archivePath, OutputDir: out, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Converted)
	assert.Equal(t, 0, sum.Failed)
	assert.FileExists(t, filepath.Join(out, "Cake.pdf"))
	require.Len(t, sum.Entries, 1)
	assert.Len(t, sum.Entries[0].Warnings, 1)
	assert.Contains(t, status.String(), "converted: Cake -> ")
}

func TestRunDeduplicatesTitles(t *testing.T) {
	archivePath := writeArchive(t, map[string]string{
		"a.crumb": teaRecipe,
		"b.crumb": teaRecipe,
	})
	out := t.TempDir()

	sum, err := Run(context.Background(), Config{ArchivePath: archivePath, OutputDir: out})
	require.NoError(t, err)
	require.Equal(t, 2, sum.Converted)
	assert.FileExists(t, filepath.Join(out, "Tea.pdf"))
	assert.FileExists(t, filepath.Join(out, "Tea (2).pdf"))
}

func TestRunMissingArchive(t *testing.T) {
	_, err := Run(context.Background(), Config{
		ArchivePath: filepath.Join(t.TempDir(), "Crouton_Recipes"),
		OutputDir:   t.TempDir(),
	})
	var archiveErr *archive.ArchiveError
	assert.True(t, errors.As(err, &archiveErr))
}

func TestRunStopsWhenCancelled(t *testing.T) {
	archivePath := writeArchive(t, map[string]string{"a.crumb": teaRecipe})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := Run(ctx, Config{ArchivePath: archivePath, OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sum.Entries)
}
