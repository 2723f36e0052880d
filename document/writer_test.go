package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/recipepdf/layout"
	"github.com/ByLCY/recipepdf/recipe"
)

type fakeRenderer struct {
	err   error
	calls int
}

func (f *fakeRenderer) Render(res *layout.Result) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake " + res.Meta.Title), nil
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Tea":              "Tea.pdf",
		"Salt/Pepper Soup": "Salt_Pepper Soup.pdf",
		"  Crème brûlée ":  "Crème brûlée.pdf",
		"What?":            "What_.pdf",
		"line\nbreak":      "line_break.pdf",
		"":                 "Untitled Recipe.pdf",
		"...":              "Untitled Recipe.pdf",
	}
	for title, want := range tests {
		assert.Equal(t, want, FileName(title), "title %q", title)
	}
}

func TestFileNameNormalizesToNFC(t *testing.T) {
	decomposed := "Cre\u0300me"
	assert.Equal(t, "Cr\u00e8me.pdf", FileName(decomposed))
}

func TestNamerDeduplicates(t *testing.T) {
	n := NewNamer()
	assert.Equal(t, "Tea.pdf", n.Next("Tea"))
	assert.Equal(t, "Tea (2).pdf", n.Next("Tea"))
	assert.Equal(t, "tea (3).pdf", n.Next("tea"))
	assert.Equal(t, "Soup.pdf", n.Next("Soup"))

	n = NewNamer()
	assert.Equal(t, "Tea (2).pdf", n.Next("Tea (2)"))
	assert.Equal(t, "Tea.pdf", n.Next("Tea"))
	assert.Equal(t, "Tea (3).pdf", n.Next("Tea"))
}

func TestWriterRendersAndSaves(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	debugDir := filepath.Join(t.TempDir(), "debug")
	fr := &fakeRenderer{}
	w := NewWriter(newTestComposer(t), fr, dir)
	w.SetDebugDir(debugDir)

	art, err := w.Render(recipe.Recipe{Title: "Tea", ServesLabel: "1", Instructions: []string{"Boil water"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Tea.pdf"), art.Path)
	assert.Equal(t, 1, art.Pages)
	assert.Empty(t, art.Warnings)

	data, err := os.ReadFile(art.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake Tea", string(data))
	assert.FileExists(t, filepath.Join(debugDir, "Tea.json"))

	art, err = w.Render(recipe.Recipe{Title: "Tea"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Tea (2).pdf"), art.Path)
	assert.Equal(t, 2, fr.calls)
}

func TestWriterRenderFailure(t *testing.T) {
	boom := errors.New("canvas unavailable")
	w := NewWriter(newTestComposer(t), &fakeRenderer{err: boom}, t.TempDir())

	_, err := w.Render(recipe.Recipe{Title: "Tea"})
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "render", renderErr.Op)
	assert.Equal(t, "Tea", renderErr.Title)
	assert.ErrorIs(t, err, boom)
}

func TestWriterSaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	w := NewWriter(newTestComposer(t), &fakeRenderer{}, filepath.Join(blocker, "out"))
	_, err := w.Render(recipe.Recipe{Title: "Tea"})
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "save", renderErr.Op)
}
