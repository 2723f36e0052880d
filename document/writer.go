package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/recipepdf/layout"
	"github.com/ByLCY/recipepdf/recipe"
	"github.com/ByLCY/recipepdf/renderer"
)

// Artifact 描述一份已写出的菜谱文档。
type Artifact struct {
	Title    string
	Path     string
	Pages    int
	Warnings []error
}

// Writer 串联排版、渲染与保存，每个菜谱生成一个 PDF 文件。
type Writer struct {
	composer  *Composer
	renderer  renderer.Renderer
	outputDir string
	debugDir  string
	namer     *Namer
}

// NewWriter 创建写入 outputDir 的 Writer。
func NewWriter(c *Composer, r renderer.Renderer, outputDir string) *Writer {
	return &Writer{
		composer:  c,
		renderer:  r,
		outputDir: outputDir,
		namer:     NewNamer(),
	}
}

// SetDebugDir 设置排版调试 JSON 的输出目录，空字符串表示关闭。
func (w *Writer) SetDebugDir(dir string) {
	w.debugDir = dir
}

// Render 生成并保存 r 对应的 PDF。失败时返回 *RenderError，只影响这一份菜谱。
func (w *Writer) Render(r recipe.Recipe) (Artifact, error) {
	art := Artifact{Title: r.Title}

	comp, err := w.composer.Compose(r)
	if err != nil {
		return art, &RenderError{Title: r.Title, Op: "compose", Err: err}
	}
	art.Warnings = comp.Warnings
	art.Pages = len(comp.Result.Pages)

	name := w.namer.Next(r.Title)
	if w.debugDir != "" {
		debugPath := filepath.Join(w.debugDir, strings.TrimSuffix(name, ".pdf")+".json")
		if err := layout.WriteDebugJSON(comp.Result, debugPath); err != nil {
			art.Warnings = append(art.Warnings, fmt.Errorf("写入调试 JSON %s 失败: %w", debugPath, err))
		}
	}

	data, err := w.renderer.Render(comp.Result)
	if err != nil {
		return art, &RenderError{Title: r.Title, Op: "render", Err: err}
	}

	path, err := Save(w.outputDir, name, data)
	if err != nil {
		return art, &RenderError{Title: r.Title, Op: "save", Err: err}
	}
	art.Path = path
	return art, nil
}

// Save 把 data 写入 dir/name，目录不存在时自动创建。
func Save(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return path, nil
}
