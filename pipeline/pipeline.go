// Package pipeline 把整个导出归档逐个转换为 PDF：
// 归档成员 -> JSON -> 规范化 -> 排版 -> 渲染 -> 保存。
// 单个菜谱的失败只影响它自己，只有归档无法读取才会让整个运行失败。
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/ByLCY/recipepdf/archive"
	"github.com/ByLCY/recipepdf/catalog"
	"github.com/ByLCY/recipepdf/document"
	"github.com/ByLCY/recipepdf/recipe"
	canvasrenderer "github.com/ByLCY/recipepdf/renderer/canvas"
	"github.com/ByLCY/recipepdf/theme"
)

// Config 是一次运行的全部输入，默认路径由调用方决定。
type Config struct {
	ArchivePath string
	OutputDir   string
	DebugDir    string // 非空时为每个菜谱写出排版调试 JSON

	Theme    *theme.Theme    // nil 时使用内置主题
	Defaults recipe.Defaults // 零值时使用 recipe.StandardDefaults

	Logger *slog.Logger // nil 时不输出日志
	Status io.Writer    // 每个菜谱一行状态输出，nil 时丢弃
	Now    func() time.Time
}

// Summary 汇总一次运行的结果。
type Summary struct {
	Entries   []catalog.Entry
	Converted int
	Failed    int
}

// Run 处理归档中的每个成员。返回的错误只可能是 *archive.ArchiveError 或 ctx 的取消错误。
func Run(ctx context.Context, cfg Config) (Summary, error) {
	cfg = withDefaults(cfg)
	log := cfg.Logger

	members, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		return Summary{}, err
	}
	log.Info("归档已打开", "file", cfg.ArchivePath, "members", len(members))

	cr := canvasrenderer.NewRenderer()
	composer, err := document.NewComposer(cfg.Theme, cr)
	if err != nil {
		return Summary{}, fmt.Errorf("初始化排版失败: %w", err)
	}
	writer := document.NewWriter(composer, cr, cfg.OutputDir)
	writer.SetDebugDir(cfg.DebugDir)
	normalizer := recipe.Normalizer{Defaults: cfg.Defaults}

	var sum Summary
	for i, m := range members {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		entry := convert(i, m, normalizer, writer, cfg)
		sum.Entries = append(sum.Entries, entry)
		if entry.Status == catalog.StatusConverted {
			sum.Converted++
		} else {
			sum.Failed++
		}
	}

	fmt.Fprintf(cfg.Status, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		sum.Converted, sum.Failed, len(members))
	return sum, nil
}

func convert(index int, m archive.Member, n recipe.Normalizer, w *document.Writer, cfg Config) catalog.Entry {
	log := cfg.Logger.With("index", index, "file", m.Name)
	entry := catalog.Entry{Source: m.Name, ConvertedAt: cfg.Now()}
	fail := func(label string, err error) catalog.Entry {
		log.Error("菜谱转换失败", "recipe", label, "err", err)
		fmt.Fprintf(cfg.Status, "failed: %s (%v)\n", label, err)
		entry.Status = catalog.StatusFailed
		entry.Error = err.Error()
		return entry
	}

	var record any
	if err := json.Unmarshal(m.Data, &record); err != nil {
		return fail(memberLabel(index, m.Name), fmt.Errorf("解析 JSON 失败: %w", err))
	}

	r, rep := n.Normalize(record)
	log = log.With("recipe", r.Title)
	if len(rep.Defaulted) > 0 {
		log.Debug("使用默认值", "fields", rep.Defaulted)
	}
	for _, p := range rep.Problems {
		log.Warn("菜谱数据有误", "err", p)
		entry.Warnings = append(entry.Warnings, p.Error())
	}
	if rep.StepsOutOfOrder {
		log.Warn("步骤的 order 字段不是递增的，按数组顺序输出")
		entry.Warnings = append(entry.Warnings, "steps out of order")
	}

	entry.Title = r.Title
	entry.Ingredients = len(r.Ingredients)
	entry.Steps = len(r.Instructions)
	entry.PrepMinutes = int(r.PrepTime.Minutes())
	entry.CookMinutes = int(r.CookTime.Minutes())
	entry.Tags = r.Tags

	art, err := w.Render(r)
	for _, warn := range art.Warnings {
		log.Warn("文档已生成但有警告", "err", warn)
		entry.Warnings = append(entry.Warnings, warn.Error())
	}
	if err != nil {
		return fail(r.Title, err)
	}

	entry.File = art.Path
	entry.Pages = art.Pages
	entry.Status = catalog.StatusConverted
	log.Info("菜谱已转换", "path", art.Path, "pages", art.Pages)
	fmt.Fprintf(cfg.Status, "converted: %s -> %s (%d pages)\n", r.Title, art.Path, art.Pages)
	return entry
}

func memberLabel(index int, name string) string {
	return fmt.Sprintf("#%d %s", index+1, path.Base(name))
}

func withDefaults(cfg Config) Config {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Status == nil {
		cfg.Status = io.Discard
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Defaults == (recipe.Defaults{}) {
		cfg.Defaults = recipe.StandardDefaults()
	}
	return cfg
}
