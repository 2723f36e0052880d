// Package document 把规范化后的菜谱排成页面并写出 PDF 文件。
package document

import (
	"fmt"
	"strings"

	"github.com/ByLCY/recipepdf/binding"
	"github.com/ByLCY/recipepdf/layout"
	"github.com/ByLCY/recipepdf/recipe"
	"github.com/ByLCY/recipepdf/theme"
)

// 各段落之后的额外间距，以行高为单位。
const (
	gapAfterTitle         = 1.3
	gapAfterServes        = 2
	gapAfterHeader        = 1.5
	gapBeforeInstructions = 1
)

// DefaultCreator 写入 PDF 文档信息的 Creator 字段。
const DefaultCreator = "recipepdf"

// Composition 是一份菜谱的排版结果。
// Warnings 记录不影响生成的问题，例如无法识别的图片格式。
type Composition struct {
	Result   *layout.Result
	Warnings []error
}

// Composer 按主题把菜谱排进固定的页面几何。
// Composer 本身无状态，可被多个 goroutine 共享；每次 Compose 使用独立的 Flow。
type Composer struct {
	theme   *theme.Theme
	engine  *layout.Engine
	creator string
}

// NewComposer 创建使用默认 A4 页面几何的 Composer；th 为 nil 时使用内置主题。
func NewComposer(th *theme.Theme, m layout.Measurer) (*Composer, error) {
	if th == nil {
		th = theme.Default()
	}
	engine, err := layout.NewEngine(layout.DefaultFrame(), m)
	if err != nil {
		return nil, err
	}
	return &Composer{theme: th, engine: engine, creator: DefaultCreator}, nil
}

// Compose 依次放置图片、标题、份量、配料与步骤，所有文本共享同一个光标。
// 只有字体度量失败会返回错误；缺失的内容只会留下空的小节。
func (c *Composer) Compose(r recipe.Recipe) (*Composition, error) {
	frame := c.engine.Frame()
	lh := frame.LineHeight
	x := frame.Margin.Left
	width := frame.ContentWidth()
	flow := c.engine.NewFlow()
	out := &Composition{}

	if len(r.Image) > 0 {
		box, err := fitImage(r.Image, frame)
		if err != nil {
			out.Warnings = append(out.Warnings, &recipe.DecodeError{Field: "image", Err: err})
		} else {
			flow.Image(box)
		}
	}

	if _, err := flow.Text(r.Title, c.theme.Title, x, width); err != nil {
		return nil, err
	}
	flow.Down(lh * gapAfterTitle)

	serves := binding.Interpolate(c.theme.Labels.Serves, map[string]any{"serves": r.ServesLabel})
	flow.Line(serves, c.theme.Body, x)
	flow.Down(lh * gapAfterServes)

	flow.Line(c.theme.Labels.Ingredients, c.theme.Heading, x)
	flow.Down(lh * gapAfterHeader)
	for _, ing := range r.Ingredients {
		if ing.IsSection() {
			if _, err := flow.Text(ing.DisplayName, c.theme.Section, x, width); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := flow.Text(ingredientText(ing), c.theme.Body, x, width); err != nil {
			return nil, err
		}
	}

	flow.Down(lh * gapBeforeInstructions)
	flow.Line(c.theme.Labels.Instructions, c.theme.Heading, x)
	flow.Down(lh * gapAfterHeader)
	for i, step := range r.Instructions {
		if _, err := flow.Text(fmt.Sprintf("%d. %s", i+1, step), c.theme.Body, x, width); err != nil {
			return nil, err
		}
	}

	out.Result = flow.Result(c.meta(r))
	return out, nil
}

func ingredientText(ing recipe.IngredientLine) string {
	return fmt.Sprintf("- %s %s", ing.QuantityLabel, ing.DisplayName)
}

func (c *Composer) meta(r recipe.Recipe) layout.DocumentMeta {
	meta := layout.DocumentMeta{
		Title:    r.Title,
		Creator:  c.creator,
		Keywords: r.Tags,
	}
	var parts []string
	if r.PrepTime > 0 {
		parts = append(parts, fmt.Sprintf("Prep %d min", int(r.PrepTime.Minutes())))
	}
	if r.CookTime > 0 {
		verb := "Cook"
		if len(parts) > 0 {
			verb = "cook"
		}
		parts = append(parts, fmt.Sprintf("%s %d min", verb, int(r.CookTime.Minutes())))
	}
	meta.Subject = strings.Join(parts, ", ")
	return meta
}
