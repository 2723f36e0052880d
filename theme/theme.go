// Package theme 解析菜谱文档的样式表：字体、各文本角色的字号与颜色，以及固定标题文字。
// 页面尺寸与边距不在样式表中配置。
package theme

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ByLCY/recipepdf/layout"
)

//go:embed default.theme
var defaultSheet string

const builtinPrefix = "builtin:"

// Labels 是文档中固定出现的标题文字，Serves 支持 ${serves} 占位符。
type Labels struct {
	Serves       string
	Ingredients  string
	Instructions string
}

// Theme 是编译后的样式表。
type Theme struct {
	Name    string
	Fonts   map[string]layout.FontResource
	Title   layout.TextStyle
	Heading layout.TextStyle
	Body    layout.TextStyle
	Section layout.TextStyle
	Labels  Labels
}

// Default 返回内置默认样式。
func Default() *Theme {
	sheet, err := ParseString(defaultSheet)
	if err != nil {
		panic(fmt.Sprintf("theme: 内置样式解析失败: %v", err))
	}
	th, err := Compile(sheet)
	if err != nil {
		panic(fmt.Sprintf("theme: 内置样式编译失败: %v", err))
	}
	return th
}

// Load 读取并编译样式表文件。
func Load(path string) (*Theme, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开样式表 %s: %w", path, err)
	}
	defer file.Close()

	sheet, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析样式表 %s 失败: %w", path, err)
	}
	return Compile(sheet)
}

// Compile 校验样式表并解析出各角色的文本样式。
// body 样式必须声明；title/heading/section 缺省时从 body 派生。
func Compile(sheet *Sheet) (*Theme, error) {
	if sheet == nil {
		return nil, fmt.Errorf("theme: 样式表为空")
	}
	th := &Theme{
		Name:  sheet.Name,
		Fonts: map[string]layout.FontResource{},
		Labels: Labels{
			Serves:       "Recipe serves : ${serves}",
			Ingredients:  "Ingredients:",
			Instructions: "Instructions:",
		},
	}

	for _, e := range sheet.Entries {
		if e.Font == nil {
			continue
		}
		font, err := compileFont(e.Font)
		if err != nil {
			return nil, err
		}
		th.Fonts[font.Name] = font
	}

	styles := map[string]layout.TextStyle{}
	for _, e := range sheet.Entries {
		switch {
		case e.Style != nil:
			if _, dup := styles[e.Style.Role]; dup {
				return nil, fmt.Errorf("theme: 第 %d 行重复定义样式 %s", e.Style.Pos.Line, e.Style.Role)
			}
			st, err := compileStyle(e.Style, th.Fonts)
			if err != nil {
				return nil, err
			}
			styles[e.Style.Role] = st
		case e.Label != nil:
			text := string(e.Label.Text)
			switch e.Label.Key {
			case "serves":
				th.Labels.Serves = text
			case "ingredients":
				th.Labels.Ingredients = text
			case "instructions":
				th.Labels.Instructions = text
			default:
				return nil, fmt.Errorf("theme: 第 %d 行未知的标签 %s", e.Label.Pos.Line, e.Label.Key)
			}
		}
	}

	body, ok := styles["body"]
	if !ok {
		return nil, fmt.Errorf("theme: 缺少 body 样式")
	}
	th.Body = body
	th.Title = styleOr(styles, "title", body)
	th.Heading = styleOr(styles, "heading", th.Title)
	th.Section = styleOr(styles, "section", th.Heading)
	return th, nil
}

func styleOr(styles map[string]layout.TextStyle, role string, fallback layout.TextStyle) layout.TextStyle {
	if st, ok := styles[role]; ok {
		return st
	}
	return fallback
}

var knownRoles = map[string]bool{"title": true, "heading": true, "body": true, "section": true}

func compileFont(decl *FontDecl) (layout.FontResource, error) {
	font := layout.FontResource{Name: decl.Name}
	for _, p := range decl.Props {
		switch p.Key {
		case "src":
			font.Src = p.Value.Text()
		case "style":
			font.Style = p.Value.Text()
		default:
			return font, fmt.Errorf("theme: 第 %d 行字体 %s 不支持属性 %s", p.Pos.Line, decl.Name, p.Key)
		}
	}
	if !strings.HasPrefix(font.Src, builtinPrefix) {
		return font, fmt.Errorf("theme: 字体 %s 只能使用 builtin: 资源，当前为 %q", decl.Name, font.Src)
	}
	return font, nil
}

func compileStyle(decl *StyleDecl, fonts map[string]layout.FontResource) (layout.TextStyle, error) {
	if !knownRoles[decl.Role] {
		return layout.TextStyle{}, fmt.Errorf("theme: 第 %d 行未知的样式角色 %s", decl.Pos.Line, decl.Role)
	}
	st := layout.TextStyle{FontSize: 12}
	fontName := ""
	for _, p := range decl.Props {
		raw := p.Value.Text()
		switch p.Key {
		case "font":
			fontName = raw
		case "size":
			l, err := layout.ParseLength(raw)
			if err != nil || l.ToPT() <= 0 {
				return st, fmt.Errorf("theme: 第 %d 行字号 %q 无效", p.Pos.Line, raw)
			}
			st.FontSize = l.ToPT()
		case "color":
			c, err := parseColor(raw)
			if err != nil {
				return st, fmt.Errorf("theme: 第 %d 行: %w", p.Pos.Line, err)
			}
			st.Color = c
		default:
			return st, fmt.Errorf("theme: 第 %d 行样式 %s 不支持属性 %s", p.Pos.Line, decl.Role, p.Key)
		}
	}
	font, ok := fonts[fontName]
	if !ok {
		return st, fmt.Errorf("theme: 样式 %s 引用了未定义的字体 %q", decl.Role, fontName)
	}
	st.Font = font
	return st, nil
}

func parseColor(value string) (layout.Color, error) {
	value = strings.TrimPrefix(value, "#")
	switch len(value) {
	case 3:
		return layout.Color{
			R: mustHex(strings.Repeat(value[0:1], 2)),
			G: mustHex(strings.Repeat(value[1:2], 2)),
			B: mustHex(strings.Repeat(value[2:3], 2)),
		}, nil
	case 6:
		return layout.Color{
			R: mustHex(value[0:2]),
			G: mustHex(value[2:4]),
			B: mustHex(value[4:6]),
		}, nil
	default:
		return layout.Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func mustHex(s string) int {
	v, _ := strconv.ParseInt(s, 16, 64)
	return int(v)
}
