package layout

import (
	"fmt"
	"strings"
)

// Cursor 记录当前的纵向书写位置与页序号（从 0 开始）。
type Cursor struct {
	Y    float64 `json:"y"`
	Page int     `json:"page"`
}

// PlacedLine 是一行已经确定页面与坐标的文本。
type PlacedLine struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Page int     `json:"page"`
}

// Placement 是一次放置的结果：输出行、更新后的光标以及发生的换页次数。
type Placement struct {
	Lines      []PlacedLine `json:"lines"`
	Cursor     Cursor       `json:"cursor"`
	PageBreaks int          `json:"pageBreaks"`
}

// Engine 是贪心折行 + 延迟分页的文本排版引擎。
// Engine 本身不持有光标，调用方通过返回的 Cursor 串联多个文本块。
type Engine struct {
	frame    Frame
	measurer Measurer
}

// NewEngine 创建使用给定页面几何与字体度量的排版引擎。
func NewEngine(frame Frame, m Measurer) (*Engine, error) {
	if m == nil {
		return nil, fmt.Errorf("layout: 缺少字体度量 Measurer")
	}
	if frame.LineHeight <= 0 {
		return nil, fmt.Errorf("layout: 行高必须为正数，当前为 %g", frame.LineHeight)
	}
	if frame.Top() <= frame.Margin.Bottom {
		return nil, fmt.Errorf("layout: 页面高度 %g 不足以容纳上下边距", frame.PageHeight)
	}
	return &Engine{frame: frame, measurer: m}, nil
}

// Frame 返回引擎使用的页面几何。
func (e *Engine) Frame() Frame { return e.frame }

// WrapAndPlace 将 text 按空格分词后贪心折行，行宽不超过 maxWidth（pt）。
// 每输出一行之前先检查光标：若已低于下边距则换页并把光标重置到页顶，
// 因此任何一行都不会落在下边距以下。单个超宽的词独占一行，不会被拆开。
// 文本中的 '\n' 视为强制换行，各段独立折行；空文本不输出任何行，光标不变。
func (e *Engine) WrapAndPlace(text string, x float64, cur Cursor, style TextStyle, maxWidth float64) (Placement, error) {
	p := Placement{Cursor: cur}
	text = strings.ReplaceAll(text, "\r", "")

	for _, para := range strings.Split(text, "\n") {
		current := ""
		for _, word := range strings.Split(para, " ") {
			candidate := strings.TrimSpace(current + " " + word)
			width, err := e.measurer.TextWidth(candidate, style.Font, style.FontSize)
			if err != nil {
				return p, fmt.Errorf("layout: 测量文本宽度失败: %w", err)
			}
			if width <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				e.emit(&p, current, x)
			}
			current = word
		}
		if current != "" {
			e.emit(&p, current, x)
		}
	}
	return p, nil
}

// Place 放置一行不折行的文本，换页规则与 WrapAndPlace 相同；
// 光标只在换页时改变，行距由调用方通过 Cursor.Down 决定。
func (e *Engine) Place(text string, x float64, cur Cursor) Placement {
	p := Placement{Cursor: cur}
	e.breakIfNeeded(&p)
	p.Lines = append(p.Lines, PlacedLine{Text: text, X: x, Y: p.Cursor.Y, Page: p.Cursor.Page})
	return p
}

func (e *Engine) emit(p *Placement, text string, x float64) {
	e.breakIfNeeded(p)
	p.Lines = append(p.Lines, PlacedLine{Text: text, X: x, Y: p.Cursor.Y, Page: p.Cursor.Page})
	p.Cursor.Y -= e.frame.LineHeight
}

func (e *Engine) breakIfNeeded(p *Placement) {
	if p.Cursor.Y >= e.frame.Margin.Bottom {
		return
	}
	p.Cursor.Y = e.frame.Top()
	p.Cursor.Page++
	p.PageBreaks++
}

// Down 返回下移 d 后的光标，不触发换页（换页延迟到下一次输出）。
func (c Cursor) Down(d float64) Cursor {
	c.Y -= d
	return c
}
