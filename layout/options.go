package layout

// Measurer 负责按字体度量计算文本宽度，排版引擎只依赖这一项能力。
// 约定：fontSize 与返回的宽度均为 pt。
type Measurer interface {
	TextWidth(text string, font FontResource, fontSize float64) (float64, error)
}

// Frame 描述固定的页面几何：页面尺寸、边距与行高（单位：pt）。
type Frame struct {
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`
	Margin     Margin  `json:"margin"`
	LineHeight float64 `json:"lineHeight"`
}

// A4 页面尺寸（pt）。
const (
	A4Width  = 210 * MmToPt
	A4Height = 297 * MmToPt
)

// DefaultFrame 返回 A4、四边 50pt 边距、14pt 行高的页面几何。
func DefaultFrame() Frame {
	return Frame{
		PageWidth:  A4Width,
		PageHeight: A4Height,
		Margin:     Margin{Top: 50, Right: 50, Bottom: 50, Left: 50},
		LineHeight: 14,
	}
}

// Top 返回新页面的起始光标位置。
func (f Frame) Top() float64 { return f.PageHeight - f.Margin.Top }

// ContentWidth 返回左右边距之间可用的文本宽度。
func (f Frame) ContentWidth() float64 { return f.PageWidth - f.Margin.Left - f.Margin.Right }
