package layout

type pageAccumulator struct {
	texts  []TextBox
	images []ImageBox
}

func (p *pageAccumulator) appendText(tb TextBox) {
	p.texts = append(p.texts, tb)
}

func (p *pageAccumulator) appendImage(img ImageBox) {
	p.images = append(p.images, img)
}

type pageCollector struct {
	accs []*pageAccumulator
}

func newPageCollector() *pageCollector {
	pc := &pageCollector{}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	return acc
}

// page 返回第 idx 页，必要时补齐中间的页面。
func (pc *pageCollector) page(idx int) *pageAccumulator {
	for len(pc.accs) <= idx {
		pc.newPage()
	}
	return pc.accs[idx]
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Index:  i,
			Texts:  acc.texts,
			Images: acc.images,
		}
	}
	return out
}

// Flow 把一份文档的所有文本块串联在同一个光标上，并把输出行收集到页面中。
// 一个 Flow 只服务于一份文档，不可跨文档复用。
type Flow struct {
	engine    *Engine
	cursor    Cursor
	collector *pageCollector
	fonts     map[string]FontResource
}

// NewFlow 创建从第一页页顶开始的排版流。
func (e *Engine) NewFlow() *Flow {
	return &Flow{
		engine:    e,
		cursor:    Cursor{Y: e.frame.Top()},
		collector: newPageCollector(),
		fonts:     map[string]FontResource{},
	}
}

// Cursor 返回当前光标。
func (f *Flow) Cursor() Cursor { return f.cursor }

// Down 将光标下移 d（pt）。
func (f *Flow) Down(d float64) { f.cursor = f.cursor.Down(d) }

// Text 折行放置一段文本并返回输出的行数。
func (f *Flow) Text(text string, style TextStyle, x, maxWidth float64) (int, error) {
	p, err := f.engine.WrapAndPlace(text, x, f.cursor, style, maxWidth)
	if err != nil {
		return 0, err
	}
	f.commit(p, style)
	return len(p.Lines), nil
}

// Line 放置一行不折行的文本（例如标题栏或份量说明）。
func (f *Flow) Line(text string, style TextStyle, x float64) {
	f.commit(f.engine.Place(text, x, f.cursor), style)
}

// Image 把图片放到当前页，图片不占用文本光标。
func (f *Flow) Image(img ImageBox) {
	f.collector.page(f.cursor.Page).appendImage(img)
}

func (f *Flow) commit(p Placement, style TextStyle) {
	if style.Font.Name != "" {
		f.fonts[style.Font.Name] = style.Font
	}
	for _, ln := range p.Lines {
		f.collector.page(ln.Page).appendText(TextBox{
			Content:  ln.Text,
			X:        ln.X,
			Y:        ln.Y,
			Font:     style.Font.Name,
			FontSize: style.FontSize,
			Color:    style.Color,
		})
	}
	f.cursor = p.Cursor
}

// Result 结束排版并返回全部页面。
func (f *Flow) Result(meta DocumentMeta) *Result {
	frame := f.engine.frame
	fonts := make(map[string]FontResource, len(f.fonts))
	for name, font := range f.fonts {
		fonts[name] = font
	}
	return &Result{
		Width:  frame.PageWidth,
		Height: frame.PageHeight,
		Pages:  f.collector.pages(),
		Fonts:  fonts,
		Meta:   meta,
	}
}
