package layout

// 该文件定义排版结果与资源描述，供排版引擎、渲染器与调试 JSON 共用。
// 坐标单位统一为 pt，原点位于页面左下角，Y 轴向上（与 PDF 一致）。

// Result 保存一份文档排版后的页面、字体与元信息。
type Result struct {
	Width  float64                 `json:"width"`
	Height float64                 `json:"height"`
	Pages  []Page                  `json:"pages"`
	Fonts  map[string]FontResource `json:"fonts"`
	Meta   DocumentMeta            `json:"meta"`
}

// Page 是绑定到一张物理页面的绘制指令序列。
type Page struct {
	Index  int        `json:"index"`
	Texts  []TextBox  `json:"texts"`
	Images []ImageBox `json:"images,omitempty"`
}

// FontResource 描述字体资源，src 为 builtin:* 形式的内置字体名。
type FontResource struct {
	Name  string `json:"name"`
	Src   string `json:"src"`
	Style string `json:"style"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// TextStyle 是一次文本放置所使用的字体、字号与颜色。
type TextStyle struct {
	Font     FontResource `json:"font"`
	FontSize float64      `json:"fontSize"`
	Color    Color        `json:"color"`
}

// TextBox 表示已经确定坐标的一行文本，Y 为基线位置。
type TextBox struct {
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Font     string  `json:"font"`
	FontSize float64 `json:"fontSize"`
	Color    Color   `json:"color"`
}

// ImageBox 描述图片位置与尺寸，(X, Y) 为图片左下角。
type ImageBox struct {
	Data   []byte  `json:"-"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margin 以 pt 为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
