package document

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/webp"

	"github.com/ByLCY/recipepdf/layout"
)

// ImageSlot 是右上角图片框的边长（pt）。
const ImageSlot = 150.0

// fitImage 把图片等比缩放进右上角的图片框，右边与上边贴住页边距。
// 图片会被完整解码一次，像素数据损坏的图片在这里就被拒绝，不会带到渲染阶段。
func fitImage(data []byte, frame layout.Frame) (layout.ImageBox, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return layout.ImageBox{}, err
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return layout.ImageBox{}, fmt.Errorf("图片尺寸无效 %dx%d", bounds.Dx(), bounds.Dy())
	}
	scale := math.Min(ImageSlot/float64(bounds.Dx()), ImageSlot/float64(bounds.Dy()))
	w := float64(bounds.Dx()) * scale
	h := float64(bounds.Dy()) * scale
	return layout.ImageBox{
		Data:   data,
		X:      frame.PageWidth - frame.Margin.Right - w,
		Y:      frame.PageHeight - frame.Margin.Top - h,
		Width:  w,
		Height: h,
	}, nil
}
