package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back-pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want float64 // pt
	}{
		{"18pt", 18},
		{"12", 12},
		{" 1in ", 72},
		{"10mm", 10 * MmToPt},
		{"2.54cm", 25.4 * MmToPt},
	}
	for _, tc := range cases {
		l, err := ParseLength(tc.in)
		if err != nil {
			t.Fatalf("解析 %q 失败: %v", tc.in, err)
		}
		if diff := math.Abs(l.ToPT() - tc.want); diff > 1e-9 {
			t.Fatalf("%q 转 pt 期望 %g，实际 %g", tc.in, tc.want, l.ToPT())
		}
	}
	if _, err := ParseLength("large"); err == nil {
		t.Fatalf("非数值长度应返回错误")
	}
}

// A4 的宽高应与 210mm × 297mm 一致。
func TestA4Frame(t *testing.T) {
	f := DefaultFrame()
	if diff := math.Abs(f.PageWidth*PtToMm - 210); diff > 1e-9 {
		t.Fatalf("A4 宽度错误: %gpt", f.PageWidth)
	}
	if got := f.ContentWidth(); math.Abs(got-(f.PageWidth-100)) > 1e-9 {
		t.Fatalf("内容宽度错误: %g", got)
	}
	if f.Top() != f.PageHeight-50 {
		t.Fatalf("页顶位置错误: %g", f.Top())
	}
}
