package document

import "fmt"

// RenderError 表示单个菜谱的文档无法生成或写出。
// 它只影响该菜谱，调用方应继续处理其余菜谱。
type RenderError struct {
	Title string
	Op    string // compose / render / save
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("document: %s %q 失败: %v", e.Op, e.Title, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
