package recipe

import "fmt"

// MissingFieldError 表示某个配料条目缺少必需的嵌套字段（配料名称）。
// 该条目会被跳过，菜谱其余部分照常处理。
type MissingFieldError struct {
	Index int    // ingredients 数组中的下标
	Field string // 缺失字段的路径，例如 "ingredient.name"
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("recipe: ingredients[%d] 缺少字段 %s", e.Index, e.Field)
}

// MalformedQuantityError 表示无法识别的数量单位代码，渲染时使用占位后缀代替。
type MalformedQuantityError struct {
	Index int
	Code  string
}

func (e *MalformedQuantityError) Error() string {
	return fmt.Sprintf("recipe: ingredients[%d] 未知的数量单位 %q", e.Index, e.Code)
}

// DecodeError 表示图片负载无法解码，文档仍会生成，只是不绘制图片。
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recipe: 解码 %s 失败: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("recipe: 解码 %s 失败", e.Field)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
