// Package recipe 把导出文件中结构松散的菜谱记录规范化为渲染所需的固定结构。
package recipe

import "time"

// Recipe 是规范化后的菜谱，创建后不再修改，由文档渲染器消费一次。
type Recipe struct {
	Title        string
	ServesLabel  string
	Image        []byte // 已解码的图片字节，缺失时为 nil
	Ingredients  []IngredientLine
	Instructions []string

	PrepTime time.Duration // 0 表示未知
	CookTime time.Duration // 0 表示未知
	Tags     []string
}

// IngredientLine 是一条配料：展示名称与预先格式化好的数量标签（如 "200gr"、"3"、"--section--"）。
type IngredientLine struct {
	DisplayName   string
	QuantityLabel string
	Unit          QuantityUnit
}

// IsSection 表示该条目只是配料列表中的分节标题。
func (l IngredientLine) IsSection() bool {
	return l.Unit == UnitSection
}

// Defaults 是字段缺失时使用的替代值。
type Defaults struct {
	Title  string
	Serves string
	Amount float64
	Unit   string
}

// StandardDefaults 返回导出格式约定的默认值。
func StandardDefaults() Defaults {
	return Defaults{
		Title:  "Untitled Recipe",
		Serves: "unknown",
		Amount: 1,
		Unit:   "ITEM",
	}
}

// Report 记录一次规范化中使用了默认值的字段与遇到的问题，
// 便于调用方区分“使用了默认值”与“数据有误”。
type Report struct {
	Defaulted []string
	Problems  []error
	// StepsOutOfOrder 为真表示 steps 的 order 字段不是递增的；
	// 步骤仍按数组顺序输出。
	StepsOutOfOrder bool
}

func (r *Report) defaulted(field string) {
	r.Defaulted = append(r.Defaulted, field)
}

func (r *Report) problem(err error) {
	r.Problems = append(r.Problems, err)
}
