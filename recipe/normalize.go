package recipe

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/ByLCY/recipepdf/binding"
)

// Normalizer 按给定默认值规范化菜谱记录。
type Normalizer struct {
	Defaults Defaults
}

// Normalize 使用 StandardDefaults 规范化一条记录。
func Normalize(record any) (Recipe, Report) {
	return Normalizer{Defaults: StandardDefaults()}.Normalize(record)
}

// Normalize 把 JSON 解码得到的记录转换为 Recipe。
// 可选字段缺失时使用默认值，不会失败；配料缺少名称时记录 MissingFieldError 并跳过该条目。
func (n Normalizer) Normalize(record any) (Recipe, Report) {
	var rep Report
	r := Recipe{}

	if title, ok := binding.String(record, "name"); ok {
		r.Title = title
	} else {
		r.Title = n.Defaults.Title
		rep.defaulted("name")
	}

	if serves, ok := binding.String(record, "serves"); ok {
		r.ServesLabel = serves
	} else {
		r.ServesLabel = n.Defaults.Serves
		rep.defaulted("serves")
	}

	if img, ok := binding.String(record, "images[0]"); ok {
		data, err := decodeImage(img)
		if err != nil {
			rep.problem(&DecodeError{Field: "images[0]", Err: err})
		} else {
			r.Image = data
		}
	}

	if minutes, ok := binding.Number(record, "duration"); ok && minutes > 0 {
		r.PrepTime = time.Duration(minutes * float64(time.Minute))
	}
	if minutes, ok := binding.Number(record, "cookingDuration"); ok && minutes > 0 {
		r.CookTime = time.Duration(minutes * float64(time.Minute))
	}
	if tags, ok := binding.Slice(record, "tags"); ok {
		for _, tag := range tags {
			if s, ok := tag.(string); ok && s != "" {
				r.Tags = append(r.Tags, s)
			}
		}
	}

	r.Ingredients = n.ingredients(record, &rep)
	r.Instructions = instructions(record, &rep)
	return r, rep
}

func (n Normalizer) ingredients(record any, rep *Report) []IngredientLine {
	entries, _ := binding.Slice(record, "ingredients")
	lines := make([]IngredientLine, 0, len(entries))
	for i, entry := range entries {
		name, ok := ingredientName(entry)
		if !ok {
			rep.problem(&MissingFieldError{Index: i, Field: "ingredient.name"})
			continue
		}

		code := n.Defaults.Unit
		if c, ok := binding.String(entry, "quantity.quantityType"); ok {
			code = c
		}
		unit, known := ParseUnit(code)
		if !known {
			rep.problem(&MalformedQuantityError{Index: i, Code: code})
		}

		var label string
		if amount, ok := binding.Number(entry, "quantity.amount"); ok {
			label = FormatQuantity(amount, unit)
		} else if raw, ok := binding.String(entry, "quantity.amount"); ok && unit != UnitSection {
			label = raw + unit.Suffix()
		} else {
			label = FormatQuantity(n.Defaults.Amount, unit)
		}

		lines = append(lines, IngredientLine{
			DisplayName:   name,
			QuantityLabel: label,
			Unit:          unit,
		})
	}
	return lines
}

// ingredientName 区分缺失与空名称：只有字段不存在（或为 null）才算缺失，空字符串照常输出。
func ingredientName(entry any) (string, bool) {
	val, ok := binding.Lookup(entry, "ingredient.name")
	if !ok || val == nil {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case map[string]any, []any:
		return "", false
	default:
		return binding.Format(v), true
	}
}

// instructions 按数组顺序输出步骤文本，不按 order 字段重新排序。
func instructions(record any, rep *Report) []string {
	steps, _ := binding.Slice(record, "steps")
	out := make([]string, 0, len(steps))
	var (
		last float64
		seen bool
	)
	for _, step := range steps {
		text, _ := binding.String(step, "step")
		out = append(out, text)

		if order, ok := binding.Number(step, "order"); ok {
			if seen && order < last {
				rep.StepsOutOfOrder = true
			}
			last, seen = order, true
		}
	}
	return out
}

func decodeImage(payload string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, payload)
	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("图片数据为空")
	}
	return data, nil
}
