// Package binding 提供对松散结构记录（JSON 解码得到的 map/slice）的路径访问与模板插值。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return match
		}
		if val, ok := Lookup(data, path); ok && val != nil {
			return Format(val)
		}
		return match
	})
}

// Lookup 按 "a.b[0].c" 形式的路径在 data 中取值。
// 路径上任意一段缺失（或类型不符）时返回 false；值为 JSON null 时返回 (nil, true)。
func Lookup(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			current, ok = descendMap(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// String 取出路径上的非空字符串；数字等标量会被格式化为字符串。
func String(data any, path string) (string, bool) {
	val, ok := Lookup(data, path)
	if !ok || val == nil {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, v != ""
	case map[string]any, []any:
		return "", false
	default:
		return Format(v), true
	}
}

// Number 取出路径上的数值，兼容以字符串书写的数字。
func Number(data any, path string) (float64, bool) {
	val, ok := Lookup(data, path)
	if !ok || val == nil {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Slice 取出路径上的数组。
func Slice(data any, path string) ([]any, bool) {
	val, ok := Lookup(data, path)
	if !ok {
		return nil, false
	}
	arr, ok := val.([]any)
	return arr, ok
}

// Format 把标量转为展示用字符串：整数值的浮点数不带小数部分。
func Format(val any) string {
	switch v := val.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func parseSegment(segment string) (string, []string) {
	name := segment
	indexes := []string{}
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 {
			if rest[0] != '[' {
				break
			}
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
