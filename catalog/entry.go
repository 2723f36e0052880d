// Package catalog 记录每次转换的结果：SQLite 转换目录与 YAML 运行报告。
package catalog

import "time"

// 转换状态。
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
)

// Entry 是一个归档成员的处理结果。
type Entry struct {
	Source      string    `yaml:"source"`
	Title       string    `yaml:"title,omitempty"`
	File        string    `yaml:"file,omitempty"`
	Pages       int       `yaml:"pages,omitempty"`
	Ingredients int       `yaml:"ingredients"`
	Steps       int       `yaml:"steps"`
	PrepMinutes int       `yaml:"prep_minutes,omitempty"`
	CookMinutes int       `yaml:"cook_minutes,omitempty"`
	Tags        []string  `yaml:"tags,omitempty"`
	Status      string    `yaml:"status"`
	Error       string    `yaml:"error,omitempty"`
	Warnings    []string  `yaml:"warnings,omitempty"`
	ConvertedAt time.Time `yaml:"converted_at"`
}
