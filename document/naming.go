package document

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const untitled = "Untitled Recipe"

// FileName 由菜谱标题得到 "{title}.pdf"。
// 标题先做 NFC 规范化，路径分隔符、Windows 保留字符与控制字符替换为 "_"。
func FileName(title string) string {
	return baseName(title) + ".pdf"
}

func baseName(title string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, norm.NFC.String(title))
	clean = strings.TrimSpace(clean)
	clean = strings.TrimRight(clean, ".")
	if clean == "" || clean == "_" {
		return untitled
	}
	return clean
}

// Namer 为一次运行中的菜谱分配互不冲突的文件名。
// 同名标题依次得到 "Tea.pdf"、"Tea (2).pdf"、"Tea (3).pdf"。
type Namer struct {
	mu   sync.Mutex
	seen map[string]int
}

// NewNamer 创建空的 Namer。
func NewNamer() *Namer {
	return &Namer{seen: map[string]int{}}
}

// Next 返回 title 对应的下一个可用文件名（不含目录）。
func (n *Namer) Next(title string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	base := baseName(title)
	for {
		// 大小写不敏感的文件系统上 "tea.pdf" 与 "Tea.pdf" 是同一个文件
		key := strings.ToLower(base)
		n.seen[key]++
		count := n.seen[key]
		if count == 1 {
			return base + ".pdf"
		}
		candidate := fmt.Sprintf("%s (%d)", base, count)
		if _, taken := n.seen[strings.ToLower(candidate)]; !taken {
			n.seen[strings.ToLower(candidate)] = 1
			return candidate + ".pdf"
		}
	}
}
