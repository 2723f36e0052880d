package fonts

import (
	"bytes"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{"builtin:go-regular", "go-bold"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("读取内置字体 %s 失败: %v", name, err)
		}
		// TrueType 文件以 0x00010000 开头
		if !bytes.HasPrefix(data, []byte{0, 1, 0, 0}) {
			t.Fatalf("%s 不是 TrueType 数据", name)
		}
	}
	if _, err := Load("builtin:inter"); err == nil {
		t.Fatalf("未知字体应返回错误")
	}
}
