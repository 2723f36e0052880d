// Package archive 读取菜谱导出归档：一个 ZIP 文件，每个成员是一份 JSON 菜谱。
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
)

// Member 是归档中的一个文件成员。
type Member struct {
	Name string
	Data []byte
}

// ArchiveError 表示归档本身无法打开或读取，整个运行随之失败。
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive: 无法读取归档 %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// Open 读取 path 指向的归档并返回全部文件成员，目录成员被跳过。
// 成员按名称排序，保证每次运行的处理顺序一致。
func Open(path string) ([]Member, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}
	defer zr.Close()

	members := make([]Member, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readMember(f)
		if err != nil {
			return nil, &ArchiveError{Path: path, Err: fmt.Errorf("读取成员 %s 失败: %w", f.Name, err)}
		}
		members = append(members, Member{Name: f.Name, Data: data})
	}
	sort.SliceStable(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
