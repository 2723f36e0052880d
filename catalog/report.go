package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report 是一次运行的汇总，写成 YAML 供人工查看。
type Report struct {
	RunID     string    `yaml:"run_id"`
	Archive   string    `yaml:"archive"`
	OutputDir string    `yaml:"output_dir"`
	StartedAt time.Time `yaml:"started_at"`
	Converted int       `yaml:"converted"`
	Failed    int       `yaml:"failed"`
	Entries   []Entry   `yaml:"entries"`
}

// NewReport 根据结果列表统计成功与失败数量。
func NewReport(runID, archive, outputDir string, startedAt time.Time, entries []Entry) Report {
	rep := Report{
		RunID:     runID,
		Archive:   archive,
		OutputDir: outputDir,
		StartedAt: startedAt,
		Entries:   entries,
	}
	for _, e := range entries {
		if e.Status == StatusConverted {
			rep.Converted++
		} else {
			rep.Failed++
		}
	}
	return rep
}

// WriteReport 把报告写入 path。
func WriteReport(path string, rep Report) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("序列化报告失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入报告 %s 失败: %w", path, err)
	}
	return nil
}

// ReadReport 读取 WriteReport 写出的报告。
func ReadReport(path string) (Report, error) {
	var rep Report
	data, err := os.ReadFile(path)
	if err != nil {
		return rep, fmt.Errorf("读取报告 %s 失败: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return rep, fmt.Errorf("解析报告 %s 失败: %w", path, err)
	}
	return rep, nil
}
