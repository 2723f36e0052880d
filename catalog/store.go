package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store 把转换结果写入 SQLite 数据库，多次运行累积在同一张表中。
type Store struct {
	db *sql.DB
}

// NewStore 打开或创建 path 处的数据库，并在需要时建表。
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建目录失败: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("创建表结构失败: %w", err)
	}
	return s, nil
}

// Close 关闭数据库连接。
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			source TEXT NOT NULL,
			title TEXT,
			file TEXT,
			pages INTEGER,
			ingredients INTEGER,
			steps INTEGER,
			prep_minutes INTEGER,
			cook_minutes INTEGER,
			tags TEXT,
			status TEXT NOT NULL,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_title ON conversions(title)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("执行建表语句失败: %w", err)
		}
	}
	return nil
}

// Record 在一个事务中写入一次运行的全部结果。
func (s *Store) Record(ctx context.Context, runID string, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO conversions
		(run_id, source, title, file, pages, ingredients, steps, prep_minutes, cook_minutes, tags, status, error, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("准备插入语句失败: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			runID, e.Source, e.Title, e.File, e.Pages, e.Ingredients, e.Steps,
			e.PrepMinutes, e.CookMinutes, encodeTags(e.Tags), e.Status, e.Error,
			e.ConvertedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", e.Source, err)
		}
	}
	return tx.Commit()
}

// Entries 按写入顺序返回某次运行的结果。
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source, title, file, pages, ingredients, steps,
		prep_minutes, cook_minutes, tags, status, error, converted_at
		FROM conversions WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("查询失败: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			tags        string
			convertedAt string
		)
		if err := rows.Scan(&e.Source, &e.Title, &e.File, &e.Pages, &e.Ingredients, &e.Steps,
			&e.PrepMinutes, &e.CookMinutes, &tags, &e.Status, &e.Error, &convertedAt); err != nil {
			return nil, fmt.Errorf("读取结果行失败: %w", err)
		}
		if e.Tags, err = decodeTags(tags); err != nil {
			return nil, fmt.Errorf("解析 %s 的标签失败: %w", e.Source, err)
		}
		if t, err := time.Parse(time.RFC3339, convertedAt); err == nil {
			e.ConvertedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// encodeTags 以 JSON 数组保存标签，标签内可以包含逗号；没有标签时存空字符串。
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
