// Package main 是 recipepdf 命令行入口：把菜谱导出归档转换为每个菜谱一个 PDF。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ByLCY/recipepdf/catalog"
	"github.com/ByLCY/recipepdf/pipeline"
	"github.com/ByLCY/recipepdf/theme"
)

var rootCmd = &cobra.Command{
	Use:   "recipepdf",
	Short: "把菜谱导出归档转换为 PDF",
	Long: `recipepdf 读取菜谱导出归档（ZIP，每个成员是一份 JSON 菜谱），
为每个菜谱生成一个 "{标题}.pdf"。单个菜谱失败不会中断其余菜谱，
只有归档本身无法读取时才以非零状态退出。`,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.String("archive", "Crouton_Recipes", "菜谱导出归档路径")
	flags.String("output", "output", "PDF 输出目录")
	flags.String("theme", "", "样式表文件路径（默认使用内置样式）")
	flags.String("catalog", "", "SQLite 转换目录路径（为空则不写）")
	flags.String("report", "", "YAML 运行报告路径（为空则不写）")
	flags.String("debug-layout", "", "排版调试 JSON 输出目录（为空则不写）")
	flags.BoolP("verbose", "v", false, "输出调试日志")
	rootCmd.PersistentFlags().String("config", "", "配置文件（默认 ./recipepdf.yaml 或 ~/.config/recipepdf/recipepdf.yaml）")

	for _, name := range []string{"archive", "output", "theme", "catalog", "report", "debug-layout", "verbose"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("recipepdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "recipepdf"))
		}
	}

	viper.SetEnvPrefix("RECIPEPDF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "使用配置文件:", viper.ConfigFileUsed())
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runConvert(cmd *cobra.Command, _ []string) error {
	logger := newLogger(viper.GetBool("verbose"))

	th := theme.Default()
	if path := viper.GetString("theme"); path != "" {
		loaded, err := theme.Load(path)
		if err != nil {
			return err
		}
		th = loaded
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	started := time.Now()
	cfg := pipeline.Config{
		ArchivePath: viper.GetString("archive"),
		OutputDir:   viper.GetString("output"),
		DebugDir:    viper.GetString("debug-layout"),
		Theme:       th,
		Logger:      logger,
		Status:      cmd.OutOrStdout(),
	}
	sum, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	runID := started.UTC().Format("20060102T150405Z")
	if path := viper.GetString("catalog"); path != "" {
		if err := recordCatalog(ctx, path, runID, sum.Entries); err != nil {
			logger.Error("写入转换目录失败", "file", path, "err", err)
		}
	}
	if path := viper.GetString("report"); path != "" {
		rep := catalog.NewReport(runID, cfg.ArchivePath, cfg.OutputDir, started, sum.Entries)
		if err := catalog.WriteReport(path, rep); err != nil {
			logger.Error("写入运行报告失败", "file", path, "err", err)
		}
	}
	return nil
}

func recordCatalog(ctx context.Context, path, runID string, entries []catalog.Entry) error {
	store, err := catalog.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, runID, entries)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
