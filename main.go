package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/CodMac/go-treesitter-hybrid-grader/config"
	"github.com/CodMac/go-treesitter-hybrid-grader/grader"
	"github.com/CodMac/go-treesitter-hybrid-grader/logging"
	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	"github.com/CodMac/go-treesitter-hybrid-grader/output"
	"github.com/CodMac/go-treesitter-hybrid-grader/processor"
	"github.com/google/uuid"
	"go.uber.org/zap"

	// 导入所有语言的实现，以触发其 init() 函数注册语言、Collector 与作业层次
	_ "github.com/CodMac/go-treesitter-hybrid-grader/x/golang"
	_ "github.com/CodMac/go-treesitter-hybrid-grader/x/java"
)

const (
	exitPassed = 0
	exitFailed = 1
	exitError  = 2
)

var (
	inputPath  string
	language   string
	workers    int
	format     string
	outPath    string
	configPath string
	logLevel   string
)

func init() {
	// 命令行参数定义
	flag.StringVar(&inputPath, "path", "", "要检查的源文件或提交目录")
	flag.StringVar(&language, "lang", "", "源码语言 (java, go)，为空时按文件后缀推断")
	flag.IntVar(&workers, "workers", 0, "批量检查的协程数量 (默认 CPU 核心数)")
	flag.StringVar(&format, "format", "", "输出格式: text | jsonl | mermaid")
	flag.StringVar(&outPath, "out", "", "输出文件路径 (默认标准输出)")
	flag.StringVar(&configPath, "config", "", "配置文件路径 (默认向上查找 grader.toml)")
	flag.StringVar(&logLevel, "log-level", "", "日志级别: debug | info | warn | error")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if inputPath == "" && flag.NArg() > 0 {
		inputPath = flag.Arg(0)
	}
	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -path is required")
		flag.Usage()
		return exitError
	}

	// 1. 加载配置，命令行参数优先
	cfg, cfgSource, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return exitError
	}
	applyFlags(cfg)

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	defer logger.Sync()

	if cfgSource != "" {
		logger.Info("config loaded", zap.String("path", cfgSource))
	}

	lang := model.Language(cfg.Grader.Lang)
	if lang != "" {
		if _, err := grader.GetLayout(lang); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Unsupported language: %s\n", lang)
			return exitError
		}
	}

	// 2. 输出目标
	var out io.Writer = os.Stdout
	if cfg.Grader.Out != "" {
		f, err := os.Create(cfg.Grader.Out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return exitError
		}
		defer f.Close()
		out = f
	}

	info, statErr := os.Stat(inputPath)
	if statErr != nil || !info.IsDir() {
		// 单文件且为文本输出时，诊断实时写出
		if cfg.Grader.Format == "text" {
			return gradeSingle(inputPath, lang, out, logger)
		}
		return gradeBatch([]string{inputPath}, lang, cfg, out, logger)
	}

	// 3. 查找目录下所有提交文件
	filePaths, err := discoverFiles(inputPath, lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error discovering files: %v\n", err)
		return exitError
	}
	if len(filePaths) == 0 {
		fmt.Fprintln(os.Stderr, "No source files found to grade.")
		return exitError
	}
	logger.Info("files discovered", zap.String("root", inputPath), zap.Int("count", len(filePaths)))

	return gradeBatch(filePaths, lang, cfg, out, logger)
}

func gradeSingle(path string, lang model.Language, out io.Writer, logger *zap.Logger) int {
	g := grader.New(lang,
		grader.WithReporter(output.NewTextReporter(out)),
		grader.WithLogger(logger),
	)
	res, err := g.Grade(path)
	if err != nil {
		logger.Error("grading failed", zap.String("path", path), zap.Error(err))
		return exitError
	}
	if !res.Passed {
		return exitFailed
	}
	return exitPassed
}

func gradeBatch(filePaths []string, lang model.Language, cfg *config.Config, out io.Writer, logger *zap.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	proc := processor.NewFileProcessor(lang, cfg.Grader.Workers, logger)
	results, err := proc.ProcessFiles(ctx, filePaths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal processing error: %v\n", err)
		return exitError
	}

	// 4. 输出结果
	switch cfg.Grader.Format {
	case "jsonl":
		runID := uuid.NewString()
		if _, err := output.NewJSONLWriter(out).WriteResults(runID, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return exitError
		}
		logger.Info("results written", zap.String("run_id", runID))
	case "mermaid":
		err = output.ExportMermaidHTML(out, results)
	default:
		err = output.WriteResultsText(out, results)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return exitError
	}

	for _, res := range results {
		if !res.Passed {
			return exitFailed
		}
	}
	return exitPassed
}

func loadConfig() (*config.Config, string, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		return cfg, configPath, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig(), "", nil
	}
	return config.FindAndLoad(wd)
}

// applyFlags 仅覆盖命令行中显式给出的参数
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lang":
			cfg.Grader.Lang = language
		case "workers":
			cfg.Grader.Workers = workers
		case "format":
			cfg.Grader.Format = format
		case "out":
			cfg.Grader.Out = outPath
		case "log-level":
			cfg.Log.Level = logLevel
		}
	})
}

// discoverFiles 递归查找目录下所有可检查的源文件；lang 为空时收集所有已支持的后缀
func discoverFiles(root string, lang model.Language) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// 忽略隐藏目录
		if d.IsDir() && path != root && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}

		if lang != "" {
			if filepath.Ext(path) == lang.FileExtension() {
				files = append(files, path)
			}
			return nil
		}
		if detected, err := model.DetectLanguage(path); err == nil {
			if _, err := grader.GetLayout(detected); err == nil {
				files = append(files, path)
			}
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}
