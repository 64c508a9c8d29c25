package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/CodMac/go-treesitter-hybrid-grader/grader"
	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FileProcessor 负责并发检查多个提交文件，并按输入顺序汇总结果。
type FileProcessor struct {
	Language model.Language // 为空时逐个文件按后缀推断
	Workers  int            // 并发协程数量
	logger   *zap.Logger
}

// NewFileProcessor 创建 FileProcessor 实例
func NewFileProcessor(lang model.Language, workers int, logger *zap.Logger) *FileProcessor {
	if workers <= 0 {
		workers = 4 // 默认并发数
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileProcessor{
		Language: lang,
		Workers:  workers,
		logger:   logger,
	}
}

// ProcessFiles 检查全部文件。单个文件的解析或读取错误会记录在其结果中，
// 只有 ctx 被取消时整体返回错误。
func (fp *FileProcessor) ProcessFiles(ctx context.Context, filePaths []string) ([]*model.Result, error) {
	if len(filePaths) == 0 {
		return nil, nil
	}

	start := time.Now()
	results := make([]*model.Result, len(filePaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fp.Workers)

	for i, filePath := range filePaths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = fp.gradeOne(filePath)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("grading interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("grading interrupted: %w", err)
	}

	passed := 0
	for _, res := range results {
		if res != nil && res.Passed {
			passed++
		}
	}
	fp.logger.Info("batch graded",
		zap.Int("files", len(filePaths)),
		zap.Int("passed", passed),
		zap.Int("workers", fp.Workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

// gradeOne 每次调用创建独立的 Grader 与解析器，tree-sitter 解析器不能跨协程共享
func (fp *FileProcessor) gradeOne(filePath string) *model.Result {
	g := grader.New(fp.Language, grader.WithLogger(fp.logger))
	res, err := g.Grade(filePath)
	if err != nil {
		fp.logger.Warn("grading failed", zap.String("path", filePath), zap.Error(err))
		if res == nil {
			res = &model.Result{FilePath: filePath, Language: fp.Language}
		}
		res.Passed = false
		res.Err = err.Error()
	}
	return res
}
