// Package grader 实现混合继承作业的结构检查：解析单个源文件，
// 依次验证类型层次、子类型上的方法声明以及入口方法中的调用，给出通过/不通过的结论。
package grader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/CodMac/go-treesitter-hybrid-grader/collector"
	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	"github.com/CodMac/go-treesitter-hybrid-grader/parser"
	"go.uber.org/zap"
)

// Reporter 接收检查过程中产生的诊断
type Reporter interface {
	Report(f *model.Finding)
}

// Grader 对单个文件执行一次性的结构检查
type Grader struct {
	Language model.Language // 为空时按文件后缀推断
	reporter Reporter
	logger   *zap.Logger
}

// Option 配置 Grader
type Option func(*Grader)

// WithReporter 设置诊断输出
func WithReporter(r Reporter) Option {
	return func(g *Grader) { g.reporter = r }
}

// WithLogger 设置运行日志
func WithLogger(l *zap.Logger) Option {
	return func(g *Grader) {
		if l != nil {
			g.logger = l
		}
	}
}

// New 创建 Grader；lang 为空表示自动识别
func New(lang model.Language, opts ...Option) *Grader {
	g := &Grader{
		Language: lang,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Grade 检查 filePath 是否实现了要求的类型层次并在入口方法中使用了它。
//
// 文件不存在时返回未通过的结果且 error 为 nil；无法解析时返回的 error 为 *parser.ParseError。
// 解析成功后，所有结构缺失都体现为 Passed=false，而不是 error。
func (g *Grader) Grade(filePath string) (*model.Result, error) {
	start := time.Now()

	lang := g.Language
	if lang == "" {
		// 先确认文件存在，缺失的文件无论后缀如何都只是未通过
		if _, err := os.Stat(filePath); errors.Is(err, fs.ErrNotExist) {
			r := &run{
				reporter: g.reporter,
				result:   &model.Result{FilePath: filePath},
			}
			r.fileMissing(fmt.Errorf("%w: %s", parser.ErrFileNotFound, filePath))
			return r.result, nil
		}
		detected, err := model.DetectLanguage(filePath)
		if err != nil {
			return nil, err
		}
		lang = detected
	}

	layout, err := GetLayout(lang)
	if err != nil {
		return nil, err
	}
	coll, err := collector.GetCollector(lang)
	if err != nil {
		return nil, err
	}

	r := &run{
		reporter: g.reporter,
		layout:   layout,
		result: &model.Result{
			FilePath: filePath,
			Language: lang,
			Facts:    model.NewFacts(layout.RequiredTypes(), layout.Interfaces, layout.Methods),
		},
	}
	res := r.result

	r.info(model.PhaseLoad, nil, "Starting hybrid inheritance check with file: %s", filePath)

	p, err := parser.NewParser(lang)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	unit, err := p.ParseFile(filePath)
	if err != nil {
		if errors.Is(err, parser.ErrFileNotFound) {
			r.fileMissing(err)
			return res, nil
		}
		res.Err = err.Error()
		var perr *parser.ParseError
		if errors.As(err, &perr) && perr.Line > 0 {
			r.fail(model.PhaseLoad, &model.Location{FilePath: filePath, StartLine: perr.Line, EndLine: perr.Line, StartColumn: perr.Column}, "Error parsing the file: %v", err)
		} else {
			r.fail(model.PhaseLoad, nil, "Error parsing the file: %v", err)
		}
		r.finish(false)
		return res, err
	}
	defer unit.Close()

	r.ok(model.PhaseLoad, nil, "Parsed the %s file successfully.", lang)

	outline, err := coll.Collect(unit)
	if err != nil {
		res.Err = err.Error()
		r.fail(model.PhaseLoad, nil, "Error collecting declarations: %v", err)
		r.finish(false)
		return res, fmt.Errorf("failed to collect %s: %w", filePath, err)
	}
	res.Outline = outline

	passed := r.checkHierarchy(outline) && r.checkOverrides(outline) && r.checkInvocation(outline)
	r.finish(passed)

	g.logger.Debug("graded file",
		zap.String("path", filePath),
		zap.String("language", string(lang)),
		zap.Bool("passed", passed),
		zap.Int("types", len(outline.Types)),
		zap.Int("methods", len(outline.Methods)),
		zap.Int("entry_calls", len(outline.EntryCalls)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// run 是一次检查的临时状态，检查结束即丢弃
type run struct {
	reporter Reporter
	layout   Layout
	result   *model.Result
}

// checkHierarchy 单次遍历全部类型声明，记录类型存在性、继承与接口实现
func (r *run) checkHierarchy(outline *model.Outline) bool {
	l, facts := r.layout, r.result.Facts

	for _, t := range outline.Types {
		// 同名但种类不符的声明 (如 enum Animal) 不计入
		if !l.Accepts(t) {
			continue
		}
		if facts.MarkType(t.Name) {
			r.ok(model.PhaseHierarchy, t.Location, "%s '%s' found.", kindLabel(t.Kind), t.Name)
		}
		if t.Name != l.Sub {
			continue
		}

		if slices.Contains(t.Extends, l.Base) {
			if !facts.Extends {
				facts.MarkExtends()
				r.ok(model.PhaseHierarchy, t.Location, "'%s' extends '%s'.", l.Sub, l.Base)
			}
		} else {
			r.fail(model.PhaseHierarchy, t.Location, "'%s' does not extend '%s'.", l.Sub, l.Base)
		}

		for _, iface := range t.Implements {
			if facts.MarkImplements(iface) {
				r.ok(model.PhaseHierarchy, t.Location, "'%s' implements '%s'.", l.Sub, iface)
			}
		}
	}

	if missing := facts.MissingTypes(l.RequiredTypes()); len(missing) > 0 {
		r.fail(model.PhaseHierarchy, nil, "One or more required types (%s) are missing: %s.",
			quoteJoin(l.RequiredTypes()), quoteJoin(missing))
		return false
	}
	if !facts.Extends {
		r.fail(model.PhaseHierarchy, nil, "'%s' must extend '%s'.", l.Sub, l.Base)
		return false
	}
	for _, iface := range l.Interfaces {
		if !facts.Implements[iface] {
			r.fail(model.PhaseHierarchy, nil, "'%s' must implement '%s'.", l.Sub, iface)
			return false
		}
	}
	return true
}

// checkOverrides 单次遍历全部方法声明，记录子类型中声明的方法
func (r *run) checkOverrides(outline *model.Outline) bool {
	l, facts := r.layout, r.result.Facts

	for _, m := range outline.Methods {
		if m.Parent == l.Sub && facts.MarkOverride(m.Name) {
			r.ok(model.PhaseOverride, m.Location, "Method '%s' implemented in '%s'.", m.Name, l.Sub)
		}
	}

	if missing := facts.MissingOverrides(l.Methods); len(missing) > 0 {
		r.fail(model.PhaseOverride, nil, "One or more methods (%s) are not implemented in '%s': missing %s.",
			quoteJoin(l.Methods), l.Sub, quoteJoin(missing))
		return false
	}
	return true
}

// checkInvocation 遍历入口方法中的调用，任一要求的方法被调用即视为通过。
// 不校验调用的接收者类型。
func (r *run) checkInvocation(outline *model.Outline) bool {
	l, facts := r.layout, r.result.Facts

	for _, call := range outline.EntryCalls {
		if slices.Contains(l.Methods, call.Name) {
			facts.MarkInvoked()
			r.ok(model.PhaseInvocation, call.Location, "Method '%s' is executed in the %s method.", call.Name, l.EntryPoint)
		}
	}

	if !facts.Invoked {
		r.fail(model.PhaseInvocation, nil, "Methods (%s) are not executed in the %s method.", quoteJoin(l.Methods), l.EntryPoint)
		return false
	}
	return true
}

func (r *run) fileMissing(err error) {
	r.result.Err = err.Error()
	r.fail(model.PhaseLoad, nil, "File does not exist at path: %s", r.result.FilePath)
	r.finish(false)
}

func (r *run) finish(passed bool) {
	r.result.Passed = passed
	if passed {
		r.emit(model.PhaseVerdict, model.SeverityOK, nil, "Test passed: hybrid inheritance is correctly implemented.")
		return
	}
	r.emit(model.PhaseVerdict, model.SeverityError, nil, "Test failed: hybrid inheritance is not correctly implemented.")
}

func (r *run) info(phase model.Phase, loc *model.Location, format string, args ...any) {
	r.emit(phase, model.SeverityInfo, loc, format, args...)
}

func (r *run) ok(phase model.Phase, loc *model.Location, format string, args ...any) {
	r.emit(phase, model.SeverityOK, loc, format, args...)
}

func (r *run) fail(phase model.Phase, loc *model.Location, format string, args ...any) {
	r.emit(phase, model.SeverityError, loc, format, args...)
}

func (r *run) emit(phase model.Phase, sev model.Severity, loc *model.Location, format string, args ...any) {
	f := &model.Finding{
		Phase:    phase,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
	r.result.Findings = append(r.result.Findings, f)
	if r.reporter != nil {
		r.reporter.Report(f)
	}
}

func kindLabel(k model.ElementKind) string {
	switch k {
	case model.Class:
		return "Class"
	case model.Interface:
		return "Interface"
	case model.Struct:
		return "Struct"
	case model.Enum:
		return "Enum"
	case model.Record:
		return "Record"
	default:
		return "Type"
	}
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, ", ")
}
