package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/CodMac/go-treesitter-hybrid-grader/model"
)

// phaseTitles 是各检查阶段在控制台输出中的分节标题
var phaseTitles = map[model.Phase]string{
	model.PhaseHierarchy:  "Inheritance and Interface Implementation Check",
	model.PhaseOverride:   "Method Override Check",
	model.PhaseInvocation: "Method Execution Check in Entry Point",
}

// TextReporter 将诊断逐行写入控制台流，阶段变化时输出分节标题。
// 实现了 grader.Reporter。
type TextReporter struct {
	w         io.Writer
	mu        sync.Mutex
	lastPhase model.Phase
}

func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

func (r *TextReporter) Report(f *model.Finding) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.Phase != r.lastPhase {
		if title, ok := phaseTitles[f.Phase]; ok {
			fmt.Fprintf(r.w, "------ %s ------\n", title)
		}
		r.lastPhase = f.Phase
	}
	fmt.Fprintln(r.w, FormatFinding(f))
}

// Reset 让下一条诊断重新输出分节标题，用于多个文件依次输出
func (r *TextReporter) Reset() {
	r.mu.Lock()
	r.lastPhase = ""
	r.mu.Unlock()
}

// FormatFinding 返回单条诊断的文本形式
func FormatFinding(f *model.Finding) string {
	prefix := ""
	switch f.Severity {
	case model.SeverityError:
		prefix = "Error: "
	}
	if f.Location != nil && f.Location.StartLine > 0 {
		return fmt.Sprintf("%s%s (line %d)", prefix, f.Message, f.Location.StartLine)
	}
	return prefix + f.Message
}

// WriteResultsText 按顺序输出多份检查结果及汇总
func WriteResultsText(w io.Writer, results []*model.Result) error {
	reporter := NewTextReporter(w)
	passed := 0
	for _, res := range results {
		if _, err := fmt.Fprintf(w, "==== %s ====\n", res.FilePath); err != nil {
			return err
		}
		reporter.Reset()
		for _, f := range res.Findings {
			reporter.Report(f)
		}
		if res.Passed {
			passed++
		}
	}
	_, err := fmt.Fprintf(w, "\n%d/%d files passed.\n", passed, len(results))
	return err
}
