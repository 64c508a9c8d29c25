package output

import (
	"fmt"
	"html"
	"io"
	"path/filepath"
	"strings"

	"github.com/CodMac/go-treesitter-hybrid-grader/model"
)

// ExportMermaidHTML 生成包含 Mermaid.js 渲染逻辑的静态网页，展示每个文件收集到的类型层次
func ExportMermaidHTML(w io.Writer, results []*model.Result) error {
	var sb strings.Builder

	// 1. 写入 HTML 模板头部
	sb.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Hybrid Inheritance Submissions</title>
    <script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script>
    <style>
        body { font-family: -apple-system, sans-serif; background: #f0f2f5; margin: 20px; }
        .mermaid { background: white; padding: 20px; border-radius: 12px; box-shadow: 0 4px 15px rgba(0,0,0,0.1); }
        h1 { color: #1a1a1a; text-align: center; }
        h2.pass { color: #1a7f37; }
        h2.fail { color: #cf222e; }
    </style>
</head>
<body>
    <h1>Type Hierarchy</h1>
`)

	// 2. 每个文件一张 classDiagram
	for _, res := range results {
		class := "fail"
		if res.Passed {
			class = "pass"
		}
		fmt.Fprintf(&sb, "    <h2 class=\"%s\">%s</h2>\n", class, html.EscapeString(filepath.Base(res.FilePath)))
		if res.Outline == nil {
			fmt.Fprintf(&sb, "    <p>%s</p>\n", html.EscapeString(res.Err))
			continue
		}
		sb.WriteString("    <div class=\"mermaid\">\n")
		sb.WriteString(ClassDiagram(res.Outline))
		sb.WriteString("    </div>\n")
	}

	// 3. 写入脚本初始化和结尾
	sb.WriteString(`    <script>
        mermaid.initialize({ startOnLoad: true, theme: 'default' });
    </script>
</body>
</html>
`)

	_, err := io.WriteString(w, sb.String())
	return err
}

// ClassDiagram 将 Outline 转换为 Mermaid classDiagram 文本
func ClassDiagram(outline *model.Outline) string {
	var sb strings.Builder
	sb.WriteString("    classDiagram\n")

	methods := make(map[string][]string)
	for _, m := range outline.Methods {
		if m.Parent != "" {
			methods[m.Parent] = append(methods[m.Parent], m.Name)
		}
	}

	for _, t := range outline.Types {
		id := safeID(t.Name)
		fmt.Fprintf(&sb, "    class %s {\n", id)
		if t.Kind == model.Interface {
			sb.WriteString("        <<interface>>\n")
		}
		for _, m := range methods[t.Name] {
			fmt.Fprintf(&sb, "        +%s()\n", m)
		}
		sb.WriteString("    }\n")
	}

	// 继承使用实线箭头，实现使用虚线箭头
	for _, t := range outline.Types {
		for _, base := range t.Extends {
			fmt.Fprintf(&sb, "    %s <|-- %s\n", safeID(base), safeID(t.Name))
		}
		for _, iface := range t.Implements {
			fmt.Fprintf(&sb, "    %s <|.. %s\n", safeID(iface), safeID(t.Name))
		}
	}
	return sb.String()
}

// safeID 确保名称符合 Mermaid 的 ID 命名规范
func safeID(id string) string {
	r := strings.NewReplacer(".", "_", "/", "_", "-", "_", "\\", "_", ":", "_", "@", "_", "<", "_", ">", "_")
	return r.Replace(id)
}
