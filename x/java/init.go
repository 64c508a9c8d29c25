package java

import (
	"github.com/CodMac/go-treesitter-hybrid-grader/collector"
	"github.com/CodMac/go-treesitter-hybrid-grader/grader"
	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// Layout 是 Java 版作业要求的类型层次
var Layout = grader.Layout{
	Base:       "Animal",
	Sub:        "Dog",
	Interfaces: []string{"Flyable", "Runnable"},
	Methods:    []string{"speak", "fly", "run"},
	EntryPoint: EntryMethodName,
	ClassKind:  model.Class,
}

func init() {
	// 注册 Tree-sitter Java 语言对象
	model.RegisterLanguage(model.LangJava, sitter.NewLanguage(tree_sitter_java.Language()))
	// 注册 Collector
	collector.RegisterCollector(model.LangJava, NewJavaCollector())
	// 注册作业层次要求
	grader.RegisterLayout(model.LangJava, Layout)
}
