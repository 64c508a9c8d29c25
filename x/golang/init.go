package golang

import (
	"github.com/CodMac/go-treesitter-hybrid-grader/collector"
	"github.com/CodMac/go-treesitter-hybrid-grader/grader"
	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

// Layout 是 Go 版作业要求的类型层次：Dog 嵌入 Animal，方法名为导出形式
var Layout = grader.Layout{
	Base:       "Animal",
	Sub:        "Dog",
	Interfaces: []string{"Flyable", "Runnable"},
	Methods:    []string{"Speak", "Fly", "Run"},
	EntryPoint: EntryFunctionName,
	ClassKind:  model.Struct,
}

func init() {
	// 注册 Tree-sitter Go 语言对象
	model.RegisterLanguage(model.LangGo, sitter.NewLanguage(tree_sitter_go.Language()))
	// 注册 Collector
	collector.RegisterCollector(model.LangGo, NewGoCollector())
	// 注册作业层次要求
	grader.RegisterLayout(model.LangGo, Layout)
}
