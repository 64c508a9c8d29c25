package collector

import (
	"fmt"

	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	"github.com/CodMac/go-treesitter-hybrid-grader/parser"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Collector 用于收集检查所需的声明与调用。
type Collector interface {
	// Collect 负责单次遍历 AST，返回该文件的 Outline。
	Collect(unit *parser.Unit) (*model.Outline, error)
}

var collectorMap = make(map[model.Language]Collector)

// RegisterCollector 注册一个语言与其对应的 Collector
func RegisterCollector(lang model.Language, collector Collector) {
	collectorMap[lang] = collector
}

// GetCollector 根据语言类型获取对应的 Collector 实例。
func GetCollector(lang model.Language) (Collector, error) {
	collector, ok := collectorMap[lang]
	if !ok {
		return nil, fmt.Errorf("no collector registered for language: %s", lang)
	}

	return collector, nil
}

// NodeText 返回节点对应的源码文本
func NodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(source)
}

// NodeLocation 将节点位置转换为 model.Location (行号 1-based)
func NodeLocation(n *sitter.Node, filePath string) *model.Location {
	if n == nil {
		return nil
	}
	return &model.Location{
		FilePath:    filePath,
		StartLine:   int(n.StartPosition().Row) + 1,
		EndLine:     int(n.EndPosition().Row) + 1,
		StartColumn: int(n.StartPosition().Column),
		EndColumn:   int(n.EndPosition().Column),
	}
}

// NamedChildOfKind 返回第一个类型为 kind 的具名子节点
func NamedChildOfKind(n *sitter.Node, kind string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
