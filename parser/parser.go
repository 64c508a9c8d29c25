package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrFileNotFound 表示待解析的路径不存在
var ErrFileNotFound = errors.New("file not found")

// ParseError 表示源文件无法被解析为完整的语法树
type ParseError struct {
	FilePath string
	Line     int // 第一个错误节点所在行 (1-based)，未知时为 0
	Column   int
	Reason   string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s at %d:%d: %s", e.FilePath, e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.FilePath, e.Reason)
}

// Parser 定义了所有语言解析器的通用能力
type Parser interface {
	// ParseFile 读取文件内容并使用相应的 Tree-sitter 语言库进行解析
	ParseFile(filePath string) (*Unit, error)
	Close()
}

// Unit 持有一次解析的语法树及其源码。节点的生命周期依附于 tree，用完需 Close。
type Unit struct {
	FilePath string
	Language model.Language
	Source   []byte
	tree     *sitter.Tree
}

// Root 返回语法树根节点
func (u *Unit) Root() *sitter.Node {
	return u.tree.RootNode()
}

// Close 释放语法树
func (u *Unit) Close() {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
}

// TreeSitterParser 是 Parser 的具体实现
type TreeSitterParser struct {
	Language model.Language // 当前解析器针对的语言
	tsParser *sitter.Parser
}

// NewParser 创建一个新的 TreeSitterParser 实例
func NewParser(lang model.Language) (*TreeSitterParser, error) {
	tsLang, err := model.GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	tsParser := sitter.NewParser()
	if err := tsParser.SetLanguage(tsLang); err != nil {
		tsParser.Close()
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}

	return &TreeSitterParser{
		Language: lang,
		tsParser: tsParser,
	}, nil
}

// ParseFile 实现了 Parser 接口
func (p *TreeSitterParser) ParseFile(filePath string) (*Unit, error) {
	// 1. 读取文件内容
	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(filePath, content)
}

// Parse 解析内存中的源码，filePath 仅用于诊断信息
func (p *TreeSitterParser) Parse(filePath string, content []byte) (*Unit, error) {
	tree := p.tsParser.Parse(content, nil)
	if tree == nil {
		return nil, &ParseError{FilePath: filePath, Reason: "tree-sitter returned no tree"}
	}

	root := tree.RootNode()
	if root.HasError() {
		perr := &ParseError{FilePath: filePath, Reason: "syntax error"}
		if bad := firstErrorNode(root); bad != nil {
			perr.Line = int(bad.StartPosition().Row) + 1
			perr.Column = int(bad.StartPosition().Column) + 1
			if bad.IsMissing() {
				perr.Reason = fmt.Sprintf("missing %s", bad.Kind())
			} else {
				perr.Reason = fmt.Sprintf("unexpected %q", truncate(bad.Utf8Text(content), 32))
			}
		}
		tree.Close()
		return nil, perr
	}

	return &Unit{
		FilePath: filePath,
		Language: p.Language,
		Source:   content,
		tree:     tree,
	}, nil
}

// Close 释放 Tree-sitter 内部资源
func (p *TreeSitterParser) Close() {
	if p.tsParser != nil {
		p.tsParser.Close()
		p.tsParser = nil
	}
}

// firstErrorNode 按先序遍历返回第一个 ERROR 或 MISSING 节点
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child != nil {
			if bad := firstErrorNode(child); bad != nil {
				return bad
			}
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
