package java

import (
	"github.com/CodMac/go-treesitter-hybrid-grader/collector"
	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	"github.com/CodMac/go-treesitter-hybrid-grader/parser"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// EntryMethodName 是 Java 程序的入口方法名
const EntryMethodName = "main"

type Collector struct{}

func NewJavaCollector() *Collector {
	return &Collector{}
}

// walkState 记录遍历过程中的词法上下文
type walkState struct {
	enclosing string // 最近的具名类型声明，匿名类体内为空
	inEntry   bool   // 是否位于 main 方法体内（含嵌套的 lambda / 匿名类）
}

func (c *Collector) Collect(unit *parser.Unit) (*model.Outline, error) {
	outline := &model.Outline{
		FilePath: unit.FilePath,
		Language: model.LangJava,
	}

	root := unit.Root()
	if pkg := collector.NamedChildOfKind(root, "package_declaration"); pkg != nil {
		for i := uint(0); i < pkg.NamedChildCount(); i++ {
			sub := pkg.NamedChild(i)
			if sub.Kind() == "scoped_identifier" || sub.Kind() == "identifier" {
				outline.PackageName = collector.NodeText(sub, unit.Source)
				break
			}
		}
	}

	c.walk(root, unit, outline, walkState{})
	return outline, nil
}

func (c *Collector) walk(node *sitter.Node, unit *parser.Unit, outline *model.Outline, state walkState) {
	switch node.Kind() {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		if decl := c.typeDecl(node, unit); decl != nil {
			outline.Types = append(outline.Types, decl)
			state.enclosing = decl.Name
		}
	case "object_creation_expression":
		// 匿名类体中的方法不属于任何具名类型
		if node.ChildByFieldName("body") != nil || collector.NamedChildOfKind(node, "class_body") != nil {
			state.enclosing = ""
		}
	case "method_declaration":
		name := collector.NodeText(node.ChildByFieldName("name"), unit.Source)
		outline.Methods = append(outline.Methods, &model.MethodDecl{
			Name:     name,
			Parent:   state.enclosing,
			Location: collector.NodeLocation(node, unit.FilePath),
		})
		if name == EntryMethodName {
			state.inEntry = true
		}
	case "method_invocation":
		if state.inEntry {
			outline.EntryCalls = append(outline.EntryCalls, &model.Call{
				Name:     collector.NodeText(node.ChildByFieldName("name"), unit.Source),
				Receiver: collector.NodeText(node.ChildByFieldName("object"), unit.Source),
				Location: collector.NodeLocation(node, unit.FilePath),
			})
		}
	}

	cursor := node.Walk()
	defer cursor.Close()

	if cursor.GotoFirstChild() {
		for {
			c.walk(cursor.Node(), unit, outline, state)
			if !cursor.GotoNextSibling() {
				break
			}
		}
	}
}

func (c *Collector) typeDecl(node *sitter.Node, unit *parser.Unit) *model.TypeDecl {
	name := collector.NodeText(node.ChildByFieldName("name"), unit.Source)
	if name == "" {
		return nil
	}

	decl := &model.TypeDecl{
		Name:     name,
		Location: collector.NodeLocation(node, unit.FilePath),
	}

	switch node.Kind() {
	case "class_declaration":
		decl.Kind = model.Class
		if sc := node.ChildByFieldName("superclass"); sc != nil && sc.NamedChildCount() > 0 {
			decl.Extends = append(decl.Extends, simpleTypeName(sc.NamedChild(0), unit.Source))
		}
		decl.Implements = typeListNames(node.ChildByFieldName("interfaces"), unit.Source)
	case "interface_declaration":
		decl.Kind = model.Interface
		// 接口的 extends 子句在不同 grammar 版本中并非总是字段
		decl.Extends = typeListNames(collector.NamedChildOfKind(node, "extends_interfaces"), unit.Source)
	case "enum_declaration":
		decl.Kind = model.Enum
		decl.Implements = typeListNames(node.ChildByFieldName("interfaces"), unit.Source)
	case "record_declaration":
		decl.Kind = model.Record
		decl.Implements = typeListNames(node.ChildByFieldName("interfaces"), unit.Source)
	}
	return decl
}

// typeListNames 从 super_interfaces / extends_interfaces 节点中取出各类型的简单名
func typeListNames(n *sitter.Node, source []byte) []string {
	list := collector.NamedChildOfKind(n, "type_list")
	if list == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < list.NamedChildCount(); i++ {
		if name := simpleTypeName(list.NamedChild(i), source); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// simpleTypeName 将类型节点归约为简单名：a.b.Animal -> Animal，List<T> -> List
func simpleTypeName(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case "type_identifier", "identifier":
		return collector.NodeText(n, source)
	case "generic_type":
		if n.NamedChildCount() > 0 {
			return simpleTypeName(n.NamedChild(0), source)
		}
	case "scoped_type_identifier", "annotated_type":
		if count := n.NamedChildCount(); count > 0 {
			return simpleTypeName(n.NamedChild(count-1), source)
		}
	}
	return collector.NodeText(n, source)
}
