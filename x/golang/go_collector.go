package golang

import (
	"github.com/CodMac/go-treesitter-hybrid-grader/collector"
	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	"github.com/CodMac/go-treesitter-hybrid-grader/parser"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// EntryFunctionName 是 Go 程序的入口函数名
const EntryFunctionName = "main"

// Collector 收集 Go 源文件中的结构体、接口、方法与 main 中的调用。
// Go 没有显式的 implements，Implements 由方法集推导得出。
type Collector struct{}

func NewGoCollector() *Collector {
	return &Collector{}
}

// fileScope 保存单个文件内用于推导方法集的中间结果
type fileScope struct {
	methodsByRecv map[string][]string // 接收者基类型 -> 方法名
	ifaceMethods  map[string][]string // 接口名 -> 直接声明的方法名
}

func (c *Collector) Collect(unit *parser.Unit) (*model.Outline, error) {
	outline := &model.Outline{
		FilePath: unit.FilePath,
		Language: model.LangGo,
	}
	scope := &fileScope{
		methodsByRecv: make(map[string][]string),
		ifaceMethods:  make(map[string][]string),
	}

	root := unit.Root()
	if pkg := collector.NamedChildOfKind(root, "package_clause"); pkg != nil {
		outline.PackageName = collector.NodeText(collector.NamedChildOfKind(pkg, "package_identifier"), unit.Source)
	}

	c.walk(root, unit, outline, scope, false)
	c.resolveImplements(outline, scope)
	return outline, nil
}

func (c *Collector) walk(node *sitter.Node, unit *parser.Unit, outline *model.Outline, scope *fileScope, inEntry bool) {
	switch node.Kind() {
	case "type_spec":
		c.collectTypeSpec(node, unit, outline, scope)
	case "method_declaration":
		name := collector.NodeText(node.ChildByFieldName("name"), unit.Source)
		recv := receiverTypeName(node.ChildByFieldName("receiver"), unit.Source)
		outline.Methods = append(outline.Methods, &model.MethodDecl{
			Name:     name,
			Parent:   recv,
			Location: collector.NodeLocation(node, unit.FilePath),
		})
		if recv != "" {
			scope.methodsByRecv[recv] = append(scope.methodsByRecv[recv], name)
		}
	case "function_declaration":
		if collector.NodeText(node.ChildByFieldName("name"), unit.Source) == EntryFunctionName {
			inEntry = true
		}
	case "call_expression":
		if inEntry {
			if call := callOf(node, unit); call != nil {
				outline.EntryCalls = append(outline.EntryCalls, call)
			}
		}
	}

	cursor := node.Walk()
	defer cursor.Close()

	if cursor.GotoFirstChild() {
		for {
			c.walk(cursor.Node(), unit, outline, scope, inEntry)
			if !cursor.GotoNextSibling() {
				break
			}
		}
	}
}

func (c *Collector) collectTypeSpec(node *sitter.Node, unit *parser.Unit, outline *model.Outline, scope *fileScope) {
	name := collector.NodeText(node.ChildByFieldName("name"), unit.Source)
	typeNode := node.ChildByFieldName("type")
	if name == "" || typeNode == nil {
		return
	}

	decl := &model.TypeDecl{
		Name:     name,
		Location: collector.NodeLocation(node, unit.FilePath),
	}

	switch typeNode.Kind() {
	case "struct_type":
		decl.Kind = model.Struct
		decl.Extends = embeddedFields(typeNode, unit.Source)
	case "interface_type":
		decl.Kind = model.Interface
		for i := uint(0); i < typeNode.NamedChildCount(); i++ {
			elem := typeNode.NamedChild(i)
			switch elem.Kind() {
			case "method_elem", "method_spec":
				mName := collector.NodeText(elem.ChildByFieldName("name"), unit.Source)
				scope.ifaceMethods[name] = append(scope.ifaceMethods[name], mName)
				outline.Methods = append(outline.Methods, &model.MethodDecl{
					Name:     mName,
					Parent:   name,
					Location: collector.NodeLocation(elem, unit.FilePath),
				})
			case "type_elem", "constraint_elem":
				if elem.NamedChildCount() == 1 {
					decl.Extends = append(decl.Extends, baseTypeName(elem.NamedChild(0), unit.Source))
				}
			case "type_identifier", "qualified_type":
				decl.Extends = append(decl.Extends, baseTypeName(elem, unit.Source))
			}
		}
	default:
		// type MyInt int 等定义型类型同样可以拥有方法
		decl.Kind = model.Unknown
	}

	outline.Types = append(outline.Types, decl)
}

// resolveImplements 为每个结构体推导其满足的（非空）接口，顺序与声明顺序一致
func (c *Collector) resolveImplements(outline *model.Outline, scope *fileScope) {
	kinds := make(map[string]model.ElementKind, len(outline.Types))
	embeds := make(map[string][]string, len(outline.Types))
	for _, t := range outline.Types {
		kinds[t.Name] = t.Kind
		embeds[t.Name] = t.Extends
	}

	for _, t := range outline.Types {
		if t.Kind != model.Struct {
			continue
		}
		have := make(map[string]bool)
		scope.methodSet(t.Name, kinds, embeds, have, make(map[string]bool))

		for _, iface := range outline.Types {
			if iface.Kind != model.Interface {
				continue
			}
			want := make(map[string]bool)
			scope.methodSet(iface.Name, kinds, embeds, want, make(map[string]bool))
			if len(want) == 0 {
				continue
			}
			if satisfies(have, want) {
				t.Implements = append(t.Implements, iface.Name)
			}
		}
	}
}

// methodSet 累积 name 的方法集：自身方法 + 通过嵌入提升的方法
func (s *fileScope) methodSet(name string, kinds map[string]model.ElementKind, embeds map[string][]string, acc, visited map[string]bool) {
	if visited[name] {
		return
	}
	visited[name] = true

	if kinds[name] == model.Interface {
		for _, m := range s.ifaceMethods[name] {
			acc[m] = true
		}
	} else {
		for _, m := range s.methodsByRecv[name] {
			acc[m] = true
		}
	}
	for _, embedded := range embeds[name] {
		s.methodSet(embedded, kinds, embeds, acc, visited)
	}
}

func satisfies(have, want map[string]bool) bool {
	for m := range want {
		if !have[m] {
			return false
		}
	}
	return true
}

// embeddedFields 返回结构体中的匿名嵌入字段类型名
func embeddedFields(structNode *sitter.Node, source []byte) []string {
	list := collector.NamedChildOfKind(structNode, "field_declaration_list")
	if list == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < list.NamedChildCount(); i++ {
		field := list.NamedChild(i)
		if field.Kind() != "field_declaration" || field.ChildByFieldName("name") != nil {
			continue
		}
		if name := baseTypeName(field.ChildByFieldName("type"), source); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// receiverTypeName 从 (d *Dog) / (d Dog) / (l List[T]) 中取出基类型名
func receiverTypeName(params *sitter.Node, source []byte) string {
	if params == nil {
		return ""
	}
	decl := collector.NamedChildOfKind(params, "parameter_declaration")
	if decl == nil {
		return ""
	}
	return baseTypeName(decl.ChildByFieldName("type"), source)
}

// baseTypeName 去掉指针、泛型实参与包限定：*pkg.Animal -> Animal
func baseTypeName(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case "type_identifier", "identifier":
		return collector.NodeText(n, source)
	case "pointer_type", "parenthesized_type":
		if n.NamedChildCount() > 0 {
			return baseTypeName(n.NamedChild(0), source)
		}
	case "generic_type":
		return baseTypeName(n.ChildByFieldName("type"), source)
	case "qualified_type":
		return baseTypeName(n.ChildByFieldName("name"), source)
	}
	return collector.NodeText(n, source)
}

func callOf(node *sitter.Node, unit *parser.Unit) *model.Call {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return nil
	}
	call := &model.Call{Location: collector.NodeLocation(node, unit.FilePath)}
	switch fn.Kind() {
	case "selector_expression":
		call.Name = collector.NodeText(fn.ChildByFieldName("field"), unit.Source)
		call.Receiver = collector.NodeText(fn.ChildByFieldName("operand"), unit.Source)
	case "identifier":
		call.Name = collector.NodeText(fn, unit.Source)
	default:
		return nil
	}
	return call
}
