package grader

import (
	"fmt"
	"slices"

	"github.com/CodMac/go-treesitter-hybrid-grader/model"
)

// Layout 描述作业要求的固定类型层次：Sub 继承 Base 并实现全部 Interfaces，
// 在 Sub 中声明全部 Methods，并在入口方法中调用其中之一。
// Base 与 Sub 必须声明为 ClassKind，Interfaces 必须声明为接口。
type Layout struct {
	Base       string
	Sub        string
	Interfaces []string
	Methods    []string
	EntryPoint string
	ClassKind  model.ElementKind
}

// RequiredTypes 按检查顺序返回全部需要出现的类型名
func (l Layout) RequiredTypes() []string {
	types := []string{l.Base, l.Sub}
	return append(types, l.Interfaces...)
}

// Accepts 判断声明 t 能否作为其同名的必需类型计入
func (l Layout) Accepts(t *model.TypeDecl) bool {
	if slices.Contains(l.Interfaces, t.Name) {
		return t.Kind == model.Interface
	}
	return t.Kind == l.ClassKind
}

var layoutMap = make(map[model.Language]Layout)

// RegisterLayout 注册一个语言对应的作业层次
func RegisterLayout(lang model.Language, layout Layout) {
	layoutMap[lang] = layout
}

// GetLayout 根据语言类型获取对应的作业层次
func GetLayout(lang model.Language) (Layout, error) {
	layout, ok := layoutMap[lang]
	if !ok {
		return Layout{}, fmt.Errorf("no layout registered for language: %s", lang)
	}
	return layout, nil
}
