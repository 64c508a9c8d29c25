package model

// ElementKind 是表示代码实体类型的字符串常量
type ElementKind string

const (
	// 面向对象/复合类型
	Class     ElementKind = "CLASS"     // 对应类 (Java)
	Interface ElementKind = "INTERFACE" // 对应接口 (Java, Go)
	Struct    ElementKind = "STRUCT"    // 对应结构体 (Go)
	Enum      ElementKind = "ENUM"      // 对应枚举 (Java)
	Record    ElementKind = "RECORD"    // 对应 record (Java 16+)

	// 可执行体
	Function ElementKind = "FUNCTION" // 对应独立函数 (Go)
	Method   ElementKind = "METHOD"   // 对应类/结构体的方法

	// 未知类型
	Unknown ElementKind = "UNKNOWN"
)

// Location 描述了代码元素在源码中的位置
type Location struct {
	FilePath    string `json:"FilePath"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	StartColumn int    `json:"StartColumn"`
	EndColumn   int    `json:"EndColumn"`
}

// TypeDecl 描述一个类型声明 (class / interface / struct ...)
type TypeDecl struct {
	Name       string      `json:"Name"`
	Kind       ElementKind `json:"Kind"`
	Extends    []string    `json:"Extends,omitempty"`    // Java: extends 子句; Go: 嵌入字段
	Implements []string    `json:"Implements,omitempty"` // Java: implements 子句; Go: 按方法集推导
	Location   *Location   `json:"Location,omitempty"`
}

// MethodDecl 描述一个方法声明，Parent 为其词法上所属的类型名
type MethodDecl struct {
	Name     string    `json:"Name"`
	Parent   string    `json:"Parent"`
	Location *Location `json:"Location,omitempty"`
}

// Call 描述入口方法体内的一次调用
type Call struct {
	Name     string    `json:"Name"`
	Receiver string    `json:"Receiver,omitempty"`
	Location *Location `json:"Location,omitempty"`
}

// Outline 是一次收集的产物：检查所需的全部声明与调用
type Outline struct {
	FilePath    string        `json:"FilePath"`
	Language    Language      `json:"Language"`
	PackageName string        `json:"PackageName,omitempty"`
	Types       []*TypeDecl   `json:"Types"`
	Methods     []*MethodDecl `json:"Methods"`
	EntryCalls  []*Call       `json:"EntryCalls"`
}

// FindType 按名称查找第一个匹配的类型声明
func (o *Outline) FindType(name string) *TypeDecl {
	for _, t := range o.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}
