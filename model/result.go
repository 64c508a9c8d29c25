package model

// Phase 标识检查所处的阶段，用于诊断输出分组
type Phase string

const (
	PhaseLoad       Phase = "LOAD"       // 读取与解析源文件
	PhaseHierarchy  Phase = "HIERARCHY"  // 类型存在性、继承与接口实现
	PhaseOverride   Phase = "OVERRIDE"   // 子类型上的方法声明
	PhaseInvocation Phase = "INVOCATION" // 入口方法中的调用
	PhaseVerdict    Phase = "VERDICT"    // 最终结论
)

// Severity 表示一条诊断的性质
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityOK    Severity = "OK"
	SeverityError Severity = "ERROR"
)

// Finding 是检查过程中产生的一条诊断
type Finding struct {
	Phase    Phase     `json:"Phase"`
	Severity Severity  `json:"Severity"`
	Message  string    `json:"Message"`
	Location *Location `json:"Location,omitempty"`
}

// Facts 记录一次检查中的各项事实。所有标记只会由 false 变为 true。
type Facts struct {
	TypesFound map[string]bool `json:"TypesFound"`
	Extends    bool            `json:"Extends"`
	Implements map[string]bool `json:"Implements"`
	Overrides  map[string]bool `json:"Overrides"`
	Invoked    bool            `json:"Invoked"`
}

// NewFacts 以全部为 false 的状态初始化所需的事实集合
func NewFacts(types, interfaces, methods []string) *Facts {
	f := &Facts{
		TypesFound: make(map[string]bool, len(types)),
		Implements: make(map[string]bool, len(interfaces)),
		Overrides:  make(map[string]bool, len(methods)),
	}
	for _, t := range types {
		f.TypesFound[t] = false
	}
	for _, i := range interfaces {
		f.Implements[i] = false
	}
	for _, m := range methods {
		f.Overrides[m] = false
	}
	return f
}

// MarkType 标记类型已找到。仅当该事实首次成立时返回 true。
func (f *Facts) MarkType(name string) bool {
	return markIn(f.TypesFound, name)
}

// MarkImplements 标记子类型实现了接口 name
func (f *Facts) MarkImplements(name string) bool {
	return markIn(f.Implements, name)
}

// MarkOverride 标记方法 name 已在子类型中声明
func (f *Facts) MarkOverride(name string) bool {
	return markIn(f.Overrides, name)
}

// MarkExtends 标记子类型继承了基类型
func (f *Facts) MarkExtends() { f.Extends = true }

// MarkInvoked 标记入口方法中出现了要求的调用
func (f *Facts) MarkInvoked() { f.Invoked = true }

// MissingTypes 按给定顺序返回尚未找到的类型
func (f *Facts) MissingTypes(order []string) []string {
	return missingIn(f.TypesFound, order)
}

// MissingOverrides 按给定顺序返回尚未在子类型中声明的方法
func (f *Facts) MissingOverrides(order []string) []string {
	return missingIn(f.Overrides, order)
}

func markIn(m map[string]bool, name string) bool {
	if done, ok := m[name]; !ok || done {
		return false
	}
	m[name] = true
	return true
}

func missingIn(m map[string]bool, order []string) []string {
	var missing []string
	for _, name := range order {
		if !m[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// Result 是对单个文件的完整检查结果
type Result struct {
	FilePath string     `json:"FilePath"`
	Language Language   `json:"Language"`
	Passed   bool       `json:"Passed"`
	Err      string     `json:"Error,omitempty"`
	Facts    *Facts     `json:"Facts,omitempty"`
	Findings []*Finding `json:"Findings"`
	Outline  *Outline   `json:"-"`
}
