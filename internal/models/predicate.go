package models

// PredicateKind 检测谓词类型（标签化变体，评估时穷举匹配）
type PredicateKind string

const (
	PredicateThreshold    PredicateKind = "threshold"     // 数值信号与阈值比较
	PredicateCount        PredicateKind = "count"         // 整数计数信号 >= 最小值
	PredicateMembership   PredicateKind = "membership"    // 列表信号包含任一关键词
	PredicateTextContains PredicateKind = "text_contains" // 自由文本大小写不敏感包含任一关键词
	PredicateFlag         PredicateKind = "flag"          // 布尔信号等于期望值
)

// Valid 检查谓词类型是否在封闭枚举内
func (k PredicateKind) Valid() bool {
	switch k {
	case PredicateThreshold, PredicateCount, PredicateMembership, PredicateTextContains, PredicateFlag:
		return true
	}
	return false
}

// 阈值比较方向
const (
	DirectionGTE = "gte" // 信号 >= 阈值（默认）
	DirectionLTE = "lte" // 信号 <= 阈值（负方向规则，如睡眠时长下降）
)

// Predicate 检测谓词（按 Kind 区分有效字段）
// - threshold: Signal + Threshold + Direction
// - count:     Signal + MinCount
// - membership: Signal + Keywords
// - text_contains: Keywords（作用于 recent_text_content）
// - flag:      Signal + Expected
type Predicate struct {
	ID        string        `json:"id" yaml:"id"`
	Kind      PredicateKind `json:"kind" yaml:"kind"`
	Signal    string        `json:"signal,omitempty" yaml:"signal"`
	Threshold *float64      `json:"threshold,omitempty" yaml:"threshold"`
	Direction string        `json:"direction,omitempty" yaml:"direction"`
	MinCount  *int          `json:"min_count,omitempty" yaml:"min_count"`
	Keywords  []string      `json:"keywords,omitempty" yaml:"keywords"`
	Expected  *bool         `json:"expected,omitempty" yaml:"expected"`
}
