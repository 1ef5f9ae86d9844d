package models

// IndicatorCategory 风险指标分类（封闭枚举）
type IndicatorCategory string

const (
	CategoryBehavioral IndicatorCategory = "behavioral"
	CategoryEmotional  IndicatorCategory = "emotional"
	CategoryCognitive  IndicatorCategory = "cognitive"
	CategoryPhysical   IndicatorCategory = "physical"
)

// Valid 检查分类是否在封闭枚举内
func (c IndicatorCategory) Valid() bool {
	switch c {
	case CategoryBehavioral, CategoryEmotional, CategoryCognitive, CategoryPhysical:
		return true
	}
	return false
}

// IndicatorSeverity 风险指标严重程度（封闭枚举）
type IndicatorSeverity string

const (
	SeverityLow      IndicatorSeverity = "low"
	SeverityMedium   IndicatorSeverity = "medium"
	SeverityHigh     IndicatorSeverity = "high"
	SeverityCritical IndicatorSeverity = "critical"
)

// Valid 检查严重程度是否在封闭枚举内
func (s IndicatorSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Indicator 风险指标定义（目录加载后只读）
// 注意：Predicates 为 OR 组合，任一谓词命中即触发该指标（首个命中生效）。
// 该语义与临床侧确认前保持不变。
type Indicator struct {
	ID               string            `json:"id" yaml:"id"`
	Name             string            `json:"name" yaml:"name"`
	Category         IndicatorCategory `json:"category" yaml:"category"`
	Severity         IndicatorSeverity `json:"severity" yaml:"severity"`
	Predicates       []Predicate       `json:"predicates" yaml:"predicates"`
	InterventionTags []string          `json:"intervention_tags,omitempty" yaml:"intervention_tags"`
	RiskWeight       float64           `json:"risk_weight" yaml:"risk_weight"`
}
