package models

// RiskLevel 风险等级（封闭枚举）
type RiskLevel string

const (
	RiskLevelMinimal  RiskLevel = "minimal"
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// AllRiskLevels 全部风险等级（升序）
var AllRiskLevels = []RiskLevel{
	RiskLevelMinimal,
	RiskLevelLow,
	RiskLevelMedium,
	RiskLevelHigh,
	RiskLevelCritical,
}

// Valid 检查风险等级是否在封闭枚举内
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLevelMinimal, RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	}
	return false
}

// Rank 风险等级序号（minimal=0 ... critical=4，未知等级返回 -1）
func (l RiskLevel) Rank() int {
	for i, level := range AllRiskLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// MaxRiskLevel 返回两个等级中较高的一个
func MaxRiskLevel(a, b RiskLevel) RiskLevel {
	if a.Rank() >= b.Rank() {
		return a
	}
	return b
}

// NextRiskLevel 返回高一级的风险等级（critical 已是最高级，原样返回）
func (l RiskLevel) NextRiskLevel() RiskLevel {
	rank := l.Rank()
	if rank < 0 || rank >= len(AllRiskLevels)-1 {
		return RiskLevelCritical
	}
	return AllRiskLevels[rank+1]
}

// ResourceKind 支持资源类型（封闭枚举）
type ResourceKind string

const (
	ResourceHotline      ResourceKind = "hotline"
	ResourceProfessional ResourceKind = "professional"
	ResourceEmergency    ResourceKind = "emergency"
	ResourceCommunity    ResourceKind = "community"
)

// Valid 检查资源类型是否在封闭枚举内
func (k ResourceKind) Valid() bool {
	switch k {
	case ResourceHotline, ResourceProfessional, ResourceEmergency, ResourceCommunity:
		return true
	}
	return false
}

// SupportResource 支持资源（热线/专业人员/紧急服务/社区）
type SupportResource struct {
	Kind        ResourceKind `json:"kind" yaml:"kind"`
	Name        string       `json:"name" yaml:"name"`
	Contact     string       `json:"contact" yaml:"contact"`
	Description string       `json:"description,omitempty" yaml:"description"`
}

// EscalationCriteria 升级判定条件（命名阈值）
type EscalationCriteria struct {
	// NoImprovementDays 无改善观察窗口（天）。
	// 边界为闭区间：elapsed_days >= NoImprovementDays 即满足。
	NoImprovementDays int `json:"no_improvement_days" yaml:"no_improvement_days"`
}

// Protocol 干预协议（目录加载后只读，每个风险等级一条）
type Protocol struct {
	ID               string             `json:"id" yaml:"id"`
	Name             string             `json:"name" yaml:"name"`
	RiskLevel        RiskLevel          `json:"risk_level" yaml:"risk_level"`
	Guidance         string             `json:"guidance" yaml:"guidance"`
	ImmediateActions []string           `json:"immediate_actions" yaml:"immediate_actions"`
	SupportResources []SupportResource  `json:"support_resources" yaml:"support_resources"`
	FollowUpSteps    []string           `json:"follow_up_steps,omitempty" yaml:"follow_up_steps"`
	Escalation       EscalationCriteria `json:"escalation" yaml:"escalation"`
}
