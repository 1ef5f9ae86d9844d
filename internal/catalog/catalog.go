package catalog

import (
	"wisefido-crisis/internal/models"
)

// IndicatorCatalog 风险指标目录（进程启动时构建一次，之后只读）
type IndicatorCatalog struct {
	byID    map[string]models.Indicator
	ordered []models.Indicator
}

// NewIndicatorCatalog 构建指标目录
// 校验规则：
// - id 必填且不允许重复
// - category/severity 必须在封闭枚举内
// - risk_weight ∈ [0,1]
// - 至少包含一个谓词，且每个谓词的 kind 在封闭枚举内
// 任一规则不满足即返回 ConfigurationError（快速失败，阻止服务启动）。
func NewIndicatorCatalog(indicators []models.Indicator) (*IndicatorCatalog, error) {
	c := &IndicatorCatalog{
		byID:    make(map[string]models.Indicator, len(indicators)),
		ordered: make([]models.Indicator, 0, len(indicators)),
	}

	for _, ind := range indicators {
		if ind.ID == "" {
			return nil, configErrorf("", "indicator id is required")
		}
		if _, exists := c.byID[ind.ID]; exists {
			return nil, configErrorf(ind.ID, "duplicate indicator id")
		}
		if !ind.Category.Valid() {
			return nil, configErrorf(ind.ID, "unknown category %q", ind.Category)
		}
		if !ind.Severity.Valid() {
			return nil, configErrorf(ind.ID, "unknown severity %q", ind.Severity)
		}
		if ind.RiskWeight < 0.0 || ind.RiskWeight > 1.0 {
			return nil, configErrorf(ind.ID, "risk_weight %v out of range [0,1]", ind.RiskWeight)
		}
		if len(ind.Predicates) == 0 {
			return nil, configErrorf(ind.ID, "indicator has no detection predicates")
		}
		for _, p := range ind.Predicates {
			if p.ID == "" {
				return nil, configErrorf(ind.ID, "predicate id is required")
			}
			if !p.Kind.Valid() {
				return nil, configErrorf(ind.ID, "unknown predicate kind %q", p.Kind)
			}
		}

		c.byID[ind.ID] = ind
		c.ordered = append(c.ordered, ind)
	}

	return c, nil
}

// Get 按 id 查找指标（O(1)）
func (c *IndicatorCatalog) Get(id string) (models.Indicator, bool) {
	ind, ok := c.byID[id]
	return ind, ok
}

// All 按定义顺序返回全部指标（批量评估用，返回副本以保持只读）
func (c *IndicatorCatalog) All() []models.Indicator {
	out := make([]models.Indicator, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len 指标数量
func (c *IndicatorCatalog) Len() int {
	return len(c.ordered)
}

// ProtocolCatalog 干预协议目录（进程启动时构建一次，之后只读）
type ProtocolCatalog struct {
	byID    map[string]models.Protocol
	byLevel map[models.RiskLevel]models.Protocol
}

// NewProtocolCatalog 构建协议目录
// 校验规则：
// - id 必填且不允许重复
// - risk_level 必须在封闭枚举内，且每个等级最多一条
// - 五个风险等级（含 minimal 兜底协议）必须全部覆盖
// - immediate_actions 与 support_resources 非空，资源 kind 在封闭枚举内
// - no_improvement_days 必须 > 0
func NewProtocolCatalog(protocols []models.Protocol) (*ProtocolCatalog, error) {
	c := &ProtocolCatalog{
		byID:    make(map[string]models.Protocol, len(protocols)),
		byLevel: make(map[models.RiskLevel]models.Protocol, len(protocols)),
	}

	for _, p := range protocols {
		if p.ID == "" {
			return nil, configErrorf("", "protocol id is required")
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, configErrorf(p.ID, "duplicate protocol id")
		}
		if !p.RiskLevel.Valid() {
			return nil, configErrorf(p.ID, "unknown risk_level %q", p.RiskLevel)
		}
		if _, exists := c.byLevel[p.RiskLevel]; exists {
			return nil, configErrorf(p.ID, "duplicate protocol for risk_level %q", p.RiskLevel)
		}
		if len(p.ImmediateActions) == 0 {
			return nil, configErrorf(p.ID, "immediate_actions must not be empty")
		}
		if len(p.SupportResources) == 0 {
			return nil, configErrorf(p.ID, "support_resources must not be empty")
		}
		for _, r := range p.SupportResources {
			if !r.Kind.Valid() {
				return nil, configErrorf(p.ID, "unknown support resource kind %q", r.Kind)
			}
		}
		if p.Escalation.NoImprovementDays <= 0 {
			return nil, configErrorf(p.ID, "no_improvement_days must be > 0")
		}

		c.byID[p.ID] = p
		c.byLevel[p.RiskLevel] = p
	}

	for _, level := range models.AllRiskLevels {
		if _, ok := c.byLevel[level]; !ok {
			return nil, configErrorf("", "no protocol defined for risk_level %q", level)
		}
	}

	return c, nil
}

// Get 按 id 查找协议（O(1)）
func (c *ProtocolCatalog) Get(id string) (models.Protocol, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ByLevel 按风险等级查找协议
func (c *ProtocolCatalog) ByLevel(level models.RiskLevel) (models.Protocol, bool) {
	p, ok := c.byLevel[level]
	return p, ok
}

// Fallback 通用兜底协议（minimal 等级的低强度支持性响应）
func (c *ProtocolCatalog) Fallback() models.Protocol {
	return c.byLevel[models.RiskLevelMinimal]
}

// All 返回全部协议（按风险等级升序）
func (c *ProtocolCatalog) All() []models.Protocol {
	out := make([]models.Protocol, 0, len(c.byLevel))
	for _, level := range models.AllRiskLevels {
		if p, ok := c.byLevel[level]; ok {
			out = append(out, p)
		}
	}
	return out
}
