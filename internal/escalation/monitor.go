package escalation

import (
	"time"

	"wisefido-crisis/internal/models"
	"wisefido-crisis/internal/protocol"
	"wisefido-crisis/internal/scorer"

	"go.uber.org/zap"
)

// 升级原因（审计用）
const (
	ReasonImmediateDanger = "immediate_danger"
	ReasonNoImprovement   = "no_improvement_window"
	ReasonScoreIncrease   = "score_increase"
)

// Decision 升级判定结果
// Escalate 为对外契约；Reason 与 Reassessment 供审计日志和上层编排使用。
type Decision struct {
	Escalate     bool               `json:"escalate"`
	Reason       string             `json:"reason,omitempty"`
	Reassessment *models.Assessment `json:"reassessment,omitempty"`
}

// Monitor 升级监控器
// 对既有评估与新上下文做纯判定（无变更副作用）；判定为 true 时由调用方
// 生成新的更高等级 Assessment 并路由到告警管道。
// 升级条件（任一满足即升级）：
// 1. 新上下文存在立即危险标记 —— 跳过得分比较，无条件升级（安全保护）
// 2. 距当前评估已过天数 >= 协议的 no_improvement_days（闭区间）且新得分未下降
// 3. 新得分严格大于当前得分
// 除此之外不升级；本引擎从不自动降级既有评估。
type Monitor struct {
	scorer   *scorer.RiskScorer
	selector *protocol.Selector
	logger   *zap.Logger
	now      func() time.Time
}

// NewMonitor 创建升级监控器
func NewMonitor(riskScorer *scorer.RiskScorer, selector *protocol.Selector, logger *zap.Logger) *Monitor {
	return &Monitor{
		scorer:   riskScorer,
		selector: selector,
		logger:   logger,
		now:      time.Now,
	}
}

// ShouldEscalate 判定既有评估在新上下文下是否需要升级
func (m *Monitor) ShouldEscalate(current *models.Assessment, newCtx *models.ContextSnapshot) bool {
	return m.Evaluate(current, newCtx).Escalate
}

// Evaluate 判定并返回带原因的完整决策记录
func (m *Monitor) Evaluate(current *models.Assessment, newCtx *models.ContextSnapshot) Decision {
	reassessment := m.scorer.Score(current.UserID, newCtx)

	decision := Decision{
		Reassessment: reassessment,
	}

	switch {
	case newCtx.HasImmediateDanger():
		decision.Escalate = true
		decision.Reason = ReasonImmediateDanger

	case m.noImprovementWindowElapsed(current) && reassessment.RiskScore >= current.RiskScore:
		decision.Escalate = true
		decision.Reason = ReasonNoImprovement

	case reassessment.RiskScore > current.RiskScore:
		decision.Escalate = true
		decision.Reason = ReasonScoreIncrease
	}

	if decision.Escalate {
		m.logger.Warn("Escalation criterion met",
			zap.String("assessment_id", current.AssessmentID),
			zap.String("user_id", current.UserID),
			zap.String("reason", decision.Reason),
			zap.Float64("current_score", current.RiskScore),
			zap.Float64("new_score", reassessment.RiskScore),
		)
	}

	return decision
}

// noImprovementWindowElapsed 无改善观察窗口是否到期（边界为闭区间）
func (m *Monitor) noImprovementWindowElapsed(current *models.Assessment) bool {
	selected := m.selector.Select(current.RiskLevel)
	elapsedDays := m.now().Sub(current.Timestamp).Hours() / 24.0
	return elapsedDays >= float64(selected.Escalation.NoImprovementDays)
}
