package models

import (
	"time"
)

// AssessmentStatus 评估生命周期状态
// 状态单向流转：new → monitored → escalated；resolved 由外部专业复核流程关闭。
// 已发布的评估不做原地修改，重新评估总是生成新的 Assessment（追加历史）。
type AssessmentStatus string

const (
	AssessmentStatusNew       AssessmentStatus = "new"
	AssessmentStatusMonitored AssessmentStatus = "monitored"
	AssessmentStatusEscalated AssessmentStatus = "escalated"
	AssessmentStatusResolved  AssessmentStatus = "resolved"
)

// Assessment 风险评估结果（生成后不可变）
type Assessment struct {
	AssessmentID       string            `json:"assessment_id"`
	UserID             string            `json:"user_id"`
	RiskLevel          RiskLevel         `json:"risk_level"`
	RiskScore          float64           `json:"risk_score"` // 派生值 ∈ [0,1]，不允许手工设置
	ActiveIndicatorIDs []string          `json:"active_indicator_ids"`
	MatchedPredicates  map[string]string `json:"matched_predicates,omitempty"` // indicator_id → 命中的谓词 id（审计用）
	RiskTrend          string            `json:"risk_trend"`
	Recommendations    []string          `json:"recommendations"`
	Confidence         float64           `json:"confidence"` // 上限 0.95
	Status             AssessmentStatus  `json:"status"`
	Timestamp          time.Time         `json:"timestamp"`
}

// HasIndicator 活跃指标集合是否包含指定指标
func (a *Assessment) HasIndicator(indicatorID string) bool {
	for _, id := range a.ActiveIndicatorIDs {
		if id == indicatorID {
			return true
		}
	}
	return false
}
