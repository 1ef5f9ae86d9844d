package service

import (
	"testing"

	"wisefido-crisis/internal/catalog"
	"wisefido-crisis/internal/config"
	"wisefido-crisis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *CrisisService {
	t.Helper()

	indicators, err := catalog.LoadDefaultIndicators()
	require.NoError(t, err)
	protocols, err := catalog.LoadDefaultProtocols()
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Crisis.Recommendation.TopN = 8

	return NewCrisisService(cfg, indicators, protocols, zap.NewNop())
}

func mediumContext() *models.ContextSnapshot {
	return &models.ContextSnapshot{
		Numeric: map[string]float64{
			models.SignalDaysWithoutSocialInteraction: 6,
			models.SignalSleepDurationChangePercent:   -0.5,
		},
	}
}

func TestAssess_RequiresUserID(t *testing.T) {
	s := newTestService(t)

	_, err := s.Assess("", &models.ContextSnapshot{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_id is required")
}

func TestAssess_AppendsHistory(t *testing.T) {
	s := newTestService(t)

	first, err := s.Assess("user-1", mediumContext())
	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelMedium, first.RiskLevel)

	// 重新评估追加新记录，不修改已有记录
	second, err := s.Assess("user-1", mediumContext())
	require.NoError(t, err)
	assert.NotEqual(t, first.AssessmentID, second.AssessmentID)

	history := s.History("user-1")
	require.Len(t, history, 2)
	assert.Equal(t, first.AssessmentID, history[0].AssessmentID)
	assert.Equal(t, second.AssessmentID, history[1].AssessmentID)
}

func TestCheckEscalation_NoHistory(t *testing.T) {
	s := newTestService(t)

	_, _, err := s.CheckEscalation("user-1", mediumContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no existing assessment")
}

func TestCheckEscalation_NoEscalationMarksMonitored(t *testing.T) {
	s := newTestService(t)

	current, err := s.Assess("user-1", mediumContext())
	require.NoError(t, err)

	// 好转的上下文：得分下降，无危险标记，窗口未到期
	improved := &models.ContextSnapshot{
		Numeric: map[string]float64{
			models.SignalSleepDurationChangePercent: -0.5,
		},
	}

	decision, escalated, err := s.CheckEscalation("user-1", improved)
	require.NoError(t, err)
	assert.False(t, decision.Escalate)
	assert.Nil(t, escalated)

	// 既有评估进入 monitored 状态
	history := s.History("user-1")
	require.Len(t, history, 1)
	assert.Equal(t, models.AssessmentStatusMonitored, history[0].Status)
	_ = current
}

func TestCheckEscalation_EscalatesAndNeverDowngrades(t *testing.T) {
	s := newTestService(t)

	current, err := s.Assess("user-1", mediumContext())
	require.NoError(t, err)
	require.Equal(t, models.RiskLevelMedium, current.RiskLevel)

	// 立即危险标记但重评得分很低：等级单调性要求新评估不低于 high
	dangerCtx := &models.ContextSnapshot{
		Flags: map[string]bool{"immediate_danger": true},
	}

	decision, escalated, err := s.CheckEscalation("user-1", dangerCtx)
	require.NoError(t, err)
	assert.True(t, decision.Escalate)
	require.NotNil(t, escalated)

	assert.Equal(t, models.RiskLevelHigh, escalated.RiskLevel)
	assert.Equal(t, models.AssessmentStatusNew, escalated.Status)
	assert.NotEqual(t, current.AssessmentID, escalated.AssessmentID)
	assert.NotEmpty(t, escalated.Recommendations)

	// 既有评估成为历史记录（escalated），新评估追加在末尾
	history := s.History("user-1")
	require.Len(t, history, 2)
	assert.Equal(t, models.AssessmentStatusEscalated, history[0].Status)
	assert.Equal(t, escalated.AssessmentID, history[1].AssessmentID)
}

func TestResolve_Lifecycle(t *testing.T) {
	s := newTestService(t)

	assessment, err := s.Assess("user-1", mediumContext())
	require.NoError(t, err)

	require.NoError(t, s.Resolve("user-1", assessment.AssessmentID))

	history := s.History("user-1")
	assert.Equal(t, models.AssessmentStatusResolved, history[0].Status)

	// resolved 之后不允许任何流转（单向生命周期）
	err = s.Resolve("user-1", assessment.AssessmentID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status transition")
}

func TestResolve_Validation(t *testing.T) {
	s := newTestService(t)

	require.Error(t, s.Resolve("", "assessment-1"))
	require.Error(t, s.Resolve("user-1", ""))
	require.Error(t, s.Resolve("user-1", "missing-assessment"))
}

func TestGenerateSafetyPlan_UsesLatestAssessmentLevel(t *testing.T) {
	s := newTestService(t)

	// 无评估历史：使用 minimal 兜底协议
	plan, err := s.GenerateSafetyPlan("user-1", &models.ContextSnapshot{})
	require.NoError(t, err)
	minimal := s.SelectProtocol(models.RiskLevelMinimal)
	assert.Equal(t, minimal.SupportResources, plan.ProfessionalHelp)

	// critical 评估之后：使用 critical 协议的资源
	_, err = s.Assess("user-1", &models.ContextSnapshot{
		Flags: map[string]bool{"suicidal_thoughts_reported": true},
	})
	require.NoError(t, err)

	plan, err = s.GenerateSafetyPlan("user-1", &models.ContextSnapshot{})
	require.NoError(t, err)
	critical := s.SelectProtocol(models.RiskLevelCritical)
	assert.Equal(t, critical.SupportResources, plan.ProfessionalHelp)
	assert.NotEmpty(t, plan.EnvironmentalSafety)
}

func TestGenerateSafetyPlan_RequiresUserID(t *testing.T) {
	s := newTestService(t)

	_, err := s.GenerateSafetyPlan("", &models.ContextSnapshot{})
	require.Error(t, err)
}

func TestAssessmentHistory_StatusTransitions(t *testing.T) {
	h := NewAssessmentHistory()

	assessment := &models.Assessment{
		AssessmentID: "a-1",
		UserID:       "user-1",
		Status:       models.AssessmentStatusNew,
	}
	require.NoError(t, h.Append(assessment))

	// 正向流转允许
	require.NoError(t, h.UpdateStatus("user-1", "a-1", models.AssessmentStatusMonitored))
	require.NoError(t, h.UpdateStatus("user-1", "a-1", models.AssessmentStatusEscalated))
	require.NoError(t, h.UpdateStatus("user-1", "a-1", models.AssessmentStatusResolved))

	// 回退与原地重复禁止
	err := h.UpdateStatus("user-1", "a-1", models.AssessmentStatusMonitored)
	require.Error(t, err)
	err = h.UpdateStatus("user-1", "a-1", models.AssessmentStatusResolved)
	require.Error(t, err)

	// 未知状态
	err = h.UpdateStatus("user-1", "a-1", models.AssessmentStatus("archived"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown assessment status")
}
