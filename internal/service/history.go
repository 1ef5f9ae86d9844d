package service

import (
	"fmt"
	"sync"

	"wisefido-crisis/internal/models"
)

// statusRank 生命周期状态序号（只允许正向流转）
var statusRank = map[models.AssessmentStatus]int{
	models.AssessmentStatusNew:       0,
	models.AssessmentStatusMonitored: 1,
	models.AssessmentStatusEscalated: 2,
	models.AssessmentStatusResolved:  3,
}

// AssessmentHistory 评估历史（进程内追加式存储）
// 评分内容一经发布不再修改；重新评估总是追加新记录。
// 状态只做单向流转：new → monitored → escalated → resolved，
// 不存在从 escalated/resolved 回到更早状态的自动路径。
// 持久化由外部协作方负责，此处仅维护本进程的评估谱系。
type AssessmentHistory struct {
	mu     sync.RWMutex
	byUser map[string][]*models.Assessment
}

// NewAssessmentHistory 创建评估历史
func NewAssessmentHistory() *AssessmentHistory {
	return &AssessmentHistory{
		byUser: make(map[string][]*models.Assessment),
	}
}

// Append 追加一条评估记录
func (h *AssessmentHistory) Append(assessment *models.Assessment) error {
	if assessment == nil {
		return fmt.Errorf("assessment is required")
	}
	if assessment.UserID == "" {
		return fmt.Errorf("user_id is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.byUser[assessment.UserID] = append(h.byUser[assessment.UserID], assessment)
	return nil
}

// Latest 返回用户最近一条评估
func (h *AssessmentHistory) Latest(userID string) (*models.Assessment, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	assessments := h.byUser[userID]
	if len(assessments) == 0 {
		return nil, false
	}
	return assessments[len(assessments)-1], true
}

// List 返回用户全部评估（按追加顺序）
func (h *AssessmentHistory) List(userID string) []*models.Assessment {
	h.mu.RLock()
	defer h.mu.RUnlock()

	assessments := h.byUser[userID]
	out := make([]*models.Assessment, len(assessments))
	copy(out, assessments)
	return out
}

// UpdateStatus 更新评估生命周期状态
// 业务规则：
// - 目标状态必须在封闭枚举内
// - 只允许正向流转（禁止回退和原地重复）
func (h *AssessmentHistory) UpdateStatus(userID, assessmentID string, status models.AssessmentStatus) error {
	newRank, ok := statusRank[status]
	if !ok {
		return fmt.Errorf("unknown assessment status: %s", status)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, assessment := range h.byUser[userID] {
		if assessment.AssessmentID != assessmentID {
			continue
		}
		currentRank := statusRank[assessment.Status]
		if newRank <= currentRank {
			return fmt.Errorf("invalid status transition %s -> %s for assessment %s",
				assessment.Status, status, assessmentID)
		}
		assessment.Status = status
		return nil
	}

	return fmt.Errorf("assessment not found: %s", assessmentID)
}
