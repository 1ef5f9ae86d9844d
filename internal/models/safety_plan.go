package models

import (
	"time"
)

// SafetyPlan 个性化安全计划
// 由上下文自报内容与所选协议的固定资源合并生成；
// ProfessionalHelp 与 EnvironmentalSafety 保证非空（上下文为空时使用默认项）。
// 可通过用户显式编辑或重新生成修改，持久化由外部负责。
type SafetyPlan struct {
	PlanID              string             `json:"plan_id"`
	UserID              string             `json:"user_id"`
	WarningSigns        []string           `json:"warning_signs"`
	CopingStrategies    []string           `json:"coping_strategies"`
	SupportContacts     []EmergencyContact `json:"support_contacts"`
	ProfessionalHelp    []SupportResource  `json:"professional_help"`
	EnvironmentalSafety []string           `json:"environmental_safety"`
	CreatedDate         time.Time          `json:"created_date"`
}
