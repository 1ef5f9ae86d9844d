package safetyplan

import (
	"time"

	"wisefido-crisis/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxCopingStrategies 采纳的既往有效策略上限
const maxCopingStrategies = 5

// defaultEnvironmentalSafety 固定的环境安全清单（协议无关）
var defaultEnvironmentalSafety = []string{
	"Remove or lock away items that could be used for self-harm",
	"Keep emergency numbers visible near your phone",
	"Ask someone you trust to hold medication during difficult periods",
	"Identify a safe place you can go to when things get worse",
	"Avoid alcohol and drugs during a crisis period",
}

// defaultProfessionalHelp 协议资源缺失时的兜底资源
// 目录校验保证协议资源非空，此处仅作为最后防线，确保契约成立。
var defaultProfessionalHelp = []models.SupportResource{
	{
		Kind:        models.ResourceEmergency,
		Name:        "Emergency services",
		Contact:     "Call 112",
		Description: "Immediate emergency response",
	},
	{
		Kind:        models.ResourceHotline,
		Name:        "Crisis support line",
		Contact:     "Call 90101",
		Description: "Staffed crisis line, daily",
	},
}

// Generator 安全计划生成器
// 合并上下文自报内容与所选协议的固定资源；上下文不完整时使用默认项，
// ProfessionalHelp 与 EnvironmentalSafety 永不为空（全函数）。
type Generator struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator 创建安全计划生成器
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{
		logger: logger,
		now:    time.Now,
	}
}

// Generate 生成个性化安全计划
func (g *Generator) Generate(userID string, ctx *models.ContextSnapshot, selected models.Protocol) *models.SafetyPlan {
	plan := &models.SafetyPlan{
		PlanID:              uuid.New().String(),
		UserID:              userID,
		WarningSigns:        []string{},
		CopingStrategies:    []string{},
		SupportContacts:     []models.EmergencyContact{},
		EnvironmentalSafety: append([]string(nil), defaultEnvironmentalSafety...),
		CreatedDate:         g.now(),
	}

	if ctx != nil {
		plan.WarningSigns = append(plan.WarningSigns, ctx.RecurringTriggers...)

		strategies := ctx.EffectiveStrategies
		if len(strategies) > maxCopingStrategies {
			strategies = strategies[:maxCopingStrategies]
		}
		plan.CopingStrategies = append(plan.CopingStrategies, strategies...)

		plan.SupportContacts = append(plan.SupportContacts, ctx.EmergencyContacts...)
	}

	// 专业帮助始终使用协议的固定资源列表
	plan.ProfessionalHelp = append([]models.SupportResource(nil), selected.SupportResources...)
	if len(plan.ProfessionalHelp) == 0 {
		g.logger.Warn("Protocol has no support resources, using defaults",
			zap.String("protocol_id", selected.ID),
		)
		plan.ProfessionalHelp = append([]models.SupportResource(nil), defaultProfessionalHelp...)
	}

	g.logger.Info("Safety plan generated",
		zap.String("plan_id", plan.PlanID),
		zap.String("user_id", userID),
		zap.String("protocol_id", selected.ID),
		zap.Int("coping_strategies", len(plan.CopingStrategies)),
		zap.Int("support_contacts", len(plan.SupportContacts)),
	)

	return plan
}
