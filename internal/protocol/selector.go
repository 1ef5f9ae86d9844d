package protocol

import (
	"wisefido-crisis/internal/catalog"
	"wisefido-crisis/internal/models"

	"go.uber.org/zap"
)

// Selector 干预协议选择器
// 风险等级 → 协议的全函数映射：任何输入（含封闭枚举外的值）都返回可用协议，
// 未映射的等级降级为 minimal 兜底协议而不是报错。
type Selector struct {
	protocols *catalog.ProtocolCatalog
	logger    *zap.Logger
}

// NewSelector 创建协议选择器
func NewSelector(protocols *catalog.ProtocolCatalog, logger *zap.Logger) *Selector {
	return &Selector{
		protocols: protocols,
		logger:    logger,
	}
}

// Select 按风险等级选择协议（永不失败）
func (s *Selector) Select(level models.RiskLevel) models.Protocol {
	if p, ok := s.protocols.ByLevel(level); ok {
		return p
	}

	// 封闭枚举下不应到达；命中时记录并降级为兜底协议
	s.logger.Warn("Unmapped risk level, falling back to generic protocol",
		zap.String("risk_level", string(level)),
	)
	return s.protocols.Fallback()
}
