package evaluator

import (
	"fmt"
	"strings"

	"wisefido-crisis/internal/models"
)

// evaluatePredicate 评估单个检测谓词
// 约定：信号缺失一律视为"谓词不满足"（返回 false, nil），不是错误；
// 谓词定义本身畸形（缺少必填字段、未知类型）才返回错误。
func evaluatePredicate(p models.Predicate, ctx *models.ContextSnapshot) (bool, error) {
	switch p.Kind {
	case models.PredicateThreshold:
		return evaluateThreshold(p, ctx)
	case models.PredicateCount:
		return evaluateCount(p, ctx)
	case models.PredicateMembership:
		return evaluateMembership(p, ctx)
	case models.PredicateTextContains:
		return evaluateTextContains(p, ctx)
	case models.PredicateFlag:
		return evaluateFlag(p, ctx)
	default:
		return false, fmt.Errorf("unknown predicate kind %q", p.Kind)
	}
}

// evaluateThreshold 阈值谓词：数值信号与阈值比较（默认 >=，lte 为 <=）
func evaluateThreshold(p models.Predicate, ctx *models.ContextSnapshot) (bool, error) {
	if p.Signal == "" {
		return false, fmt.Errorf("threshold predicate %q missing signal", p.ID)
	}
	if p.Threshold == nil {
		return false, fmt.Errorf("threshold predicate %q missing threshold", p.ID)
	}

	value, ok := ctx.NumericSignal(p.Signal)
	if !ok {
		return false, nil
	}

	switch p.Direction {
	case models.DirectionLTE:
		return value <= *p.Threshold, nil
	case models.DirectionGTE, "":
		return value >= *p.Threshold, nil
	default:
		return false, fmt.Errorf("threshold predicate %q has unknown direction %q", p.ID, p.Direction)
	}
}

// evaluateCount 计数/持续时长谓词：整数信号 >= 最小值
func evaluateCount(p models.Predicate, ctx *models.ContextSnapshot) (bool, error) {
	if p.Signal == "" {
		return false, fmt.Errorf("count predicate %q missing signal", p.ID)
	}
	if p.MinCount == nil {
		return false, fmt.Errorf("count predicate %q missing min_count", p.ID)
	}

	value, ok := ctx.NumericSignal(p.Signal)
	if !ok {
		return false, nil
	}

	return int(value) >= *p.MinCount, nil
}

// evaluateMembership 成员谓词：列表信号包含任一配置关键词
func evaluateMembership(p models.Predicate, ctx *models.ContextSnapshot) (bool, error) {
	if p.Signal == "" {
		return false, fmt.Errorf("membership predicate %q missing signal", p.ID)
	}
	if len(p.Keywords) == 0 {
		return false, fmt.Errorf("membership predicate %q has no keywords", p.ID)
	}

	values := ctx.ListSignal(p.Signal)
	if len(values) == 0 {
		return false, nil
	}

	for _, v := range values {
		for _, keyword := range p.Keywords {
			if strings.EqualFold(v, keyword) {
				return true, nil
			}
		}
	}
	return false, nil
}

// evaluateTextContains 文本谓词：自由文本大小写不敏感包含任一关键词
func evaluateTextContains(p models.Predicate, ctx *models.ContextSnapshot) (bool, error) {
	if len(p.Keywords) == 0 {
		return false, fmt.Errorf("text_contains predicate %q has no keywords", p.ID)
	}

	if ctx == nil || ctx.RecentTextContent == "" {
		return false, nil
	}

	text := strings.ToLower(ctx.RecentTextContent)
	for _, keyword := range p.Keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			return true, nil
		}
	}
	return false, nil
}

// evaluateFlag 布尔谓词：布尔信号等于期望值
func evaluateFlag(p models.Predicate, ctx *models.ContextSnapshot) (bool, error) {
	if p.Signal == "" {
		return false, fmt.Errorf("flag predicate %q missing signal", p.ID)
	}
	if p.Expected == nil {
		return false, fmt.Errorf("flag predicate %q missing expected value", p.ID)
	}

	value, ok := ctx.FlagSignal(p.Signal)
	if !ok {
		return false, nil
	}

	return value == *p.Expected, nil
}
