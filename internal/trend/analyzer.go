package trend

import (
	"wisefido-crisis/internal/models"
)

// 窗口与方向判定参数
const (
	windowSize           = 7    // 近期窗口长度（数据点数）
	deterioratingBelow   = -1.0 // change_rate 低于该值判定为恶化
	improvingAbove       = 1.0  // change_rate 高于该值判定为好转
	isolationPatternDays = 5    // 社交隔离天数阈值
	sleepPatternWeeks    = 2    // 睡眠问题周数阈值
)

// Analyzer 情绪走势分析器（纯函数，无共享状态）
type Analyzer struct{}

// NewAnalyzer 创建走势分析器
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze 分析情绪评分历史，产出走势描述
// 不足 7 个数据点时方向为 insufficient_data；
// 足够时比较最近 7 点与其前 7 点（不足 7 点则取全部更早数据）的均值差。
// 关注模式标签独立于均值差：直接检查上下文中的原始计数信号。
func (a *Analyzer) Analyze(ctx *models.ContextSnapshot) models.TrendDescriptor {
	descriptor := models.TrendDescriptor{
		Direction: models.TrendInsufficientData,
	}

	var history []float64
	if ctx != nil {
		history = ctx.MoodHistory
	}

	if len(history) >= windowSize {
		recent := history[len(history)-windowSize:]
		prior := history[:len(history)-windowSize]
		if len(prior) > windowSize {
			prior = prior[len(prior)-windowSize:]
		}

		if len(prior) == 0 {
			// 恰好只有一个窗口的数据，没有可比较的基线
			descriptor.Direction = models.TrendStable
		} else {
			descriptor.ChangeRate = mean(recent) - mean(prior)
			switch {
			case descriptor.ChangeRate < deterioratingBelow:
				descriptor.Direction = models.TrendDeteriorating
			case descriptor.ChangeRate > improvingAbove:
				descriptor.Direction = models.TrendImproving
			default:
				descriptor.Direction = models.TrendStable
			}
		}
	}

	if descriptor.Direction == models.TrendDeteriorating {
		descriptor.ConcerningPatterns = append(descriptor.ConcerningPatterns, models.PatternSustainedMoodDecline)
	}
	if days, ok := ctx.NumericSignal(models.SignalDaysWithoutSocialInteraction); ok && days >= isolationPatternDays {
		descriptor.ConcerningPatterns = append(descriptor.ConcerningPatterns, models.PatternSocialIsolation)
	}
	if weeks, ok := ctx.NumericSignal(models.SignalSleepProblemWeeks); ok && weeks >= sleepPatternWeeks {
		descriptor.ConcerningPatterns = append(descriptor.ConcerningPatterns, models.PatternChronicSleepProblems)
	}

	return descriptor
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
