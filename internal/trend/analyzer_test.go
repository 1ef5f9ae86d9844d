package trend

import (
	"testing"

	"wisefido-crisis/internal/models"

	"github.com/stretchr/testify/assert"
)

// 场景D：14 点历史，最近 7 点均值比前 7 点低 2.0 → deteriorating + 下滑标记
func TestAnalyze_ScenarioD_Deteriorating(t *testing.T) {
	a := NewAnalyzer()

	ctx := &models.ContextSnapshot{
		MoodHistory: []float64{6, 6, 6, 6, 6, 6, 6, 4, 4, 4, 4, 4, 4, 4},
	}

	descriptor := a.Analyze(ctx)
	assert.Equal(t, models.TrendDeteriorating, descriptor.Direction)
	assert.InDelta(t, -2.0, descriptor.ChangeRate, 1e-9)
	assert.Contains(t, descriptor.ConcerningPatterns, models.PatternSustainedMoodDecline)
}

func TestAnalyze_Improving(t *testing.T) {
	a := NewAnalyzer()

	ctx := &models.ContextSnapshot{
		MoodHistory: []float64{3, 3, 3, 3, 3, 3, 3, 5, 5, 5, 5, 5, 5, 5},
	}

	descriptor := a.Analyze(ctx)
	assert.Equal(t, models.TrendImproving, descriptor.Direction)
	assert.InDelta(t, 2.0, descriptor.ChangeRate, 1e-9)
	assert.Empty(t, descriptor.ConcerningPatterns)
}

func TestAnalyze_StableWithinBand(t *testing.T) {
	a := NewAnalyzer()

	// 均值差 ±1.0 以内为 stable
	ctx := &models.ContextSnapshot{
		MoodHistory: []float64{5, 5, 5, 5, 5, 5, 5, 4.5, 4.5, 4.5, 4.5, 4.5, 4.5, 4.5},
	}

	descriptor := a.Analyze(ctx)
	assert.Equal(t, models.TrendStable, descriptor.Direction)
}

func TestAnalyze_InsufficientData(t *testing.T) {
	a := NewAnalyzer()

	descriptor := a.Analyze(&models.ContextSnapshot{
		MoodHistory: []float64{5, 4, 3},
	})
	assert.Equal(t, models.TrendInsufficientData, descriptor.Direction)
	assert.Equal(t, 0.0, descriptor.ChangeRate)

	// 空历史/nil 上下文同样不报错
	descriptor = a.Analyze(&models.ContextSnapshot{})
	assert.Equal(t, models.TrendInsufficientData, descriptor.Direction)

	descriptor = a.Analyze(nil)
	assert.Equal(t, models.TrendInsufficientData, descriptor.Direction)
}

// 恰好 7 点时没有可比较的基线窗口
func TestAnalyze_ExactlyOneWindow(t *testing.T) {
	a := NewAnalyzer()

	descriptor := a.Analyze(&models.ContextSnapshot{
		MoodHistory: []float64{5, 5, 5, 5, 5, 5, 5},
	})
	assert.Equal(t, models.TrendStable, descriptor.Direction)
	assert.Equal(t, 0.0, descriptor.ChangeRate)
}

// 前置窗口不足 7 点时使用全部更早数据
func TestAnalyze_ShortPriorWindow(t *testing.T) {
	a := NewAnalyzer()

	// 3 个更早数据点（均值 6）+ 最近 7 点（均值 4）
	descriptor := a.Analyze(&models.ContextSnapshot{
		MoodHistory: []float64{6, 6, 6, 4, 4, 4, 4, 4, 4, 4},
	})
	assert.Equal(t, models.TrendDeteriorating, descriptor.Direction)
	assert.InDelta(t, -2.0, descriptor.ChangeRate, 1e-9)
}

// 关注模式独立于均值差，直接由原始计数信号判定
func TestAnalyze_ConcerningPatternsFromCounters(t *testing.T) {
	a := NewAnalyzer()

	ctx := &models.ContextSnapshot{
		Numeric: map[string]float64{
			models.SignalDaysWithoutSocialInteraction: 5,
			models.SignalSleepProblemWeeks:            2,
		},
	}

	// 历史不足也照样检测计数信号
	descriptor := a.Analyze(ctx)
	assert.Equal(t, models.TrendInsufficientData, descriptor.Direction)
	assert.Contains(t, descriptor.ConcerningPatterns, models.PatternSocialIsolation)
	assert.Contains(t, descriptor.ConcerningPatterns, models.PatternChronicSleepProblems)
}
