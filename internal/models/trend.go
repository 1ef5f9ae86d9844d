package models

// 情绪趋势方向
const (
	TrendImproving        = "improving"
	TrendStable           = "stable"
	TrendDeteriorating    = "deteriorating"
	TrendInsufficientData = "insufficient_data"
)

// 固定关注模式标签
const (
	PatternSustainedMoodDecline = "sustained_mood_decline"
	PatternSocialIsolation      = "social_isolation"
	PatternChronicSleepProblems = "chronic_sleep_problems"
)

// TrendDescriptor 情绪走势描述（供仪表盘/洞察功能消费）
type TrendDescriptor struct {
	Direction          string   `json:"direction"`
	ChangeRate         float64  `json:"change_rate"` // 近 7 天均值 - 前一窗口均值
	ConcerningPatterns []string `json:"concerning_patterns,omitempty"`
}
