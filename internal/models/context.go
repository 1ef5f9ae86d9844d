package models

// 上下文信号名（来自外部聚合服务的约定键名）
const (
	SignalDaysWithoutSocialInteraction = "days_without_social_interaction"
	SignalSleepDurationChangePercent   = "sleep_duration_change_percent"
	SignalCurrentAnxietyScore          = "current_anxiety_score"
	SignalMoodDeclinePointsPerDay      = "mood_decline_points_per_day"
	SignalSleepProblemWeeks            = "sleep_problem_weeks"
	SignalAvoidancePatterns            = "avoidance_patterns"
	SignalImmediateDangerIndicators    = "immediate_danger_indicators"
)

// 立即危险布尔标志（任一为 true 即触发升级保护）
var ImmediateDangerFlags = []string{
	"immediate_danger",
	"suicide_plan_disclosed",
	"recent_attempt",
}

// EmergencyContact 紧急联系人（由外部聚合服务提供）
type EmergencyContact struct {
	Name     string `json:"name" yaml:"name"`
	Relation string `json:"relation,omitempty" yaml:"relation"`
	Phone    string `json:"phone" yaml:"phone"`
}

// ContextSnapshot 评估上下文快照（每次请求由外部聚合服务构建，核心只读）
type ContextSnapshot struct {
	// 命名信号
	Numeric map[string]float64  `json:"numeric,omitempty"`
	Flags   map[string]bool     `json:"flags,omitempty"`
	Lists   map[string][]string `json:"lists,omitempty"`

	// 自由文本信号（近期文字内容）
	RecentTextContent string `json:"recent_text_content,omitempty"`

	// 按时间顺序排列的情绪评分历史（旧 → 新）
	MoodHistory []float64 `json:"mood_history,omitempty"`

	// 安全计划输入（用户自报）
	RecurringTriggers   []string           `json:"recurring_triggers,omitempty"`
	EffectiveStrategies []string           `json:"effective_strategies,omitempty"`
	EmergencyContacts   []EmergencyContact `json:"emergency_contacts,omitempty"`
}

// NumericSignal 读取数值信号；缺失返回 (0, false)，缺失不视为错误
func (c *ContextSnapshot) NumericSignal(name string) (float64, bool) {
	if c == nil || c.Numeric == nil {
		return 0, false
	}
	v, ok := c.Numeric[name]
	return v, ok
}

// FlagSignal 读取布尔信号；缺失返回 (false, false)
func (c *ContextSnapshot) FlagSignal(name string) (bool, bool) {
	if c == nil || c.Flags == nil {
		return false, false
	}
	v, ok := c.Flags[name]
	return v, ok
}

// ListSignal 读取列表信号；缺失返回 nil
func (c *ContextSnapshot) ListSignal(name string) []string {
	if c == nil || c.Lists == nil {
		return nil
	}
	return c.Lists[name]
}

// HasImmediateDanger 是否存在立即危险标记
// 判定：immediate_danger_indicators 列表非空，或任一危险布尔标志为 true
func (c *ContextSnapshot) HasImmediateDanger() bool {
	if c == nil {
		return false
	}
	if len(c.ListSignal(SignalImmediateDangerIndicators)) > 0 {
		return true
	}
	for _, flag := range ImmediateDangerFlags {
		if v, ok := c.FlagSignal(flag); ok && v {
			return true
		}
	}
	return false
}

// PopulatedSignalFamilies 已填充的信号族数量（数值/布尔/列表/文本/情绪历史）
// 用于评估置信度的数据来源多样性加成
func (c *ContextSnapshot) PopulatedSignalFamilies() int {
	if c == nil {
		return 0
	}
	families := 0
	if len(c.Numeric) > 0 {
		families++
	}
	if len(c.Flags) > 0 {
		families++
	}
	if len(c.Lists) > 0 {
		families++
	}
	if c.RecentTextContent != "" {
		families++
	}
	if len(c.MoodHistory) > 0 {
		families++
	}
	return families
}
