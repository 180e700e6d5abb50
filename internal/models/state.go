package models

// State is a conversation state. The set is closed: every consumer switches
// over all values, StateIdle means no active flow.
type State int

const (
	StateIdle State = iota
	StateOnboardingStart
	StateOnboardingGroup
	StateOnboardingRole
	StateOnboardingCalendar
	StateOnboardingTags
	StateFocusSelectDuration
	StateFocusWorking
	StateFocusBreak
	StateFocusLongBreak
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOnboardingStart:
		return "onboarding_start"
	case StateOnboardingGroup:
		return "onboarding_group"
	case StateOnboardingRole:
		return "onboarding_role"
	case StateOnboardingCalendar:
		return "onboarding_calendar"
	case StateOnboardingTags:
		return "onboarding_tags"
	case StateFocusSelectDuration:
		return "focus_select_duration"
	case StateFocusWorking:
		return "focus_working"
	case StateFocusBreak:
		return "focus_break"
	case StateFocusLongBreak:
		return "focus_long_break"
	}
	return "unknown"
}

// IsOnboarding reports whether s belongs to the onboarding flow.
func (s State) IsOnboarding() bool {
	switch s {
	case StateOnboardingStart, StateOnboardingGroup, StateOnboardingRole,
		StateOnboardingCalendar, StateOnboardingTags:
		return true
	case StateIdle, StateFocusSelectDuration, StateFocusWorking,
		StateFocusBreak, StateFocusLongBreak:
		return false
	}
	return false
}

// IsFocus reports whether s belongs to the focus flow.
func (s State) IsFocus() bool {
	switch s {
	case StateFocusSelectDuration, StateFocusWorking, StateFocusBreak, StateFocusLongBreak:
		return true
	case StateIdle, StateOnboardingStart, StateOnboardingGroup, StateOnboardingRole,
		StateOnboardingCalendar, StateOnboardingTags:
		return false
	}
	return false
}
