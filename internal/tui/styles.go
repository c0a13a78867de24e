package tui

import "github.com/rgehrsitz/regime7/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	AppStyle         = tuistyles.AppStyle
	TitleStyle       = tuistyles.TitleStyle
	SubtitleStyle    = tuistyles.SubtitleStyle
	StatusBarStyle   = tuistyles.StatusBarStyle
	BorderStyle      = tuistyles.BorderStyle
	ActiveTabStyle   = tuistyles.ActiveTabStyle
	InactiveTabStyle = tuistyles.InactiveTabStyle
	ErrorStyle       = tuistyles.ErrorStyle
)
