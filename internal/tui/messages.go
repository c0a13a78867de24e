package tui

import (
	"github.com/rgehrsitz/regime7/internal/domain"
)

// Tab is one of the projection browser's views
type Tab int

const (
	TabOverview Tab = iota
	TabRegime
	TabPostRegime
	TabSources
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabRegime:
		return "7% Regime"
	case TabPostRegime:
		return "Post-Regime"
	case TabSources:
		return "Source Breakdown"
	default:
		return "Unknown"
	}
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ProjectionsReadyMsg carries the tables of every scenario
type ProjectionsReadyMsg struct {
	Set *domain.ProjectionSet
	Err error
}
