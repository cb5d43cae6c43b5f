package dashboard

import (
	"fmt"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
)

// Visual classes for lifecycle stages. Active wins over completed;
// everything else is future.
const (
	ClassActive    = "active"
	ClassCompleted = "completed"
	ClassFuture    = "future"
)

// StageView is the rendered form of one pipeline stage.
type StageView struct {
	Name    string
	Icon    string
	Class   string
	Current bool
}

var stageIcons = map[string]string{
	"Applied":     "📄",
	"Shortlisted": "⭐",
	"Selected":    "🎉",
	"Rejected":    "❌",
}

// fallbackIcon keeps the view forward-compatible with stage names the
// client has never heard of, at the cost of a generic glyph.
const fallbackIcon = "⏱️"

// StageIcon maps a stage name to its glyph.
func StageIcon(name string) string {
	if icon, ok := stageIcons[name]; ok {
		return icon
	}
	return fallbackIcon
}

// StageClass resolves the visual class for one stage.
func StageClass(s models.FlowStage) string {
	switch {
	case s.Active:
		return ClassActive
	case s.Completed:
		return ClassCompleted
	default:
		return ClassFuture
	}
}

// RenderFlow projects an ordered stage manifest into stage views. This is
// a pure read-only projection; no mutation ever originates here. The
// upstream contract of at most one active stage is enforced, not assumed.
func RenderFlow(stages []models.FlowStage) ([]StageView, error) {
	active := 0
	for _, s := range stages {
		if s.Active {
			active++
		}
	}
	if active > 1 {
		return nil, fmt.Errorf("stage manifest marks %d stages active", active)
	}

	out := make([]StageView, 0, len(stages))
	for _, s := range stages {
		view := StageView{
			Name:    s.Stage,
			Class:   StageClass(s),
			Current: s.Active,
		}
		if s.Completed {
			view.Icon = StageIcon(s.Stage)
		}
		out = append(out, view)
	}
	return out, nil
}
