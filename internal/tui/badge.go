package tui

import (
	"github.com/colonyops/accentflow/internal/core/cycle"
	"github.com/colonyops/accentflow/internal/core/styles"
)

var _ cycle.StatusIndicator = (*Badge)(nil)

// Badge shows the accent status in the header. Idle renders nothing.
type Badge struct {
	ready     string
	selecting string
	status    cycle.Status
}

// NewBadge creates an idle badge with the given labels.
func NewBadge(ready, selecting string) *Badge {
	return &Badge{ready: ready, selecting: selecting}
}

// SetStatus implements cycle.StatusIndicator.
func (b *Badge) SetStatus(s cycle.Status) {
	b.status = s
}

// SetLabels replaces the armed and cycling labels.
func (b *Badge) SetLabels(ready, selecting string) {
	b.ready = ready
	b.selecting = selecting
}

// Status returns the last status set.
func (b *Badge) Status() cycle.Status {
	return b.status
}

// View renders the badge.
func (b *Badge) View() string {
	switch b.status {
	case cycle.StatusArmed:
		return styles.BadgeStyle.Render(b.ready)
	case cycle.StatusCycling:
		return styles.BadgeBusyStyle.Render(b.selecting)
	default:
		return ""
	}
}
