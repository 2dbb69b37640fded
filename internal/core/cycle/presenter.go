package cycle

// Status is the ambient three-state indicator.
type Status int

const (
	StatusIdle Status = iota
	StatusArmed
	StatusCycling
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusArmed:
		return "armed"
	case StatusCycling:
		return "cycling"
	default:
		return "unknown"
	}
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "idle":
		return StatusIdle, true
	case "armed":
		return StatusArmed, true
	case "cycling":
		return StatusCycling, true
	}
	return StatusIdle, false
}

// StatusIndicator displays the current Status. It holds no logic.
type StatusIndicator interface {
	SetStatus(Status)
}

// Selector shows the variant list for the active letter. It is purely
// reactive and never calls back into the controller.
type Selector interface {
	Show(base rune, variants []string, anchor Node, selected int)
	Update(selected int)
	Hide()
}

type nopSelector struct{}

func (nopSelector) Show(rune, []string, Node, int) {}
func (nopSelector) Update(int)                     {}
func (nopSelector) Hide()                          {}

type nopStatus struct{}

func (nopStatus) SetStatus(Status) {}
