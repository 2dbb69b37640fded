package cycle

// State is the in-progress substitution. The zero value is IDLE.
type State struct {
	active  rune
	cycling bool
	index   map[rune]int
	node    Node
}

// Active returns the base letter being cycled.
func (s *State) Active() (rune, bool) {
	return s.active, s.cycling
}

// Cycling reports whether a substitution is live.
func (s *State) Cycling() bool {
	return s.cycling
}

// Index returns the index of the variant last rendered for base. It is only
// present while base is the active letter.
func (s *State) Index(base rune) (int, bool) {
	i, ok := s.index[base]
	return i, ok
}

// Node returns the live substitution handle, nil when IDLE.
func (s *State) Node() Node {
	return s.node
}

func (s *State) begin(base rune, node Node) {
	if s.index == nil {
		s.index = make(map[rune]int)
	}
	s.active = base
	s.cycling = true
	s.index[base] = 0
	s.node = node
}

func (s *State) setIndex(base rune, i int) {
	s.index[base] = i
}

func (s *State) reset() {
	s.active = 0
	s.cycling = false
	clear(s.index)
	s.node = nil
}
