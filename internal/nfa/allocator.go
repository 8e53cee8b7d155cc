package nfa

// Allocator hands out state numbers from a single counter. A combinator
// builds its whole result from one allocator, so fresh states and renumbered
// operands can never share a number.
type Allocator struct {
	next State
}

func NewAllocator(base State) *Allocator {
	return &Allocator{next: base}
}

// Fresh reserves one new state.
func (al *Allocator) Fresh() State {
	s := al.next
	al.next++
	return s
}

// Place returns a copy of a renumbered into the next free contiguous range
// and advances the counter past it.
func (al *Allocator) Place(a *Automaton) *Automaton {
	b := a.renumber(al.next)
	al.next += State(b.NumStates())
	return b
}

// Next is the first number not yet handed out.
func (al *Allocator) Next() State { return al.next }
