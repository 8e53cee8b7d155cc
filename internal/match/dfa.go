package match

import (
	"fmt"

	"thompson/internal/nfa"
)

// DState is one state of a DFA. NFA holds the ε-closed set of automaton
// states it stands for; it is empty after minimization.
type DState struct {
	ID     int
	Accept bool
	Next   map[nfa.Symbol]*DState
	NFA    []nfa.State
}

// DFA is a partial deterministic automaton: a missing transition rejects.
type DFA struct {
	Start    *DState
	States   []*DState
	Alphabet []nfa.Symbol
}

// Determinize runs the subset construction over a.Language(). States are
// numbered in BFS discovery order starting at 0.
func Determinize(a *nfa.Automaton) *DFA {
	alpha := a.Language()
	key := func(states []nfa.State) string { return fmt.Sprint(states) }

	initSet := closure(a, []nfa.State{a.StartState()})
	initIDs := sorted(initSet)
	start := &DState{ID: 0, Accept: hasFinal(a, initSet), Next: map[nfa.Symbol]*DState{}, NFA: initIDs}

	seen := map[string]*DState{key(initIDs): start}
	states := []*DState{start}
	queue := []*DState{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curSet := closure(a, cur.NFA)
		for _, sym := range alpha {
			moved := move(a, curSet, sym)
			if len(moved) == 0 {
				continue
			}
			clo := closure(a, moved)
			ids := sorted(clo)
			k := key(ids)
			d, ok := seen[k]
			if !ok {
				d = &DState{ID: len(states), Accept: hasFinal(a, clo), Next: map[nfa.Symbol]*DState{}, NFA: ids}
				seen[k] = d
				states = append(states, d)
				queue = append(queue, d)
			}
			cur.Next[sym] = d
		}
	}
	return &DFA{Start: start, States: states, Alphabet: alpha}
}

func (d *DFA) Accepts(input []nfa.Symbol) bool {
	cur := d.Start
	for _, sym := range input {
		if sym == nfa.Epsilon {
			continue
		}
		next, ok := cur.Next[sym]
		if !ok {
			return false
		}
		cur = next
	}
	return cur.Accept
}

func (d *DFA) AcceptsString(s string) bool {
	return d.Accepts(Symbols(s))
}
