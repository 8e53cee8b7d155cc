// Package match runs finished ε-NFAs: closure, simulation, subset
// construction and minimization.
package match

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"thompson/internal/nfa"
)

// Closure returns the ε-closure of states, sorted.
func Closure(a *nfa.Automaton, states ...nfa.State) []nfa.State {
	return sorted(closure(a, states))
}

func closure(a *nfa.Automaton, states []nfa.State) mapset.Set[nfa.State] {
	set := mapset.NewThreadUnsafeSet[nfa.State]()
	stack := make([]nfa.State, 0, len(states))
	for _, s := range states {
		if set.Add(s) {
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, to := range a.Targets(s, nfa.Epsilon) {
			if set.Add(to) {
				stack = append(stack, to)
			}
		}
	}
	return set
}

func move(a *nfa.Automaton, set mapset.Set[nfa.State], sym nfa.Symbol) []nfa.State {
	var out []nfa.State
	set.Each(func(s nfa.State) bool {
		out = append(out, a.Targets(s, sym)...)
		return false
	})
	return out
}

func hasFinal(a *nfa.Automaton, set mapset.Set[nfa.State]) bool {
	for _, f := range a.FinalStates() {
		if set.Contains(f) {
			return true
		}
	}
	return false
}

// Accepts simulates a on input and reports whether a final state is
// reachable after consuming all of it.
func Accepts(a *nfa.Automaton, input []nfa.Symbol) bool {
	cur := closure(a, []nfa.State{a.StartState()})
	for _, sym := range input {
		if sym == nfa.Epsilon {
			continue
		}
		next := move(a, cur, sym)
		if len(next) == 0 {
			return false
		}
		cur = closure(a, next)
	}
	return hasFinal(a, cur)
}

// AcceptsString is Accepts with one symbol per rune of s.
func AcceptsString(a *nfa.Automaton, s string) bool {
	return Accepts(a, Symbols(s))
}

// Symbols splits s into one symbol per rune.
func Symbols(s string) []nfa.Symbol {
	out := make([]nfa.Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, nfa.Symbol(string(r)))
	}
	return out
}

func sorted(set mapset.Set[nfa.State]) []nfa.State {
	out := set.ToSlice()
	slices.Sort(out)
	return out
}
