// Package nfa holds ε-NFA fragments and the Thompson combinators that
// glue them together.
package nfa

import (
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// State identifies a node of an automaton. Fragments number their states
// from 1; composition renumbers them into disjoint ranges.
type State int

// Symbol is a transition label. Literal tokens are never empty, so the empty
// string is reserved for ε.
type Symbol string

// Epsilon labels a transition that consumes no input.
const Epsilon Symbol = ""

func (s Symbol) String() string {
	if s == Epsilon {
		return "ε"
	}
	return string(s)
}

// Group is capture-group bookkeeping carried along with a fragment. The
// package never looks inside it.
type Group struct {
	Index int
	Name  string
}

// Edge is one (from, symbol, to) triple of the transition relation.
type Edge struct {
	From   State
	To     State
	Symbol Symbol
}

type edgeKey struct {
	from State
	sym  Symbol
}

// Automaton is one ε-NFA fragment: a start state, an ordered list of
// final states, a nondeterministic transition relation, the alphabet used by
// that relation and the groups attached to the fragment.
type Automaton struct {
	start    State
	hasStart bool
	finals   []State
	states   mapset.Set[State]
	trans    map[edgeKey]mapset.Set[State]
	lang     mapset.Set[Symbol]
	groups   []Group
}

// New returns an empty automaton with no start state.
func New() *Automaton {
	return &Automaton{
		states: mapset.NewThreadUnsafeSet[State](),
		trans:  make(map[edgeKey]mapset.Set[State]),
		lang:   mapset.NewThreadUnsafeSet[Symbol](),
	}
}

func (a *Automaton) SetStartState(s State) {
	a.start = s
	a.hasStart = true
	a.states.Add(s)
}

// AddFinalStates appends states to the final list. Order is kept and
// duplicates are not filtered.
func (a *Automaton) AddFinalStates(states ...State) {
	for _, s := range states {
		a.finals = append(a.finals, s)
		a.states.Add(s)
	}
}

// AddTransition adds to to the destination set of (from, sym). Existing
// destinations are kept.
func (a *Automaton) AddTransition(from, to State, sym Symbol) {
	k := edgeKey{from, sym}
	dst, ok := a.trans[k]
	if !ok {
		dst = mapset.NewThreadUnsafeSet[State]()
		a.trans[k] = dst
	}
	dst.Add(to)
	a.states.Add(from)
	a.states.Add(to)
	if sym != Epsilon {
		a.lang.Add(sym)
	}
}

// AddTransitionsFrom merges the transition relation and the language of
// other into a. Destination sets are unioned on key collisions.
func (a *Automaton) AddTransitionsFrom(other *Automaton) {
	for k, dst := range other.trans {
		dst.Each(func(to State) bool {
			a.AddTransition(k.from, to, k.sym)
			return false
		})
	}
	a.lang = a.lang.Union(other.lang)
}

// AddGroups appends groups after the ones already attached.
func (a *Automaton) AddGroups(groups ...Group) {
	a.groups = append(a.groups, groups...)
}

// WithNewStateNumber returns a copy of a whose states occupy the contiguous
// range [startAt, next), mapped in increasing order, together with next.
// The receiver is left untouched.
func (a *Automaton) WithNewStateNumber(startAt State) (*Automaton, State) {
	al := NewAllocator(startAt)
	b := al.Place(a)
	return b, al.Next()
}

func (a *Automaton) renumber(base State) *Automaton {
	old := a.States()
	mapping := make(map[State]State, len(old))
	for i, s := range old {
		mapping[s] = base + State(i)
	}

	b := New()
	if a.hasStart {
		b.SetStartState(mapping[a.start])
	}
	for _, f := range a.finals {
		b.AddFinalStates(mapping[f])
	}
	for k, dst := range a.trans {
		dst.Each(func(to State) bool {
			b.AddTransition(mapping[k.from], mapping[to], k.sym)
			return false
		})
	}
	b.lang = b.lang.Union(a.lang)
	b.groups = slices.Clone(a.groups)
	return b
}

// StartState returns the start state. It panics if none was set.
func (a *Automaton) StartState() State {
	if !a.hasStart {
		panic("nfa: automaton has no start state")
	}
	return a.start
}

// FinalStates returns a copy of the final states in insertion order.
func (a *Automaton) FinalStates() []State {
	return slices.Clone(a.finals)
}

func (a *Automaton) IsFinal(s State) bool {
	return slices.Contains(a.finals, s)
}

// firstFinal is "the" final state used by union, star and skip.
func (a *Automaton) firstFinal() State {
	if len(a.finals) == 0 {
		panic("nfa: automaton has no final state")
	}
	return a.finals[0]
}

// States returns every state in use, sorted.
func (a *Automaton) States() []State {
	out := a.states.ToSlice()
	slices.Sort(out)
	return out
}

func (a *Automaton) NumStates() int { return a.states.Cardinality() }

// Language returns the non-ε symbols of the fragment, sorted.
func (a *Automaton) Language() []Symbol {
	out := a.lang.ToSlice()
	slices.Sort(out)
	return out
}

func (a *Automaton) Groups() []Group { return slices.Clone(a.groups) }

// Targets returns the destinations of (from, sym), sorted.
func (a *Automaton) Targets(from State, sym Symbol) []State {
	dst, ok := a.trans[edgeKey{from, sym}]
	if !ok {
		return nil
	}
	out := dst.ToSlice()
	slices.Sort(out)
	return out
}

// Edges flattens the transition relation, ordered by source, symbol and
// destination.
func (a *Automaton) Edges() []Edge {
	var out []Edge
	for k, dst := range a.trans {
		dst.Each(func(to State) bool {
			out = append(out, Edge{From: k.from, To: to, Symbol: k.sym})
			return false
		})
	}
	slices.SortFunc(out, compareEdges)
	return out
}

func compareEdges(x, y Edge) int {
	if x.From != y.From {
		return int(x.From - y.From)
	}
	if x.Symbol != y.Symbol {
		return strings.Compare(string(x.Symbol), string(y.Symbol))
	}
	return int(x.To - y.To)
}

func (a *Automaton) String() string {
	var b strings.Builder
	if a.hasStart {
		fmt.Fprintf(&b, "start: %d\n", a.start)
	} else {
		b.WriteString("start: -\n")
	}
	fmt.Fprintf(&b, "finals: %v\n", a.finals)
	fmt.Fprintf(&b, "language: %v\n", a.Language())
	if len(a.groups) > 0 {
		fmt.Fprintf(&b, "groups: %v\n", a.groups)
	}
	for _, e := range a.Edges() {
		fmt.Fprintf(&b, "%d -%s-> %d\n", e.From, e.Symbol, e.To)
	}
	return b.String()
}
