// Package dot renders automata as Graphviz digraphs.
package dot

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"golang.org/x/xerrors"

	"thompson/internal/match"
	"thompson/internal/nfa"
)

const graphName = "G"

// NFA renders a, one node per state, finals as double circles. A point
// shaped "start" node marks the start state.
func NFA(a *nfa.Automaton) (string, error) {
	g, err := newGraph()
	if err != nil {
		return "", err
	}
	for _, s := range a.States() {
		if err := addState(g, nfaNode(s), a.IsFinal(s)); err != nil {
			return "", err
		}
	}
	for _, e := range a.Edges() {
		if err := addEdge(g, nfaNode(e.From), nfaNode(e.To), e.Symbol.String()); err != nil {
			return "", err
		}
	}
	if err := addStart(g, nfaNode(a.StartState())); err != nil {
		return "", err
	}
	return g.String(), nil
}

// DFA renders d the same way, naming states q<ID>.
func DFA(d *match.DFA) (string, error) {
	g, err := newGraph()
	if err != nil {
		return "", err
	}
	for _, s := range d.States {
		if err := addState(g, dfaNode(s.ID), s.Accept); err != nil {
			return "", err
		}
	}
	for _, s := range d.States {
		for _, sym := range d.Alphabet {
			to, ok := s.Next[sym]
			if !ok {
				continue
			}
			if err := addEdge(g, dfaNode(s.ID), dfaNode(to.ID), sym.String()); err != nil {
				return "", err
			}
		}
	}
	if err := addStart(g, dfaNode(d.Start.ID)); err != nil {
		return "", err
	}
	return g.String(), nil
}

func nfaNode(s nfa.State) string { return fmt.Sprintf("n%d", s) }
func dfaNode(id int) string      { return fmt.Sprintf("q%d", id) }

func newGraph() (*gographviz.Graph, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return nil, xerrors.Errorf("set graph name: %w", err)
	}
	if err := g.SetDir(true); err != nil {
		return nil, xerrors.Errorf("set directed: %w", err)
	}
	if err := g.AddAttr(graphName, "rankdir", "LR"); err != nil {
		return nil, xerrors.Errorf("set rankdir: %w", err)
	}
	return g, nil
}

func addState(g *gographviz.Graph, name string, final bool) error {
	shape := "circle"
	if final {
		shape = "doublecircle"
	}
	if err := g.AddNode(graphName, name, map[string]string{"shape": shape}); err != nil {
		return xerrors.Errorf("add node %s: %w", name, err)
	}
	return nil
}

func addEdge(g *gographviz.Graph, from, to, label string) error {
	attrs := map[string]string{"label": strconv.Quote(label)}
	if err := g.AddEdge(from, to, true, attrs); err != nil {
		return xerrors.Errorf("add edge %s -> %s: %w", from, to, err)
	}
	return nil
}

func addStart(g *gographviz.Graph, to string) error {
	if err := g.AddNode(graphName, "start", map[string]string{"shape": "point"}); err != nil {
		return xerrors.Errorf("add start node: %w", err)
	}
	if err := g.AddEdge("start", to, true, nil); err != nil {
		return xerrors.Errorf("add start edge: %w", err)
	}
	return nil
}
