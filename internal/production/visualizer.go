package production

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/comalice/navperf/internal/primitives"
)

// Edge is an observed navigation between two screens.
type Edge struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Count int     `json:"count"`
	Total float64 `json:"totalMs"`
	Max   float64 `json:"maxMs"`
}

// Mean returns the mean transition duration in milliseconds.
func (e Edge) Mean() float64 {
	if e.Count == 0 {
		return 0
	}
	return e.Total / float64(e.Count)
}

// NavigationGraph accumulates completed navigations into a screen graph.
type NavigationGraph struct {
	mu      sync.Mutex
	screens map[string]bool
	edges   map[[2]string]*Edge
	current string
}

// NewNavigationGraph creates an empty graph.
func NewNavigationGraph() *NavigationGraph {
	return &NavigationGraph{
		screens: make(map[string]bool),
		edges:   make(map[[2]string]*Edge),
	}
}

// Listen records navigationComplete events. Use it as a primitives.Listener.
func (g *NavigationGraph) Listen(evt primitives.Event) error {
	nc, ok := evt.(primitives.NavigationComplete)
	if !ok {
		return nil
	}
	g.Add(nc.Detail.String("from"), nc.Screen, nc.Measure.Duration)
	return nil
}

// Add records one navigation from -> to. An empty from only registers to.
func (g *NavigationGraph) Add(from, to string, duration float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.screens[to] = true
	g.current = to
	if from == "" {
		return
	}
	g.screens[from] = true
	key := [2]string{from, to}
	e, ok := g.edges[key]
	if !ok {
		e = &Edge{From: from, To: to}
		g.edges[key] = e
	}
	e.Count++
	e.Total += duration
	e.Max = max(e.Max, duration)
}

// Edges returns the observed edges sorted by from, then to.
func (g *NavigationGraph) Edges() []Edge {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b Edge) int {
		return cmp.Or(strings.Compare(a.From, b.From), strings.Compare(a.To, b.To))
	})
	return out
}

func (g *NavigationGraph) snapshot() (screens []string, current string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for s := range g.screens {
		screens = append(screens, s)
	}
	slices.Sort(screens)
	return screens, g.current
}

// ExportDOT generates Graphviz DOT source for the graph. home is drawn as an
// ellipse and the last settled screen is highlighted.
func (g *NavigationGraph) ExportDOT(home string) string {
	screens, current := g.snapshot()
	edges := g.Edges()

	var buf bytes.Buffer
	buf.WriteString(`digraph Navigation {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)
	for _, s := range screens {
		attrs := ""
		if s == home {
			attrs += " shape=ellipse"
		}
		if s == current {
			attrs += " style=filled fillcolor=lightgreen"
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", s, s, attrs)
	}
	for _, e := range edges {
		label := fmt.Sprintf("%dx %.0fms", e.Count, e.Mean())
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, label)
	}
	buf.WriteString("}\n")
	return buf.String()
}

type graphJSON struct {
	Screens []string `json:"screens"`
	Current string   `json:"current,omitempty"`
	Edges   []Edge   `json:"edges"`
}

// ExportJSON serializes the graph to JSON.
func (g *NavigationGraph) ExportJSON() ([]byte, error) {
	screens, current := g.snapshot()
	return json.MarshalIndent(graphJSON{Screens: screens, Current: current, Edges: g.Edges()}, "", "  ")
}
