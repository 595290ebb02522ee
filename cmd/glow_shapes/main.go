// glow_shapes runs static shape inference over a graph description and
// prints the inferred shapes.
//
// Usage:
//
//	glow_shapes [--all] graph.json
//
// The JSON file carries the graph (nodes, input/output edges) and the
// concrete runtime inputs to seed it with; see graphfile.go for the format.
// By default only the declared graph outputs are printed; --all dumps the
// full shape map, one row per edge.
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"golang.org/x/exp/maps"
	"k8s.io/klog/v2"

	"github.com/lucasmagudiez/glow/graph"
	"github.com/lucasmagudiez/glow/shapeinference"
)

var flagAll = flag.Bool("all", false,
	"Print the full shape map (every edge of the graph), not only the declared outputs.")

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newPlainTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row < 0 {
				s = headerRowStyle
				return
			}
			switch {
			case row%2 == 0:
				// Even row style.
				s = oddRowStyle
			default:
				// Odd row style
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		klog.Errorf("Expected exactly one graph file argument. See 'glow_shapes -help'.")
		os.Exit(1)
	}
	report(args[0])
}

func report(path string) {
	g, feeds := must.M2(loadGraphFile(path))
	engine := shapeinference.New(g, feeds)
	must.M(engine.Run())

	fmt.Println(titleStyle.Render(fmt.Sprintf("Graph %q", g.Name())))

	table := newPlainTable()
	table.Headers("Output", "Shape", "# Elements")
	for i, v := range g.Outputs() {
		s := engine.OutputShapes()[i]
		table.Row(v.Name(), s.String(), humanize.Comma(s.Size()))
	}
	fmt.Println(table.Render())

	if *flagAll {
		fmt.Println(titleStyle.Render("Shape map"))
		metas := engine.Metas()
		table = newPlainTable()
		table.Headers("Edge", "Kind", "Inferred")
		for _, v := range sortedEdges(metas) {
			table.Row(v.Name(), v.Kind().String(), metas[v].String())
		}
		fmt.Println(table.Render())
	}
}

// sortedEdges returns the shape map's edges sorted by name, for stable
// output.
func sortedEdges(metas map[*graph.Value]shapeinference.VarMeta) []*graph.Value {
	edges := maps.Keys(metas)
	slices.SortFunc(edges, func(a, b *graph.Value) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return edges
}
