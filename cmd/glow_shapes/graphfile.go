package main

// The JSON graph description consumed by this tool. The format is owned by
// the tool: the shapeinference core takes graphs through the graph package
// contract and knows nothing about files. It exists so captured graphs can
// be replayed on the command line when debugging a shape failure.

import (
	"encoding/json"
	"os"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"

	"github.com/lucasmagudiez/glow/graph"
	"github.com/lucasmagudiez/glow/shapeinference"
)

type graphFile struct {
	Name    string     `json:"name"`
	Inputs  []edgeDecl `json:"inputs"`
	Outputs []string   `json:"outputs"`
	Nodes   []nodeDecl `json:"nodes"`

	// Feeds are the concrete runtime inputs, one per declared graph input.
	Feeds []feedDecl `json:"feeds"`
}

type edgeDecl struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type nodeDecl struct {
	Op      string           `json:"op"`
	Inputs  []string         `json:"inputs"`
	Outputs []edgeDecl       `json:"outputs"`
	Attrs   map[string]int64 `json:"attrs"`
	Literal *literalDecl     `json:"literal"`
}

type literalDecl struct {
	Kind string  `json:"kind"`
	Int  int64   `json:"int"`
	Dims []int64 `json:"dims"`
}

type feedDecl struct {
	Kind   string  `json:"kind"`
	DType  string  `json:"dtype"`
	Dims   []int64 `json:"dims"`
	Value  int64   `json:"value"`
	Values []int64 `json:"values"`
}

var kindNames = map[string]graph.ValueKind{
	"tensor":   graph.KindTensor,
	"float":    graph.KindFloat,
	"int":      graph.KindInt,
	"bool":     graph.KindBool,
	"int-list": graph.KindIntList,
	"none":     graph.KindNone,
}

func parseKind(s string) (graph.ValueKind, error) {
	kind, found := kindNames[s]
	if !found {
		return graph.KindInvalid, errors.Errorf("unknown value kind %q", s)
	}
	return kind, nil
}

// parseDType accepts the handful of element types graphs in the wild
// declare. The engine only carries the tag for display.
func parseDType(s string) (dtypes.DType, error) {
	switch s {
	case "", "float32":
		return dtypes.Float32, nil
	case "float64":
		return dtypes.Float64, nil
	case "float16":
		return dtypes.Float16, nil
	case "int32":
		return dtypes.Int32, nil
	case "int64":
		return dtypes.Int64, nil
	case "bool":
		return dtypes.Bool, nil
	}
	return dtypes.InvalidDType, errors.Errorf("unknown dtype %q", s)
}

// loadGraphFile reads the JSON description and assembles the graph and its
// runtime inputs.
func loadGraphFile(path string) (*graph.Graph, []shapeinference.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading graph file %q", path)
	}
	var file graphFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, errors.Wrapf(err, "parsing graph file %q", path)
	}

	g := graph.New(file.Name)
	edges := make(map[string]*graph.Value)

	for _, decl := range file.Inputs {
		kind, err := parseKind(decl.Kind)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "graph input %q", decl.Name)
		}
		edges[decl.Name] = g.Input(decl.Name, kind)
	}

	for i, decl := range file.Nodes {
		op, err := graph.OpTypeString(decl.Op)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "node #%d", i)
		}
		inputs := make([]*graph.Value, 0, len(decl.Inputs))
		for _, name := range decl.Inputs {
			v, found := edges[name]
			if !found {
				return nil, nil, errors.Errorf("node #%d (%s) consumes undeclared edge %q", i, op, name)
			}
			inputs = append(inputs, v)
		}
		n := g.AddNode(op, inputs...)
		for name, value := range decl.Attrs {
			n.SetInt(name, value)
		}
		if decl.Literal != nil {
			kind, err := parseKind(decl.Literal.Kind)
			if err != nil {
				return nil, nil, errors.WithMessagef(err, "node #%d literal", i)
			}
			n.SetLiteral(&graph.Literal{Kind: kind, Int: decl.Literal.Int, Dims: decl.Literal.Dims})
		}
		for _, out := range decl.Outputs {
			kind, err := parseKind(out.Kind)
			if err != nil {
				return nil, nil, errors.WithMessagef(err, "node #%d output %q", i, out.Name)
			}
			if _, exists := edges[out.Name]; exists {
				return nil, nil, errors.Errorf("edge %q declared twice", out.Name)
			}
			edges[out.Name] = n.AddOutput(out.Name, kind)
		}
	}

	for _, name := range file.Outputs {
		v, found := edges[name]
		if !found {
			return nil, nil, errors.Errorf("declared graph output %q is not an edge of the graph", name)
		}
		g.MarkOutput(v)
	}

	feeds := make([]shapeinference.Input, 0, len(file.Feeds))
	for i, decl := range file.Feeds {
		switch decl.Kind {
		case "tensor":
			dtype, err := parseDType(decl.DType)
			if err != nil {
				return nil, nil, errors.WithMessagef(err, "feed #%d", i)
			}
			feeds = append(feeds, shapeinference.TensorInput(dtype, decl.Dims...))
		case "int":
			feeds = append(feeds, shapeinference.IntInput(decl.Value))
		case "bool":
			feeds = append(feeds, shapeinference.BoolInput(decl.Value != 0))
		case "int-list":
			feeds = append(feeds, shapeinference.IntListInput(decl.Values...))
		default:
			return nil, nil, errors.Errorf("feed #%d has unknown kind %q", i, decl.Kind)
		}
	}

	return g, feeds, nil
}
