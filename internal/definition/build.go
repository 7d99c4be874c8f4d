package definition

import (
	"fmt"
	"strings"
	"time"

	"github.com/cayleygraph/quad"

	"github.com/alastai/grasch-lex/attr"
	"github.com/alastai/grasch-lex/content"
	"github.com/alastai/grasch-lex/element"
	"github.com/alastai/grasch-lex/graphtype"
	"github.com/alastai/grasch-lex/spectral"
)

func (e Element) content() (*content.ContentType, error) {
	var fields []content.Field
	for _, l := range e.Labels {
		t, err := attr.NewLabel(l)
		if err != nil {
			return nil, err
		}
		fields = append(fields, content.Mandatory(t))
	}
	for _, l := range e.OptionalLabels {
		t, err := attr.NewLabel(l)
		if err != nil {
			return nil, err
		}
		fields = append(fields, content.Optional(t))
	}
	var rs content.RecordFields
	for _, p := range e.Properties {
		rs = append(rs, content.RecordField{Name: p.Name, Datatype: attr.Datatype(p.Type), Mandatory: p.Mandatory})
	}
	var key []attr.Type
	for _, k := range e.Key {
		t, err := attr.NewLabel(k)
		if err != nil {
			return nil, err
		}
		key = append(key, t)
	}
	return content.FromRecord(e.Name, fields, rs, key...)
}

func elementOptions(e Element) []element.Option {
	if e.Abstract {
		return []element.Option{element.Abstract()}
	}
	return nil
}

// Schema derives every node and edge type of the file, in file order.
func (f *File) Schema(opts ...element.DeriverOption) (*element.Schema, error) {
	if f.RequireKeys {
		opts = append(opts, element.RequireKeys())
	}
	d := element.NewDeriver(nil, opts...)
	nodes := make(map[string]*element.NodeType)
	for _, n := range f.Nodes {
		ct, err := n.content()
		if err != nil {
			return nil, fmt.Errorf("node type %q: %w", n.Name, err)
		}
		nt, err := d.DeriveNodeType(n.Name, ct, elementOptions(n)...)
		if err != nil {
			return nil, err
		}
		nodes[n.Name] = nt
	}
	for _, e := range f.Edges {
		ct, err := e.content()
		if err != nil {
			return nil, fmt.Errorf("edge type %q: %w", e.Name, err)
		}
		tail, ok := nodes[e.Tail]
		if !ok {
			return nil, fmt.Errorf("edge type %q: unknown tail node type %q", e.Name, e.Tail)
		}
		head, ok := nodes[e.Head]
		if !ok {
			return nil, fmt.Errorf("edge type %q: unknown head node type %q", e.Name, e.Head)
		}
		o := element.Undirected
		if e.Directed {
			o = element.Directed
		}
		if _, err := d.DeriveEdgeType(e.Name, tail, ct, head, o, elementOptions(e)...); err != nil {
			return nil, err
		}
	}
	return d.Schema(), nil
}

// Lookup returns a node or edge type by name.
func Lookup(s *element.Schema, name string) (element.ElementType, bool) {
	if n, ok := s.NodeType(name); ok {
		return n, true
	}
	if e, ok := s.EdgeType(name); ok {
		return e, true
	}
	return nil, false
}

// GraphType builds the graph type of the file over a schema.
func (f *File) GraphType(s *element.Schema, mode spectral.Mode) (*graphtype.GraphType, error) {
	name := f.Graph
	if name == "" {
		name = "graph"
	}
	opts := []graphtype.Option{graphtype.WithMode(mode)}
	if f.RequireKeys {
		opts = append(opts, graphtype.AllElementTypesKeyed())
	}
	for _, k := range f.Keys {
		et, ok := Lookup(s, k.Type)
		if !ok {
			return nil, fmt.Errorf("key constraint: unknown element type %q", k.Type)
		}
		opts = append(opts, graphtype.WithKey(et, k.Attributes...))
	}
	for _, c := range f.Cardinality {
		e, ok := s.EdgeType(c.Edge)
		if !ok {
			return nil, fmt.Errorf("cardinality constraint: unknown edge type %q", c.Edge)
		}
		opts = append(opts, graphtype.WithCardinality(e, c.Min, c.Max))
	}
	return graphtype.New(name, s, opts...)
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Value converts a raw value to a quad value. Strings are parsed as times for
// DATE and DATETIME properties.
func Value(v interface{}, dt attr.Datatype) quad.Value {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && (dt == attr.Date || dt == attr.DateTime) {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return quad.Time(t)
			}
		}
	}
	if s, ok := v.(string); ok && dt == attr.IRI {
		return quad.IRI(strings.Trim(s, "<>"))
	}
	qv, ok := quad.AsValue(v)
	if !ok {
		return quad.String(fmt.Sprint(v))
	}
	return qv
}

// ToInstance converts a raw instance, typing its values by the properties of ct.
// A nil ct converts values by their own type.
func (in Instance) ToInstance(ct *content.ContentType) spectral.Instance {
	out := spectral.Instance{
		Labels:     append([]string(nil), in.Labels...),
		Properties: make(map[string]quad.Value, len(in.Properties)),
	}
	for k, v := range in.Properties {
		var dt attr.Datatype
		if ct != nil {
			if p, ok := ct.Property(k); ok {
				dt = p.Datatype()
			}
		}
		out.Properties[k] = Value(v, dt)
	}
	return out
}
