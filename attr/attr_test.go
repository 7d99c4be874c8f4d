package attr

import (
	"sort"
	"testing"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	_, err := NewLabel("")
	require.ErrorIs(t, err, ErrEmptyName)
	_, err = NewProperty("", String)
	require.ErrorIs(t, err, ErrEmptyName)
	_, err = NewProperty("age", " ")
	require.ErrorIs(t, err, ErrNoDatatype)

	l := MustLabel("Person")
	require.Equal(t, LabelDatatype, l.Datatype())
	require.True(t, l.IsLabel())
	require.Equal(t, ":Person", l.String())

	p := MustProperty("age", "integer")
	require.Equal(t, Integer, p.Datatype())
	require.Equal(t, "age::INTEGER", p.String())
}

func TestEquality(t *testing.T) {
	assert.Equal(t, MustProperty("name", String), MustProperty("name", "string"))
	assert.NotEqual(t, MustProperty("name", String), MustProperty("name", Integer))
	assert.NotEqual(t, MustLabel("name"), MustProperty("name", String))

	set := map[Type]struct{}{}
	set[MustLabel("Person")] = struct{}{}
	set[MustLabel("Person")] = struct{}{}
	assert.Len(t, set, 1)
}

func TestRetype(t *testing.T) {
	p := MustProperty("age", Integer)
	q, err := p.WithDatatype(Float)
	require.NoError(t, err)
	assert.Equal(t, Float, q.Datatype())
	assert.Equal(t, Integer, p.Datatype())

	r, err := p.WithName("years")
	require.NoError(t, err)
	assert.Equal(t, "years::INTEGER", r.String())

	l, err := MustLabel("Person").WithDatatype(String)
	require.NoError(t, err)
	assert.Equal(t, LabelDatatype, l.Datatype())
}

func TestLess(t *testing.T) {
	list := []Type{
		MustProperty("name", String),
		MustLabel("Person"),
		MustProperty("age", Integer),
		MustLabel("Employee"),
	}
	sort.Slice(list, func(i, j int) bool { return Less(list[i], list[j]) })
	var names []string
	for _, a := range list {
		names = append(names, a.String())
	}
	assert.Equal(t, []string{":Employee", ":Person", "age::INTEGER", "name::STRING"}, names)
}

var acceptsCases = []struct {
	dt  Datatype
	v   quad.Value
	exp bool
}{
	{String, quad.String("a"), true},
	{String, quad.Int(1), false},
	{Integer, quad.Int(1), true},
	{Integer, quad.Float(1.5), false},
	{Float, quad.Int(1), true},
	{Boolean, quad.Bool(true), true},
	{DateTime, quad.Time(time.Unix(0, 0)), true},
	{Date, quad.String("2020-01-01"), false},
	{IRI, quad.IRI("urn:x"), true},
	{Datatype("DECIMAL"), quad.String("1.0"), true},
	{String, nil, false},
	{LabelDatatype, quad.String("x"), false},
}

func TestAccepts(t *testing.T) {
	for _, c := range acceptsCases {
		assert.Equal(t, c.exp, c.dt.Accepts(c.v), "%s accepts %v", c.dt, c.v)
	}
}

func TestDatatypeOf(t *testing.T) {
	assert.Equal(t, String, DatatypeOf(quad.String("x")))
	assert.Equal(t, Integer, DatatypeOf(quad.Int(3)))
	assert.Equal(t, DateTime, DatatypeOf(quad.Time(time.Now())))
	assert.Equal(t, Any, DatatypeOf(quad.BNode("b")))
}
