package spectral

import (
	"errors"
	"sync"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alastai/grasch-lex/attr"
	"github.com/alastai/grasch-lex/clog"
	"github.com/alastai/grasch-lex/content"
	"github.com/alastai/grasch-lex/element"
)

var (
	lPerson   = attr.MustLabel("Person")
	lEmployee = attr.MustLabel("Employee")
	pName     = attr.MustProperty("name", attr.String)
	pAge      = attr.MustProperty("age", attr.Integer)
	pDept     = attr.MustProperty("dept", attr.String)
	pQuery    = attr.MustProperty("query", attr.String)
)

func node(t testing.TB, d *element.Deriver, name string, fields []content.Field, key []attr.Type, opts ...element.Option) *element.NodeType {
	ct, err := content.New(name, fields, key...)
	require.NoError(t, err)
	n, err := d.DeriveNodeType(name, ct, opts...)
	require.NoError(t, err)
	return n
}

func inst(labels []string, kv ...interface{}) Instance {
	in := Instance{Labels: labels, Properties: make(map[string]quad.Value)}
	for i := 0; i < len(kv); i += 2 {
		var v quad.Value
		if kv[i+1] != nil {
			v, _ = quad.AsValue(kv[i+1])
		}
		in.Properties[kv[i].(string)] = v
	}
	return in
}

type people struct {
	v                *Validator
	person, employee *element.NodeType
}

func newPeople(t testing.TB) *people {
	d := element.NewDeriver(nil)
	p := &people{}
	p.person = node(t, d, "Person", []content.Field{
		content.Mandatory(lPerson), content.Mandatory(pName), content.Mandatory(pAge),
	}, []attr.Type{lPerson})
	p.employee = node(t, d, "Employee", []content.Field{
		content.Mandatory(lEmployee), content.Mandatory(pName), content.Mandatory(pAge), content.Mandatory(pDept),
	}, []attr.Type{lEmployee})
	p.v = NewValidator(d.Schema())
	return p
}

func TestSpectralInvariant(t *testing.T) {
	d := element.NewDeriver(nil)
	n := node(t, d, "Person", []content.Field{
		content.Mandatory(lPerson), content.Mandatory(pName), content.Optional(pAge),
	}, []attr.Type{lPerson})
	v := NewValidator(d.Schema())

	st := Of(n)
	assert.True(t, st.CCRT.Leq(st.MCRT))
	assert.Equal(t, []attr.Type{lPerson, pName}, st.MCRT.Attributes())

	r := v.Validate(inst([]string{"Person"}, "name", "Ada"), n, ExactType)
	require.NoError(t, r.Err)
	assert.True(t, r.Valid)
	assert.Same(t, n, r.Type)

	r = v.Validate(inst([]string{"Person"}, "name", "Ada", "age", 36), n, ExactType)
	require.NoError(t, r.Err)

	// nil values are absent
	r = v.Validate(inst([]string{"Person"}, "name", nil), n, ExactType)
	var miss *MissingMandatoryAttributeError
	require.True(t, errors.As(r.Err, &miss))
	assert.Equal(t, []attr.Type{pName}, miss.Attributes)
	assert.False(t, r.Valid)

	r = v.Validate(inst(nil, "name", "Ada"), n, ExactType)
	require.True(t, errors.As(r.Err, &miss))
	assert.Equal(t, []attr.Type{lPerson}, miss.Attributes)
}

func TestUnexpectedAttribute(t *testing.T) {
	p := newPeople(t)
	r := p.v.Validate(inst([]string{"Person"}, "name", "Ada", "age", 36, "nick", "ada"), p.person, ExactType)
	var unex *UnexpectedAttributeError
	require.True(t, errors.As(r.Err, &unex))
	assert.Equal(t, []attr.Type{attr.MustProperty("nick", attr.String)}, unex.Attributes)

	// a value the declared datatype does not accept is a different attribute
	r = p.v.Validate(inst([]string{"Person"}, "name", "Ada", "age", "old"), p.person, ExactType)
	var miss *MissingMandatoryAttributeError
	require.True(t, errors.As(r.Err, &miss))
	assert.Equal(t, []attr.Type{pAge}, miss.Attributes)
}

func TestKeyDisambiguation(t *testing.T) {
	p := newPeople(t)
	emp := inst([]string{"Employee"}, "name", "Grace", "age", 85, "dept", "Navy")

	r := p.v.Classify(emp, element.NodeKind)
	require.NoError(t, r.Err)
	assert.Same(t, p.employee, r.Type)

	r = p.v.Classify(inst([]string{"Person"}, "name", "Ada", "age", 36), element.NodeKind)
	require.NoError(t, r.Err)
	assert.Same(t, p.person, r.Type)

	// neither type admits both labels
	r = p.v.Classify(inst([]string{"Person", "Employee"}, "name", "Grace", "age", 85, "dept", "Navy"), element.NodeKind)
	var unex *UnexpectedAttributeError
	require.True(t, errors.As(r.Err, &unex))
	assert.Same(t, p.employee, unex.Type)

	// no key present
	r = p.v.Classify(inst(nil, "name", "Grace", "age", 85, "dept", "Navy"), element.NodeKind)
	var miss *MissingMandatoryAttributeError
	require.True(t, errors.As(r.Err, &miss))
	assert.Equal(t, []attr.Type{lEmployee}, miss.Attributes)
}

func TestKeyedCandidatesConform(t *testing.T) {
	d := element.NewDeriver(nil)
	la, lb := attr.MustLabel("A"), attr.MustLabel("B")
	px, py := attr.MustProperty("x", attr.String), attr.MustProperty("y", attr.String)
	a := node(t, d, "A", []content.Field{
		content.Mandatory(la), content.Optional(lb), content.Mandatory(px),
	}, []attr.Type{la})
	b := node(t, d, "B", []content.Field{content.Mandatory(lb), content.Optional(py)}, []attr.Type{lb})
	v := NewValidator(d.Schema())

	in := inst([]string{"A", "B"}, "x", "v")
	require.True(t, Of(a).Contains(mustInduce(t, in, a)))
	require.False(t, Of(b).Contains(mustInduce(t, in, b)))

	r := v.Classify(in, element.NodeKind)
	require.NoError(t, r.Err)
	assert.Same(t, a, r.Type)

	r = v.Classify(inst([]string{"B"}), element.NodeKind)
	require.NoError(t, r.Err)
	assert.Same(t, b, r.Type)
}

func TestAmbiguousKeyMatch(t *testing.T) {
	d := element.NewDeriver(nil)
	lp, lq := attr.MustLabel("P"), attr.MustLabel("Q")
	px, py := attr.MustProperty("x", attr.String), attr.MustProperty("y", attr.String)
	p := node(t, d, "P", []content.Field{
		content.Mandatory(lp), content.Optional(lq), content.Mandatory(pName), content.Optional(px),
	}, []attr.Type{lp})
	q := node(t, d, "Q", []content.Field{
		content.Mandatory(lq), content.Optional(lp), content.Mandatory(pName), content.Optional(py),
	}, []attr.Type{lq})
	v := NewValidator(d.Schema())

	r := v.Classify(inst([]string{"P", "Q"}, "name", "n"), element.NodeKind)
	var amb *AmbiguousKeyMatchError
	require.True(t, errors.As(r.Err, &amb))
	assert.ElementsMatch(t, []element.ElementType{p, q}, amb.Candidates)
	assert.ElementsMatch(t, []element.ElementType{p, q}, amb.Matches)

	r = v.Classify(inst([]string{"P", "Q"}, "name", "n", "x", "1"), element.NodeKind)
	require.NoError(t, r.Err)
	assert.Same(t, p, r.Type)
}

func mustInduce(t testing.TB, in Instance, et element.ElementType) *content.ContentType {
	it, err := in.Induce(et.Content())
	require.NoError(t, err)
	return it
}

func TestAmbiguousConformance(t *testing.T) {
	d := element.NewDeriver(nil)
	a := node(t, d, "A", []content.Field{content.Mandatory(pName)}, nil)
	b := node(t, d, "B", []content.Field{content.Mandatory(pName), content.Optional(pAge)}, nil)
	node(t, d, "S", []content.Field{content.Mandatory(attr.MustLabel("S")), content.Mandatory(pName)}, nil)
	v := NewValidator(d.Schema())

	r := v.Classify(inst(nil, "name", "x"), element.NodeKind)
	var amb *AmbiguousConformanceError
	require.True(t, errors.As(r.Err, &amb))
	assert.Equal(t, []element.ElementType{a, b}, amb.Candidates)

	// the interval narrows the candidates
	r = v.Classify(inst(nil, "name", "x", "age", 3), element.NodeKind)
	require.NoError(t, r.Err)
	assert.Same(t, b, r.Type)

	r = v.Classify(inst(nil, "title", "x"), element.NodeKind)
	assert.Equal(t, ErrNoConformingType, r.Err)
}

type tables struct {
	v                     *Validator
	table, baseTable, view *element.NodeType
}

func newTables(t testing.TB) *tables {
	d := element.NewDeriver(nil)
	lBase, lView := attr.MustLabel("BaseTable"), attr.MustLabel("View")
	tb := &tables{}
	tb.table = node(t, d, "Table", []content.Field{content.Mandatory(pName)}, nil, element.Abstract())
	tb.baseTable = node(t, d, "BaseTable", []content.Field{content.Mandatory(lBase), content.Mandatory(pName)}, []attr.Type{lBase})
	tb.view = node(t, d, "View", []content.Field{content.Mandatory(lView), content.Mandatory(pName), content.Mandatory(pQuery)}, []attr.Type{lView})
	tb.v = NewValidator(d.Schema())
	return tb
}

func TestAbstractTable(t *testing.T) {
	tb := newTables(t)
	view := inst([]string{"View"}, "name", "v1", "query", "SELECT 1")

	r := tb.v.Validate(view, tb.table, ProperSubtypeConformant)
	require.NoError(t, r.Err)
	assert.Same(t, tb.view, r.Type)
	assert.Same(t, tb.table, r.Declared)
	assert.Equal(t, ProperSubtypeConformant, r.Mode)

	r = tb.v.Validate(view, tb.table, ExactType)
	var abs *AbstractTypeDirectInstantiationError
	require.True(t, errors.As(r.Err, &abs))
	assert.Same(t, tb.table, abs.Type)

	r = tb.v.Validate(inst(nil, "name", "t"), tb.table, ProperSubtypeConformant)
	require.True(t, errors.As(r.Err, &abs))

	r = tb.v.Validate(inst(nil, "name", "t"), tb.table, SubtypeConformant)
	require.True(t, errors.As(r.Err, &abs))

	r = tb.v.Validate(inst([]string{"BaseTable"}, "name", "t"), tb.table, SubtypeConformant)
	require.NoError(t, r.Err)
	assert.Same(t, tb.baseTable, r.Type)

	// a view is not an instance of a base table
	r = tb.v.Validate(view, tb.baseTable, SubtypeConformant)
	var miss *MissingMandatoryAttributeError
	require.True(t, errors.As(r.Err, &miss))
	assert.Equal(t, "BaseTable", miss.Attributes[0].Name())
}

func TestValidateBatch(t *testing.T) {
	tb := newTables(t)
	list := []Instance{
		inst([]string{"View"}, "name", "v1", "query", "SELECT 1"),
		inst([]string{"View"}, "name", "v2"),
		inst([]string{"BaseTable"}, "name", "t1"),
		inst(nil, "title", "t2"),
	}
	before := testutil.ToFloat64(mValidated.WithLabelValues("proper-subtype", "valid"))
	res := tb.v.ValidateBatch(list, tb.table, ProperSubtypeConformant)
	require.Len(t, res, len(list))
	assert.True(t, res[0].Valid)
	assert.False(t, res[1].Valid)
	assert.True(t, res[2].Valid)
	assert.Equal(t, ErrNoConformingType, res[3].Err)
	assert.Equal(t, before+2, testutil.ToFloat64(mValidated.WithLabelValues("proper-subtype", "valid")))
}

func TestEdgeValidation(t *testing.T) {
	d := element.NewDeriver(nil)
	person := node(t, d, "Person", []content.Field{content.Mandatory(lPerson), content.Mandatory(pName)}, []attr.Type{lPerson})
	lKnows := attr.MustLabel("KNOWS")
	since := attr.MustProperty("since", attr.Date)
	arc := content.MustNew("KNOWS", []content.Field{content.Mandatory(lKnows), content.Optional(since)}, lKnows)
	knows, err := d.DeriveEdgeType("KNOWS", person, arc, person, element.Directed)
	require.NoError(t, err)
	v := NewValidator(d.Schema())

	r := v.Validate(inst([]string{"KNOWS"}), knows, ExactType)
	require.NoError(t, r.Err)
	r = v.Classify(inst([]string{"KNOWS"}), element.EdgeKind)
	require.NoError(t, r.Err)
	assert.Same(t, knows, r.Type)
	r = v.Validate(inst([]string{"KNOWS"}, "since", 3), knows, ExactType)
	assert.False(t, r.Valid)
}

func TestUnknownElementType(t *testing.T) {
	p := newPeople(t)
	other := newPeople(t)
	r := p.v.Validate(inst([]string{"Person"}, "name", "Ada", "age", 1), other.person, ExactType)
	assert.Equal(t, ErrUnknownElementType, r.Err)
	r = p.v.Validate(inst(nil), p.person, Mode(9))
	assert.Equal(t, ErrInvalidMode, r.Err)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ExactType, SubtypeConformant, ProperSubtypeConformant} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("loose")
	assert.True(t, errors.Is(err, ErrInvalidMode))
}

func TestConcurrentValidate(t *testing.T) {
	p := newPeople(t)
	emp := inst([]string{"Employee"}, "name", "Grace", "age", 85, "dept", "Navy")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r := p.v.Classify(emp, element.NodeKind)
				assert.Same(t, p.employee, r.Type)
			}
		}()
	}
	wg.Wait()
}

func TestKeyMatchPrefersSubtype(t *testing.T) {
	d := element.NewDeriver(nil)
	person := node(t, d, "Person", []content.Field{content.Mandatory(lPerson), content.Mandatory(pName)}, []attr.Type{lPerson})
	employee := node(t, d, "Employee", []content.Field{
		content.Mandatory(lPerson), content.Mandatory(lEmployee), content.Mandatory(pName),
	}, []attr.Type{lEmployee})
	v := NewValidator(d.Schema())

	r := v.Validate(inst([]string{"Person", "Employee"}, "name", "Grace"), person, SubtypeConformant)
	require.NoError(t, r.Err)
	assert.Same(t, employee, r.Type)

	r = v.Validate(inst([]string{"Person"}, "name", "Ada"), person, SubtypeConformant)
	require.NoError(t, r.Err)
	assert.Same(t, person, r.Type)
}

func TestNilTypeVerbose(t *testing.T) {
	clog.SetV(2)
	defer clog.SetV(0)
	p := newPeople(t)
	r := p.v.Validate(inst([]string{"Person"}, "name", "Ada", "age", 1), nil, ExactType)
	assert.Equal(t, ErrUnknownElementType, r.Err)
	res := p.v.ValidateBatch([]Instance{inst(nil)}, nil, SubtypeConformant)
	require.Len(t, res, 1)
	assert.Equal(t, ErrUnknownElementType, res[0].Err)
}
