package lattice

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alastai/grasch-lex/attr"
	"github.com/alastai/grasch-lex/content"
)

var (
	lPerson = attr.MustLabel("Person")
	pName   = attr.MustProperty("name", attr.String)
	pAge    = attr.MustProperty("age", attr.Integer)
	pDept   = attr.MustProperty("dept", attr.String)
)

func ct(name string, attrs ...attr.Type) *content.ContentType {
	fields := make([]content.Field, len(attrs))
	for i, a := range attrs {
		fields[i] = content.Mandatory(a)
	}
	return content.MustNew(name, fields)
}

func register(t testing.TB, b *Builder, c *content.ContentType) Handle {
	h, err := b.Register(c)
	require.NoError(t, err)
	return h
}

func TestPersonScenario(t *testing.T) {
	b := NewBuilder()
	require.Equal(t, Top, register(t, b, content.Any))
	require.Equal(t, Bottom, register(t, b, content.None))

	base := register(t, b, ct("Person", lPerson, pName, pAge))
	dept := register(t, b, ct("PersonDept", lPerson, pName, pAge, pDept))
	s := b.Snapshot()
	require.NoError(t, s.Check())

	assert.Contains(t, s.SubtypesOf(base, false), dept)
	assert.Contains(t, s.SubtypesOf(base, true), dept)
	assert.Equal(t, []Handle{Top, base}, s.SupertypesOf(dept, true))
	assert.Equal(t, []Handle{base}, s.SupertypesOf(dept, false))
	assert.Equal(t, []Handle{Top}, s.SupertypesOf(base, false))
	assert.Equal(t, []Handle{Bottom}, s.SubtypesOf(dept, false))
	assert.True(t, s.Leq(dept, base))
	assert.False(t, s.Leq(base, dept))
	assert.Equal(t, []Handle{Top, base, dept, Bottom}, s.Members())
}

func TestCoversAreRecomputed(t *testing.T) {
	b := NewBuilder()
	abc := register(t, b, ct("", lPerson, pName, pAge))
	a := register(t, b, ct("", lPerson))
	s := b.Snapshot()
	require.Equal(t, []Handle{a}, s.SupertypesOf(abc, false))

	// inserting a member between a and abc replaces the a-abc cover
	ab := register(t, b, ct("", lPerson, pName))
	s = b.Snapshot()
	require.NoError(t, s.Check())
	require.Equal(t, []Handle{ab}, s.SupertypesOf(abc, false))
	require.Equal(t, []Handle{ab}, s.SubtypesOf(a, false))
	require.Equal(t, []Handle{Top, a, ab}, s.SupertypesOf(abc, true))
}

func TestDuplicateCollapse(t *testing.T) {
	b := NewBuilder()
	h1 := register(t, b, ct("A", lPerson, pName))
	v := b.Snapshot().Version()
	h2 := register(t, b, ct("B", pName, lPerson))
	require.Equal(t, h1, h2)
	require.Equal(t, v, b.Snapshot().Version())
	require.Equal(t, 3, b.Snapshot().Len())
	require.Equal(t, "A", b.Snapshot().Content(h1).Name(), "first registration wins")

	h, err := b.Register(nil)
	require.ErrorIs(t, err, ErrNilContentType)
	require.Equal(t, NoHandle, h)
}

func TestSnapshotIsolation(t *testing.T) {
	b := NewBuilder()
	base := register(t, b, ct("", lPerson, pName))
	old := b.Snapshot()
	dept := register(t, b, ct("", lPerson, pName, pDept))

	require.Equal(t, 3, old.Len())
	require.Equal(t, []Handle{Bottom}, old.SubtypesOf(base, false))
	require.Nil(t, old.Content(dept))
	require.False(t, old.Leq(dept, base))
	require.NoError(t, old.Check())

	cur := b.Snapshot()
	require.Equal(t, []Handle{dept}, cur.SubtypesOf(base, false))
	require.Equal(t, old.Version()+1, cur.Version())
}

func TestMeetJoin(t *testing.T) {
	b := NewBuilder()
	pn := register(t, b, ct("", lPerson, pName))
	nd := register(t, b, ct("", pName, pDept))
	s := b.Snapshot()

	m, err := s.Meet(pn, nd)
	require.NoError(t, err)
	require.False(t, m.Member)
	require.Equal(t, "{:Person,dept::STRING,name::STRING}", m.Content.ID())

	j, err := s.Join(pn, nd)
	require.NoError(t, err)
	require.False(t, j.Member)
	require.Equal(t, "{name::STRING}", j.Content.ID())

	mh, err := b.Meet(pn, nd)
	require.NoError(t, err)
	jh, err := b.Join(pn, nd)
	require.NoError(t, err)
	s = b.Snapshot()
	require.NoError(t, s.Check())
	require.True(t, s.Leq(mh, pn) && s.Leq(mh, nd))
	require.True(t, s.Leq(pn, jh) && s.Leq(nd, jh))

	// bounds are idempotent and absorb comparable pairs
	again, err := b.Meet(pn, nd)
	require.NoError(t, err)
	require.Equal(t, mh, again)
	bound, err := s.Meet(mh, pn)
	require.NoError(t, err)
	require.Equal(t, mh, bound.Handle)
	bound, err = s.Join(Top, pn)
	require.NoError(t, err)
	require.Equal(t, Top, bound.Handle)
	bound, err = s.Meet(Bottom, pn)
	require.NoError(t, err)
	require.Equal(t, Bottom, bound.Handle)

	_, err = s.Meet(pn, Handle(99))
	var herr *InvalidHandleError
	require.ErrorAs(t, err, &herr)
}

func TestMeetOfConflictingTypesIsBottom(t *testing.T) {
	b := NewBuilder()
	x := register(t, b, ct("", attr.MustProperty("age", attr.Integer)))
	y := register(t, b, ct("", attr.MustProperty("age", attr.String)))
	h, err := b.Meet(x, y)
	require.NoError(t, err)
	require.Equal(t, Bottom, h)
}

func randomLattice(t testing.TB, seed int64, n int) *Builder {
	r := rand.New(rand.NewSource(seed))
	var pool []attr.Type
	for i := 0; i < 6; i++ {
		pool = append(pool, attr.MustProperty(fmt.Sprintf("p%d", i), attr.String))
	}
	pool = append(pool, lPerson, attr.MustLabel("Employee"))
	b := NewBuilder()
	for i := 0; i < n; i++ {
		var attrs []attr.Type
		for _, a := range pool {
			if r.Intn(3) == 0 {
				attrs = append(attrs, a)
			}
		}
		register(t, b, ct("", attrs...))
	}
	return b
}

func TestOrderAxioms(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		s := randomLattice(t, seed, 40).Snapshot()
		require.NoError(t, s.Check(), "seed %d", seed)
		hs := s.Members()
		for _, x := range hs {
			require.True(t, s.Leq(x, x))
			require.True(t, s.Leq(x, Top))
			require.True(t, s.Leq(Bottom, x))
			for _, y := range hs {
				if s.Leq(x, y) && s.Leq(y, x) {
					require.Equal(t, x, y)
				}
				for _, z := range hs {
					if s.Leq(x, y) && s.Leq(y, z) {
						require.True(t, s.Leq(x, z))
					}
				}
			}
		}
	}
}

func TestMembersIsLinearExtension(t *testing.T) {
	s := randomLattice(t, 7, 30).Snapshot()
	order := s.Members()
	pos := make(map[Handle]int, len(order))
	for i, h := range order {
		pos[h] = i
	}
	require.Len(t, pos, s.Len())
	for _, x := range order {
		for _, y := range s.SupertypesOf(x, true) {
			require.Less(t, pos[y], pos[x])
		}
	}
}

func TestCheckDetectsCorruption(t *testing.T) {
	b := NewBuilder()
	x := register(t, b, ct("", lPerson))
	s := b.Snapshot()
	s.above[Top].Add(x)
	var verr *OrderViolationError
	require.ErrorAs(t, s.Check(), &verr)
}

func TestConcurrentReaders(t *testing.T) {
	b := randomLattice(t, 3, 20)
	s := b.Snapshot()
	want := s.Members()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, h := range s.Members() {
				s.SupertypesOf(h, true)
				s.SubtypesOf(h, true)
				_, _ = s.Join(h, Top)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		register(t, b, ct("", attr.MustProperty("extra", attr.String)))
	}()
	wg.Wait()
	require.Equal(t, want, s.Members())
}
