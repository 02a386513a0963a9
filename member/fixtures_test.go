package member_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"memberlink/backend"
	"memberlink/member"
)

type stats struct {
	Count int
	Label string
}

type order struct {
	Name  string
	Count int
	Stats stats
	Items []int
	dead  bool
}

func (o *order) IsValid() bool { return !o.dead }

type point struct{ X, Y int }

var (
	orderID = backend.TypeOf[order]().ID
	statsID = backend.TypeOf[stats]().ID
	pointID = backend.TypeOf[point]().ID
)

func countField() *backend.Field {
	return backend.NewField(backend.FieldSpec{
		Name:  "Count",
		Owner: orderID,
		Type:  backend.TypeOf[int](),
		Get: func(owner any) (any, error) {
			return owner.(*order).Count, nil
		},
		Set: func(owner, value any) (any, error) {
			owner.(*order).Count = value.(int)
			return owner, nil
		},
	})
}

func statsField() *backend.Field {
	return backend.NewField(backend.FieldSpec{
		Name:  "Stats",
		Owner: orderID,
		Type:  backend.TypeOf[stats](),
		Get: func(owner any) (any, error) {
			return owner.(*order).Stats, nil
		},
		Set: func(owner, value any) (any, error) {
			owner.(*order).Stats = value.(stats)
			return owner, nil
		},
	})
}

func statsCountField() *backend.Field {
	return backend.NewField(backend.FieldSpec{
		Name:  "Count",
		Owner: statsID,
		Type:  backend.TypeOf[int](),
		Get: func(owner any) (any, error) {
			return owner.(stats).Count, nil
		},
		Set: func(owner, value any) (any, error) {
			s := owner.(stats)
			s.Count = value.(int)

			return s, nil
		},
	})
}

func itemsField() *backend.Field {
	return backend.NewField(backend.FieldSpec{
		Name:  "Items",
		Owner: orderID,
		Type:  backend.TypeOf[[]int](),
		Get: func(owner any) (any, error) {
			return owner.(*order).Items, nil
		},
		Set: func(owner, value any) (any, error) {
			owner.(*order).Items = value.([]int)
			return owner, nil
		},
	})
}

func pointXField() *backend.Field {
	return backend.NewField(backend.FieldSpec{
		Name:  "X",
		Owner: pointID,
		Type:  backend.TypeOf[int](),
		Get: func(owner any) (any, error) {
			return owner.(point).X, nil
		},
		Set: func(owner, value any) (any, error) {
			p := owner.(point)
			p.X = value.(int)

			return p, nil
		},
	})
}

type fakeClock struct{ now time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindProperty(path string) (member.StoreProperty, error) {
	args := m.Called(path)
	prop, _ := args.Get(0).(member.StoreProperty)

	return prop, args.Error(1)
}

func (m *mockStore) RecordUndo(targets []any, description string, fullSnapshot bool) bool {
	return m.Called(targets, description, fullSnapshot).Bool(0)
}

type storeProperty string

func (p storeProperty) Path() string { return string(p) }

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValueChanged(target any) {
	m.Called(target)
}

// recorder keeps every write it is handed.
// draft counts MarkModified calls.
type draft struct {
	Count int
	marks int
}

func (d *draft) MarkModified() { d.marks++ }

func draftCountField() *backend.Field {
	return backend.NewField(backend.FieldSpec{
		Name:  "Count",
		Owner: backend.TypeOf[draft]().ID,
		Type:  backend.TypeOf[int](),
		Get: func(owner any) (any, error) {
			return owner.(*draft).Count, nil
		},
		Set: func(owner, value any) (any, error) {
			owner.(*draft).Count = value.(int)
			return owner, nil
		},
	})
}

// gate records nothing and answers with mark.
type gate struct{ mark bool }

func (g *gate) RegisterWrite(member.Write) bool { return g.mark }

type recorder struct {
	writes []member.Write
}

func (r *recorder) RegisterWrite(w member.Write) bool {
	r.writes = append(r.writes, w)
	return true
}
