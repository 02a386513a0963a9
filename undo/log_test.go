package undo_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"memberlink/backend"
	"memberlink/internal/diagnostic"
	"memberlink/member"
	"memberlink/undo"
)

type stats struct {
	Count int
}

type order struct {
	Name  string
	Count int
	Stats stats
}

var orderID = backend.TypeOf[order]().ID

func countField() *backend.Field {
	return backend.NewField(backend.FieldSpec{
		Name:  "Count",
		Owner: orderID,
		Type:  backend.TypeOf[int](),
		Get:   func(owner any) (any, error) { return owner.(*order).Count, nil },
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
		Get:   func(owner any) (any, error) { return owner.(*order).Stats, nil },
		Set: func(owner, value any) (any, error) {
			owner.(*order).Stats = value.(stats)
			return owner, nil
		},
	})
}

func statsCountField() *backend.Field {
	return backend.NewField(backend.FieldSpec{
		Name:  "Count",
		Owner: backend.TypeOf[stats]().ID,
		Type:  backend.TypeOf[int](),
		Get:   func(owner any) (any, error) { return owner.(stats).Count, nil },
		Set: func(owner, value any) (any, error) {
			s := owner.(stats)
			s.Count = value.(int)

			return s, nil
		},
	})
}

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

func TestLog_UndoRedoRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)

	a, b := &order{Name: "A", Count: 3}, &order{Name: "B", Count: 5}
	count := ctx.GetOrCreate(a, b).Root(countField())

	require.True(t, count.SetValue(7))
	require.Equal(t, 1, log.Len())

	e := log.Entries()[0]
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, []any{3, 5}, e.Before)
	assert.Equal(t, []any{7, 7}, e.After)
	assert.Equal(t, []any{a, b}, e.Targets)
	assert.False(t, e.Static)

	require.True(t, log.Undo())
	assert.Equal(t, []any{3, 5}, count.GetValues())
	assert.True(t, count.RecomputeMixedContent())
	assert.Equal(t, 1, log.Len(), "replays are not recorded")

	require.True(t, log.Redo())
	assert.Equal(t, []any{7, 7}, count.GetValues())
	assert.False(t, log.Redo())

	require.True(t, log.Undo())
	assert.False(t, log.Undo())
	assert.False(t, log.CanUndo())
	assert.True(t, log.CanRedo())
}

func TestLog_RepeatedWriteAddsNoEntry(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)
	count := ctx.GetOrCreate(&order{Name: "A"}, &order{Name: "B"}).Root(countField())

	count.SetValue(7)
	count.SetValue(7)

	assert.Equal(t, 1, log.Len())
}

func TestLog_EntryIsScopedToChangingTargets(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)

	a, b := &order{Name: "A", Count: 7}, &order{Name: "B", Count: 5}
	count := ctx.GetOrCreate(a, b).Root(countField())
	count.SetValue(7)

	e := log.Entries()[0]
	assert.Equal(t, []any{b}, e.Targets)
	assert.Equal(t, []any{5}, e.Before)

	a.Count = 1
	require.True(t, log.Undo())
	assert.Equal(t, 1, a.Count, "targets that did not change are left alone")
	assert.Equal(t, 5, b.Count)

	require.True(t, log.Redo())
	assert.Equal(t, 7, b.Count)
	assert.Equal(t, 1, ctx.Len(), "replay leaves no hierarchy behind")
	assert.True(t, count.Valid())
}

func TestLog_NewWriteDiscardsRedoBranch(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)
	a := &order{}
	count := ctx.GetOrCreate(a).Root(countField())

	count.SetValue(1)
	count.SetValue(2)
	log.Undo()
	count.SetValue(3)

	assert.Equal(t, 2, log.Len())
	assert.False(t, log.CanRedo())

	log.Undo()
	assert.Equal(t, 1, a.Count)
}

func TestLog_Capacity(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx, undo.WithCapacity(2))
	a := &order{}
	count := ctx.GetOrCreate(a).Root(countField())

	for v := 1; v <= 3; v++ {
		count.SetValue(v)
	}

	assert.Equal(t, 2, log.Len())
	assert.Equal(t, 2, log.Position())

	log.Undo()
	log.Undo()
	assert.False(t, log.Undo())
	assert.Equal(t, 1, a.Count, "the oldest entry was dropped")
}

func TestLog_DefaultCapacityFromConfig(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)
	count := ctx.GetOrCreate(&order{}).Root(countField())

	for v := 1; v <= ctx.Config().UndoCapacity+5; v++ {
		count.SetValue(v)
	}

	assert.Equal(t, ctx.Config().UndoCapacity, log.Len())
}

func TestLog_SkipsMembersThatAreNotUndoable(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)

	rename := backend.NewMethod(backend.MethodSpec{
		Name:  "Name",
		Owner: orderID,
		Type:  backend.TypeOf[string](),
		Call:  func(owner any, _ []any) (any, error) { return owner.(*order).Name, nil },
		Setter: func(owner, value any) (any, error) {
			owner.(*order).Name = value.(string)
			return owner, nil
		},
	})

	a := &order{Name: "A"}
	require.True(t, ctx.GetOrCreate(a).Root(rename).SetValue("Z"))

	assert.Equal(t, "Z", a.Name)
	assert.Zero(t, log.Len())
}

func TestLog_StaticEntry(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)

	list := backend.TypeID{PkgPath: "example.com/list", Name: "List"}
	generic := backend.NewGenericTypeArgument(ctx.GenericArgs(), backend.GenericArgSpec{
		Generic: list,
		Name:    "T",
		Default: backend.TypeID{Name: "int"},
	})

	hd := ctx.GetOrCreate(&order{}).Root(generic)
	require.True(t, hd.SetValue(backend.TypeID{Name: "string"}))

	require.Equal(t, 1, log.Len())
	assert.True(t, log.Entries()[0].Static)

	log.Undo()
	assert.Equal(t, backend.TypeID{Name: "int"}, hd.GetValue(0))
}

func TestLog_WriteBackEntry(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)

	a := &order{Stats: stats{Count: 2}}
	h := ctx.GetOrCreate(a)
	sc := h.Get(h.Root(statsField()), statsCountField())

	require.True(t, sc.SetValue(8))
	require.Equal(t, 1, log.Len())
	assert.Equal(t, []any{stats{Count: 2}}, log.Entries()[0].Before)

	log.Undo()
	assert.Equal(t, 2, a.Stats.Count)

	log.Redo()
	assert.Equal(t, 8, a.Stats.Count)
}

func TestLog_UnresolvableEntryStillMoves(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)

	a := &order{Count: 1}
	count := ctx.GetOrCreate(a).Root(countField())
	count.SetValue(2)

	ctx.Catalog().Reset()

	assert.True(t, log.Undo())
	assert.Equal(t, 0, log.Position())
	assert.Equal(t, 2, a.Count)

	diags := ctx.Diagnostics()
	assert.True(t, diags.Has(diagnostic.CodeUndoReplay))
}

func TestLog_SerializationFailure(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)

	broken := ctx.GetOrCreate().Root(countField())
	require.Equal(t, member.OwnerBroken, broken.OwnerKind())

	assert.False(t, log.RegisterWrite(member.Write{Handle: broken, To: []any{1}}))
	assert.Zero(t, log.Len())

	diags := ctx.Diagnostics()
	assert.True(t, diags.Has(diagnostic.CodeSerialization))
}

func TestLog_DelegatesToExternalStore(t *testing.T) {
	t.Parallel()

	a := &order{Name: "A"}

	store := &mockStore{}
	store.On("FindProperty", "count").Return(storeProperty("count"), nil)
	store.On("RecordUndo", []any{a}, "Set undo_test.order.Count", false).Return(true).Once()

	ctx := member.NewContext(member.WithStoreFactory(func([]any) (member.Store, error) { return store, nil }))
	log := undo.New(ctx)

	count := ctx.GetOrCreate(a).Root(countField(), member.WithStorePath("count"))
	require.True(t, count.SetValue(4))

	assert.Zero(t, log.Len())
	assert.Equal(t, 4, a.Count)
	store.AssertExpectations(t)
}

func TestLog_UpdateFollowsPositionStore(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	pos := &undo.MemoryPosition{}
	log := undo.New(ctx, undo.WithPositionStore(pos))

	a := &order{}
	count := ctx.GetOrCreate(a).Root(countField())
	count.SetValue(1)
	count.SetValue(2)
	require.Equal(t, 2, pos.Position())

	assert.False(t, log.Update(), "in sync")

	pos.SetPosition(1)
	assert.True(t, log.HostSignal())
	assert.Equal(t, 1, a.Count)
	assert.Equal(t, 1, log.Position())
	assert.False(t, log.Update())

	pos.SetPosition(2)
	assert.True(t, log.Update())
	assert.Equal(t, 2, a.Count)

	pos.SetPosition(0)
	assert.True(t, log.Update())
	assert.Equal(t, 1, a.Count, "one step per update")
	assert.True(t, log.Update())
	assert.Equal(t, 0, a.Count)
	assert.Equal(t, 0, pos.Position())
}

func TestLog_ClearAndDetach(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	log := undo.New(ctx)
	count := ctx.GetOrCreate(&order{}).Root(countField())

	count.SetValue(1)
	log.Clear()
	assert.Zero(t, log.Len())
	assert.False(t, log.CanUndo())

	log.Detach()
	count.SetValue(2)
	assert.Zero(t, log.Len())
}
