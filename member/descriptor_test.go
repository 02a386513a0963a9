package member_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberlink/backend"
	"memberlink/member"
)

func TestHandle_DescriptorRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	a, b := &order{Name: "A"}, &order{Name: "B"}
	h := ctx.GetOrCreate(a, b)
	sc := h.Get(h.Root(statsField()), statsCountField())

	d, err := sc.Descriptor()
	require.NoError(t, err)
	require.Len(t, d.Chain, 2)
	assert.Equal(t, backend.KindField, d.Chain[0].Kind)
	assert.Equal(t, "Stats", d.Chain[0].Member)
	assert.Equal(t, statsID, d.Chain[1].Type)
	assert.Empty(t, d.StorePaths)
	assert.NotEmpty(t, d.Targets)

	data, err := member.EncodeDescriptor(d)
	require.NoError(t, err)

	decoded, err := member.DecodeDescriptor(data)
	require.NoError(t, err)
	assert.Equal(t, d, decoded)

	resolved, err := ctx.Resolve([]any{a, b}, decoded)
	require.NoError(t, err)
	assert.True(t, resolved == sc, "resolving on the same targets returns the cached handle")

	h.Dispose()

	rebuilt, err := ctx.Resolve([]any{a}, decoded)
	require.NoError(t, err)
	assert.False(t, sc.Valid())
	assert.Equal(t, member.OwnerChained, rebuilt.OwnerKind())
	assert.True(t, rebuilt.SetValue(6))
	assert.Equal(t, 6, a.Stats.Count)
	assert.Zero(t, b.Stats.Count)
}

func TestHandle_DescriptorKeepsStorePaths(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	store.On("FindProperty", "stats").Return(storeProperty("stats"), nil)

	ctx := member.NewContext(member.WithStoreFactory(func([]any) (member.Store, error) { return store, nil }))
	h := ctx.GetOrCreate(&order{})
	sc := h.Get(h.Root(statsField(), member.WithStorePath("stats")), statsCountField())

	d, err := sc.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, []string{"stats", ""}, d.StorePaths)
}

func TestContext_ResolveUnknownMember(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	a := &order{}
	d, err := ctx.GetOrCreate(a).Root(countField()).Descriptor()
	require.NoError(t, err)

	ctx.Catalog().Reset()

	_, err = ctx.Resolve([]any{a}, d)
	assert.ErrorIs(t, err, member.ErrUnknownMember)

	_, err = ctx.Resolve([]any{a}, member.Descriptor{})
	assert.ErrorIs(t, err, member.ErrUnknownMember)
}

func TestContext_ResolveOnEmptyTargetSet(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	d, err := ctx.GetOrCreate(&order{}).Root(countField()).Descriptor()
	require.NoError(t, err)

	_, err = ctx.Resolve(nil, d)
	assert.ErrorIs(t, err, member.ErrBrokenChain)
}

func TestDecodeDescriptor_Errors(t *testing.T) {
	t.Parallel()

	_, err := member.DecodeDescriptor([]byte("chain: [}"))
	require.Error(t, err)

	_, err = member.DecodeDescriptor([]byte("targets: x\n"))
	require.ErrorIs(t, err, member.ErrUnknownMember)

	_, err = member.EncodeDescriptor(member.Descriptor{})
	require.ErrorIs(t, err, member.ErrUnknownMember)
}

func TestHandle_DescriptorOfDisposedHandle(t *testing.T) {
	t.Parallel()

	ctx := member.NewContext()
	count := ctx.GetOrCreate(&order{}).Root(countField())
	count.Dispose()

	_, err := count.Descriptor()
	assert.ErrorIs(t, err, member.ErrInvalidHandle)
}
