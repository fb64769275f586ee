package snapshot_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dappregistry/internal/embedded"
	"github.com/agentstation/dappregistry/internal/sources/snapshot"
	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/logging"
)

func newSource(t *testing.T, opts ...snapshot.Option) *snapshot.Source {
	t.Helper()
	v, err := validation.New(logging.NewNopLogger())
	require.NoError(t, err)
	return snapshot.New(v, append([]snapshot.Option{snapshot.WithLogger(logging.NewNopLogger())}, opts...)...)
}

func TestBundledSnapshot(t *testing.T) {
	src := newSource(t)

	reg, err := src.Registry()
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Title)
	assert.NotEmpty(t, reg.Dapps)

	stores, err := src.Stores()
	require.NoError(t, err)
	assert.Contains(t, stores.Keys(), "meroku")

	tax, err := src.Taxonomy()
	require.NoError(t, err)
	assert.NotEmpty(t, tax.SubCategoriesOf("defi"))
}

func TestSnapshotReturnsCopies(t *testing.T) {
	src := newSource(t)

	first, err := src.Registry()
	require.NoError(t, err)
	first.Title = "mutated"
	first.Dapps[0].Name = "mutated"

	second, err := src.Registry()
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second.Title)
	assert.NotEqual(t, "mutated", second.Dapps[0].Name)
}

func TestInvalidSnapshotIsConfigError(t *testing.T) {
	fsys := fstest.MapFS{
		embedded.RegistryPath: {Data: []byte(`{"title":"bad","dapps":[{"dappId":"x1"},{"dappId":"x1"}]}`)},
		embedded.StoresPath:   {Data: []byte(`not json`)},
	}
	src := newSource(t, snapshot.WithFS(fsys))

	_, err := src.Registry()
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
	assert.Contains(t, err.Error(), "x1")

	_, err = src.Stores()
	assert.True(t, errors.IsConfigError(err))

	_, err = src.Taxonomy()
	assert.True(t, errors.IsConfigError(err))
}
