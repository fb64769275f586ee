package validate

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dappregistry/cmd/application"
	"github.com/agentstation/dappregistry/internal/embedded"
	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/errors"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func run(format string, args ...string) (string, error) {
	cmd := NewCommand(&application.Mock{Format: format})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestValidateBundledRegistry(t *testing.T) {
	raw, err := embedded.Read(embedded.RegistryPath)
	require.NoError(t, err)

	out, err := run("table", writeFile(t, raw))
	require.NoError(t, err)
	assert.Contains(t, out, "is a valid registry document")
}

func TestValidateBundledStores(t *testing.T) {
	raw, err := embedded.Read(embedded.StoresPath)
	require.NoError(t, err)

	out, err := run("json", "--stores", writeFile(t, raw))
	require.NoError(t, err)

	var result validation.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Valid)
	assert.Equal(t, validation.KindStores, result.Kind)
}

func TestValidateDuplicates(t *testing.T) {
	doc := catalogs.NewTestRegistry("Dup", catalogs.NewTestDapp("io.dup"), catalogs.NewTestDapp("io.dup"))
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	out, err := run("table", writeFile(t, raw))
	require.Error(t, err)
	var dup *errors.DuplicateIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, []string{"io.dup"}, dup.IDs)
	assert.Contains(t, out, "io.dup")
}

func TestValidateSchemaFailure(t *testing.T) {
	out, err := run("table", writeFile(t, []byte(`{"dapps":[]}`)))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, out, "failed schema validation")
}

func TestValidateMissingFile(t *testing.T) {
	_, err := run("table", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidateNotJSON(t *testing.T) {
	_, err := run("table", writeFile(t, []byte("not json")))
	assert.Error(t, err)
}
