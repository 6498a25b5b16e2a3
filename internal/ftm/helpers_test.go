package ftm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadModel(t *testing.T) *Model {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "model.json"))
	require.NoError(t, err)
	model, err := ParseModel(data)
	require.NoError(t, err)
	return model
}

func mustSchema(t *testing.T, m *Model, name string) *Schema {
	t.Helper()
	s, err := m.Schema(name)
	require.NoError(t, err)
	return s
}

func schemaNames(schemata []*Schema) []string {
	names := make([]string, 0, len(schemata))
	for _, s := range schemata {
		names = append(names, s.Name)
	}
	return names
}

func propertyNames(props []*Property) []string {
	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.Name)
	}
	return names
}

func strPtr(s string) *string { return &s }
