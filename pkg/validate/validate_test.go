package validate

import (
	"errors"
	"testing"

	"github.com/driftdb/driftdb/pkg/crdt"
	"github.com/driftdb/driftdb/pkg/direrr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUnknownSchemaPassesThrough(t *testing.T) {
	v := NewFieldValidator()
	input := map[string]crdt.Value{"name": crdt.String("Alice")}

	out, err := v.Validate("users", input)

	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestValidateRequiredFieldMissing(t *testing.T) {
	v := NewFieldValidator()
	v.RegisterSchema("users", Schema{Fields: map[string]Rule{
		"name": {Required: true, Kind: crdt.KindString},
	}})

	_, err := v.Validate("users", map[string]crdt.Value{})

	var ide *direrr.InvalidDataError
	require.True(t, errors.As(err, &ide))
	require.Len(t, ide.Issues, 1)
	assert.Equal(t, "name", ide.Issues[0].Path)
}

func TestValidateKindMismatch(t *testing.T) {
	v := NewFieldValidator()
	v.RegisterSchema("users", Schema{Fields: map[string]Rule{
		"age": {Kind: crdt.KindNumber},
	}})

	_, err := v.Validate("users", map[string]crdt.Value{"age": crdt.String("thirty")})

	var ide *direrr.InvalidDataError
	require.True(t, errors.As(err, &ide))
	assert.Equal(t, "age", ide.Issues[0].Path)
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	v := NewFieldValidator()
	v.RegisterSchema("users", Schema{Fields: map[string]Rule{
		"name": {Required: true, Kind: crdt.KindString},
		"age":  {Kind: crdt.KindNumber},
	}})

	input := map[string]crdt.Value{"name": crdt.String("Alice"), "age": crdt.Number(30)}
	out, err := v.Validate("users", input)

	require.NoError(t, err)
	assert.Equal(t, input, out)
}

type userConfig struct {
	Name string `driftdb:"name,required"`
	Age  int    `driftdb:"age"`
}

func TestSchemaFromStructDerivesRequiredAndKind(t *testing.T) {
	schema := SchemaFromStruct(userConfig{})

	require.Contains(t, schema.Fields, "name")
	assert.True(t, schema.Fields["name"].Required)
	assert.Equal(t, crdt.KindString, schema.Fields["name"].Kind)

	require.Contains(t, schema.Fields, "age")
	assert.False(t, schema.Fields["age"].Required)
	assert.Equal(t, crdt.KindNumber, schema.Fields["age"].Kind)
}
