package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
)

func TestDeclaredTablesAreValid(t *testing.T) {
	for _, table := range Tables() {
		assert.NoError(t, Validate(table), table.Name)
	}
}

func TestClinicsDeclaration(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "created_at", "updated_at"}, Clinics.ColumnNames())

	pk, ok := Clinics.PrimaryKey()
	require.True(t, ok)
	assert.Equal(t, "id", pk.Name)
	assert.Equal(t, DefaultRandomUUID, pk.Default)

	name, _ := Clinics.Column("name")
	assert.False(t, name.Nullable)
	assert.Equal(t, DefaultNone, name.Default)

	created, _ := Clinics.Column("created_at")
	assert.False(t, created.Nullable)
	assert.Equal(t, DefaultNow, created.Default)
	assert.Equal(t, UpdateNone, created.OnUpdate)

	updated, _ := Clinics.Column("updated_at")
	assert.True(t, updated.Nullable)
	assert.Equal(t, DefaultNow, updated.Default)
	assert.Equal(t, UpdateNow, updated.OnUpdate)

	_, ok = Clinics.Column("deleted_at")
	assert.False(t, ok)
}

func TestUsersDeclaration(t *testing.T) {
	assert.Equal(t, []string{"id"}, Users.ColumnNames())
	assert.Empty(t, Users.UpdatedColumns())
}

func TestValidateRejectsBadDescriptors(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{"no name", Table{Columns: []Column{{Name: "id", Type: TypeUUID, Key: KeyPrimary}}}},
		{"no columns", Table{Name: "t"}},
		{"no primary key", Table{Name: "t", Columns: []Column{{Name: "id", Type: TypeUUID}}}},
		{"two primary keys", Table{Name: "t", Columns: []Column{
			{Name: "a", Type: TypeUUID, Key: KeyPrimary},
			{Name: "b", Type: TypeUUID, Key: KeyPrimary},
		}}},
		{"nullable primary key", Table{Name: "t", Columns: []Column{{Name: "id", Type: TypeUUID, Key: KeyPrimary, Nullable: true}}}},
		{"duplicate column", Table{Name: "t", Columns: []Column{
			{Name: "id", Type: TypeUUID, Key: KeyPrimary},
			{Name: "id", Type: TypeText},
		}}},
		{"unknown type", Table{Name: "t", Columns: []Column{{Name: "id", Type: "jsonb", Key: KeyPrimary}}}},
		{"now on text", Table{Name: "t", Columns: []Column{
			{Name: "id", Type: TypeUUID, Key: KeyPrimary},
			{Name: "x", Type: TypeText, OnUpdate: UpdateNow},
		}}},
		{"random uuid on text", Table{Name: "t", Columns: []Column{{Name: "id", Type: TypeText, Key: KeyPrimary, Default: DefaultRandomUUID}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate(tt.table))
		})
	}
}

// dbColumns collects sqlx db tags, flattening embedded structs.
func dbColumns(typ reflect.Type) []string {
	var cols []string
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Anonymous {
			cols = append(cols, dbColumns(f.Type)...)
			continue
		}
		if tag := f.Tag.Get("db"); tag != "" && tag != "-" {
			cols = append(cols, tag)
		}
	}
	return cols
}

func TestModelsMatchDeclaredColumns(t *testing.T) {
	assert.ElementsMatch(t, Clinics.ColumnNames(), dbColumns(reflect.TypeOf(model.Clinic{})))
	assert.ElementsMatch(t, Users.ColumnNames(), dbColumns(reflect.TypeOf(model.User{})))
}
