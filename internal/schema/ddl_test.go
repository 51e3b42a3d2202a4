package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wantDDL = `CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS "users" (
	"id" uuid PRIMARY KEY DEFAULT gen_random_uuid() NOT NULL
);

CREATE TABLE IF NOT EXISTS "clinics" (
	"id" uuid PRIMARY KEY DEFAULT gen_random_uuid() NOT NULL,
	"name" text NOT NULL,
	"created_at" timestamp DEFAULT now() NOT NULL,
	"updated_at" timestamp DEFAULT now()
);

CREATE OR REPLACE FUNCTION "clinics_on_update"() RETURNS trigger AS $$
BEGIN
	NEW."updated_at" = now();
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;
DROP TRIGGER IF EXISTS "clinics_on_update" ON "clinics";
CREATE TRIGGER "clinics_on_update" BEFORE UPDATE ON "clinics" FOR EACH ROW EXECUTE FUNCTION "clinics_on_update"();
`

func TestPostgresDDL(t *testing.T) {
	ddl, err := PostgresDDL(Tables()...)
	require.NoError(t, err)
	assert.Equal(t, wantDDL, ddl)
}

func TestPostgresDDLWithoutUUIDDefaults(t *testing.T) {
	ddl, err := PostgresDDL(Table{
		Name:    "tags",
		Columns: []Column{{Name: "name", Type: TypeText, Key: KeyPrimary}},
	})
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS \"tags\" (\n\t\"name\" text PRIMARY KEY NOT NULL\n);\n", ddl)
}

func TestPostgresDDLRejectsInvalidTable(t *testing.T) {
	_, err := PostgresDDL(Table{Name: "broken"})
	assert.Error(t, err)
}
