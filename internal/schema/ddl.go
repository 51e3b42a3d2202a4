package schema

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// PostgresDDL renders idempotent PostgreSQL statements for tables. Columns
// with an on-update rule get a BEFORE UPDATE trigger so the refresh happens
// in the store, whichever client performs the update.
func PostgresDDL(tables ...Table) (string, error) {
	var b strings.Builder

	needsCrypto := false
	for _, t := range tables {
		if err := Validate(t); err != nil {
			return "", err
		}
		for _, c := range t.Columns {
			if c.Default == DefaultRandomUUID {
				needsCrypto = true
			}
		}
	}
	if needsCrypto {
		b.WriteString("CREATE EXTENSION IF NOT EXISTS pgcrypto;\n\n")
	}

	for i, t := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		writeTable(&b, t)
		writeUpdateTrigger(&b, t)
	}
	return b.String(), nil
}

func writeTable(b *strings.Builder, t Table) {
	fmt.Fprintf(b, "CREATE TABLE IF NOT EXISTS %s (\n", pq.QuoteIdentifier(t.Name))
	for i, c := range t.Columns {
		b.WriteString("\t")
		b.WriteString(columnDefinition(c))
		if i < len(t.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");\n")
}

func columnDefinition(c Column) string {
	parts := []string{pq.QuoteIdentifier(c.Name), string(c.Type)}
	if c.Key == KeyPrimary {
		parts = append(parts, "PRIMARY KEY")
	}
	switch c.Default {
	case DefaultRandomUUID:
		parts = append(parts, "DEFAULT gen_random_uuid()")
	case DefaultNow:
		parts = append(parts, "DEFAULT now()")
	}
	if !c.Nullable {
		parts = append(parts, "NOT NULL")
	}
	return strings.Join(parts, " ")
}

func writeUpdateTrigger(b *strings.Builder, t Table) {
	cols := t.UpdatedColumns()
	if len(cols) == 0 {
		return
	}

	fn := pq.QuoteIdentifier(t.Name + "_on_update")
	b.WriteString("\n")
	fmt.Fprintf(b, "CREATE OR REPLACE FUNCTION %s() RETURNS trigger AS $$\nBEGIN\n", fn)
	for _, c := range cols {
		fmt.Fprintf(b, "\tNEW.%s = now();\n", pq.QuoteIdentifier(c.Name))
	}
	b.WriteString("\tRETURN NEW;\nEND;\n$$ LANGUAGE plpgsql;\n")
	fmt.Fprintf(b, "DROP TRIGGER IF EXISTS %s ON %s;\n", fn, pq.QuoteIdentifier(t.Name))
	fmt.Fprintf(b, "CREATE TRIGGER %s BEFORE UPDATE ON %s FOR EACH ROW EXECUTE FUNCTION %s();\n",
		fn, pq.QuoteIdentifier(t.Name), fn)
}
