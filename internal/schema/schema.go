// Package schema declares the relational tables owned by this service as
// plain descriptors. A separate generation step (see PostgresDDL) turns them
// into storage DDL; column defaults are enforced by the database so that
// every insert path gets the same values.
package schema

import (
	"fmt"
)

type ColumnType string

const (
	TypeUUID      ColumnType = "uuid"
	TypeText      ColumnType = "text"
	TypeTimestamp ColumnType = "timestamp"
)

// DefaultRule is how the store fills a column omitted from an insert.
type DefaultRule string

const (
	DefaultNone       DefaultRule = ""
	DefaultRandomUUID DefaultRule = "random_uuid"
	DefaultNow        DefaultRule = "now"
)

// UpdateRule is how the store rewrites a column on every row update.
type UpdateRule string

const (
	UpdateNone UpdateRule = ""
	UpdateNow  UpdateRule = "now"
)

type KeyRole string

const (
	KeyNone    KeyRole = ""
	KeyPrimary KeyRole = "primary"
)

type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	Default  DefaultRule
	OnUpdate UpdateRule
	Key      KeyRole
}

type Table struct {
	Name    string
	Columns []Column
}

// Column returns the named column.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (t Table) PrimaryKey() (Column, bool) {
	for _, c := range t.Columns {
		if c.Key == KeyPrimary {
			return c, true
		}
	}
	return Column{}, false
}

func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// UpdatedColumns lists the columns refreshed on every update.
func (t Table) UpdatedColumns() []Column {
	var cols []Column
	for _, c := range t.Columns {
		if c.OnUpdate != UpdateNone {
			cols = append(cols, c)
		}
	}
	return cols
}

// Validate checks that a table descriptor can be turned into DDL.
func Validate(t Table) error {
	if t.Name == "" {
		return fmt.Errorf("table name is required")
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %s: no columns", t.Name)
	}

	seen := make(map[string]bool, len(t.Columns))
	primaryKeys := 0
	for _, c := range t.Columns {
		if c.Name == "" {
			return fmt.Errorf("table %s: column name is required", t.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("table %s: duplicate column %s", t.Name, c.Name)
		}
		seen[c.Name] = true

		switch c.Type {
		case TypeUUID, TypeText, TypeTimestamp:
		default:
			return fmt.Errorf("table %s: column %s: unknown type %q", t.Name, c.Name, c.Type)
		}

		if c.Key == KeyPrimary {
			primaryKeys++
			if c.Nullable {
				return fmt.Errorf("table %s: primary key %s cannot be nullable", t.Name, c.Name)
			}
		}
		if c.Default == DefaultRandomUUID && c.Type != TypeUUID {
			return fmt.Errorf("table %s: column %s: random_uuid default needs a uuid column", t.Name, c.Name)
		}
		if (c.Default == DefaultNow || c.OnUpdate == UpdateNow) && c.Type != TypeTimestamp {
			return fmt.Errorf("table %s: column %s: now() needs a timestamp column", t.Name, c.Name)
		}
	}
	if primaryKeys != 1 {
		return fmt.Errorf("table %s: want exactly one primary key, got %d", t.Name, primaryKeys)
	}
	return nil
}
