package relation

import (
	"github.com/go-openapi/inflect"

	"github.com/relormdb/relorm/ormerr"
)

// TableConfig is the per-root-message table configuration from §6: a
// numeric table id, the snake_case and camelCase names, and the fully
// qualified IDL type name the table is generated from.
type TableConfig struct {
	TableNumber       uint32
	SnakeCase         string
	CamelCase         string
	Scheme            string
	CustomTypeHandler bool
}

// Config is the top-level ORM configuration object from §6: a list of
// table configs, normally loaded from JSON/YAML by the ambient config
// package and fed one-by-one into Registry.RegisterRoot.
type Config struct {
	Tables []TableConfig
}

// normalizeNames fills in whichever of SnakeCase/CamelCase is missing
// from the other, using go-openapi/inflect's identifier-casing
// primitives (the same library velox's own codegen leans on to derive
// Go struct/field names from schema names). It is a no-op when both are
// already populated, and an error when neither is.
func normalizeNames(c *TableConfig) error {
	switch {
	case c.SnakeCase != "" && c.CamelCase != "":
		return nil
	case c.SnakeCase != "":
		c.CamelCase = inflect.Camelize(c.SnakeCase)
		return nil
	case c.CamelCase != "":
		c.SnakeCase = inflect.Underscore(c.CamelCase)
		return nil
	default:
		return ormerr.New(ormerr.LoadFailure, c.Scheme, "table config has neither snake_case nor camel_case name")
	}
}
