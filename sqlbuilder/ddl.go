package sqlbuilder

import (
	"strconv"
	"strings"

	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/ormerr"
	"github.com/relormdb/relorm/relation"
)

func (b *Builder) emitCreateTable(c *builderir.CreateTableClause) error {
	b.buf.WriteString("CREATE TABLE ")
	b.buf.WriteString(tableRef(c.Table))
	b.buf.WriteString(" (")
	for i, f := range c.Fields {
		if i > 0 {
			b.buf.WriteString(", ")
		}
		b.buf.WriteString(renderColumnDef(c.Table, f))
	}
	b.buf.WriteByte(')')
	return nil
}

// renderColumnDef renders one CREATE/ALTER ADD COLUMN definition:
// <col-ref> <sql-type> [NOT NULL] [DEFAULT <lit>] [PRIMARY KEY], §4.6.
// The column's own name always uses the Simple (f_) mangling — PRIMARY
// KEY is a trailing keyword, not a naming-prefix change, and already
// implies NOT NULL so the two are never emitted together.
func renderColumnDef(table relation.Path, f *relation.PrimitiveFieldInfo) string {
	fieldPath := relation.PathFromNumbers(f.Path().Numbers()[table.Size():])

	var b strings.Builder
	b.WriteString(columnRef(builderir.KeySimple, fieldPath))
	b.WriteByte(' ')
	b.WriteString(sqlType(f.TypeInfo()))
	if f.IsRequired() && !f.IsPrimaryKey() {
		b.WriteString(" NOT NULL")
	}
	if lit, ok := f.DefaultLiteral(); ok && f.HasDefaultValue() {
		b.WriteString(" DEFAULT ")
		b.WriteString(lit)
	}
	if f.IsPrimaryKey() {
		b.WriteString(" PRIMARY KEY")
	}
	return b.String()
}

func (b *Builder) emitAlterTable(a *builderir.AlterTableClause) error {
	b.buf.WriteString("ALTER TABLE ")
	b.buf.WriteString(tableRef(a.Table))
	for i, op := range a.Operations {
		if i > 0 {
			b.buf.WriteByte(',')
		}
		b.buf.WriteByte(' ')
		if err := b.emitAlterOperation(a.Table, op); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) emitAlterOperation(table relation.Path, op builderir.AlterOperation) error {
	switch op.Kind {
	case builderir.AlterAddColumn:
		b.buf.WriteString("ADD COLUMN ")
		b.buf.WriteString(renderColumnDef(table, op.Field))
		return nil
	case builderir.AlterDropColumn:
		b.buf.WriteString("DROP COLUMN ")
		return b.emitBareColumn(op.Column)
	case builderir.AlterColumnType:
		b.buf.WriteString("ALTER COLUMN ")
		if err := b.emitBareColumn(op.Column); err != nil {
			return err
		}
		b.buf.WriteString(" TYPE ")
		b.buf.WriteString(sqlType(op.TypeInfo))
		return nil
	case builderir.AlterSetDefault:
		b.buf.WriteString("ALTER COLUMN ")
		if err := b.emitBareColumn(op.Column); err != nil {
			return err
		}
		b.buf.WriteString(" SET DEFAULT ")
		b.buf.WriteString(op.DefaultLiteral)
		return nil
	case builderir.AlterDropDefault:
		b.buf.WriteString("ALTER COLUMN ")
		if err := b.emitBareColumn(op.Column); err != nil {
			return err
		}
		b.buf.WriteString(" DROP DEFAULT")
		return nil
	case builderir.AlterSetNotNull:
		b.buf.WriteString("ALTER COLUMN ")
		if err := b.emitBareColumn(op.Column); err != nil {
			return err
		}
		b.buf.WriteString(" SET NOT NULL")
		return nil
	case builderir.AlterDropNotNull:
		b.buf.WriteString("ALTER COLUMN ")
		if err := b.emitBareColumn(op.Column); err != nil {
			return err
		}
		b.buf.WriteString(" DROP NOT NULL")
		return nil
	case builderir.AlterAddConstraint:
		return b.emitAddConstraint(op)
	case builderir.AlterDropConstraint:
		b.buf.WriteString("DROP CONSTRAINT ")
		b.buf.WriteString(QuoteIdentifier(op.ConstraintName))
		return nil
	default:
		return ormerr.New(ormerr.UnsupportedDDL, "", "sqlbuilder: unhandled alter operation kind %d", op.Kind)
	}
}

func (b *Builder) emitBareColumn(c builderir.Clause) error {
	col, ok := c.(*builderir.ColumnClause)
	if !ok {
		return ormerr.New(ormerr.UnknownOperator, "", "sqlbuilder: alter operation column must be a column reference, got %T", c)
	}
	b.buf.WriteString(columnRef(col.Key, col.FieldPath))
	return nil
}

// emitAddConstraint renders a table-level PRIMARY KEY/UNIQUE or CHECK
// constraint described by an ariga.io/atlas/sql/schema value, the
// SUPPLEMENTED constraint-DDL feature.
func (b *Builder) emitAddConstraint(op builderir.AlterOperation) error {
	b.buf.WriteString("ADD CONSTRAINT ")
	b.buf.WriteString(QuoteIdentifier(op.ConstraintName))
	b.buf.WriteByte(' ')

	switch {
	case op.UniqueIndex != nil:
		if op.UniqueIndex.Unique {
			b.buf.WriteString("UNIQUE (")
		} else {
			b.buf.WriteString("PRIMARY KEY (")
		}
		for i, part := range op.UniqueIndex.Parts {
			if i > 0 {
				b.buf.WriteString(", ")
			}
			if part.C != nil {
				b.buf.WriteString(QuoteIdentifier(part.C.Name))
			} else {
				b.buf.WriteString(strconv.Itoa(part.SeqNo))
			}
		}
		b.buf.WriteByte(')')
		return nil
	case op.Check != nil:
		b.buf.WriteString("CHECK (")
		b.buf.WriteString(op.Check.Expr)
		b.buf.WriteByte(')')
		return nil
	default:
		return ormerr.New(ormerr.UnknownOperator, "", "sqlbuilder: AlterAddConstraint carries neither a unique index nor a check")
	}
}
