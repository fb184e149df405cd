package sqlbuilder

import (
	"strings"

	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/ormerr"
	"github.com/relormdb/relorm/query"
)

// clauseKind tracks what kind of clause is currently being emitted, so
// a nested Select knows whether it needs wrapping in parentheses,
// §4.6.
type clauseKind int

const (
	kindNone clauseKind = iota
	kindExpression
	kindSelect
	kindInsert
	kindUpdate
	kindDelete
)

// Builder recursively renders one builder-IR clause tree to PostgreSQL
// text. It carries no state across calls to Build; each call gets its
// own Builder.
type Builder struct {
	buf   strings.Builder
	stack []clauseKind
}

// Build renders c to its PostgreSQL statement text.
func Build(c builderir.Clause) (string, error) {
	b := &Builder{}
	if err := b.emit(c); err != nil {
		return "", err
	}
	return b.buf.String(), nil
}

// JoinQueries concatenates several independently built statements with
// "; " between them, §4.6. Empty strings are dropped.
func JoinQueries(stmts ...string) string {
	nonEmpty := stmts[:0:0]
	for _, s := range stmts {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.Join(nonEmpty, "; ")
}

func (b *Builder) push(k clauseKind) { b.stack = append(b.stack, k) }
func (b *Builder) pop()              { b.stack = b.stack[:len(b.stack)-1] }

func (b *Builder) enclosing() clauseKind {
	if len(b.stack) == 0 {
		return kindNone
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) emit(c builderir.Clause) error {
	switch v := c.(type) {
	case *builderir.StringClause:
		b.buf.WriteString(renderString(v.Value))
		return nil
	case *builderir.IntClause:
		b.buf.WriteString(renderInt(v.Value))
		return nil
	case *builderir.FloatClause:
		b.buf.WriteString(renderFloat(v.Value))
		return nil
	case *builderir.BoolClause:
		b.buf.WriteString(renderBool(v.Value))
		return nil
	case *builderir.AllClause:
		b.buf.WriteByte('*')
		return nil
	case *builderir.DefaultClause:
		b.buf.WriteString("DEFAULT")
		return nil
	case *builderir.ColumnClause:
		b.buf.WriteString(qualifiedColumn(v))
		return nil
	case *builderir.ExpressionClause:
		return b.emitExpression(v)
	case *builderir.SelectClause:
		return b.emitSelect(v)
	case *builderir.InsertClause:
		return b.emitInsert(v)
	case *builderir.UpdateClause:
		return b.emitUpdate(v)
	case *builderir.DeleteClause:
		return b.emitDelete(v)
	case *builderir.TruncateClause:
		b.buf.WriteString("TRUNCATE TABLE " + tableRef(v.Table))
		return nil
	case *builderir.CreateTableClause:
		return b.emitCreateTable(v)
	case *builderir.DropTableClause:
		b.buf.WriteString("DROP TABLE " + tableRef(v.Table))
		return nil
	case *builderir.AlterTableClause:
		return b.emitAlterTable(v)
	case *builderir.StartTransactionClause:
		if v.ReadOnly {
			b.buf.WriteString("BEGIN READ ONLY")
		} else {
			b.buf.WriteString("BEGIN")
		}
		return nil
	case *builderir.CommitTransactionClause:
		b.buf.WriteString("COMMIT")
		return nil
	case *builderir.RollbackTransactionClause:
		b.buf.WriteString("ROLLBACK")
		return nil
	default:
		return ormerr.New(ormerr.UnknownOperator, "", "sqlbuilder: unrecognized clause type %T", c)
	}
}

func (b *Builder) emitList(cs []builderir.Clause, sep string) error {
	for i, c := range cs {
		if i > 0 {
			b.buf.WriteString(sep)
		}
		if err := b.emit(c); err != nil {
			return err
		}
	}
	return nil
}

func joinKeyword(k query.JoinKind) string {
	switch k {
	case query.JoinLeft:
		return "LEFT"
	case query.JoinLeftOuter:
		return "LEFT OUTER"
	default:
		return "INNER"
	}
}

func (b *Builder) emitSelect(s *builderir.SelectClause) error {
	wrap := b.enclosing() != kindNone
	if wrap {
		b.buf.WriteByte('(')
	}
	b.push(kindSelect)
	defer b.pop()

	b.buf.WriteString("SELECT ")
	if err := b.emitList(s.Selectors, ", "); err != nil {
		return err
	}
	b.buf.WriteString(" FROM ")
	b.buf.WriteString(tableRef(s.Table))
	for _, j := range s.Joins {
		b.buf.WriteString(" ")
		b.buf.WriteString(joinKeyword(j.Kind))
		b.buf.WriteString(" JOIN ")
		b.buf.WriteString(tableRef(j.Table))
		if j.On != nil {
			b.buf.WriteString(" ON ")
			if err := b.emit(j.On); err != nil {
				return err
			}
		}
	}
	if s.Where != nil {
		b.buf.WriteString(" WHERE ")
		if err := b.emit(s.Where); err != nil {
			return err
		}
	}
	if len(s.GroupBy) > 0 {
		b.buf.WriteString(" GROUP BY ")
		if err := b.emitList(s.GroupBy, ", "); err != nil {
			return err
		}
	}
	if s.Having != nil {
		b.buf.WriteString(" HAVING ")
		if err := b.emit(s.Having); err != nil {
			return err
		}
	}
	if len(s.OrderBy) > 0 {
		b.buf.WriteString(" ORDER BY ")
		if err := b.emitList(s.OrderBy, ", "); err != nil {
			return err
		}
	}
	if s.Limit != nil {
		b.buf.WriteString(" LIMIT ")
		if err := b.emit(s.Limit); err != nil {
			return err
		}
	}
	if wrap {
		b.buf.WriteByte(')')
	}
	return nil
}

// emitAssignment renders one `column = value` pair for UPDATE's SET
// list and INSERT's do-update list. The column side is always a bare
// column reference, never table-qualified — Postgres rejects a
// qualified column on the left of SET.
func (b *Builder) emitAssignment(a builderir.Assignment) error {
	col, ok := a.Column.(*builderir.ColumnClause)
	if !ok {
		return ormerr.New(ormerr.UnknownOperator, "", "sqlbuilder: assignment column must be a column reference, got %T", a.Column)
	}
	b.buf.WriteString(columnRef(col.Key, col.FieldPath))
	b.buf.WriteString(" = ")
	return b.emit(a.Value)
}

func (b *Builder) emitInsert(ins *builderir.InsertClause) error {
	wrap := b.enclosing() != kindNone
	if wrap {
		b.buf.WriteByte('(')
	}
	b.push(kindInsert)
	defer b.pop()

	b.buf.WriteString("INSERT INTO ")
	b.buf.WriteString(tableRef(ins.Table))
	if len(ins.Selectors) == 0 {
		b.buf.WriteString(" DEFAULT VALUES")
	} else {
		b.buf.WriteString(" (")
		if err := b.emitList(ins.Selectors, ", "); err != nil {
			return err
		}
		b.buf.WriteString(") VALUES ")
		for i, row := range ins.Values {
			if i > 0 {
				b.buf.WriteString(", ")
			}
			b.buf.WriteByte('(')
			if err := b.emitList(row, ", "); err != nil {
				return err
			}
			b.buf.WriteByte(')')
		}
	}
	if ins.UpdateIfExists {
		b.buf.WriteString(" ON CONFLICT (")
		if err := b.emitList(ins.ConflictTarget, ", "); err != nil {
			return err
		}
		b.buf.WriteString(") DO UPDATE SET ")
		for i, a := range ins.DoUpdate {
			if i > 0 {
				b.buf.WriteString(", ")
			}
			if err := b.emitAssignment(a); err != nil {
				return err
			}
		}
	}
	if wrap {
		b.buf.WriteByte(')')
	}
	return nil
}

func (b *Builder) emitUpdate(u *builderir.UpdateClause) error {
	wrap := b.enclosing() != kindNone
	if wrap {
		b.buf.WriteByte('(')
	}
	b.push(kindUpdate)
	defer b.pop()

	b.buf.WriteString("UPDATE ")
	b.buf.WriteString(tableRef(u.Table))
	b.buf.WriteString(" SET ")
	for i, a := range u.Set {
		if i > 0 {
			b.buf.WriteString(", ")
		}
		if err := b.emitAssignment(a); err != nil {
			return err
		}
	}
	if u.Where != nil {
		b.buf.WriteString(" WHERE ")
		if err := b.emit(u.Where); err != nil {
			return err
		}
	}
	if wrap {
		b.buf.WriteByte(')')
	}
	return nil
}

func (b *Builder) emitDelete(d *builderir.DeleteClause) error {
	wrap := b.enclosing() != kindNone
	if wrap {
		b.buf.WriteByte('(')
	}
	b.push(kindDelete)
	defer b.pop()

	b.buf.WriteString("DELETE FROM ")
	b.buf.WriteString(tableRef(d.Table))
	if d.Where != nil {
		b.buf.WriteString(" WHERE ")
		if err := b.emit(d.Where); err != nil {
			return err
		}
	}
	if wrap {
		b.buf.WriteByte(')')
	}
	return nil
}
