// Package organizer transforms the user-facing query IR (query.Clause,
// referencing logical schema paths and tagged attribute values) into
// builder IR (builderir.Clause, with fully resolved table/field paths
// and an expanded, column-aligned shape ready for SQL emission), §4.5.
package organizer

import (
	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/ormerr"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
)

// Organizer is bound to a single Registry; it performs no mutation of
// its own and is safe for concurrent use once the registry is frozen,
// mirroring §4.3/§5's read-phase concurrency model.
type Organizer struct {
	reg *relation.Registry
}

// New returns an Organizer resolving schema paths through reg.
func New(reg *relation.Registry) *Organizer { return &Organizer{reg: reg} }

// TransformClause dispatches c to the matching Organize* method,
// returning the equivalent builder IR node.
func (o *Organizer) TransformClause(c query.Clause) (builderir.Clause, error) {
	switch v := c.(type) {
	case *query.StringClause:
		return &builderir.StringClause{Value: v.Value}, nil
	case *query.IntClause:
		return &builderir.IntClause{Value: int64(v.Value)}, nil
	case *query.FloatClause:
		return &builderir.FloatClause{Value: v.Value}, nil
	case *query.BoolClause:
		return &builderir.BoolClause{Value: v.Value}, nil
	case *query.AllClause:
		return &builderir.AllClause{}, nil
	case *query.DefaultClause:
		return &builderir.DefaultClause{}, nil
	case *query.ColumnClause:
		return o.transformColumn(v)
	case *query.ExpressionClause:
		return o.transformExpression(v)
	case *query.SelectClause:
		return o.OrganizeSelect(v)
	case *query.InsertClause:
		return o.OrganizeInsert(v)
	case *query.UpdateClause:
		return o.OrganizeUpdate(v)
	case *query.DeleteClause:
		return o.OrganizeDelete(v)
	case *query.TruncateClause:
		return o.OrganizeTruncate(v)
	case *query.CreateTableClause:
		return o.OrganizeCreateTable(v)
	case *query.DropTableClause:
		return o.OrganizeDropTable(v)
	case *query.AlterTableClause:
		return o.OrganizeAlterTable(v)
	case *query.StartTransactionClause:
		return &builderir.StartTransactionClause{ReadOnly: v.ReadOnly}, nil
	case *query.CommitTransactionClause:
		return &builderir.CommitTransactionClause{}, nil
	case *query.RollbackTransactionClause:
		return &builderir.RollbackTransactionClause{}, nil
	default:
		return nil, ormerr.New(ormerr.UnknownOperator, "", "organizer: unrecognized clause type %T", c)
	}
}

// transformColumn resolves path through the registry into a fully
// qualified builder column: table-path = the owning root's path,
// field-path = the remainder, §4.1's table-path/field-path split.
func (o *Organizer) transformColumn(c *query.ColumnClause) (*builderir.ColumnClause, error) {
	table, fieldPath, key, err := o.resolveColumn(c.Path)
	if err != nil {
		return nil, err
	}
	return &builderir.ColumnClause{TablePath: table, FieldPath: fieldPath, Key: key, Kind: c.Kind}, nil
}

// resolveColumn splits path into its owning table path and field
// suffix. Every ordinary Column(path, kind) reference gets key-kind
// Simple, §4.5 — Primary is set only where a builder-IR site builds it
// explicitly (ON CONFLICT's target columns, §9's open question b; the
// EXCLUDED assignment columns stay Simple), not inferred here from
// whether the field happens to be a primary key.
func (o *Organizer) resolveColumn(path relation.Path) (table, field relation.Path, key builderir.KeyKind, err error) {
	tableInfo, err := o.reg.GetParentTable(path)
	if err != nil {
		return relation.Path{}, relation.Path{}, 0, err
	}
	suffix := path.Numbers()[tableInfo.Path.Size():]
	field = relation.PathFromNumbers(suffix)
	return tableInfo.Path, field, builderir.KeySimple, nil
}

func (o *Organizer) transformExpression(e *query.ExpressionClause) (*builderir.ExpressionClause, error) {
	operands := make([]builderir.Clause, len(e.Operands))
	for i, op := range e.Operands {
		t, err := o.TransformClause(op)
		if err != nil {
			return nil, err
		}
		operands[i] = t
	}
	return &builderir.ExpressionClause{Op: e.Op, Operands: operands}, nil
}

// transformOptional transforms c if non-nil, otherwise returns nil.
func (o *Organizer) transformOptional(c query.Clause) (builderir.Clause, error) {
	if c == nil {
		return nil, nil
	}
	return o.TransformClause(c)
}

func (o *Organizer) transformList(cs []query.Clause) ([]builderir.Clause, error) {
	if len(cs) == 0 {
		return nil, nil
	}
	out := make([]builderir.Clause, len(cs))
	for i, c := range cs {
		t, err := o.TransformClause(c)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
