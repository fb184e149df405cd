package organizer

import (
	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
)

// OrganizeCreateTable resolves root's table info and flattens its
// primitive fields in registration order, ready for column-definition
// emission, §4.5/§4.6.
func (o *Organizer) OrganizeCreateTable(c *query.CreateTableClause) (*builderir.CreateTableClause, error) {
	tableInfo, err := o.reg.GetParentTable(c.Table)
	if err != nil {
		return nil, err
	}
	fields := make([]*relation.PrimitiveFieldInfo, 0, len(tableInfo.RelatedFields))
	for _, p := range tableInfo.RelatedFields {
		f, err := o.reg.GetPrimitiveField(p)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return &builderir.CreateTableClause{Table: c.Table, Fields: fields}, nil
}

// OrganizeDropTable is a trivial wrapper producing the builder-IR DROP
// TABLE.
func (o *Organizer) OrganizeDropTable(d *query.DropTableClause) (*builderir.DropTableClause, error) {
	if _, err := o.reg.GetRootMessage(d.Table); err != nil {
		return nil, err
	}
	return &builderir.DropTableClause{Table: d.Table}, nil
}

// OrganizeAlterTable resolves each requested operation's column
// reference and, for AlterAddColumn, the full field metadata the
// column definition needs.
func (o *Organizer) OrganizeAlterTable(a *query.AlterTableClause) (*builderir.AlterTableClause, error) {
	if _, err := o.reg.GetRootMessage(a.Table); err != nil {
		return nil, err
	}

	ops := make([]builderir.AlterOperation, len(a.Operations))
	for i, op := range a.Operations {
		built := builderir.AlterOperation{
			Kind:           builderir.AlterKind(op.Kind),
			TypeInfo:       relation.TypeInfo{Kind: op.ValueKind},
			DefaultLiteral: op.DefaultLiteral,
			ConstraintName: op.ConstraintName,
			UniqueIndex:    op.UniqueIndex,
			Check:          op.Check,
		}
		if op.Column != nil {
			col, err := o.TransformClause(op.Column)
			if err != nil {
				return nil, err
			}
			built.Column = col
		}
		if op.Kind == query.AlterAddColumn {
			f, err := o.reg.GetPrimitiveField(op.FieldPath)
			if err != nil {
				return nil, err
			}
			built.Field = f
		}
		ops[i] = built
	}
	return &builderir.AlterTableClause{Table: a.Table, Operations: ops}, nil
}
