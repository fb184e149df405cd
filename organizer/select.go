package organizer

import (
	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
)

// OrganizeSelect implements §4.5's SELECT rule: resolve the table,
// expand message-valued selectors into their flattened primitive
// columns, and transform the remaining clauses recursively.
func (o *Organizer) OrganizeSelect(s *query.SelectClause) (*builderir.SelectClause, error) {
	if _, err := o.reg.GetRootMessage(s.Table); err != nil {
		return nil, err
	}

	selectors, err := o.organizeSelectors(s.Selectors)
	if err != nil {
		return nil, err
	}

	joins, err := o.organizeJoins(s.Joins)
	if err != nil {
		return nil, err
	}

	where, err := o.transformOptional(s.Where)
	if err != nil {
		return nil, err
	}
	groupBy, err := o.transformList(s.GroupBy)
	if err != nil {
		return nil, err
	}
	having, err := o.transformOptional(s.Having)
	if err != nil {
		return nil, err
	}
	orderBy, err := o.transformList(s.OrderBy)
	if err != nil {
		return nil, err
	}
	limit, err := o.transformOptional(s.Limit)
	if err != nil {
		return nil, err
	}

	return &builderir.SelectClause{
		Table: s.Table, Selectors: selectors, Joins: joins,
		Where: where, GroupBy: groupBy, Having: having, OrderBy: orderBy, Limit: limit,
	}, nil
}

// organizeSelectors expands any selector that names a message into its
// flattened primitive-field columns (registration order), and
// transforms every other selector normally.
func (o *Organizer) organizeSelectors(selectors []query.Clause) ([]builderir.Clause, error) {
	var out []builderir.Clause
	for _, sel := range selectors {
		col, isColumn := sel.(*query.ColumnClause)
		if !isColumn {
			t, err := o.TransformClause(sel)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
			continue
		}

		objKind, err := o.reg.GetObjectType(col.Path)
		if err != nil {
			return nil, err
		}
		if !objKind.Has(relation.Message) {
			t, err := o.transformColumn(col)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
			continue
		}

		expanded, err := o.ExpandSelector(col.Path)
		if err != nil {
			return nil, err
		}
		for _, p := range expanded {
			built, err := o.transformColumn(&query.ColumnClause{Path: p, Kind: col.Kind})
			if err != nil {
				return nil, err
			}
			out = append(out, built)
		}
	}
	return out, nil
}

func (o *Organizer) organizeJoins(joins []query.Join) ([]builderir.Join, error) {
	if len(joins) == 0 {
		return nil, nil
	}
	out := make([]builderir.Join, len(joins))
	for i, j := range joins {
		on, err := o.TransformClause(j.On)
		if err != nil {
			return nil, err
		}
		out[i] = builderir.Join{Table: j.Table, Kind: j.Kind, On: on}
	}
	return out, nil
}
