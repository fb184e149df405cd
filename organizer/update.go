package organizer

import (
	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/query"
)

// OrganizeUpdate implements §4.5's UPDATE rule: flatten Updates'
// semantic grouping into a single ordered list of (column, literal)
// assignments, using the same column-resolution rules as INSERT.
func (o *Organizer) OrganizeUpdate(u *query.UpdateClause) (*builderir.UpdateClause, error) {
	if _, err := o.reg.GetRootMessage(u.Table); err != nil {
		return nil, err
	}

	var set []builderir.Assignment
	for _, group := range u.Updates {
		for _, attr := range group {
			col, err := o.transformColumn(&query.ColumnClause{Path: attr.Path, Kind: query.ColumnSimple})
			if err != nil {
				return nil, err
			}
			lit, err := o.attributeLiteral(attr)
			if err != nil {
				return nil, err
			}
			set = append(set, builderir.Assignment{Column: col, Value: lit})
		}
	}

	where, err := o.transformOptional(u.Where)
	if err != nil {
		return nil, err
	}

	return &builderir.UpdateClause{Table: u.Table, Set: set, Where: where}, nil
}
