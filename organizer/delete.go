package organizer

import (
	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/query"
)

// OrganizeDelete is a trivial wrapper producing the builder-IR DELETE,
// §4.5; Where is optional.
func (o *Organizer) OrganizeDelete(d *query.DeleteClause) (*builderir.DeleteClause, error) {
	if _, err := o.reg.GetRootMessage(d.Table); err != nil {
		return nil, err
	}
	where, err := o.transformOptional(d.Where)
	if err != nil {
		return nil, err
	}
	return &builderir.DeleteClause{Table: d.Table, Where: where}, nil
}

// OrganizeTruncate is a trivial wrapper producing the builder-IR
// TRUNCATE.
func (o *Organizer) OrganizeTruncate(t *query.TruncateClause) (*builderir.TruncateClause, error) {
	if _, err := o.reg.GetRootMessage(t.Table); err != nil {
		return nil, err
	}
	return &builderir.TruncateClause{Table: t.Table}, nil
}
