package organizer

import (
	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/query"
)

// OrganizeTransaction is a trivial wrapper producing the builder-IR
// counterpart of a transaction control clause, §4.5.
func (o *Organizer) OrganizeTransaction(c query.Clause) (builderir.Clause, error) {
	switch v := c.(type) {
	case *query.StartTransactionClause:
		return &builderir.StartTransactionClause{ReadOnly: v.ReadOnly}, nil
	case *query.CommitTransactionClause:
		return &builderir.CommitTransactionClause{}, nil
	case *query.RollbackTransactionClause:
		return &builderir.RollbackTransactionClause{}, nil
	default:
		return o.TransformClause(c)
	}
}
