package relation

// TableInfo is the root-message view used by DDL/DML emission: the
// root's path, the set of sub-messages reachable from it, the set of
// primitive fields flattened across nested non-repeated, non-map
// sub-messages, and the set of primary-key paths, §3.
//
// Invariant: every primitive field reachable from the table along only
// singular (non-repeated, non-map) message fields appears in
// RelatedFields.
type TableInfo struct {
	Path            Path
	RelatedMessages []Path
	RelatedFields   []Path
	PrimaryKeys     []Path
}

// Config returns the table's registration-time configuration.
func (t *TableInfo) Config(r *Registry) (*TableConfig, error) {
	msg, err := r.GetRootMessage(t.Path)
	if err != nil {
		return nil, err
	}
	return msg.Table(), nil
}
