package wire

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/relormdb/relorm/ormerr"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
)

// Encode builds a flat Envelope from one or more top-level clauses, in
// post-order: each child clause is appended to Envelope.Clauses before
// its parent, and the parent records the child's resulting index.
// Shared sub-expressions are duplicated rather than deduplicated,
// which §9 treats as an equally conformant encoding strategy.
func Encode(clauses ...query.Clause) *Envelope {
	env := &Envelope{}
	for _, c := range clauses {
		idx := encodeClause(env, c)
		env.StartPoints = append(env.StartPoints, idx)
	}
	return env
}

// Marshal encodes clauses and serializes the envelope to msgpack
// bytes.
func Marshal(clauses ...query.Clause) ([]byte, error) {
	return msgpack.Marshal(Encode(clauses...))
}

// Unmarshal deserializes a msgpack envelope and decodes every start
// point back into a query.Clause, in StartPoints order.
func Unmarshal(data []byte) ([]query.Clause, error) {
	var env Envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, ormerr.Wrap(ormerr.MalformedQueryEnvelope, "", err, "msgpack unmarshal failed")
	}
	return Decode(&env)
}

func encodeClause(env *Envelope, c query.Clause) uint32 {
	switch v := c.(type) {
	case *query.StringClause:
		return appendRecord(env, ClauseRecord{Kind: KString, StringValue: v.Value})
	case *query.IntClause:
		return appendRecord(env, ClauseRecord{Kind: KInt, IntValue: v.Value})
	case *query.FloatClause:
		return appendRecord(env, ClauseRecord{Kind: KFloat, FloatValue: v.Value})
	case *query.BoolClause:
		return appendRecord(env, ClauseRecord{Kind: KBool, BoolValue: v.Value})
	case *query.AllClause:
		return appendRecord(env, ClauseRecord{Kind: KAll})
	case *query.DefaultClause:
		return appendRecord(env, ClauseRecord{Kind: KDefault})
	case *query.ColumnClause:
		return appendRecord(env, ClauseRecord{Kind: KColumn, PathNumbers: v.Path.Numbers(), ColumnKind: uint8(v.Kind)})
	case *query.ExpressionClause:
		operands := make([]uint32, len(v.Operands))
		for i, o := range v.Operands {
			operands[i] = encodeClause(env, o)
		}
		return appendRecord(env, ClauseRecord{Kind: KExpression, Operator: int32(v.Op), Operands: operands})
	case *query.SelectClause:
		return encodeSelect(env, v)
	case *query.InsertClause:
		return encodeInsert(env, v)
	case *query.UpdateClause:
		return encodeUpdate(env, v)
	case *query.DeleteClause:
		rec := ClauseRecord{Kind: KDelete, Table: tableNumber(v.Table)}
		if v.Where != nil {
			rec.Where = idxPtr(encodeClause(env, v.Where))
		}
		return appendRecord(env, rec)
	case *query.TruncateClause:
		return appendRecord(env, ClauseRecord{Kind: KTruncate, Table: tableNumber(v.Table)})
	case *query.StartTransactionClause:
		return appendRecord(env, ClauseRecord{Kind: KStartTransaction, ReadOnly: v.ReadOnly})
	case *query.CommitTransactionClause:
		return appendRecord(env, ClauseRecord{Kind: KCommitTransaction})
	case *query.RollbackTransactionClause:
		return appendRecord(env, ClauseRecord{Kind: KRollbackTransaction})
	default:
		panic("query/wire: unknown clause type in encode")
	}
}

func encodeSelect(env *Envelope, s *query.SelectClause) uint32 {
	rec := ClauseRecord{Kind: KSelect, Table: tableNumber(s.Table)}
	rec.Selectors = make([]uint32, len(s.Selectors))
	for i, sel := range s.Selectors {
		rec.Selectors[i] = encodeClause(env, sel)
	}
	for _, j := range s.Joins {
		rec.Joins = append(rec.Joins, JoinRecord{Table: tableNumber(j.Table), Kind: uint8(j.Kind), On: encodeClause(env, j.On)})
	}
	if s.Where != nil {
		rec.Where = idxPtr(encodeClause(env, s.Where))
	}
	for _, g := range s.GroupBy {
		rec.GroupBy = append(rec.GroupBy, encodeClause(env, g))
	}
	if s.Having != nil {
		rec.Having = idxPtr(encodeClause(env, s.Having))
	}
	for _, o := range s.OrderBy {
		rec.OrderBy = append(rec.OrderBy, encodeClause(env, o))
	}
	if s.Limit != nil {
		rec.Limit = idxPtr(encodeClause(env, s.Limit))
	}
	return appendRecord(env, rec)
}

func encodeInsert(env *Envelope, ins *query.InsertClause) uint32 {
	rec := ClauseRecord{Kind: KInsert, Table: tableNumber(ins.Table), UpdateIfExists: ins.UpdateIfExists}
	for _, row := range ins.Subrequests {
		rec.Subrequests = append(rec.Subrequests, SubrequestRecord{Attributes: encodeAttributes(env, row)})
	}
	return appendRecord(env, rec)
}

func encodeUpdate(env *Envelope, u *query.UpdateClause) uint32 {
	rec := ClauseRecord{Kind: KUpdate, Table: tableNumber(u.Table)}
	for _, set := range u.Updates {
		rec.Updates = append(rec.Updates, SubrequestRecord{Attributes: encodeAttributes(env, set)})
	}
	if u.Where != nil {
		rec.Where = idxPtr(encodeClause(env, u.Where))
	}
	return appendRecord(env, rec)
}

func encodeAttributes(env *Envelope, attrs []query.Attribute) []uint32 {
	out := make([]uint32, len(attrs))
	for i, a := range attrs {
		out[i] = uint32(len(env.Attributes))
		env.Attributes = append(env.Attributes, AttributeRecord{
			PathNumbers:  a.Path.Numbers(),
			Kind:         uint8(a.Kind),
			BoolValue:    a.BoolValue,
			U32Value:     a.U32Value,
			I32Value:     a.I32Value,
			U64Value:     a.U64Value,
			I64Value:     a.I64Value,
			F32Value:     a.F32Value,
			F64Value:     a.F64Value,
			StringValue:  a.StringValue,
			MessageValue: a.MessageValue,
		})
	}
	return out
}

func appendRecord(env *Envelope, rec ClauseRecord) uint32 {
	idx := uint32(len(env.Clauses))
	env.Clauses = append(env.Clauses, rec)
	return idx
}

func idxPtr(i uint32) *uint32 { return &i }

// tableNumber assumes table is a root path (length 1), per §3's
// "root messages have a path of length one".
func tableNumber(p relation.Path) uint32 {
	n, _ := p.Front()
	return n
}

// Decode reconstructs one query.Clause per start point, recursively
// resolving operand indices. It fails with MalformedQueryEnvelope on
// out-of-range indices, unknown discriminators, or operator arity
// violations.
func Decode(env *Envelope) ([]query.Clause, error) {
	out := make([]query.Clause, len(env.StartPoints))
	for i, sp := range env.StartPoints {
		c, err := decodeIndex(env, sp)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func decodeIndex(env *Envelope, idx uint32) (query.Clause, error) {
	if int(idx) >= len(env.Clauses) {
		return nil, ormerr.New(ormerr.MalformedQueryEnvelope, "", "clause index %d out of range [0,%d)", idx, len(env.Clauses))
	}
	return decodeRecord(env, env.Clauses[idx])
}

func decodeRecord(env *Envelope, rec ClauseRecord) (query.Clause, error) {
	switch rec.Kind {
	case KString:
		return &query.StringClause{Value: rec.StringValue}, nil
	case KInt:
		return &query.IntClause{Value: rec.IntValue}, nil
	case KFloat:
		return &query.FloatClause{Value: rec.FloatValue}, nil
	case KBool:
		return &query.BoolClause{Value: rec.BoolValue}, nil
	case KAll:
		return &query.AllClause{}, nil
	case KDefault:
		return &query.DefaultClause{}, nil
	case KColumn:
		return &query.ColumnClause{Path: pathFromNumbers(rec.PathNumbers), Kind: query.ColumnKind(rec.ColumnKind)}, nil
	case KExpression:
		return decodeExpression(env, rec)
	case KSelect:
		return decodeSelect(env, rec)
	case KInsert:
		return decodeInsert(env, rec)
	case KUpdate:
		return decodeUpdateClause(env, rec)
	case KDelete:
		del := &query.DeleteClause{Table: relation.NewPathNumber(rec.Table)}
		if rec.Where != nil {
			w, err := decodeIndex(env, *rec.Where)
			if err != nil {
				return nil, err
			}
			del.Where = w
		}
		return del, nil
	case KTruncate:
		return &query.TruncateClause{Table: relation.NewPathNumber(rec.Table)}, nil
	case KStartTransaction:
		return &query.StartTransactionClause{ReadOnly: rec.ReadOnly}, nil
	case KCommitTransaction:
		return &query.CommitTransactionClause{}, nil
	case KRollbackTransaction:
		return &query.RollbackTransactionClause{}, nil
	default:
		return nil, ormerr.New(ormerr.MalformedQueryEnvelope, "", "unknown clause discriminator %d", rec.Kind)
	}
}

func decodeExpression(env *Envelope, rec ClauseRecord) (query.Clause, error) {
	op := query.Operator(rec.Operator)
	if !op.ValidArity(len(rec.Operands)) {
		return nil, ormerr.New(ormerr.MalformedQueryEnvelope, op.String(), "operator %s given %d operands", op, len(rec.Operands))
	}
	operands := make([]query.Clause, len(rec.Operands))
	for i, oi := range rec.Operands {
		o, err := decodeIndex(env, oi)
		if err != nil {
			return nil, err
		}
		operands[i] = o
	}
	return &query.ExpressionClause{Op: op, Operands: operands}, nil
}

func decodeSelect(env *Envelope, rec ClauseRecord) (query.Clause, error) {
	sel := &query.SelectClause{Table: relation.NewPathNumber(rec.Table)}
	for _, si := range rec.Selectors {
		c, err := decodeIndex(env, si)
		if err != nil {
			return nil, err
		}
		sel.Selectors = append(sel.Selectors, c)
	}
	for _, j := range rec.Joins {
		on, err := decodeIndex(env, j.On)
		if err != nil {
			return nil, err
		}
		sel.Joins = append(sel.Joins, query.Join{Table: relation.NewPathNumber(j.Table), Kind: query.JoinKind(j.Kind), On: on})
	}
	if rec.Where != nil {
		w, err := decodeIndex(env, *rec.Where)
		if err != nil {
			return nil, err
		}
		sel.Where = w
	}
	for _, gi := range rec.GroupBy {
		g, err := decodeIndex(env, gi)
		if err != nil {
			return nil, err
		}
		sel.GroupBy = append(sel.GroupBy, g)
	}
	if rec.Having != nil {
		h, err := decodeIndex(env, *rec.Having)
		if err != nil {
			return nil, err
		}
		sel.Having = h
	}
	for _, oi := range rec.OrderBy {
		o, err := decodeIndex(env, oi)
		if err != nil {
			return nil, err
		}
		sel.OrderBy = append(sel.OrderBy, o)
	}
	if rec.Limit != nil {
		l, err := decodeIndex(env, *rec.Limit)
		if err != nil {
			return nil, err
		}
		sel.Limit = l
	}
	return sel, nil
}

func decodeInsert(env *Envelope, rec ClauseRecord) (query.Clause, error) {
	ins := &query.InsertClause{Table: relation.NewPathNumber(rec.Table), UpdateIfExists: rec.UpdateIfExists}
	for _, row := range rec.Subrequests {
		attrs, err := decodeAttributes(env, row.Attributes)
		if err != nil {
			return nil, err
		}
		ins.Subrequests = append(ins.Subrequests, attrs)
	}
	return ins, nil
}

func decodeUpdateClause(env *Envelope, rec ClauseRecord) (query.Clause, error) {
	upd := &query.UpdateClause{Table: relation.NewPathNumber(rec.Table)}
	for _, set := range rec.Updates {
		attrs, err := decodeAttributes(env, set.Attributes)
		if err != nil {
			return nil, err
		}
		upd.Updates = append(upd.Updates, attrs)
	}
	if rec.Where != nil {
		w, err := decodeIndex(env, *rec.Where)
		if err != nil {
			return nil, err
		}
		upd.Where = w
	}
	return upd, nil
}

func decodeAttributes(env *Envelope, indices []uint32) ([]query.Attribute, error) {
	out := make([]query.Attribute, len(indices))
	for i, ai := range indices {
		if int(ai) >= len(env.Attributes) {
			return nil, ormerr.New(ormerr.MalformedQueryEnvelope, "", "attribute index %d out of range [0,%d)", ai, len(env.Attributes))
		}
		a := env.Attributes[ai]
		out[i] = query.Attribute{
			Path: pathFromNumbers(a.PathNumbers), Kind: query.AttributeKind(a.Kind),
			BoolValue: a.BoolValue, U32Value: a.U32Value, I32Value: a.I32Value,
			U64Value: a.U64Value, I64Value: a.I64Value, F32Value: a.F32Value, F64Value: a.F64Value,
			StringValue: a.StringValue, MessageValue: a.MessageValue,
		}
	}
	return out, nil
}

func pathFromNumbers(numbers []uint32) relation.Path {
	p := relation.NewPath()
	for _, n := range numbers {
		p = p.JoinNumber(n)
	}
	return p
}
