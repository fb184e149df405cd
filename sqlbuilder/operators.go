package sqlbuilder

import (
	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/ormerr"
	"github.com/relormdb/relorm/query"
)

// emitExpression renders one expression clause per §4.6's operator
// table. Arity is checked against the same table the wire codec uses
// (query.Operator.ValidArity) so both enforce one contract.
func (b *Builder) emitExpression(e *builderir.ExpressionClause) error {
	if !e.Op.ValidArity(len(e.Operands)) {
		return ormerr.New(ormerr.InvalidArity, e.Op.String(),
			"sqlbuilder: operator %s got %d operand(s)", e.Op, len(e.Operands))
	}

	b.push(kindExpression)
	defer b.pop()

	ops := e.Operands
	switch e.Op {
	case query.OpAdd:
		return b.emitBinary(ops, "+")
	case query.OpSub:
		return b.emitBinary(ops, "-")
	case query.OpMul:
		return b.emitBinary(ops, "*")
	case query.OpDiv:
		return b.emitBinary(ops, "/")
	case query.OpMod:
		return b.emitBinary(ops, "%")
	case query.OpPow:
		return b.emitCall("POWER", ops)
	case query.OpEq:
		return b.emitBinary(ops, "=")
	case query.OpNeq:
		return b.emitBinary(ops, "<>")
	case query.OpLt:
		return b.emitBinary(ops, "<")
	case query.OpLte:
		return b.emitBinary(ops, "<=")
	case query.OpGt:
		return b.emitBinary(ops, ">")
	case query.OpGte:
		return b.emitBinary(ops, ">=")
	case query.OpAnd:
		return b.emitBinary(ops, "AND")
	case query.OpOr:
		return b.emitBinary(ops, "OR")
	case query.OpNot:
		b.buf.WriteString("NOT ")
		return b.emit(ops[0])
	case query.OpLike:
		return b.emitBinary(ops, "LIKE")
	case query.OpIlike:
		return b.emitBinary(ops, "ILIKE")
	case query.OpSimilarTo:
		return b.emitBinary(ops, "SIMILAR TO")
	case query.OpRegexpMatch:
		return b.emitBinary(ops, "~")
	case query.OpIsNull:
		if err := b.emit(ops[0]); err != nil {
			return err
		}
		b.buf.WriteString(" IS NULL")
		return nil
	case query.OpIsNotNull:
		if err := b.emit(ops[0]); err != nil {
			return err
		}
		b.buf.WriteString(" IS NOT NULL")
		return nil
	case query.OpBetween:
		b.buf.WriteByte('(')
		if err := b.emit(ops[0]); err != nil {
			return err
		}
		b.buf.WriteString(" BETWEEN ")
		if err := b.emit(ops[1]); err != nil {
			return err
		}
		b.buf.WriteString(" AND ")
		if err := b.emit(ops[2]); err != nil {
			return err
		}
		b.buf.WriteByte(')')
		return nil
	case query.OpIn:
		if err := b.emit(ops[0]); err != nil {
			return err
		}
		b.buf.WriteString(" IN (")
		if err := b.emitList(ops[1:], ", "); err != nil {
			return err
		}
		b.buf.WriteByte(')')
		return nil
	case query.OpExists:
		b.buf.WriteString("EXISTS (")
		if err := b.emit(ops[0]); err != nil {
			return err
		}
		b.buf.WriteByte(')')
		return nil
	case query.OpCount:
		b.buf.WriteString("COUNT(")
		if _, ok := ops[0].(*builderir.AllClause); ok {
			b.buf.WriteByte('*')
		} else if err := b.emit(ops[0]); err != nil {
			return err
		}
		b.buf.WriteByte(')')
		return nil
	case query.OpSum:
		return b.emitCall("SUM", ops)
	case query.OpAvg:
		return b.emitCall("AVG", ops)
	case query.OpMin:
		return b.emitCall("MIN", ops)
	case query.OpMax:
		return b.emitCall("MAX", ops)
	case query.OpAbs:
		return b.emitCall("ABS", ops)
	case query.OpRound:
		return b.emitCall("ROUND", ops)
	case query.OpCeil:
		return b.emitCall("CEIL", ops)
	case query.OpFloor:
		return b.emitCall("FLOOR", ops)
	case query.OpSqrt:
		return b.emitCall("SQRT", ops)
	case query.OpLog:
		// the DSL stores Log(base, x) in that order already.
		return b.emitCall("LOG", ops)
	case query.OpRandom:
		b.buf.WriteString("RANDOM()")
		return nil
	case query.OpSin:
		return b.emitCall("SIN", ops)
	case query.OpCos:
		return b.emitCall("COS", ops)
	case query.OpTan:
		return b.emitCall("TAN", ops)
	case query.OpConcat:
		return b.emitJoined(ops, " || ")
	case query.OpSubstring:
		b.buf.WriteString("SUBSTRING(")
		if err := b.emit(ops[0]); err != nil {
			return err
		}
		b.buf.WriteString(" FROM ")
		if err := b.emit(ops[1]); err != nil {
			return err
		}
		if len(ops) == 3 {
			b.buf.WriteString(" FOR ")
			if err := b.emit(ops[2]); err != nil {
				return err
			}
		}
		b.buf.WriteByte(')')
		return nil
	case query.OpLower:
		return b.emitCall("LOWER", ops)
	case query.OpUpper:
		return b.emitCall("UPPER", ops)
	case query.OpLength:
		return b.emitCall("LENGTH", ops)
	case query.OpTrim:
		return b.emitCall("TRIM", ops)
	case query.OpReplace:
		return b.emitCall("REPLACE", ops)
	case query.OpLeft:
		return b.emitCall("LEFT", ops)
	case query.OpRight:
		return b.emitCall("RIGHT", ops)
	case query.OpPosition:
		b.buf.WriteString("POSITION(")
		if err := b.emit(ops[0]); err != nil {
			return err
		}
		b.buf.WriteString(" IN ")
		if err := b.emit(ops[1]); err != nil {
			return err
		}
		b.buf.WriteByte(')')
		return nil
	case query.OpSplitPart:
		return b.emitCall("SPLIT_PART", ops)
	case query.OpCase:
		return b.emitCase(ops)
	case query.OpCoalesce:
		return b.emitCall("COALESCE", ops)
	case query.OpGreatest:
		return b.emitCall("GREATEST", ops)
	case query.OpLeast:
		return b.emitCall("LEAST", ops)
	default:
		return ormerr.New(ormerr.UnknownOperator, e.Op.String(), "sqlbuilder: unhandled operator %s", e.Op)
	}
}

func (b *Builder) emitBinary(ops []builderir.Clause, sym string) error {
	b.buf.WriteByte('(')
	if err := b.emit(ops[0]); err != nil {
		return err
	}
	b.buf.WriteString(" ")
	b.buf.WriteString(sym)
	b.buf.WriteString(" ")
	if err := b.emit(ops[1]); err != nil {
		return err
	}
	b.buf.WriteByte(')')
	return nil
}

func (b *Builder) emitCall(name string, ops []builderir.Clause) error {
	b.buf.WriteString(name)
	b.buf.WriteByte('(')
	if err := b.emitList(ops, ", "); err != nil {
		return err
	}
	b.buf.WriteByte(')')
	return nil
}

func (b *Builder) emitJoined(ops []builderir.Clause, sep string) error {
	for i, o := range ops {
		if i > 0 {
			b.buf.WriteString(sep)
		}
		if err := b.emit(o); err != nil {
			return err
		}
	}
	return nil
}

// emitCase renders a CASE expression. ops[0] is always the scrutinee
// slot (a DefaultClause sentinel means "no scrutinee" — the searched
// form); the remainder is when/then pairs with an optional trailing
// ELSE, see query.CaseBuilder.build.
func (b *Builder) emitCase(ops []builderir.Clause) error {
	scrutinee := ops[0]
	rest := ops[1:]

	var elseVal builderir.Clause
	if len(rest)%2 == 1 {
		elseVal = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}

	b.buf.WriteString("CASE")
	if _, isSentinel := scrutinee.(*builderir.DefaultClause); !isSentinel {
		b.buf.WriteByte(' ')
		if err := b.emit(scrutinee); err != nil {
			return err
		}
	}
	for i := 0; i < len(rest); i += 2 {
		b.buf.WriteString(" WHEN ")
		if err := b.emit(rest[i]); err != nil {
			return err
		}
		b.buf.WriteString(" THEN ")
		if err := b.emit(rest[i+1]); err != nil {
			return err
		}
	}
	if elseVal != nil {
		b.buf.WriteString(" ELSE ")
		if err := b.emit(elseVal); err != nil {
			return err
		}
	}
	b.buf.WriteString(" END")
	return nil
}
