package query

// Operator enumerates every SQL operator/function the expression
// clause can carry, per §4.6's rendering table.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow

	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte

	OpAnd
	OpOr
	OpNot

	OpLike
	OpIlike
	OpSimilarTo
	OpRegexpMatch

	OpIsNull
	OpIsNotNull
	OpBetween
	OpIn
	OpExists

	OpCount
	OpSum
	OpAvg
	OpMin
	OpMax

	OpAbs
	OpRound
	OpCeil
	OpFloor
	OpSqrt
	OpLog
	OpRandom
	OpSin
	OpCos
	OpTan

	OpConcat
	OpSubstring
	OpLower
	OpUpper
	OpLength
	OpTrim
	OpReplace
	OpLeft
	OpRight
	OpPosition
	OpSplitPart

	OpCase
	OpCoalesce
	OpGreatest
	OpLeast
)

var operatorNames = map[Operator]string{
	OpAdd: "add", OpSub: "subtract", OpMul: "multiply", OpDiv: "divide", OpMod: "modulo", OpPow: "power",
	OpEq: "equals", OpNeq: "not_equals", OpLt: "less_than", OpLte: "less_equal", OpGt: "greater_than", OpGte: "greater_equal",
	OpAnd: "and", OpOr: "or", OpNot: "not",
	OpLike: "like", OpIlike: "ilike", OpSimilarTo: "similar_to", OpRegexpMatch: "regexp_match",
	OpIsNull: "is_null", OpIsNotNull: "is_not_null", OpBetween: "between", OpIn: "in", OpExists: "exists",
	OpCount: "count", OpSum: "sum", OpAvg: "avg", OpMin: "min", OpMax: "max",
	OpAbs: "abs", OpRound: "round", OpCeil: "ceil", OpFloor: "floor", OpSqrt: "sqrt", OpLog: "log",
	OpRandom: "random", OpSin: "sin", OpCos: "cos", OpTan: "tan",
	OpConcat: "concat", OpSubstring: "substring", OpLower: "lower", OpUpper: "upper", OpLength: "length",
	OpTrim: "trim", OpReplace: "replace", OpLeft: "left", OpRight: "right", OpPosition: "position", OpSplitPart: "split_part",
	OpCase: "case", OpCoalesce: "coalesce", OpGreatest: "greatest", OpLeast: "least",
}

func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return "unknown_operator"
}

// arityRange describes an operator's valid operand-count range;
// Max == -1 means unbounded.
type arityRange struct{ Min, Max int }

var operatorArity = map[Operator]arityRange{
	OpAdd: {2, 2}, OpSub: {2, 2}, OpMul: {2, 2}, OpDiv: {2, 2}, OpMod: {2, 2}, OpPow: {2, 2},
	OpEq: {2, 2}, OpNeq: {2, 2}, OpLt: {2, 2}, OpLte: {2, 2}, OpGt: {2, 2}, OpGte: {2, 2},
	OpAnd: {2, 2}, OpOr: {2, 2}, OpNot: {1, 1},
	OpLike: {2, 2}, OpIlike: {2, 2}, OpSimilarTo: {2, 2}, OpRegexpMatch: {2, 2},
	OpIsNull: {1, 1}, OpIsNotNull: {1, 1}, OpBetween: {3, 3}, OpIn: {2, -1}, OpExists: {1, 1},
	OpCount: {1, 1}, OpSum: {1, 1}, OpAvg: {1, 1}, OpMin: {1, 1}, OpMax: {1, 1},
	OpAbs: {1, 1}, OpRound: {1, 2}, OpCeil: {1, 1}, OpFloor: {1, 1}, OpSqrt: {1, 1}, OpLog: {1, 2},
	OpRandom: {0, 0}, OpSin: {1, 1}, OpCos: {1, 1}, OpTan: {1, 1},
	OpConcat: {2, -1}, OpSubstring: {2, 3}, OpLower: {1, 1}, OpUpper: {1, 1}, OpLength: {1, 1},
	OpTrim: {1, 1}, OpReplace: {3, 3}, OpLeft: {2, 2}, OpRight: {2, 2}, OpPosition: {2, 2}, OpSplitPart: {3, 3},
	// OpCase's minimum is 3, not the 2 a bare when/then pair would
	// suggest: Operands[0] is reserved for the scrutinee slot (a real
	// expression, or a DefaultClause sentinel for the searched form),
	// so a flat operand list can always tell "has scrutinee, no ELSE"
	// apart from "no scrutinee, has ELSE" — both would otherwise
	// produce operand lists of the same length.
	OpCase: {3, -1}, OpCoalesce: {1, -1}, OpGreatest: {1, -1}, OpLeast: {1, -1},
}

// ValidArity reports whether n operands is an acceptable count for op.
// Shared by the wire codec (decode-time MalformedQueryEnvelope checks)
// and the SQL builder (emission-time InvalidArity checks), so both
// enforce the same contract from one table.
func (op Operator) ValidArity(n int) bool {
	r, ok := operatorArity[op]
	if !ok {
		return false
	}
	if n < r.Min {
		return false
	}
	return r.Max == -1 || n <= r.Max
}
