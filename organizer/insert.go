package organizer

import (
	"strconv"
	"strings"

	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
)

// keyOf renders a path's numeric sequence as a map key, local to the
// organizer's column-widening bookkeeping.
func keyOf(p relation.Path) string {
	numbers := p.Numbers()
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(parts, ",")
}

// OrganizeInsert implements §4.5's INSERT rule: the union of distinct
// attribute paths across subrequests becomes the column list, in
// first-appearance order; each row is widened to that column count
// with Default fillers, and earlier rows are retroactively widened
// when a later subrequest introduces a new column.
func (o *Organizer) OrganizeInsert(ins *query.InsertClause) (*builderir.InsertClause, error) {
	if _, err := o.reg.GetRootMessage(ins.Table); err != nil {
		return nil, err
	}

	var columnOrder []relation.Path
	colIndex := map[string]int{}
	var rows [][]builderir.Clause

	for _, subreq := range ins.Subrequests {
		row := make([]builderir.Clause, len(columnOrder))
		for i := range row {
			row[i] = &builderir.DefaultClause{}
		}

		for _, attr := range subreq {
			key := keyOf(attr.Path)
			idx, ok := colIndex[key]
			if !ok {
				idx = len(columnOrder)
				columnOrder = append(columnOrder, attr.Path)
				colIndex[key] = idx
				for r := range rows {
					rows[r] = append(rows[r], &builderir.DefaultClause{})
				}
				row = append(row, &builderir.DefaultClause{})
			}
			lit, err := o.attributeLiteral(attr)
			if err != nil {
				return nil, err
			}
			row[idx] = lit
		}
		rows = append(rows, row)
	}

	selectors := make([]builderir.Clause, len(columnOrder))
	for i, p := range columnOrder {
		col, err := o.transformColumn(&query.ColumnClause{Path: p, Kind: query.ColumnSimple})
		if err != nil {
			return nil, err
		}
		selectors[i] = col
	}

	result := &builderir.InsertClause{
		Table: ins.Table, Selectors: selectors, Values: rows, UpdateIfExists: ins.UpdateIfExists,
	}

	if ins.UpdateIfExists {
		if err := o.addConflictClause(result, ins.Table, selectors); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// addConflictClause resolves the root table's primary-key columns as
// the ON CONFLICT target and builds the `col = EXCLUDED.col` do-update
// set — the fix SPEC_FULL.md's supplemented feature applies to the
// source's invalid target-less `ON CONFLICT DO UPDATE`.
func (o *Organizer) addConflictClause(ins *builderir.InsertClause, table relation.Path, selectors []builderir.Clause) error {
	tableInfo, err := o.reg.GetParentTable(table)
	if err != nil {
		return err
	}
	for _, pk := range tableInfo.PrimaryKeys {
		col, err := o.transformColumn(&query.ColumnClause{Path: pk, Kind: query.ColumnSimple})
		if err != nil {
			return err
		}
		col.Key = builderir.KeyPrimary
		ins.ConflictTarget = append(ins.ConflictTarget, col)
	}
	for _, sel := range selectors {
		col := sel.(*builderir.ColumnClause)
		excluded := &builderir.ColumnClause{TablePath: col.TablePath, FieldPath: col.FieldPath, Key: col.Key, Kind: query.ColumnExcluded}
		ins.DoUpdate = append(ins.DoUpdate, builderir.Assignment{Column: sel, Value: excluded})
	}
	return nil
}

// attributeLiteral maps one Attribute's tagged value to a builder-IR
// literal clause, §4.5 point 3. Opaque message payloads always map to
// Default: the CORE never serializes nested messages into INSERT
// values.
func (o *Organizer) attributeLiteral(a query.Attribute) (builderir.Clause, error) {
	switch a.Kind {
	case query.AttrBool:
		return &builderir.BoolClause{Value: a.BoolValue}, nil
	case query.AttrU32:
		return &builderir.IntClause{Value: int64(a.U32Value)}, nil
	case query.AttrI32:
		return &builderir.IntClause{Value: int64(a.I32Value)}, nil
	case query.AttrU64:
		return &builderir.IntClause{Value: int64(a.U64Value)}, nil
	case query.AttrI64:
		return &builderir.IntClause{Value: a.I64Value}, nil
	case query.AttrF32:
		return &builderir.FloatClause{Value: float64(a.F32Value)}, nil
	case query.AttrF64:
		return &builderir.FloatClause{Value: a.F64Value}, nil
	case query.AttrString:
		return &builderir.StringClause{Value: a.StringValue}, nil
	case query.AttrMessage:
		return &builderir.DefaultClause{}, nil
	default:
		return &builderir.DefaultClause{}, nil
	}
}
