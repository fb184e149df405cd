package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relormdb/relorm/relation"
)

func TestPathEqualityIgnoresNames(t *testing.T) {
	a := relation.NewPathNumber(1).JoinNumber(2)
	b := relation.PathFromNumbers([]uint32{1, 2})
	assert.True(t, a.Equal(b))
}

func TestPathAncestryAndOrdering(t *testing.T) {
	p := relation.NewPathNumber(1)
	q := p.JoinNumber(2)

	assert.True(t, p.IsAncestorOf(q))
	assert.True(t, p.Less(q))
	assert.NotEqual(t, p.Hash(), q.Hash())
	assert.True(t, p.IsParentOf(q))
	assert.True(t, q.IsChildOf(p))
}

func TestPathParentOfEmptyIsEmpty(t *testing.T) {
	assert.True(t, relation.NewPath().Parent().Empty())
}

func TestPathFrontBackErrorsOnEmpty(t *testing.T) {
	_, err := relation.NewPath().Front()
	require.Error(t, err)
	_, err = relation.NewPath().Back()
	require.Error(t, err)
}

func TestIncrementalHashMatchesWholePathHash(t *testing.T) {
	p := relation.PathFromNumbers([]uint32{3, 9, 27})

	var h uint64
	for _, n := range []uint32{3, 9, 27} {
		h = relation.FoldHash(h, n)
	}
	assert.Equal(t, p.Hash(), h)
}

func TestFormatRendersNumbersWithDelimiter(t *testing.T) {
	p := relation.PathFromNumbers([]uint32{1, 2})
	got := p.Format(relation.FormatOptions{Number: true, Name: false, Delimiter: "."})
	assert.Equal(t, "1.2", got)
}
