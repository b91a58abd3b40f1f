package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BFS_OrdersByDiscovery(t *testing.T) {
	h := BFS()
	assert.Less(t, h.Cost(Info{Sequence: 1}), h.Cost(Info{Sequence: 2}))
}

func Test_DFS_PrefersMostRecentlyDiscovered(t *testing.T) {
	h := DFS()
	assert.Less(t, h.Cost(Info{Sequence: 2}), h.Cost(Info{Sequence: 1}))
}

func Test_Time_UsesPathCost(t *testing.T) {
	h := Time()
	assert.Less(t, h.Cost(Info{PathCost: 1}), h.Cost(Info{PathCost: 5}))
}

func Test_PreferEnvironment_RanksEnvironmentFirst(t *testing.T) {
	h := PreferEnvironment()
	assert.Less(t, h.Cost(Info{EnvironmentIncoming: true}), h.Cost(Info{EnvironmentIncoming: false}))
}

func Test_Random_IsDeterministicForSameSeed(t *testing.T) {
	a := Random(42)
	b := Random(42)
	assert.Equal(t, a.Cost(Info{Sequence: 7}), b.Cost(Info{Sequence: 7}))

	c := Random(43)
	assert.NotEqual(t, a.Cost(Info{Sequence: 7}), c.Cost(Info{Sequence: 7}))
}

func Test_Composite_SumsWeightedTerms(t *testing.T) {
	h := Composite(
		Weighted{Weight: 2, H: NumCanonicalWords()},
		Weighted{Weight: 1, H: PreferEnvironment()},
	)
	got := h.Cost(Info{NumWords: 3, EnvironmentIncoming: false})
	assert.Equal(t, int64(2*3+1), got)
}
