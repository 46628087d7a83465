package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainRanks(t *testing.T) {
	points := TopToBottom(
		[]string{"a", "b", "c"},
		[]Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}},
	)
	require.Len(t, points, 3)
	assert.Equal(t, 0.0, points["a"].Y)
	assert.Equal(t, NodeHeight+RankSep, points["b"].Y)
	assert.Equal(t, 2*(NodeHeight+RankSep), points["c"].Y)
}

func TestRowIsCentered(t *testing.T) {
	points := TopToBottom([]string{"a", "b"}, nil)
	// Two siblings in rank 0: row width 2*220+55 = 495, centered on x=0.
	assert.Equal(t, -247.5, points["a"].X)
	assert.Equal(t, 27.5, points["b"].X)
	assert.Equal(t, points["a"].Y, points["b"].Y)
}

func TestDeterministic(t *testing.T) {
	nodes := []string{"a", "b", "c", "d"}
	edges := []Edge{
		{Source: "a", Target: "c"},
		{Source: "b", Target: "c"},
		{Source: "c", Target: "d"},
	}
	first := TopToBottom(nodes, edges)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, TopToBottom(nodes, edges))
	}
}

func TestSelfEdgeIgnored(t *testing.T) {
	points := TopToBottom([]string{"a"}, []Edge{{Source: "a", Target: "a"}})
	assert.Equal(t, 0.0, points["a"].Y)
}

func TestCycleTerminates(t *testing.T) {
	points := TopToBottom(
		[]string{"a", "b"},
		[]Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "a"}},
	)
	require.Len(t, points, 2)
	// One of the two still sits below the other.
	assert.NotEqual(t, points["a"].Y, points["b"].Y)
}

func TestUnknownEndpointSkipped(t *testing.T) {
	points := TopToBottom([]string{"a"}, []Edge{{Source: "a", Target: "ghost"}})
	require.Len(t, points, 1)
	assert.Equal(t, 0.0, points["a"].Y)
}
