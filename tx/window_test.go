package tx

import (
	"testing"

	"github.com/rustkas/mini-ledger-go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashN(b byte) common.Hash {
	var h common.Hash
	h[0] = b
	return h
}

func TestWindowEvictsOldestPastCapacity(t *testing.T) {
	w := NewRecentHashWindow(2)

	_, evicted := w.Push(hashN(1))
	assert.False(t, evicted)
	_, evicted = w.Push(hashN(2))
	assert.False(t, evicted)

	evictedSeq, evicted := w.Push(hashN(3))
	require.True(t, evicted)
	assert.EqualValues(t, 0, evictedSeq)

	assert.False(t, w.Contains(hashN(1)))
	assert.True(t, w.Contains(hashN(2)))
	assert.True(t, w.Contains(hashN(3)))
	assert.Equal(t, 2, w.Len())
}

func TestSeenSignaturesEvictBySeq(t *testing.T) {
	w := NewRecentHashWindow(1)
	seen := NewSeenSignatures()

	w.Push(hashN(1))
	seq1, _ := w.SeqOf(hashN(1))
	seen.Add(common.Signature{1}, seq1)

	evictedSeq, evicted := w.Push(hashN(2))
	require.True(t, evicted)
	assert.Equal(t, seq1, evictedSeq)

	seen.EvictSeq(evictedSeq)
	assert.False(t, seen.Contains(common.Signature{1}))
}

func TestSeenSignaturesContains(t *testing.T) {
	seen := NewSeenSignatures()
	sig := common.Signature{42}
	assert.False(t, seen.Contains(sig))
	seen.Add(sig, 0)
	assert.True(t, seen.Contains(sig))
	assert.Equal(t, 1, seen.Len())
}
