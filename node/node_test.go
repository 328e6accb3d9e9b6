package node

import (
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/rustkas/mini-ledger-go/common"
	"github.com/rustkas/mini-ledger-go/entry"
	"github.com/rustkas/mini-ledger-go/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLeaderConfig() LeaderConfig {
	cfg := DefaultLeaderConfig()
	cfg.TicksPerSlot = 3
	cfg.HashesPerTick = 2
	cfg.TickInterval = time.Millisecond
	return cfg
}

func driveTicks(l *Leader, n int) {
	for i := 0; i < n; i++ {
		l.AdvanceTickBoundary()
	}
}

func TestLeaderAirdropThenUnsignedTransferRejected(t *testing.T) {
	l := NewLeader(testLeaderConfig())

	var from common.PublicKey
	from[0] = 1
	require.NoError(t, l.Airdrop(from, uint256.NewInt(1000)))
	driveTicks(l, 3) // seal the slot carrying the airdrop mixin

	to := common.PublicKey{2}
	rh := l.PoH()
	transfer := &tx.Transfer{From: from, To: to, Amount: uint256.NewInt(10), RecentHash: rh}
	// No real keypair is wired here; the mint-funded balance check happens
	// downstream of signature verification, so a deliberately invalid
	// signature still exercises InvalidSignature precisely.
	err := l.Transfer(transfer)
	assert.ErrorIs(t, err, tx.ErrInvalidSignature)
}

func TestLeaderUnknownRecentHashRejected(t *testing.T) {
	l := NewLeader(testLeaderConfig())
	from := common.PublicKey{1}
	require.NoError(t, l.Airdrop(from, uint256.NewInt(100)))
	driveTicks(l, 3)

	transfer := &tx.Transfer{From: from, To: common.PublicKey{2}, Amount: uint256.NewInt(5), RecentHash: common.Hash{}}
	err := l.Transfer(transfer)
	assert.ErrorIs(t, err, tx.ErrUnknownRecentHash)
}

func TestValidatorIngestConvergesWithLeader(t *testing.T) {
	l := NewLeader(testLeaderConfig())

	mint := common.PublicKey{1}
	require.NoError(t, l.Airdrop(mint, uint256.NewInt(500)))
	driveTicks(l, 3)
	driveTicks(l, 3)
	driveTicks(l, 3)

	v := NewValidator(DefaultValidatorConfig())
	accepted, err := v.Ingest(l.Ledger())
	require.NoError(t, err)
	assert.Equal(t, len(l.Ledger()), accepted)

	leaderBank := l.Bank()
	validatorBank := v.Bank()
	for k, want := range leaderBank {
		got, ok := validatorBank[k]
		require.True(t, ok)
		assert.True(t, want.Eq(got))
	}
}

func TestValidatorIngestRejectsSlotGap(t *testing.T) {
	l := NewLeader(testLeaderConfig())
	driveTicks(l, 3)
	driveTicks(l, 3)
	driveTicks(l, 3)

	slots := l.Ledger()
	require.GreaterOrEqual(t, len(slots), 3)

	v := NewValidator(DefaultValidatorConfig())
	gapped := []*entry.Slot{slots[0], slots[2]}
	accepted, err := v.Ingest(gapped)
	require.Error(t, err)
	assert.Equal(t, 1, accepted)

	var mismatch *IngestMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "slot_gap", mismatch.Field)
	assert.EqualValues(t, 2, mismatch.Slot)
}

func TestValidatorIngestRejectsParentHashMismatch(t *testing.T) {
	l := NewLeader(testLeaderConfig())
	driveTicks(l, 3)
	driveTicks(l, 3)

	slots := l.Ledger()
	require.GreaterOrEqual(t, len(slots), 2)

	tampered := *slots[1]
	tampered.ParentHash = common.Sum256([]byte("not the real parent"))

	v := NewValidator(DefaultValidatorConfig())
	_, err := v.Ingest([]*entry.Slot{slots[0], &tampered})
	require.Error(t, err)

	var mismatch *IngestMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "parent_hash", mismatch.Field)
}
