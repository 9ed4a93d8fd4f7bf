package ledger_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestLedger(t *testing.T) (*ledger.Ledger, *memory.Store) {
	t.Helper()
	blobs := memory.New()
	return ledger.New(context.Background(), blobs, quietLogger()), blobs
}

// failingStore rejects every write. Reads behave like an empty store.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (failingStore) Put(context.Context, string, []byte) error {
	return errors.New("disk quota exceeded")
}

// =============================================================================
// MUTATION TESTS
// =============================================================================

func TestApplyEvent_InboundSum(t *testing.T) {
	// GIVEN: A fresh product
	// WHEN: A sequence of INBOUND events q1..qn is applied
	// THEN: totalStock == sum(qi) and damagedStock == 0

	led, _ := newTestLedger(t)
	ctx := context.Background()

	for _, q := range []int{10, 20, 5} {
		_, _, err := led.ApplyEvent(ctx, "n1-400", q, ledger.KindInbound)
		require.NoError(t, err)
	}

	p, ok := led.Product("n1-400")
	require.True(t, ok)
	assert.Equal(t, 35, p.TotalStock)
	assert.Equal(t, 0, p.DamagedStock)
	assert.Equal(t, 35, p.CleanStock())
}

func TestApplyEvent_WorkedScenario(t *testing.T) {
	// The end-to-end scenario over catalog product n1-400 (price 15.50):
	// INBOUND 50, DAMAGED 5, OUTBOUND 45, then OUTBOUND 1 rejected.

	led, _ := newTestLedger(t)
	ctx := context.Background()

	p, _, err := led.ApplyEvent(ctx, "n1-400", 50, ledger.KindInbound)
	require.NoError(t, err)
	assert.Equal(t, 50, p.TotalStock)
	assert.Equal(t, 0, p.DamagedStock)
	assert.Equal(t, 50, p.CleanStock())

	p, _, err = led.ApplyEvent(ctx, "n1-400", 5, ledger.KindDamaged)
	require.NoError(t, err)
	assert.Equal(t, 50, p.TotalStock)
	assert.Equal(t, 5, p.DamagedStock)
	assert.Equal(t, 45, p.CleanStock())
	assert.True(t, p.CleanValue().Equal(decimal.RequireFromString("697.50")),
		"clean value should be 45 * 15.50 = 697.50, got %s", p.CleanValue())

	// 45 <= clean stock of 45: accepted
	require.NoError(t, led.ValidateAction("n1-400", 45, ledger.KindOutbound))
	p, _, err = led.ApplyEvent(ctx, "n1-400", 45, ledger.KindOutbound)
	require.NoError(t, err)
	assert.Equal(t, 5, p.TotalStock)
	assert.Equal(t, 5, p.DamagedStock)
	assert.Equal(t, 0, p.CleanStock())

	// clean stock is now 0: one more unit out is rejected before any change
	err = led.ValidateAction("n1-400", 1, ledger.KindOutbound)
	assert.ErrorIs(t, err, ledger.ErrInsufficientCleanStock)

	p, _ = led.Product("n1-400")
	assert.Equal(t, 5, p.TotalStock, "rejected action must not change state")
	assert.Len(t, led.Events(), 3, "rejected action must not append an event")
}

func TestApplyEvent_UnknownProduct_Rejected(t *testing.T) {
	// GIVEN: A product id not in the catalog
	// WHEN: A mutation is requested for it
	// THEN: ErrProductNotFound, no event recorded

	led, _ := newTestLedger(t)

	_, _, err := led.ApplyEvent(context.Background(), "no-such-id", 10, ledger.KindInbound)
	assert.ErrorIs(t, err, ledger.ErrProductNotFound)
	assert.Empty(t, led.Events())
}

func TestApplyEvent_NoBoundsChecking(t *testing.T) {
	// The ledger itself enforces no floor: an outbound on an empty product
	// goes negative. Callers are expected to run ValidateAction first.

	led, _ := newTestLedger(t)

	p, _, err := led.ApplyEvent(context.Background(), "plus", 10, ledger.KindOutbound)
	require.NoError(t, err)
	assert.Equal(t, -10, p.TotalStock)
}

func TestApplyEvent_AppendsToFront(t *testing.T) {
	// Storage order is most-recent-first.

	led, _ := newTestLedger(t)
	ctx := context.Background()

	_, first, err := led.ApplyEvent(ctx, "ar1", 10, ledger.KindInbound)
	require.NoError(t, err)
	_, second, err := led.ApplyEvent(ctx, "ar1", 3, ledger.KindDamaged)
	require.NoError(t, err)

	events := led.Events()
	require.Len(t, events, 2)
	assert.Equal(t, second.ID, events[0].ID)
	assert.Equal(t, first.ID, events[1].ID)
	assert.Equal(t, "Novalac AR1", events[0].ProductName, "event carries a name snapshot")
}

func TestApplyEvent_SaveFailureKeepsMemoryState(t *testing.T) {
	// GIVEN: A blob store that rejects every write
	// WHEN: A mutation is applied
	// THEN: No error surfaces and the in-memory state stands

	led := ledger.New(context.Background(), failingStore{}, quietLogger())

	p, _, err := led.ApplyEvent(context.Background(), "it1", 25, ledger.KindInbound)
	require.NoError(t, err, "persistence failures are logged, never surfaced")
	assert.Equal(t, 25, p.TotalStock)
	assert.Len(t, led.Events(), 1)
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidateAction(t *testing.T) {
	led, _ := newTestLedger(t)
	ctx := context.Background()

	_, _, err := led.ApplyEvent(ctx, "n2-400", 10, ledger.KindInbound)
	require.NoError(t, err)
	_, _, err = led.ApplyEvent(ctx, "n2-400", 4, ledger.KindDamaged)
	require.NoError(t, err)
	// clean stock is now 6

	tests := []struct {
		name      string
		productID string
		quantity  int
		kind      ledger.EventKind
		wantErr   error
	}{
		{"zero quantity", "n2-400", 0, ledger.KindInbound, ledger.ErrInvalidQuantity},
		{"negative quantity", "n2-400", -3, ledger.KindOutbound, ledger.ErrInvalidQuantity},
		{"unknown product", "ghost", 1, ledger.KindInbound, ledger.ErrProductNotFound},
		{"inbound ignores stock level", "n2-400", 1000, ledger.KindInbound, nil},
		{"outbound within clean stock", "n2-400", 6, ledger.KindOutbound, nil},
		{"outbound exceeds clean stock", "n2-400", 7, ledger.KindOutbound, ledger.ErrInsufficientCleanStock},
		{"damaged exceeds clean stock", "n2-400", 7, ledger.KindDamaged, ledger.ErrInsufficientCleanStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := led.ValidateAction(tt.productID, tt.quantity, tt.kind)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAction_ShortageDetails(t *testing.T) {
	led, _ := newTestLedger(t)

	_, _, err := led.ApplyEvent(context.Background(), "aminova", 5, ledger.KindInbound)
	require.NoError(t, err)

	err = led.ValidateAction("aminova", 8, ledger.KindOutbound)
	var short *ledger.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 5, short.Available)
	assert.Equal(t, 8, short.Requested)
}
