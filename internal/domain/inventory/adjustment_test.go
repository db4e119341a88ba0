//go:build unit

package inventory_test

import (
	"errors"
	"testing"

	"ticket-checkout/internal/domain/inventory"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	c := uuid.MustParse("00000000-0000-0000-0000-00000000000c")

	t.Run("重複イベントを合算しID順に並べる", func(t *testing.T) {
		got, err := inventory.Normalize([]inventory.Adjustment{
			{EventID: c, Quantity: 1},
			{EventID: a, Quantity: 2},
			{EventID: c, Quantity: 3},
			{EventID: b, Quantity: 1},
		})
		require.NoError(t, err)

		want := []inventory.Adjustment{
			{EventID: a, Quantity: 2},
			{EventID: b, Quantity: 1},
			{EventID: c, Quantity: 4},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("数量0以下はNG", func(t *testing.T) {
		_, err := inventory.Normalize([]inventory.Adjustment{{EventID: a, Quantity: 0}})
		assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)
	})

	t.Run("空入力はNG", func(t *testing.T) {
		_, err := inventory.Normalize(nil)
		assert.ErrorIs(t, err, inventory.ErrNoAdjustments)
	})
}

func TestOutcome(t *testing.T) {
	ok := inventory.LineResult{EventID: uuid.New(), Requested: 1, Status: inventory.LineApplied}
	short := inventory.LineResult{EventID: uuid.New(), Requested: 5, Status: inventory.LineInsufficient}
	missing := inventory.LineResult{EventID: uuid.New(), Requested: 1, Status: inventory.LineMissing}

	t.Run("全行適用ならエラーなし", func(t *testing.T) {
		o := inventory.Outcome{Lines: []inventory.LineResult{ok}}
		assert.True(t, o.Applied())
		assert.Empty(t, o.Shortfalls())
		assert.NoError(t, o.Err())
	})

	t.Run("在庫不足は ErrInsufficientInventory", func(t *testing.T) {
		o := inventory.Outcome{Lines: []inventory.LineResult{ok, short}}
		assert.False(t, o.Applied())
		assert.Equal(t, []inventory.LineResult{short}, o.Shortfalls())

		err := o.Err()
		assert.True(t, errors.Is(err, inventory.ErrInsufficientInventory))
		assert.False(t, errors.Is(err, inventory.ErrEventNotFound))

		var se *inventory.ShortfallError
		require.True(t, errors.As(err, &se))
		assert.Len(t, se.Lines, 1)
	})

	t.Run("未知のイベントは両方にマッチ", func(t *testing.T) {
		o := inventory.Outcome{Lines: []inventory.LineResult{missing}}
		err := o.Err()
		assert.True(t, errors.Is(err, inventory.ErrInsufficientInventory))
		assert.True(t, errors.Is(err, inventory.ErrEventNotFound))
	})
}
