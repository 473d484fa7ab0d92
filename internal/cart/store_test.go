package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price string, qty int) Item {
	return Item{ItemID: id, Name: "svc-" + id, Price: decimal.RequireFromString(price), Unit: "per item", Quantity: qty}
}

func TestAddItemMergesAndTotals(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddItem(item("1", "10.00", 2))
	s.AddItem(item("2", "5.00", 1))
	s.AddItem(item("1", "10.00", 2))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ItemID)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, "2", items[1].ItemID)
	assert.Equal(t, 5, s.Count())

	totals := ComputeTotals(items)
	assert.Equal(t, "45.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "4.50", totals.Tax.StringFixed(2))
	assert.Equal(t, "49.50", totals.Total.StringFixed(2))
}

func TestAddItemDefaultsQuantity(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddItem(item("a", "3.00", 0))
	s.AddItem(item("a", "3.00", 0))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddItem(item("a", "1.00", 1))
	s.AddItem(item("b", "2.00", 1))

	s.RemoveItem("a")
	s.RemoveItem("a")
	s.RemoveItem("missing")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ItemID)
}

func TestUpdateQuantityVerbatim(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddItem(item("a", "2.50", 3))

	s.UpdateQuantity("a", 0)
	assert.Equal(t, 0, s.Items()[0].Quantity)

	s.UpdateQuantity("a", -2)
	assert.Equal(t, -2, s.Items()[0].Quantity)

	s.UpdateQuantity("missing", 9)
	require.Len(t, s.Items(), 1)
}

func TestClearAndEmptyTotals(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddItem(item("a", "2.50", 3))
	s.Clear()
	s.Clear()

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Count())

	totals := ComputeTotals(s.Items())
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestTotalsRoundHalfUp(t *testing.T) {
	t.Parallel()

	// 0.05 * 0.10 = 0.005, which rounds up to 0.01.
	totals := ComputeTotals([]Item{item("a", "0.05", 1)})
	assert.Equal(t, "0.01", totals.Tax.StringFixed(2))
	assert.Equal(t, "0.06", totals.Total.StringFixed(2))
}

func TestItemsReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddItem(item("a", "1.00", 1))
	snap := s.Items()
	snap[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	t.Parallel()

	s := NewStore()
	var seen []int
	unsubscribe := s.Subscribe(func(items []Item) {
		seen = append(seen, len(items))
	})

	s.AddItem(item("a", "1.00", 1))
	s.AddItem(item("b", "1.00", 1))
	s.RemoveItem("missing")
	s.Clear()
	unsubscribe()
	s.AddItem(item("c", "1.00", 1))

	assert.Equal(t, []int{1, 2, 0}, seen)
}

func TestRemovePlacedKeepsLaterAdditions(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddItem(item("1", "10.00", 2))
	s.AddItem(item("2", "5.00", 1))
	placed := s.Items()

	s.AddItem(item("1", "10.00", 1))
	s.AddItem(item("3", "2.00", 1))
	s.RemovePlaced(placed)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ItemID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "3", items[1].ItemID)
}

func TestRemovePlacedEmptiesUnchangedCart(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddItem(item("1", "10.00", 2))
	var notified [][]Item
	unsub := s.Subscribe(func(items []Item) { notified = append(notified, items) })
	defer unsub()

	s.RemovePlaced(s.Items())

	assert.Empty(t, s.Items())
	require.Len(t, notified, 1)
	assert.Empty(t, notified[0])
}
