package totals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billkit/internal/totals"
)

func TestSheet_RecomputesOnEveryMutation(t *testing.T) {
	s := totals.NewSheet(totals.DefaultPolicy(), totals.Jurisdiction{SupplierState: home, PlaceOfSupply: home})
	assert.True(t, s.Totals().GrandTotal.IsZero())

	first := s.Add(item("", "1", "10000"))
	require.NotEmpty(t, first)
	assert.Equal(t, "11800.00", s.Totals().GrandTotal.StringFixed(2))
	assert.Equal(t, "900.00", s.Totals().CGST.StringFixed(2))

	second := s.Add(item("row-2", "2", "3250"))
	assert.Equal(t, "row-2", second)
	assert.Equal(t, "16500.00", s.Totals().Subtotal.StringFixed(2))

	require.NoError(t, s.Update(second, d("0"), d("3250")))
	assert.Equal(t, "10000.00", s.Totals().Subtotal.StringFixed(2))

	s.SetJurisdiction(totals.Jurisdiction{SupplierState: home, PlaceOfSupply: "Delhi"})
	assert.Equal(t, "1800.00", s.Totals().IGST.StringFixed(2))
	assert.True(t, s.Totals().CGST.IsZero())

	require.NoError(t, s.Remove(first))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Totals().GrandTotal.IsZero())
	assert.Equal(t, "Zero Rupees Only", s.Totals().AmountInWords)
}

func TestSheet_UnknownRow(t *testing.T) {
	s := totals.NewSheet(totals.DefaultPolicy(), totals.Jurisdiction{})
	assert.ErrorIs(t, s.Update("missing", d("1"), d("1")), totals.ErrLineItemNotFound)
	assert.ErrorIs(t, s.Remove("missing"), totals.ErrLineItemNotFound)
}

func TestSheet_ItemsIsACopy(t *testing.T) {
	s := totals.NewSheet(totals.DefaultPolicy(), totals.Jurisdiction{})
	id := s.Add(item("a", "1", "100"))
	items := s.Items()
	items[0].SetQuantity(d("50"))
	assert.Equal(t, "118.00", s.Totals().GrandTotal.StringFixed(2))
	require.NoError(t, s.Update(id, d("2"), d("100")))
	assert.Equal(t, "236.00", s.Totals().GrandTotal.StringFixed(2))
}

func TestSheet_DuplicateIDGetsNewOne(t *testing.T) {
	s := totals.NewSheet(totals.DefaultPolicy(), totals.Jurisdiction{SupplierState: home, PlaceOfSupply: home})
	first := s.Add(item("row", "1", "100"))
	second := s.Add(item("row", "2", "100"))

	assert.Equal(t, "row", first)
	assert.NotEqual(t, first, second)
	require.NoError(t, s.Remove(second))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "100.00", s.Totals().Subtotal.StringFixed(2))

	require.NoError(t, s.Update(first, d("3"), d("100")))
	assert.Equal(t, "300.00", s.Totals().Subtotal.StringFixed(2))
}
