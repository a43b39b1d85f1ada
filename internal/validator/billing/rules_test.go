package billing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billkit/internal/domain"
	"billkit/internal/validator/billing"
)

func TestAllBuiltinValidators_ValidInvoicePasses(t *testing.T) {
	ctx := context.Background()
	p := validPayload(t)
	s := subjectOf(p)
	lookup := billing.NewSACLookup(billing.DefaultSACCodes())

	for _, v := range billing.AllBuiltinValidators(lookup) {
		if !v.AppliesTo(p.Kind) {
			continue
		}
		for _, r := range v.Validate(ctx, s) {
			assert.True(t, r.Passed, "%s: %s", v.RuleKey(), r.Message)
		}
	}
}

func TestAllBuiltinValidators_UniqueKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range billing.AllBuiltinValidators(billing.NewSACLookup(billing.DefaultSACCodes())) {
		assert.False(t, seen[v.RuleKey()], "duplicate key %s", v.RuleKey())
		seen[v.RuleKey()] = true
		assert.NotEmpty(t, v.RuleName())
	}
	assert.Len(t, billing.AllBuiltinValidators(nil), len(seen)-2)
}

func TestRequired(t *testing.T) {
	ctx := context.Background()

	t.Run("missing_date_uses_form_message", func(t *testing.T) {
		for _, kind := range []domain.DocumentKind{domain.KindInvoice, domain.KindBill, domain.KindQuotation} {
			p := decode(t, validInvoiceJSON, kind)
			p.Date = ""
			results := findRule("req.date").Validate(ctx, subjectOf(p))
			require.Len(t, results, 1, kind)
			assert.False(t, results[0].Passed, kind)
			assert.Contains(t, results[0].Message, "Document date required", kind)
			assert.NotContains(t, results[0].Message, "Invoice", kind)
		}
	})

	t.Run("missing_billed_to", func(t *testing.T) {
		p := validPayload(t)
		p.BilledTo.Name = ""
		results := findRule("req.billed_to.name").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.Contains(t, results[0].Message, "Billed to name required")
	})

	t.Run("no_items", func(t *testing.T) {
		p := validPayload(t)
		p.Items = nil
		results := findRule("req.items").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Contains(t, results[0].Message, "Add at least one line item")
	})

	t.Run("per_item_field_paths", func(t *testing.T) {
		p := validPayload(t)
		p.Items[1].Specification = ""
		results := findRule("req.line_item.specification").Validate(ctx, subjectOf(p))
		require.Len(t, results, 2)
		assert.True(t, results[0].Passed)
		assert.False(t, results[1].Passed)
		assert.Equal(t, "items[1].specification", results[1].FieldPath)
		assert.Contains(t, results[1].Message, "Each item needs Specification")
	})

	t.Run("zero_quantity", func(t *testing.T) {
		p := validPayload(t)
		p.Items[0].SetQuantity(decimal.Zero)
		results := findRule("req.line_item.quantity").Validate(ctx, subjectOf(p))
		require.Len(t, results, 2)
		assert.False(t, results[0].Passed)
		assert.Contains(t, results[0].Message, "Qty must be > 0")
	})

	t.Run("quotation_needs_no_tax_code", func(t *testing.T) {
		assert.False(t, findRule("req.line_item.tax_code").AppliesTo(domain.KindQuotation))
		assert.True(t, findRule("req.line_item.tax_code").AppliesTo(domain.KindBill))
	})
}

func TestMath(t *testing.T) {
	ctx := context.Background()

	t.Run("line_amount_mismatch", func(t *testing.T) {
		p := validPayload(t)
		p.ClaimedAmounts[1] = claim("4400")
		results := failed(findRule("math.line_item.amount").Validate(ctx, subjectOf(p)))
		require.Len(t, results, 1)
		assert.Equal(t, "items[1].amount", results[0].FieldPath)
		assert.Equal(t, "4500.00", results[0].ExpectedValue)
		assert.Equal(t, "4400.00", results[0].ActualValue)
	})

	t.Run("within_tolerance", func(t *testing.T) {
		p := validPayload(t)
		p.Claimed.GrandTotal = claim("19470.01")
		results := findRule("math.totals.grand_total").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("grand_total_mismatch", func(t *testing.T) {
		p := validPayload(t)
		p.Claimed.GrandTotal = claim("19470.02")
		results := findRule("math.totals.grand_total").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Contains(t, results[0].Message, "mismatch (expected 19470.00, got 19470.02)")
	})

	t.Run("missing_claim_skipped", func(t *testing.T) {
		p := validPayload(t)
		p.Claimed.CGST.Valid = false
		results := findRule("math.totals.cgst").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
		assert.Contains(t, results[0].Message, "skipping")
	})

	t.Run("igst_for_inter_state", func(t *testing.T) {
		p := validPayload(t)
		p.PlaceOfSupply = "Delhi"
		results := findRule("math.totals.igst").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "2970.00", results[0].ExpectedValue)
	})

	t.Run("negative_claims_reported_as_sent", func(t *testing.T) {
		raw := strings.NewReplacer(
			`"qty": 1, "rate": 12000, "amount": 12000`, `"qty": -1, "rate": 10000, "amount": -10000`,
			`"cgst": 1485, "sgst": 1485`, `"cgst": -900, "sgst": -900`,
		).Replace(validInvoiceJSON)
		p := decode(t, raw, domain.KindQuotation)
		s := subjectOf(p)

		items := failed(findRule("math.line_item.amount").Validate(ctx, s))
		require.Len(t, items, 1)
		assert.Equal(t, "items[0].amount", items[0].FieldPath)
		assert.Equal(t, "0.00", items[0].ExpectedValue)
		assert.Equal(t, "-10000.00", items[0].ActualValue)

		for _, key := range []string{"math.totals.cgst", "math.totals.sgst"} {
			results := findRule(key).Validate(ctx, s)
			require.Len(t, results, 1, key)
			assert.False(t, results[0].Passed, key)
			assert.Equal(t, "-900.00", results[0].ActualValue, key)
		}
	})

	t.Run("amount_in_words", func(t *testing.T) {
		p := validPayload(t)
		p.Claimed.AmountInWords = "Nineteen Thousand Rupees Only"
		results := findRule("math.amount_in_words").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "Nineteen Thousand Four Hundred Seventy Rupees Only", results[0].ExpectedValue)
	})
}

func TestCrossField(t *testing.T) {
	ctx := context.Background()

	t.Run("both_tax_types_charged", func(t *testing.T) {
		p := validPayload(t)
		p.Claimed.IGST = claim("2970")
		results := findRule("xf.tax_type.exclusive").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
	})

	t.Run("intra_state_with_igst", func(t *testing.T) {
		p := validPayload(t)
		p.Claimed.CGST = claim("0")
		p.Claimed.SGST = claim("0")
		p.Claimed.IGST = claim("2970")
		results := findRule("xf.tax_type.jurisdiction").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Contains(t, results[0].Message, "within Uttarakhand")
	})

	t.Run("inter_state_with_split", func(t *testing.T) {
		p := validPayload(t)
		p.PlaceOfSupply = "Delhi"
		results := findRule("xf.tax_type.jurisdiction").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Contains(t, results[0].Message, "from Uttarakhand to Delhi")
	})

	t.Run("cgst_sgst_unequal", func(t *testing.T) {
		p := validPayload(t)
		p.Claimed.SGST = claim("1400")
		results := findRule("xf.tax_type.cgst_sgst_equal").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
	})

	t.Run("bill_with_tax", func(t *testing.T) {
		p := decode(t, validInvoiceJSON, domain.KindBill)
		v := findRule("xf.bill.no_tax")
		require.True(t, v.AppliesTo(domain.KindBill))
		assert.False(t, v.AppliesTo(domain.KindInvoice))
		results := v.Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.True(t, subjectOf(p).Recomputed.TotalTax().IsZero())
	})

	t.Run("bill_with_negative_tax", func(t *testing.T) {
		raw := strings.Replace(validInvoiceJSON,
			`"igst": 0, "cgst": 1485, "sgst": 1485`, `"igst": -50, "cgst": 0, "sgst": 0`, 1)
		p := decode(t, raw, domain.KindBill)
		results := findRule("xf.bill.no_tax").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
	})

	t.Run("gstin_pan_mismatch", func(t *testing.T) {
		p := validPayload(t)
		p.Supplier.PAN = "ZZZZZ9999Z"
		results := findRule("xf.supplier.gstin_pan").Validate(ctx, subjectOf(p))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "AAKCD5928M", results[0].ActualValue)
	})
}

func TestFormat(t *testing.T) {
	ctx := context.Background()
	p := validPayload(t)
	p.Supplier.GSTIN = "05aakcd5928m1z7"
	p.Date = "first of March"
	p.Bank.IFSC = ""

	assert.Len(t, failed(findRule("fmt.supplier.gstin").Validate(ctx, subjectOf(p))), 1)
	assert.Len(t, failed(findRule("fmt.date").Validate(ctx, subjectOf(p))), 1)
	assert.Empty(t, failed(findRule("fmt.bank.ifsc").Validate(ctx, subjectOf(p))))

	p.Date = "01/03/2024"
	assert.Empty(t, failed(findRule("fmt.date").Validate(ctx, subjectOf(p))))
}

func TestSAC(t *testing.T) {
	ctx := context.Background()

	t.Run("category_code_mismatch", func(t *testing.T) {
		p := validPayload(t)
		p.Items[0].TaxCode = "998912"
		results := failed(findRule("xf.line_item.sac_category").Validate(ctx, subjectOf(p)))
		require.Len(t, results, 1)
		assert.Equal(t, "998313", results[0].ExpectedValue)
	})

	t.Run("unknown_code", func(t *testing.T) {
		p := validPayload(t)
		p.Items[1].TaxCode = "123456"
		results := failed(findRule("logic.line_item.sac_exists").Validate(ctx, subjectOf(p)))
		require.Len(t, results, 1)
		assert.Equal(t, "items[1].taxCode", results[0].FieldPath)
	})
}

func TestSACLookup(t *testing.T) {
	l := billing.NewSACLookup(append(billing.DefaultSACCodes(), domain.SACCode{Category: "Graphics", Code: "998399"}))
	assert.Equal(t, 7, l.Len())
	code, ok := l.CodeFor("Graphics")
	assert.True(t, ok)
	assert.Equal(t, "998399", code)
	_, ok = l.CodeFor("graphics")
	assert.False(t, ok)
	assert.True(t, l.Exists("997212"))

	entries := l.Entries()
	require.Len(t, entries, 7)
	assert.Equal(t, "Digital Marketing", entries[0].Category)
}
