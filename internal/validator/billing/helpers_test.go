package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"billkit/internal/document"
	"billkit/internal/domain"
	"billkit/internal/totals"
	"billkit/internal/validator/billing"
)

// validInvoiceJSON passes every built-in rule. Intra-state (Uttarakhand),
// subtotal 16500, CGST 1485, SGST 1485, grand total 19470.
const validInvoiceJSON = `{
	"header": {"panNo": "AAKCD5928M", "supplierGstin": "05AAKCD5928M1Z7"},
	"invoiceNo": "INV-0042",
	"dateOfInvoice": "2024-03-01",
	"placeOfSupply": "Uttarakhand",
	"billedTo": {"name": "Acme Retail", "address": "Dehradun"},
	"receiverGstin": "05ABCDE1234F1Z5",
	"items": [
		{"id": 1, "Services": "Graphics", "sacHsn": "998313", "specification": "Logo pack", "qty": 1, "rate": 12000, "amount": 12000},
		{"id": 2, "Services": "Printing", "sacHsn": "998912", "specification": "Flyers", "qty": 3, "rate": 1500, "amount": 4500}
	],
	"totals": {"subtotal": 16500, "igst": 0, "cgst": 1485, "sgst": 1485, "grandTotal": 19470},
	"amountInWords": "Nineteen Thousand Four Hundred Seventy Rupees Only",
	"bank": {"bankName": "State Bank", "accountNo": "1234567890", "ifsc": "SBIN0001234"}
}`

func decode(t *testing.T, raw string, kind domain.DocumentKind) *document.Payload {
	t.Helper()
	p, err := document.Decode([]byte(raw), kind)
	require.NoError(t, err)
	p.ApplyDefaults("Uttarakhand")
	return p
}

func validPayload(t *testing.T) *document.Payload {
	return decode(t, validInvoiceJSON, domain.KindInvoice)
}

func subjectOf(p *document.Payload) *billing.Subject {
	return billing.NewSubject(p, document.PolicyFor(p.Kind, totals.DefaultRatePercent))
}

func claim(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func findRule(key string) *billing.BuiltinValidator {
	lookup := billing.NewSACLookup(billing.DefaultSACCodes())
	for _, v := range billing.AllBuiltinValidators(lookup) {
		if v.RuleKey() == key {
			return v
		}
	}
	return nil
}

func failed(results []billing.ValidationResult) []billing.ValidationResult {
	var out []billing.ValidationResult
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
