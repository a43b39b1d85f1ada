package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"billkit/internal/domain"
)

var taxedKinds = kinds(domain.KindInvoice, domain.KindQuotation)

// crossFieldValidator checks relationships between different fields.
type crossFieldValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	kinds    kindSet
	validate func(*Subject) []ValidationResult
}

func (v *crossFieldValidator) RuleKey() string                      { return v.ruleKey }
func (v *crossFieldValidator) RuleName() string                     { return v.ruleName }
func (v *crossFieldValidator) RuleType() domain.ValidationRuleType  { return domain.ValidationRuleCrossField }
func (v *crossFieldValidator) Severity() domain.ValidationSeverity  { return v.severity }
func (v *crossFieldValidator) AppliesTo(k domain.DocumentKind) bool { return v.kinds.has(k) }

func (v *crossFieldValidator) Validate(_ context.Context, s *Subject) []ValidationResult {
	return v.validate(s)
}

// charged reports whether a claimed tax is non-zero. Negative claims count.
func charged(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.Abs().GreaterThan(mathTolerance)
}

// CrossFieldValidators returns all cross-field validators.
func CrossFieldValidators() []*crossFieldValidator {
	return []*crossFieldValidator{
		{
			ruleKey: "xf.tax_type.exclusive", ruleName: "Cross-field: CGST/SGST and IGST Exclusive",
			severity: domain.ValidationSeverityError, kinds: taxedKinds,
			validate: func(s *Subject) []ValidationResult {
				c := s.Payload.Claimed
				splitUsed := charged(c.CGST) || charged(c.SGST)
				passed := !(splitUsed && charged(c.IGST))
				msg := "Cross-field: CGST/SGST and IGST Exclusive: only one tax type is charged"
				if !passed {
					msg = "Cross-field: CGST/SGST and IGST Exclusive: both CGST/SGST and IGST are charged"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "totals",
					ExpectedValue: "CGST+SGST or IGST", ActualValue: claimedTaxes(s), Message: msg,
				}}
			},
		},
		{
			ruleKey: "xf.tax_type.jurisdiction", ruleName: "Cross-field: Tax Type Matches Place of Supply",
			severity: domain.ValidationSeverityError, kinds: taxedKinds,
			validate: func(s *Subject) []ValidationResult {
				const name = "Cross-field: Tax Type Matches Place of Supply"
				j := s.Payload.Jurisdiction()
				c := s.Payload.Claimed
				if s.Policy.IsIntraState(j) {
					passed := !charged(c.IGST)
					msg := fmt.Sprintf("%s: same-state supply uses CGST+SGST", name)
					if !passed {
						msg = fmt.Sprintf("%s: should use CGST+SGST (not IGST) for supply within %s", name, j.SupplierState)
					}
					return []ValidationResult{{
						Passed: passed, FieldPath: "totals.igst",
						ExpectedValue: "0.00", ActualValue: c.IGST.Decimal.StringFixed(2), Message: msg,
					}}
				}
				passed := !charged(c.CGST) && !charged(c.SGST)
				msg := fmt.Sprintf("%s: inter-state supply uses IGST", name)
				if !passed {
					msg = fmt.Sprintf("%s: should use IGST (not CGST+SGST) for supply from %s to %s", name, j.SupplierState, j.PlaceOfSupply)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "totals.cgst",
					ExpectedValue: "0.00", ActualValue: claimedTaxes(s), Message: msg,
				}}
			},
		},
		{
			ruleKey: "xf.tax_type.cgst_sgst_equal", ruleName: "Cross-field: CGST Equals SGST",
			severity: domain.ValidationSeverityError, kinds: taxedKinds,
			validate: func(s *Subject) []ValidationResult {
				c := s.Payload.Claimed
				if !c.CGST.Valid || !c.SGST.Valid {
					return []ValidationResult{{
						Passed: true, FieldPath: "totals.sgst",
						Message: "Cross-field: CGST Equals SGST: fields missing, skipping",
					}}
				}
				passed := approxEqual(c.CGST.Decimal, c.SGST.Decimal)
				msg := "Cross-field: CGST Equals SGST: halves match"
				if !passed {
					msg = fmt.Sprintf("Cross-field: CGST Equals SGST: CGST %s differs from SGST %s",
						c.CGST.Decimal.StringFixed(2), c.SGST.Decimal.StringFixed(2))
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "totals.sgst",
					ExpectedValue: c.CGST.Decimal.StringFixed(2), ActualValue: c.SGST.Decimal.StringFixed(2), Message: msg,
				}}
			},
		},
		{
			ruleKey: "xf.bill.no_tax", ruleName: "Cross-field: Bill Carries No GST",
			severity: domain.ValidationSeverityError, kinds: kinds(domain.KindBill),
			validate: func(s *Subject) []ValidationResult {
				c := s.Payload.Claimed
				passed := !charged(c.CGST) && !charged(c.SGST) && !charged(c.IGST)
				msg := "Cross-field: Bill Carries No GST: no tax charged"
				if !passed {
					msg = "Cross-field: Bill Carries No GST: GST-exempt bill charges tax"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "totals",
					ExpectedValue: "no tax", ActualValue: claimedTaxes(s), Message: msg,
				}}
			},
		},
		{
			ruleKey: "xf.supplier.gstin_pan", ruleName: "Cross-field: Supplier GSTIN-PAN Match",
			severity: domain.ValidationSeverityError,
			validate: func(s *Subject) []ValidationResult {
				return gstinPANCheck("supplier", s.Payload.Supplier.GSTIN, s.Payload.Supplier.PAN)
			},
		},
	}
}

func claimedTaxes(s *Subject) string {
	c := s.Payload.Claimed
	return fmt.Sprintf("cgst=%s sgst=%s igst=%s",
		c.CGST.Decimal.StringFixed(2), c.SGST.Decimal.StringFixed(2), c.IGST.Decimal.StringFixed(2))
}

func gstinPANCheck(party, gstin, pan string) []ValidationResult {
	fieldPath := fmt.Sprintf("%s.gstin", party)
	if gstin == "" || pan == "" {
		return []ValidationResult{{
			Passed: true, FieldPath: fieldPath,
			Message: fmt.Sprintf("Cross-field: %s GSTIN-PAN Match: fields missing, skipping", party),
		}}
	}
	if len(gstin) < 12 {
		return []ValidationResult{{
			Passed: false, FieldPath: fieldPath,
			ExpectedValue: fmt.Sprintf("GSTIN[2:12] == %s", pan),
			ActualValue:   gstin,
			Message:       fmt.Sprintf("Cross-field: %s GSTIN-PAN Match: GSTIN too short", party),
		}}
	}
	gstinPAN := gstin[2:12]
	passed := gstinPAN == pan
	msg := fmt.Sprintf("Cross-field: %s GSTIN-PAN Match: GSTIN contains matching PAN", party)
	if !passed {
		msg = fmt.Sprintf("Cross-field: %s GSTIN-PAN Match: GSTIN[2:12] %s does not match PAN %s", party, gstinPAN, pan)
	}
	return []ValidationResult{{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: fmt.Sprintf("GSTIN[2:12] == %s", pan),
		ActualValue:   gstinPAN, Message: msg,
	}}
}
