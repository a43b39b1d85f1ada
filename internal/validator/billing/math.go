package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"billkit/internal/domain"
)

// mathTolerance absorbs float rounding in client-side arithmetic.
var mathTolerance = decimal.RequireFromString("0.01")

// mathValidator compares a client-claimed amount against the recomputation.
type mathValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*Subject) []ValidationResult
}

func (v *mathValidator) RuleKey() string                     { return v.ruleKey }
func (v *mathValidator) RuleName() string                    { return v.ruleName }
func (v *mathValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleSumCheck }
func (v *mathValidator) Severity() domain.ValidationSeverity { return v.severity }
func (v *mathValidator) AppliesTo(domain.DocumentKind) bool  { return true }

func (v *mathValidator) Validate(_ context.Context, s *Subject) []ValidationResult {
	return v.validate(s)
}

func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(mathTolerance)
}

func mathResult(passed bool, fieldPath, expected, actual, ruleName string) ValidationResult {
	msg := fmt.Sprintf("%s: %s calculation matches", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s calculation mismatch (expected %s, got %s)", ruleName, fieldPath, expected, actual)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: actual, Message: msg,
	}
}

// claimCheck compares one claimed total; an unsent claim is skipped.
func claimCheck(fieldPath string, claimed decimal.NullDecimal, expected decimal.Decimal, ruleName string) []ValidationResult {
	if !claimed.Valid {
		return []ValidationResult{{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: expected.StringFixed(2),
			Message:       fmt.Sprintf("%s: %s not provided, skipping", ruleName, fieldPath),
		}}
	}
	passed := approxEqual(claimed.Decimal, expected)
	return []ValidationResult{mathResult(passed, fieldPath, expected.StringFixed(2), claimed.Decimal.StringFixed(2), ruleName)}
}

func totalRule(key, name, fieldPath string, claimed func(*Subject) decimal.NullDecimal, expected func(*Subject) decimal.Decimal) *mathValidator {
	return &mathValidator{
		ruleKey: key, ruleName: name,
		severity: domain.ValidationSeverityError,
		validate: func(s *Subject) []ValidationResult {
			return claimCheck(fieldPath, claimed(s), expected(s), name)
		},
	}
}

// MathValidators returns all arithmetic validators.
func MathValidators() []*mathValidator {
	return []*mathValidator{
		{
			ruleKey: "math.line_item.amount", ruleName: "Math: Line Item Amount",
			severity: domain.ValidationSeverityError,
			validate: func(s *Subject) []ValidationResult {
				items := s.Payload.Items
				results := make([]ValidationResult, 0, len(items))
				for i := range items {
					fp := fmt.Sprintf("items[%d].amount", i)
					var claimed decimal.NullDecimal
					if i < len(s.Payload.ClaimedAmounts) {
						claimed = s.Payload.ClaimedAmounts[i]
					}
					results = append(results, claimCheck(fp, claimed, items[i].Amount(), "Math: Line Item Amount")...)
				}
				return results
			},
		},
		totalRule("math.totals.subtotal", "Math: Subtotal", "totals.subtotal",
			func(s *Subject) decimal.NullDecimal { return s.Payload.Claimed.Subtotal },
			func(s *Subject) decimal.Decimal { return s.Recomputed.Subtotal }),
		totalRule("math.totals.cgst", "Math: CGST", "totals.cgst",
			func(s *Subject) decimal.NullDecimal { return s.Payload.Claimed.CGST },
			func(s *Subject) decimal.Decimal { return s.Recomputed.CGST }),
		totalRule("math.totals.sgst", "Math: SGST", "totals.sgst",
			func(s *Subject) decimal.NullDecimal { return s.Payload.Claimed.SGST },
			func(s *Subject) decimal.Decimal { return s.Recomputed.SGST }),
		totalRule("math.totals.igst", "Math: IGST", "totals.igst",
			func(s *Subject) decimal.NullDecimal { return s.Payload.Claimed.IGST },
			func(s *Subject) decimal.Decimal { return s.Recomputed.IGST }),
		totalRule("math.totals.grand_total", "Math: Grand Total", "totals.grandTotal",
			func(s *Subject) decimal.NullDecimal { return s.Payload.Claimed.GrandTotal },
			func(s *Subject) decimal.Decimal { return s.Recomputed.GrandTotal }),
		{
			ruleKey: "math.amount_in_words", ruleName: "Math: Amount In Words",
			severity: domain.ValidationSeverityWarning,
			validate: func(s *Subject) []ValidationResult {
				const name = "Math: Amount In Words"
				claimed := s.Payload.Claimed.AmountInWords
				expected := s.Recomputed.AmountInWords
				if claimed == "" {
					return []ValidationResult{{
						Passed: true, FieldPath: "amountInWords", ExpectedValue: expected,
						Message: fmt.Sprintf("%s: amountInWords not provided, skipping", name),
					}}
				}
				passed := claimed == expected
				msg := fmt.Sprintf("%s: amountInWords matches grand total", name)
				if !passed {
					msg = fmt.Sprintf("%s: amountInWords mismatch (expected %q, got %q)", name, expected, claimed)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "amountInWords",
					ExpectedValue: expected, ActualValue: claimed, Message: msg,
				}}
			},
		},
	}
}
