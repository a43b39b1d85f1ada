package billing

import (
	"context"
	"fmt"

	"billkit/internal/domain"
	"billkit/internal/totals"
)

// requiredFieldValidator checks that a required field is not empty.
type requiredFieldValidator struct {
	ruleKey     string
	ruleName    string
	fieldPath   string
	failMsg     string
	severity    domain.ValidationSeverity
	kinds       kindSet
	extract     func(*Subject) string
	perItem     bool // true for line-item level checks
	extractItem func(*totals.LineItem) string
}

func (v *requiredFieldValidator) RuleKey() string  { return v.ruleKey }
func (v *requiredFieldValidator) RuleName() string { return v.ruleName }
func (v *requiredFieldValidator) RuleType() domain.ValidationRuleType {
	return domain.ValidationRuleRequired
}
func (v *requiredFieldValidator) Severity() domain.ValidationSeverity { return v.severity }
func (v *requiredFieldValidator) AppliesTo(k domain.DocumentKind) bool {
	return v.kinds.has(k)
}

func (v *requiredFieldValidator) Validate(_ context.Context, s *Subject) []ValidationResult {
	if v.perItem {
		results := make([]ValidationResult, 0, len(s.Payload.Items))
		for i := range s.Payload.Items {
			val := v.extractItem(&s.Payload.Items[i])
			fieldPath := fmt.Sprintf("items[%d].%s", i, stripPrefix(v.fieldPath))
			results = append(results, ValidationResult{
				Passed:        val != "",
				FieldPath:     fieldPath,
				ExpectedValue: "non-empty value",
				ActualValue:   val,
				Message:       v.message(val != "", fieldPath),
			})
		}
		return results
	}

	val := v.extract(s)
	return []ValidationResult{{
		Passed:        val != "",
		FieldPath:     v.fieldPath,
		ExpectedValue: "non-empty value",
		ActualValue:   val,
		Message:       v.message(val != "", v.fieldPath),
	}}
}

func (v *requiredFieldValidator) message(passed bool, fieldPath string) string {
	if passed {
		return fmt.Sprintf("%s: %s is present", v.ruleName, fieldPath)
	}
	if v.failMsg != "" {
		return fmt.Sprintf("%s: %s", v.ruleName, v.failMsg)
	}
	return fmt.Sprintf("%s: %s is missing or empty", v.ruleName, fieldPath)
}

func stripPrefix(fieldPath string) string {
	// "items[i].description" → "description"
	for i := len(fieldPath) - 1; i >= 0; i-- {
		if fieldPath[i] == '.' {
			return fieldPath[i+1:]
		}
	}
	return fieldPath
}

// itemCountValidator requires at least one line item.
type itemCountValidator struct{}

func (itemCountValidator) RuleKey() string                     { return "req.items" }
func (itemCountValidator) RuleName() string                    { return "Required: Line Items" }
func (itemCountValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleRequired }
func (itemCountValidator) Severity() domain.ValidationSeverity { return domain.ValidationSeverityError }
func (itemCountValidator) AppliesTo(domain.DocumentKind) bool  { return true }

func (v itemCountValidator) Validate(_ context.Context, s *Subject) []ValidationResult {
	n := len(s.Payload.Items)
	msg := fmt.Sprintf("%s: %d line item(s) present", v.RuleName(), n)
	if n == 0 {
		msg = fmt.Sprintf("%s: Add at least one line item", v.RuleName())
	}
	return []ValidationResult{{
		Passed: n > 0, FieldPath: "items",
		ExpectedValue: "at least 1", ActualValue: fmt.Sprintf("%d", n), Message: msg,
	}}
}

// quantityValidator requires every line quantity to be greater than zero.
type quantityValidator struct{}

func (quantityValidator) RuleKey() string                     { return "req.line_item.quantity" }
func (quantityValidator) RuleName() string                    { return "Required: Line Item Quantity" }
func (quantityValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleRequired }
func (quantityValidator) Severity() domain.ValidationSeverity { return domain.ValidationSeverityError }
func (quantityValidator) AppliesTo(domain.DocumentKind) bool  { return true }

func (v quantityValidator) Validate(_ context.Context, s *Subject) []ValidationResult {
	results := make([]ValidationResult, 0, len(s.Payload.Items))
	for i := range s.Payload.Items {
		q := s.Payload.Items[i].Quantity()
		fp := fmt.Sprintf("items[%d].quantity", i)
		passed := q.IsPositive()
		msg := fmt.Sprintf("%s: %s is positive", v.RuleName(), fp)
		if !passed {
			msg = fmt.Sprintf("%s: Qty must be > 0", v.RuleName())
		}
		results = append(results, ValidationResult{
			Passed: passed, FieldPath: fp,
			ExpectedValue: "> 0", ActualValue: q.String(), Message: msg,
		})
	}
	return results
}

// RequiredFieldValidators returns all required field validators.
func RequiredFieldValidators() []*requiredFieldValidator {
	return []*requiredFieldValidator{
		{
			ruleKey: "req.number", ruleName: "Required: Document Number",
			fieldPath: "number", severity: domain.ValidationSeverityError,
			extract: func(s *Subject) string { return s.Payload.Number },
		},
		{
			ruleKey: "req.date", ruleName: "Required: Document Date",
			fieldPath: "date", failMsg: "Document date required",
			severity: domain.ValidationSeverityError,
			extract:  func(s *Subject) string { return s.Payload.Date },
		},
		{
			ruleKey: "req.billed_to.name", ruleName: "Required: Billed To Name",
			fieldPath: "billedTo.name", failMsg: "Billed to name required",
			severity: domain.ValidationSeverityError,
			extract:  func(s *Subject) string { return s.Payload.BilledTo.Name },
		},
		{
			ruleKey: "req.supplier.gstin", ruleName: "Required: Supplier GSTIN",
			fieldPath: "supplier.gstin", severity: domain.ValidationSeverityWarning,
			kinds:   kinds(domain.KindInvoice),
			extract: func(s *Subject) string { return s.Payload.Supplier.GSTIN },
		},
		{
			ruleKey: "req.line_item.description", ruleName: "Required: Line Item Service",
			fieldPath: "items[].description", failMsg: "Each item needs Services",
			severity: domain.ValidationSeverityError, perItem: true,
			extractItem: func(li *totals.LineItem) string { return li.Description },
		},
		{
			ruleKey: "req.line_item.tax_code", ruleName: "Required: Line Item SAC/HSN",
			fieldPath: "items[].taxCode", failMsg: "Each item needs SAC/HSN",
			severity: domain.ValidationSeverityError, perItem: true, kinds: itemizedKinds,
			extractItem: func(li *totals.LineItem) string { return li.TaxCode },
		},
		{
			ruleKey: "req.line_item.specification", ruleName: "Required: Line Item Specification",
			fieldPath: "items[].specification", failMsg: "Each item needs Specification",
			severity: domain.ValidationSeverityError, perItem: true, kinds: itemizedKinds,
			extractItem: func(li *totals.LineItem) string { return li.Specification },
		},
	}
}
