package billing

import (
	"context"
	"fmt"

	"billkit/internal/domain"
)

// SACValidators returns validators that check line tax codes against the SAC
// catalog. The lookup is captured by closure.
func SACValidators(lookup *SACLookup) []*BuiltinValidator {
	return []*BuiltinValidator{
		{
			key:      "xf.line_item.sac_category",
			name:     "Cross-field: SAC Code Matches Service Category",
			ruleType: domain.ValidationRuleCrossField,
			sev:      domain.ValidationSeverityWarning,
			kinds:    itemizedKinds,
			fn:       sacCategoryValidator(lookup),
		},
		{
			key:      "logic.line_item.sac_exists",
			name:     "Logical: SAC Code Exists in Catalog",
			ruleType: domain.ValidationRuleCustom,
			sev:      domain.ValidationSeverityWarning,
			kinds:    itemizedKinds,
			fn:       sacExistsValidator(lookup),
		},
	}
}

func sacCategoryValidator(lookup *SACLookup) func(context.Context, *Subject) []ValidationResult {
	return func(_ context.Context, s *Subject) []ValidationResult {
		const name = "Cross-field: SAC Code Matches Service Category"
		var results []ValidationResult
		for i := range s.Payload.Items {
			item := &s.Payload.Items[i]
			expected, known := lookup.CodeFor(item.ServiceCategory)
			if !known || item.TaxCode == "" {
				continue
			}
			fp := fmt.Sprintf("items[%d].taxCode", i)
			passed := item.TaxCode == expected
			msg := fmt.Sprintf("%s: %s matches %q", name, fp, item.ServiceCategory)
			if !passed {
				msg = fmt.Sprintf("%s: %s code %s does not match %q (expected %s)", name, fp, item.TaxCode, item.ServiceCategory, expected)
			}
			results = append(results, ValidationResult{
				Passed: passed, FieldPath: fp,
				ExpectedValue: expected, ActualValue: item.TaxCode, Message: msg,
			})
		}
		return results
	}
}

func sacExistsValidator(lookup *SACLookup) func(context.Context, *Subject) []ValidationResult {
	return func(_ context.Context, s *Subject) []ValidationResult {
		const name = "Logical: SAC Code Exists in Catalog"
		results := make([]ValidationResult, 0, len(s.Payload.Items))
		for i := range s.Payload.Items {
			item := &s.Payload.Items[i]
			fp := fmt.Sprintf("items[%d].taxCode", i)
			if item.TaxCode == "" {
				results = append(results, ValidationResult{
					Passed: true, FieldPath: fp,
					Message: fmt.Sprintf("%s: SAC/HSN code is empty, skipping", name),
				})
				continue
			}
			exists := lookup.Exists(item.TaxCode)
			msg := fmt.Sprintf("%s: %s found in catalog", name, fp)
			if !exists {
				msg = fmt.Sprintf("%s: %s code %q not found in catalog", name, fp, item.TaxCode)
			}
			results = append(results, ValidationResult{
				Passed: exists, FieldPath: fp,
				ExpectedValue: "code present in catalog", ActualValue: item.TaxCode, Message: msg,
			})
		}
		return results
	}
}
