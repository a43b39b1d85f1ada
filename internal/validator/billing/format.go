package billing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"billkit/internal/domain"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
	ifscPattern  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	sacPattern   = regexp.MustCompile(`^\d{4,8}$`)
	acctPattern  = regexp.MustCompile(`^\d{9,18}$`)
)

// formatValidator checks a field against a regex or format rule.
type formatValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	kinds    kindSet
	validate func(*Subject) []ValidationResult
}

func (v *formatValidator) RuleKey() string                      { return v.ruleKey }
func (v *formatValidator) RuleName() string                     { return v.ruleName }
func (v *formatValidator) RuleType() domain.ValidationRuleType  { return domain.ValidationRuleRegex }
func (v *formatValidator) Severity() domain.ValidationSeverity  { return v.severity }
func (v *formatValidator) AppliesTo(k domain.DocumentKind) bool { return v.kinds.has(k) }

func (v *formatValidator) Validate(_ context.Context, s *Subject) []ValidationResult {
	return v.validate(s)
}

func regexCheck(fieldPath, value, pattern, ruleName string, re *regexp.Regexp) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: pattern, ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping format check", ruleName),
		}
	}
	passed := re.MatchString(value)
	msg := fmt.Sprintf("%s: %s matches expected format", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s does not match expected format", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: pattern, ActualValue: value, Message: msg,
	}
}

func dateCheck(fieldPath, value, ruleName string) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: "parseable date", ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping date check", ruleName),
		}
	}
	_, err := parseDate(value)
	passed := err == nil
	msg := fmt.Sprintf("%s: %s is a valid date", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is not a parseable date", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "parseable date", ActualValue: value, Message: msg,
	}
}

func parseDate(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02-01-2006",
		"02/01/2006",
		"2006/01/02",
		"02 Jan 2006",
		"2 Jan 2006",
		"Jan 02, 2006",
		"January 02, 2006",
		"2006-01-02T15:04:05Z07:00",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %s", s)
}

// FormatValidators returns all format validators.
func FormatValidators() []*formatValidator {
	return []*formatValidator{
		{
			ruleKey: "fmt.supplier.gstin", ruleName: "Format: Supplier GSTIN",
			severity: domain.ValidationSeverityError,
			validate: func(s *Subject) []ValidationResult {
				return []ValidationResult{regexCheck("supplier.gstin", s.Payload.Supplier.GSTIN, gstinPattern.String(), "Format: Supplier GSTIN", gstinPattern)}
			},
		},
		{
			ruleKey: "fmt.receiver.gstin", ruleName: "Format: Receiver GSTIN",
			severity: domain.ValidationSeverityError,
			validate: func(s *Subject) []ValidationResult {
				return []ValidationResult{regexCheck("receiverGstin", s.Payload.ReceiverGSTIN, gstinPattern.String(), "Format: Receiver GSTIN", gstinPattern)}
			},
		},
		{
			ruleKey: "fmt.supplier.pan", ruleName: "Format: Supplier PAN",
			severity: domain.ValidationSeverityError,
			validate: func(s *Subject) []ValidationResult {
				return []ValidationResult{regexCheck("supplier.pan", s.Payload.Supplier.PAN, panPattern.String(), "Format: Supplier PAN", panPattern)}
			},
		},
		{
			ruleKey: "fmt.date", ruleName: "Format: Document Date",
			severity: domain.ValidationSeverityWarning,
			validate: func(s *Subject) []ValidationResult {
				return []ValidationResult{dateCheck("date", s.Payload.Date, "Format: Document Date")}
			},
		},
		{
			ruleKey: "fmt.line_item.tax_code", ruleName: "Format: Line Item SAC/HSN",
			severity: domain.ValidationSeverityWarning, kinds: itemizedKinds,
			validate: func(s *Subject) []ValidationResult {
				results := make([]ValidationResult, 0, len(s.Payload.Items))
				for i := range s.Payload.Items {
					fp := fmt.Sprintf("items[%d].taxCode", i)
					results = append(results, regexCheck(fp, s.Payload.Items[i].TaxCode, sacPattern.String(), "Format: Line Item SAC/HSN", sacPattern))
				}
				return results
			},
		},
		{
			ruleKey: "fmt.bank.ifsc", ruleName: "Format: Bank IFSC",
			severity: domain.ValidationSeverityWarning,
			validate: func(s *Subject) []ValidationResult {
				return []ValidationResult{regexCheck("bank.ifsc", s.Payload.Bank.IFSC, ifscPattern.String(), "Format: Bank IFSC", ifscPattern)}
			},
		},
		{
			ruleKey: "fmt.bank.account_no", ruleName: "Format: Bank Account Number",
			severity: domain.ValidationSeverityWarning,
			validate: func(s *Subject) []ValidationResult {
				return []ValidationResult{regexCheck("bank.accountNo", s.Payload.Bank.AccountNo, acctPattern.String(), "Format: Bank Account Number", acctPattern)}
			},
		},
	}
}
