// Package validator runs registered billing rules against a submitted
// document and summarises the outcome.
package validator

import (
	"context"

	"billkit/internal/domain"
	"billkit/internal/validator/billing"
)

// Validator is the interface for a single built-in validation rule.
type Validator interface {
	Validate(ctx context.Context, s *billing.Subject) []billing.ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
	AppliesTo(kind domain.DocumentKind) bool
}
