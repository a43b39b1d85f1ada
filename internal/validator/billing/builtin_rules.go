package billing

import (
	"context"

	"billkit/internal/domain"
)

// BuiltinValidator wraps a validator function and its metadata for the registry.
type BuiltinValidator struct {
	key      string
	name     string
	ruleType domain.ValidationRuleType
	sev      domain.ValidationSeverity
	kinds    kindSet
	fn       func(context.Context, *Subject) []ValidationResult
}

func (b *BuiltinValidator) Validate(ctx context.Context, s *Subject) []ValidationResult {
	return b.fn(ctx, s)
}
func (b *BuiltinValidator) RuleKey() string                      { return b.key }
func (b *BuiltinValidator) RuleName() string                     { return b.name }
func (b *BuiltinValidator) RuleType() domain.ValidationRuleType  { return b.ruleType }
func (b *BuiltinValidator) Severity() domain.ValidationSeverity  { return b.sev }
func (b *BuiltinValidator) AppliesTo(k domain.DocumentKind) bool { return b.kinds.has(k) }

type rule interface {
	Validate(context.Context, *Subject) []ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
	AppliesTo(domain.DocumentKind) bool
}

func wrap(r rule, kinds kindSet) *BuiltinValidator {
	return &BuiltinValidator{
		key: r.RuleKey(), name: r.RuleName(),
		ruleType: r.RuleType(), sev: r.Severity(),
		kinds: kinds, fn: r.Validate,
	}
}

// AllBuiltinValidators returns every built-in validator for billing documents.
// lookup may be nil, in which case the SAC catalog rules are left out.
func AllBuiltinValidators(lookup *SACLookup) []*BuiltinValidator {
	var all []*BuiltinValidator

	for _, v := range RequiredFieldValidators() {
		all = append(all, wrap(v, v.kinds))
	}
	all = append(all, wrap(itemCountValidator{}, nil), wrap(quantityValidator{}, nil))

	for _, v := range FormatValidators() {
		all = append(all, wrap(v, v.kinds))
	}
	for _, v := range MathValidators() {
		all = append(all, wrap(v, nil))
	}
	for _, v := range CrossFieldValidators() {
		all = append(all, wrap(v, v.kinds))
	}
	if lookup != nil {
		all = append(all, SACValidators(lookup)...)
	}
	return all
}
