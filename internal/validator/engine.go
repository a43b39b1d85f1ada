package validator

import (
	"context"

	"github.com/rs/zerolog/log"

	"billkit/internal/document"
	"billkit/internal/domain"
	"billkit/internal/totals"
	"billkit/internal/validator/billing"
)

// ResultItem is a single rule outcome in a Report.
type ResultItem struct {
	RuleKey       string                    `json:"rule_key"`
	RuleName      string                    `json:"rule_name"`
	RuleType      domain.ValidationRuleType `json:"rule_type"`
	Severity      domain.ValidationSeverity `json:"severity"`
	Passed        bool                      `json:"passed"`
	FieldPath     string                    `json:"field_path"`
	ExpectedValue string                    `json:"expected_value"`
	ActualValue   string                    `json:"actual_value"`
	Message       string                    `json:"message"`
}

// Summary holds aggregate counts of rule outcomes.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report is the outcome of verifying one document.
type Report struct {
	Kind          domain.DocumentKind     `json:"kind"`
	Status        domain.ValidationStatus `json:"status"`
	Summary       Summary                 `json:"summary"`
	Recomputed    totals.InvoiceTotals    `json:"recomputed"`
	Results       []ResultItem            `json:"results"`
	FieldStatuses map[string]*FieldStatus `json:"field_statuses"`
}

// Failures returns the failed results only.
func (r *Report) Failures() []ResultItem {
	var out []ResultItem
	for i := range r.Results {
		if !r.Results[i].Passed {
			out = append(out, r.Results[i])
		}
	}
	return out
}

// Engine orchestrates document validation.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Run recomputes the payload's totals under policy and runs every rule that
// applies to the payload's kind. Rules run in rule-key order.
func (e *Engine) Run(ctx context.Context, p *document.Payload, policy totals.Policy) *Report {
	subject := billing.NewSubject(p, policy)

	report := &Report{
		Kind:       p.Kind,
		Recomputed: subject.Recomputed,
		Results:    []ResultItem{},
	}
	for _, v := range e.registry.All() {
		if !v.AppliesTo(p.Kind) {
			continue
		}
		for _, vr := range v.Validate(ctx, subject) {
			report.Results = append(report.Results, ResultItem{
				RuleKey:       v.RuleKey(),
				RuleName:      v.RuleName(),
				RuleType:      v.RuleType(),
				Severity:      v.Severity(),
				Passed:        vr.Passed,
				FieldPath:     vr.FieldPath,
				ExpectedValue: vr.ExpectedValue,
				ActualValue:   vr.ActualValue,
				Message:       vr.Message,
			})
		}
	}

	report.Summary, report.Status = summarise(report.Results)
	report.FieldStatuses = ComputeFieldStatuses(report.Results)

	log.Debug().
		Str("kind", string(p.Kind)).
		Str("number", p.Number).
		Str("status", string(report.Status)).
		Int("results", len(report.Results)).
		Msg("validator.Engine: document verified")
	return report
}

func summarise(results []ResultItem) (Summary, domain.ValidationStatus) {
	s := Summary{Total: len(results)}
	for i := range results {
		switch {
		case results[i].Passed:
			s.Passed++
		case results[i].Severity == domain.ValidationSeverityError:
			s.Errors++
		default:
			s.Warnings++
		}
	}
	switch {
	case s.Errors > 0:
		return s, domain.ValidationStatusInvalid
	case s.Warnings > 0:
		return s, domain.ValidationStatusWarning
	default:
		return s, domain.ValidationStatusValid
	}
}
