package domain

// UserRole is the role claim carried by access tokens.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// DocumentKind identifies which billing form produced a payload.
type DocumentKind string

const (
	KindInvoice   DocumentKind = "invoice"
	KindBill      DocumentKind = "bill"
	KindQuotation DocumentKind = "quotation"
)

// ParseDocumentKind returns the kind for s, defaulting an empty string to invoice.
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch DocumentKind(s) {
	case "", KindInvoice:
		return KindInvoice, nil
	case KindBill, KindQuotation:
		return DocumentKind(s), nil
	}
	return "", ErrUnsupportedKind
}

// Taxed reports whether documents of this kind carry GST.
func (k DocumentKind) Taxed() bool {
	return k != KindBill
}

// ValidationRuleType classifies a validation rule.
type ValidationRuleType string

const (
	ValidationRuleRequired   ValidationRuleType = "required_field"
	ValidationRuleRegex      ValidationRuleType = "regex"
	ValidationRuleSumCheck   ValidationRuleType = "sum_check"
	ValidationRuleCrossField ValidationRuleType = "cross_field"
	ValidationRuleCustom     ValidationRuleType = "custom"
)

// ValidationSeverity is the severity of a failed rule.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

// ValidationStatus is the overall outcome of a verification.
type ValidationStatus string

const (
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusWarning ValidationStatus = "warning"
	ValidationStatusInvalid ValidationStatus = "invalid"
)

// FieldValidationStatus is the per-field outcome derived from rule results.
type FieldValidationStatus string

const (
	FieldStatusValid   FieldValidationStatus = "valid"
	FieldStatusUnsure  FieldValidationStatus = "unsure"
	FieldStatusInvalid FieldValidationStatus = "invalid"
)

// ExportFormat is the file format of a verification export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ContentType returns the MIME type for the export format.
func (f ExportFormat) ContentType() string {
	if f == ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}
