package noop

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"billkit/internal/port"
)

type noopSender struct {
	consoleURL string
}

// NewNoopSender creates a no-op EmailSender that logs alerts instead of sending them.
func NewNoopSender(consoleURL string) port.EmailSender {
	return &noopSender{consoleURL: consoleURL}
}

func (s *noopSender) SendMismatchAlert(_ context.Context, recipients []string, alert port.MismatchAlert) error {
	log.Info().
		Str("to", strings.Join(recipients, ",")).
		Str("verification_id", alert.VerificationID.String()).
		Str("kind", alert.Kind).
		Str("number", alert.DocumentNumber).
		Str("claimed", alert.ClaimedTotal).
		Str("recomputed", alert.RecomputedTotal).
		Int("failures", len(alert.Failures)).
		Str("link", s.consoleURL+"/verifications/"+alert.VerificationID.String()).
		Msg("[NOOP EMAIL] mismatch alert")
	return nil
}
