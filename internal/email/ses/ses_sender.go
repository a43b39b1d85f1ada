package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"billkit/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	consoleURL  string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, consoleURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		consoleURL:  consoleURL,
	}, nil
}

func (s *sesSender) SendMismatchAlert(ctx context.Context, recipients []string, alert port.MismatchAlert) error {
	if len(recipients) == 0 {
		return nil
	}
	link := fmt.Sprintf("%s/verifications/%s", s.consoleURL, alert.VerificationID)

	subject := fmt.Sprintf("Totals mismatch on %s %s", alert.Kind, alert.DocumentNumber)
	htmlBody := BuildMismatchHTML(alert, link)
	textBody := BuildMismatchText(alert, link)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: recipients,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// BuildMismatchText renders the plain-text alert body.
func BuildMismatchText(alert port.MismatchAlert, link string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The %s %s billed to %s failed verification.\n\n", alert.Kind, alert.DocumentNumber, alert.BilledTo)
	fmt.Fprintf(&b, "Submitted grand total: %s\nRecomputed grand total: %s\n\n", alert.ClaimedTotal, alert.RecomputedTotal)
	for _, f := range alert.Failures {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	fmt.Fprintf(&b, "\nDetails: %s\n", link)
	return b.String()
}

// BuildMismatchHTML renders the HTML alert body.
func BuildMismatchHTML(alert port.MismatchAlert, link string) string {
	var items strings.Builder
	for _, f := range alert.Failures {
		fmt.Fprintf(&items, "    <li>%s</li>\n", html.EscapeString(f))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #B91C1C;">Totals mismatch</h2>
  <p>The %s <strong>%s</strong> billed to %s failed verification.</p>
  <table style="border-collapse: collapse; margin: 16px 0;">
    <tr><td style="padding: 4px 12px 4px 0;">Submitted grand total</td><td><strong>%s</strong></td></tr>
    <tr><td style="padding: 4px 12px 4px 0;">Recomputed grand total</td><td><strong>%s</strong></td></tr>
  </table>
  <ul>
%s  </ul>
  <p><a href="%s" style="color: #4F46E5;">Open verification</a></p>
</body>
</html>`,
		html.EscapeString(alert.Kind), html.EscapeString(alert.DocumentNumber), html.EscapeString(alert.BilledTo),
		html.EscapeString(alert.ClaimedTotal), html.EscapeString(alert.RecomputedTotal),
		items.String(), link)
}
