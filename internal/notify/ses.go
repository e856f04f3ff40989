// internal/notify/ses.go

package notify

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"carrier-portal/internal/common/errors"
	"carrier-portal/internal/common/logger"
)

// SESNotifier sends confirmation email through Amazon SES.
type SESNotifier struct {
	client *ses.Client
	from   string
	logger logger.Logger
}

func NewSESNotifier(ctx context.Context, region, fromEmail string, log logger.Logger) (*SESNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESNotifier{
		client: ses.NewFromConfig(cfg),
		from:   fromEmail,
		logger: log.WithFields(map[string]interface{}{"component": "ses-notifier"}),
	}, nil
}

func (n *SESNotifier) SendConfirmation(ctx context.Context, toEmail, candidateName, reference string) error {
	if !isValidEmail(toEmail) {
		return errors.NewNotificationSendFailedError("email", fmt.Errorf("invalid recipient address: %s", toEmail))
	}

	subject := "We received your carrier application"
	body := confirmationBody(candidateName, reference)

	input := &ses.SendEmailInput{
		Source: &n.from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body: &types.Body{
				Text: &types.Content{Data: &body},
			},
		},
	}

	out, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return errors.NewNotificationSendFailedError("email", err)
	}

	n.logger.Info("confirmation email sent", map[string]interface{}{
		"to":        toEmail,
		"messageId": *out.MessageId,
		"reference": reference,
	})
	return nil
}

func confirmationBody(candidateName, reference string) string {
	name := strings.TrimSpace(candidateName)
	if name == "" {
		name = "there"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", name)
	b.WriteString("Thanks for applying. Your carrier application has been submitted.\r\n\r\n")
	fmt.Fprintf(&b, "Reference number: %s\r\n\r\n", reference)
	b.WriteString("Our team will review your answers and reach out about next steps.\r\n")
	return b.String()
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	return strings.Contains(parts[1], ".")
}
