package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	pkglogger "github.com/ayush-kumar-github/backendcodeecom/pkg/logger"
)

// AWSSESEmailService sends emails using AWS SES
type AWSSESEmailService struct {
	sesClient   *ses.Client
	fromAddress string
	logger      *slog.Logger
}

// NewAWSSESEmailService creates a new AWS SES email service
func NewAWSSESEmailService(region, fromAddress string, logger *slog.Logger) (*AWSSESEmailService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESEmailService{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// SendPasswordResetEmail mails the reset link to the account holder. The
// plaintext token only ever travels inside this link.
func (s *AWSSESEmailService) SendPasswordResetEmail(ctx context.Context, email, resetURL string, expiresAt time.Time) error {
	minutes := int(time.Until(expiresAt).Minutes())

	textBody := fmt.Sprintf(`Reset Your Password

We received a request to reset the password for your account. Click the link below to choose a new password:

%s

This link expires in %d minutes and can be used only once.

If you did not request a password reset, you can ignore this email and your password will stay unchanged.
`, resetURL, minutes)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
    <h1>Reset Your Password</h1>
    <p>We received a request to reset the password for your account. Click the link below to choose a new password:</p>
    <p><a href="%s">Reset password</a></p>
    <p>Or copy and paste this link in your browser:<br><code>%s</code></p>
    <p>This link expires in %d minutes and can be used only once.</p>
    <p>If you did not request a password reset, you can ignore this email and your password will stay unchanged.</p>
</body>
</html>
`, resetURL, resetURL, minutes)

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("Password reset request"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send password reset email via SES",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("password reset email sent",
		slog.String("email", pkglogger.SanitizedEmail(email)),
		slog.String("message_id", *result.MessageId))

	return nil
}
