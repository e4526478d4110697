package services

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Notifier delivers one email, best effort. Implementations must never
// panic; callers treat a returned error as advisory.
type Notifier interface {
	Send(ctx context.Context, to string, tpl EmailTemplate) error
}

// EmailService sends transactional mail via AWS SES v2. Without credentials
// it runs in log-only mode: sends are logged and reported as successful,
// which keeps local development flows working.
type EmailService struct {
	client   *sesv2.Client
	from     string
	fromName string
	logger   *slog.Logger
}

// NewEmailService creates the sender. Initializes the SES client only when
// credentials are provided.
func NewEmailService(ctx context.Context, accessKey, secretKey, region, from, fromName string, logger *slog.Logger) *EmailService {
	s := &EmailService{from: from, fromName: fromName, logger: logger}

	if accessKey != "" && secretKey != "" {
		cfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		)
		if err != nil {
			logger.Warn("failed to initialize AWS config, email runs in log-only mode", "err", err)
		} else {
			s.client = sesv2.NewFromConfig(cfg)
		}
	}
	return s
}

// Send delivers one email. The returned error is advisory: state transitions
// already committed by the caller are never rolled back on send failure.
func (s *EmailService) Send(ctx context.Context, to string, tpl EmailTemplate) error {
	if s.client == nil {
		s.logger.Info("email send skipped (log-only mode)", "to", to, "subject", tpl.Subject)
		return nil
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.from)),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(tpl.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(tpl.HTML), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send email", "to", to, "subject", tpl.Subject, "err", err)
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	s.logger.Info("email sent", "to", to, "subject", tpl.Subject, "messageId", messageID)
	return nil
}
