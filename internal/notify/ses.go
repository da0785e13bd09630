package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"legalapi/internal/config"
)

// SESMailer implements Notifier on top of Amazon SES.
type SESMailer struct {
	client     *sesv2.Client
	sender     string
	senderName string
}

// NewSES builds an SES-backed notifier. Static credentials are used when
// configured; otherwise the default AWS credential chain applies.
func NewSES(ctx context.Context, cfg config.MailerConfig) (*SESMailer, error) {
	if cfg.Sender == "" {
		return nil, fmt.Errorf("ses sender address is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SESMailer{
		client:     sesv2.NewFromConfig(awsCfg),
		sender:     cfg.Sender,
		senderName: cfg.SenderName,
	}, nil
}

var _ Notifier = (*SESMailer)(nil)

// Send delivers the message. Messages without an attachment use the simple
// SES content shape; an attachment switches to a raw multipart MIME message.
func (m *SESMailer) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", fmt.Errorf("recipient address is required")
	}

	subject := msg.Subject
	body := msg.Body
	if subject == "" || body == "" {
		defSubject, defBody := ComposeDefaults("", msg.DocumentTitle, m.senderName)
		if subject == "" {
			subject = defSubject
		}
		if body == "" {
			body = defBody
		}
	}

	var content *types.EmailContent
	if msg.Attachment != nil {
		raw, err := buildRawMessage(m.sender, msg.To, subject, htmlBody(body, msg.DocumentTitle), msg.Attachment)
		if err != nil {
			return "", fmt.Errorf("build mime message: %w", err)
		}
		content = &types.EmailContent{Raw: &types.RawMessage{Data: raw}}
	} else {
		content = &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
					Html: &types.Content{Data: aws.String(htmlBody(body, msg.DocumentTitle)), Charset: aws.String("UTF-8")},
				},
			},
		}
	}

	out, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.sender),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content:          content,
	})
	if err != nil {
		return "", fmt.Errorf("ses send: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}
