package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkstudio/studio-backend-go/internal/config"
	"github.com/wneessen/go-mail"
)

// Service sends transactional mail. Delivery is best-effort: callers log
// failures instead of failing the surrounding operation.
type Service interface {
	SendSettlementNotice(ctx context.Context, to, staffName string, amount float64, method string, paidAt time.Time) error
}

type serviceImpl struct {
	client *mail.Client
	from   string
}

func NewEmailService(cfg config.SMTPConfig) (Service, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &serviceImpl{client: client, from: cfg.From}, nil
}

func (s *serviceImpl) SendSettlementNotice(ctx context.Context, to, staffName string, amount float64, method string, paidAt time.Time) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("Your commission payout has been processed")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nA commission payout of $%.2f was sent to you via %s on %s.\n\nIf anything looks wrong, contact your studio owner.\n",
		staffName, amount, method, paidAt.Format("January 2, 2006"),
	))

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send settlement notice: %w", err)
	}

	slog.Debug("Settlement notice sent", "to", to)
	return nil
}
