package delivery

import (
	"context"
	"fmt"

	"triptacticx/internal/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var deliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "triptacticx_email_deliveries_total",
		Help: "Total number of plan email delivery attempts by status.",
	},
	[]string{"status"}, // sent, failed, skipped
)

// Deliverer доставляет PDF плана получателю.
// Deliver никогда не возвращает ошибку: любой сбой превращается в false.
type Deliverer interface {
	Deliver(ctx context.Context, name, email string, pdf []byte) bool
}

// EmailDeliverer отправляет PDF вложением в письме.
type EmailDeliverer struct {
	cfg       config.SMTPConfig
	transport Transport
	logger    *zap.Logger
}

// NewEmailDeliverer создает доставку через SMTP.
func NewEmailDeliverer(cfg config.SMTPConfig, logger *zap.Logger) *EmailDeliverer {
	return NewEmailDelivererWithTransport(cfg, NewSMTPTransport(cfg), logger)
}

// NewEmailDelivererWithTransport позволяет подменить транспорт (тесты, другие шлюзы).
func NewEmailDelivererWithTransport(cfg config.SMTPConfig, transport Transport, logger *zap.Logger) *EmailDeliverer {
	return &EmailDeliverer{
		cfg:       cfg,
		transport: transport,
		logger:    logger.Named("EmailDeliverer"),
	}
}

// Deliver отправляет письмо. Без учетных данных транспорт не вызывается.
func (d *EmailDeliverer) Deliver(ctx context.Context, name, email string, pdf []byte) (sent bool) {
	log := d.logger.With(zap.String("recipient", email))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Паника при отправке письма", zap.Any("panic", r))
			deliveriesTotal.WithLabelValues("failed").Inc()
			sent = false
		}
	}()

	if !d.cfg.HasCredentials() {
		log.Warn("Учетные данные почты не заданы, отправка пропущена")
		deliveriesTotal.WithLabelValues("skipped").Inc()
		return false
	}

	msg, err := BuildMessage(d.cfg.Username, name, email, pdf)
	if err != nil {
		log.Warn("Не удалось собрать письмо", zap.Error(err))
		deliveriesTotal.WithLabelValues("failed").Inc()
		return false
	}

	if err := d.transport.Send(ctx, msg); err != nil {
		log.Error("Не удалось отправить письмо", zap.Error(err))
		deliveriesTotal.WithLabelValues("failed").Inc()
		return false
	}

	log.Info("Письмо с планом отправлено", zap.Int("pdf_bytes", len(pdf)))
	deliveriesTotal.WithLabelValues("sent").Inc()
	return true
}

// NopDeliverer используется, когда доставка отключена.
type NopDeliverer struct {
	logger *zap.Logger
}

func NewNopDeliverer(logger *zap.Logger) *NopDeliverer {
	return &NopDeliverer{logger: logger.Named("NopDeliverer")}
}

func (d *NopDeliverer) Deliver(_ context.Context, name, email string, pdf []byte) bool {
	d.logger.Info(fmt.Sprintf("ЗАГЛУШКА: письмо для %s не отправлено", name),
		zap.String("recipient", email),
		zap.Int("pdf_bytes", len(pdf)),
	)
	deliveriesTotal.WithLabelValues("skipped").Inc()
	return false
}
