package delivery_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"triptacticx/internal/config"
	"triptacticx/internal/delivery"
	"triptacticx/internal/document"
	"triptacticx/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	testPDF  = []byte("%PDF-1.3 test document")
	smtpConf = config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     465,
		UseSSL:   true,
		Timeout:  5 * time.Second,
		Username: "planner@example.com",
		Password: "app-password",
	}
)

func TestDeliver_Success(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	var captured *mail.Msg
	transport.On("Send", mock.Anything, mock.AnythingOfType("*mail.Msg")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*mail.Msg) }).
		Return(nil).Once()

	d := delivery.NewEmailDelivererWithTransport(smtpConf, transport, zap.NewNop())
	sent := d.Deliver(context.Background(), "Asha", "asha@example.com", testPDF)

	require.True(t, sent)
	require.NotNil(t, captured)

	to := captured.GetTo()
	require.Len(t, to, 1)
	assert.Equal(t, "asha@example.com", to[0].Address)
	from := captured.GetFrom()
	require.Len(t, from, 1)
	assert.Equal(t, "planner@example.com", from[0].Address)
	assert.Equal(t, []string{"Your TripTacticx Travel Plan, Asha"}, captured.GetGenHeader(mail.HeaderSubject))

	attachments := captured.GetAttachments()
	require.Len(t, attachments, 1)
	assert.Equal(t, document.FileName, attachments[0].Name)
	assert.Equal(t, mail.ContentType("application/pdf"), attachments[0].ContentType)

	var raw bytes.Buffer
	_, err := captured.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "Please find attached your personalized travel plan.")
	assert.Contains(t, raw.String(), "TripTacticx_TravelPlan.pdf")
}

func TestDeliver_MissingCredentials(t *testing.T) {
	for name, cfg := range map[string]config.SMTPConfig{
		"нет адреса": {Host: "smtp.example.com", Port: 465, Password: "secret"},
		"нет пароля": {Host: "smtp.example.com", Port: 465, Username: "planner@example.com"},
	} {
		t.Run(name, func(t *testing.T) {
			transport := mocks.NewMockTransport(t)

			d := delivery.NewEmailDelivererWithTransport(cfg, transport, zap.NewNop())

			assert.False(t, d.Deliver(context.Background(), "Asha", "asha@example.com", testPDF))
			transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestDeliver_TransportError(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.On("Send", mock.Anything, mock.Anything).Return(errors.New("535 authentication failed")).Once()

	d := delivery.NewEmailDelivererWithTransport(smtpConf, transport, zap.NewNop())

	assert.False(t, d.Deliver(context.Background(), "Asha", "asha@example.com", testPDF))
}

func TestDeliver_LogMessages(t *testing.T) {
	t.Run("нет учетных данных", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		d := delivery.NewEmailDelivererWithTransport(config.SMTPConfig{}, mocks.NewMockTransport(t), zap.New(core))

		d.Deliver(context.Background(), "Asha", "asha@example.com", testPDF)

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "Учетные данные почты не заданы, отправка пропущена", entries[0].Message)
		assert.Equal(t, "asha@example.com", entries[0].ContextMap()["recipient"])
	})

	t.Run("ошибка транспорта", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		transport := mocks.NewMockTransport(t)
		transport.On("Send", mock.Anything, mock.Anything).Return(errors.New("535 authentication failed")).Once()
		d := delivery.NewEmailDelivererWithTransport(smtpConf, transport, zap.New(core))

		d.Deliver(context.Background(), "Asha", "asha@example.com", testPDF)

		entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
		require.Len(t, entries, 1)
		assert.Equal(t, "Не удалось отправить письмо", entries[0].Message)
	})
}

func TestDeliver_TransportPanicIsRecovered(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.On("Send", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { panic("connection reset") }).
		Return(nil).Once()

	d := delivery.NewEmailDelivererWithTransport(smtpConf, transport, zap.NewNop())

	assert.NotPanics(t, func() {
		assert.False(t, d.Deliver(context.Background(), "Asha", "asha@example.com", testPDF))
	})
}

func TestDeliver_InvalidRecipient(t *testing.T) {
	transport := mocks.NewMockTransport(t)

	d := delivery.NewEmailDelivererWithTransport(smtpConf, transport, zap.NewNop())

	assert.False(t, d.Deliver(context.Background(), "Asha", "not an address", testPDF))
	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNopDeliverer(t *testing.T) {
	d := delivery.NewNopDeliverer(zap.NewNop())
	assert.False(t, d.Deliver(context.Background(), "Asha", "asha@example.com", testPDF))
}

func TestSubjectAndBody(t *testing.T) {
	assert.Equal(t, "Your TripTacticx Travel Plan, Ravi", delivery.Subject("Ravi"))
	assert.Equal(t,
		"Hi Ravi,\n\nPlease find attached your personalized travel plan.\n\nSafe travels!\n\n- TripTacticx Team",
		delivery.Body("Ravi"))
}

func TestSMTPTransport_UnreachableHost(t *testing.T) {
	cfg := smtpConf
	cfg.Host = "127.0.0.1"
	cfg.Port = 1 // порт заведомо закрыт
	cfg.Timeout = time.Second

	d := delivery.NewEmailDeliverer(cfg, zap.NewNop())

	assert.False(t, d.Deliver(context.Background(), "Asha", "asha@example.com", testPDF))
}
