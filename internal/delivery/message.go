package delivery

import (
	"bytes"
	"fmt"

	"triptacticx/internal/document"

	"github.com/wneessen/go-mail"
)

const (
	subjectTemplate = "Your TripTacticx Travel Plan, %s"
	bodyTemplate    = "Hi %s,\n\nPlease find attached your personalized travel plan.\n\nSafe travels!\n\n- TripTacticx Team"
)

// Subject возвращает тему письма для получателя.
func Subject(name string) string {
	return fmt.Sprintf(subjectTemplate, name)
}

// Body возвращает текст письма для получателя.
func Body(name string) string {
	return fmt.Sprintf(bodyTemplate, name)
}

// BuildMessage собирает письмо с PDF-вложением.
func BuildMessage(from, name, to string, pdf []byte) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(Subject(name))
	msg.SetBodyString(mail.TypeTextPlain, Body(name))
	if err := msg.AttachReader(document.FileName, bytes.NewReader(pdf),
		mail.WithFileContentType(mail.ContentType(document.ContentType))); err != nil {
		return nil, fmt.Errorf("attach pdf: %w", err)
	}
	return msg, nil
}
