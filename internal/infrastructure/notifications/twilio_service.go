package notifications

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/you/gatesvc/domain"
)

// TwilioServiceImpl implements domain.NotificationService. SMS and
// WhatsApp go through the Twilio messaging API; email has no Twilio
// backing here and is logged.
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioService creates a new Twilio notification service
func NewTwilioService(accountSID, authToken, fromNumber string) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
	}
}

// SendSMS implements domain.NotificationService
func (t *TwilioServiceImpl) SendSMS(to, message string) error {
	return t.send(to, t.fromNumber, message, "SMS")
}

// SendWhatsApp implements domain.NotificationService. Twilio routes
// WhatsApp traffic through the same messaging API with prefixed numbers.
func (t *TwilioServiceImpl) SendWhatsApp(to, message string) error {
	return t.send("whatsapp:"+to, "whatsapp:"+t.fromNumber, message, "WHATSAPP")
}

// SendEmail implements domain.NotificationService
func (t *TwilioServiceImpl) SendEmail(to, subject, body string) error {
	log.Printf("[MOCK EMAIL] To: %s, Subject: %s, Body: %s", to, subject, body)
	return nil
}

func (t *TwilioServiceImpl) send(to, from, message, kind string) error {
	// If credentials are not configured, log instead of sending
	if t.fromNumber == "" {
		log.Printf("[MOCK %s] To: %s, Message: %s", kind, to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send %s: %w", kind, err)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*TwilioServiceImpl)(nil)
