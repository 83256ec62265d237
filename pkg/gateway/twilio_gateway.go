package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessagingGateway sends one outbound reply. Fire-and-acknowledge: the
// returned id identifies the delivery attempt, not a delivery.
type MessagingGateway interface {
	Send(ctx context.Context, senderId, body string) (string, error)
}

type TwilioGateway struct {
	client *twilio.RestClient
	from   string
}

var _ MessagingGateway = &TwilioGateway{}

func NewTwilioGateway(accountSid, authToken, whatsappFrom string) *TwilioGateway {
	return &TwilioGateway{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: whatsappFrom,
	}
}

// Send delivers a WhatsApp message to the sender identified by their phone
// number (digits, no prefix). The Twilio client does not take a context; the
// caller bounds the call through its worker-pool dispatch.
func (g *TwilioGateway) Send(_ context.Context, senderId, body string) (string, error) {
	params := &openapi.CreateMessageParams{}
	params.SetFrom(ensureWhatsappPrefix(g.from))
	params.SetTo(ensureWhatsappPrefix("+" + strings.TrimPrefix(senderId, "+")))
	params.SetBody(body)

	resp, err := g.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}
	if resp.Sid == nil {
		return "", fmt.Errorf("twilio returned no message sid")
	}
	return *resp.Sid, nil
}

func ensureWhatsappPrefix(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
