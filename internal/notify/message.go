package notify

import (
	"encoding/json"
	"fmt"

	"dealerbid/internal/pkg/errs"
)

// jobPayload is the jsonb envelope the command side enqueues. Only the fields
// relevant to each topic are populated.
type jobPayload struct {
	Type           string  `json:"type"`
	RecipientEmail string  `json:"recipient_email"`
	RecipientPhone string  `json:"recipient_phone"`
	VehicleSummary string  `json:"vehicle_summary"`
	SubmissionURL  string  `json:"submission_url,omitempty"`
	Amount         float64 `json:"amount,omitempty"`
}

var errUnknownTopic = errs.New("unknown notification topic")

// render picks the recipient and composes subject and body for a job.
func render(kind, topic string, raw []byte) (recipient, subject, body string, err error) {
	var p jobPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", "", "", errs.Wrap(err, "malformed notification payload")
	}

	recipient = p.RecipientEmail
	if kind == "sms" {
		recipient = p.RecipientPhone
	}
	if recipient == "" {
		return "", "", "", errs.New("notification payload has no recipient")
	}

	switch topic {
	case "buyer_invited":
		subject = fmt.Sprintf("You're invited to bid on a %s", p.VehicleSummary)
		body = fmt.Sprintf("You've been invited to bid on a %s. Submit your offer here: %s",
			p.VehicleSummary, p.SubmissionURL)
	case "bid_received":
		subject = fmt.Sprintf("New bid on your %s", p.VehicleSummary)
		body = fmt.Sprintf("A buyer submitted a bid of $%.2f on your %s.", p.Amount, p.VehicleSummary)
	case "offer_accepted":
		subject = fmt.Sprintf("Your offer on the %s was accepted", p.VehicleSummary)
		body = fmt.Sprintf("Your offer of $%.2f on the %s was accepted. The seller will be in touch.",
			p.Amount, p.VehicleSummary)
	default:
		return "", "", "", errs.Mark(fmt.Errorf("topic %q", topic), errUnknownTopic)
	}

	return recipient, subject, body, nil
}
