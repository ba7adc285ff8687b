//go:build unit

package notify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	payload := func(p jobPayload) []byte {
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		return raw
	}

	t.Run("buyer invitation over email", func(t *testing.T) {
		raw := payload(jobPayload{
			Type:           "buyer_invited",
			RecipientEmail: "buyer@example.com",
			VehicleSummary: "2021 Toyota Camry",
			SubmissionURL:  "https://bids.example.com/quick-bid/abc?token=xyz",
		})

		recipient, subject, body, err := render("email", "buyer_invited", raw)
		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", recipient)
		assert.Contains(t, subject, "2021 Toyota Camry")
		assert.Contains(t, body, "https://bids.example.com/quick-bid/abc?token=xyz")
	})

	t.Run("sms picks the phone recipient", func(t *testing.T) {
		raw := payload(jobPayload{
			Type:           "buyer_invited",
			RecipientEmail: "buyer@example.com",
			RecipientPhone: "+15550100001",
			VehicleSummary: "2019 Honda Civic",
			SubmissionURL:  "https://bids.example.com/quick-bid/def?token=uvw",
		})

		recipient, _, _, err := render("sms", "buyer_invited", raw)
		require.NoError(t, err)
		assert.Equal(t, "+15550100001", recipient)
	})

	t.Run("bid received includes the amount", func(t *testing.T) {
		raw := payload(jobPayload{
			Type:           "bid_received",
			RecipientEmail: "seller@example.com",
			VehicleSummary: "2021 Toyota Camry",
			Amount:         18500.50,
		})

		_, subject, body, err := render("email", "bid_received", raw)
		require.NoError(t, err)
		assert.Contains(t, subject, "New bid")
		assert.Contains(t, body, "$18500.50")
	})

	t.Run("offer accepted includes the amount", func(t *testing.T) {
		raw := payload(jobPayload{
			Type:           "offer_accepted",
			RecipientEmail: "buyer@example.com",
			VehicleSummary: "2021 Toyota Camry",
			Amount:         25000,
		})

		_, subject, body, err := render("email", "offer_accepted", raw)
		require.NoError(t, err)
		assert.Contains(t, subject, "accepted")
		assert.Contains(t, body, "$25000.00")
	})

	t.Run("unknown topic fails permanently", func(t *testing.T) {
		raw := payload(jobPayload{RecipientEmail: "x@example.com"})

		_, _, _, err := render("email", "price_drop", raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, errUnknownTopic)
	})

	t.Run("missing recipient fails", func(t *testing.T) {
		raw := payload(jobPayload{Type: "bid_received", VehicleSummary: "2020 Ford F-150"})

		_, _, _, err := render("email", "bid_received", raw)
		require.Error(t, err)
	})

	t.Run("malformed payload fails", func(t *testing.T) {
		_, _, _, err := render("email", "bid_received", []byte("{not json"))
		require.Error(t, err)
	})
}
