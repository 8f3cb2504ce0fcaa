package commerceapi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validValues() url.Values {
	return url.Values{
		"customer.firstName":      []string{"Jane"},
		"customer.lastName":       []string{"Doe"},
		"customer.email":          []string{"janedoe@email.com"},
		"shipping.name":           []string{"Jane Doe"},
		"shipping.street":         []string{"123 Fake St"},
		"shipping.city":           []string{"San Francisco"},
		"shipping.stateProvince":  []string{"CA"},
		"shipping.postalZipCode":  []string{"94107"},
		"shipping.country":        []string{"US"},
		"fulfillment.shippingOption": []string{"ship_123"},
		"payment.cardNum":         []string{"4242 4242 4242 4242"},
		"payment.expMonth":        []string{"01"},
		"payment.expYear":         []string{"2030"},
		"payment.ccv":             []string{"123"},
	}
}

func TestOrderForm(t *testing.T) {
	t.Run("Decode and validate", func(t *testing.T) {
		// given
		values := validValues()

		// when
		form, err := NewOrderFormFromValues(values)

		// then
		assert.NoError(t, err)
		assert.NoError(t, form.Validate())
		assert.Equal(t, "Jane", form.Customer.FirstName)
		assert.Equal(t, "CA", form.Shipping.StateOrProvince)
		assert.Equal(t, "ship_123", form.Fulfillment.ShippingOptionUID)
	})

	t.Run("Missing required field", func(t *testing.T) {
		// given
		values := validValues()
		values.Del("customer.email")

		// when
		form, err := NewOrderFormFromValues(values)

		// then
		assert.NoError(t, err)
		assert.Error(t, form.Validate())
	})

	t.Run("Malformed email", func(t *testing.T) {
		// given
		values := validValues()
		values.Set("customer.email", "not-an-email")

		// when
		form, err := NewOrderFormFromValues(values)

		// then
		assert.NoError(t, err)
		assert.Error(t, form.Validate())
	})

	t.Run("To order payload", func(t *testing.T) {
		// given
		form, err := NewOrderFormFromValues(validValues())
		assert.NoError(t, err)
		token := CheckoutToken{
			UID:     "tok_1",
			CartUID: "cart_1",
			LineItems: []LineItem{
				{UID: "item_1", ProductUID: "prod_1", Quantity: 2},
			},
		}

		// when
		payload := form.ToOrderPayload(token)

		// then
		assert.Equal(t, token.LineItems, payload.LineItems)
		assert.Equal(t, "test_gateway", payload.Payment.Gateway)
		assert.Equal(t, "Jane", payload.Customer.FirstName)
		assert.Equal(t, "ship_123", payload.Fulfillment.ShippingOptionUID)
	})
}

func TestCartFingerprint(t *testing.T) {
	cart := Cart{
		UID: "cart_1",
		LineItems: []LineItem{
			{UID: "item_2", Quantity: 1},
			{UID: "item_1", Quantity: 2},
		},
	}

	t.Run("Order independent", func(t *testing.T) {
		reordered := Cart{
			UID: "cart_1",
			LineItems: []LineItem{
				{UID: "item_1", Quantity: 2},
				{UID: "item_2", Quantity: 1},
			},
		}
		assert.Equal(t, cart.Fingerprint(), reordered.Fingerprint())
	})

	t.Run("Quantity change alters fingerprint", func(t *testing.T) {
		changed := Cart{
			UID: "cart_1",
			LineItems: []LineItem{
				{UID: "item_2", Quantity: 1},
				{UID: "item_1", Quantity: 3},
			},
		}
		assert.NotEqual(t, cart.Fingerprint(), changed.Fingerprint())
	})

	t.Run("Different cart alters fingerprint", func(t *testing.T) {
		other := cart
		other.UID = "cart_2"
		assert.NotEqual(t, cart.Fingerprint(), other.Fingerprint())
	})
}
