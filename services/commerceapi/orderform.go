package commerceapi

import (
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/storefront/lib/myerrors"
)

// OrderForm carries the customer/shipping/payment details posted when the
// shopper confirms the order. Field names follow the storefront form.
type OrderForm struct {
	Customer    CustomerForm    `form:"customer"`
	Shipping    ShippingForm    `form:"shipping"`
	Fulfillment FulfillmentForm `form:"fulfillment"`
	Payment     PaymentForm     `form:"payment"`
}

type CustomerForm struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
}

type ShippingForm struct {
	Name            string `form:"name" validate:"required"`
	Street          string `form:"street" validate:"required"`
	City            string `form:"city" validate:"required"`
	StateOrProvince string `form:"stateProvince" validate:"required"`
	PostalCode      string `form:"postalZipCode" validate:"required"`
	Country         string `form:"country" validate:"required"`
}

type FulfillmentForm struct {
	ShippingOptionUID string `form:"shippingOption" validate:"required"`
}

type PaymentForm struct {
	Gateway           string `form:"gateway"`
	CardNumber        string `form:"cardNum" validate:"required"`
	ExpiryMonth       string `form:"expMonth" validate:"required"`
	ExpiryYear        string `form:"expYear" validate:"required"`
	CCV               string `form:"ccv" validate:"required"`
	BillingPostalCode string `form:"billingPostalZipCode"`
}

var validate = validator.New()

func NewOrderFormFromRequest(r *http.Request) (OrderForm, error) {
	err := r.ParseForm()
	if err != nil {
		return OrderForm{}, myerrors.NewInvalidInputError(err)
	}

	return NewOrderFormFromValues(r.Form)
}

func NewOrderFormFromValues(values url.Values) (OrderForm, error) {
	form := OrderForm{}
	err := formcodec.NewDecoder().Decode(&form, values)
	if err != nil {
		return form, myerrors.NewInvalidInputError(fmt.Errorf("error decoding order form: %s", err))
	}

	return form, nil
}

// Validate reports the first missing or malformed required field.
func (f OrderForm) Validate() error {
	err := validate.Struct(f)
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid order form: %s", err))
	}

	return nil
}

func (f OrderForm) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(f)
	if err != nil {
		return nil, fmt.Errorf("error encoding order form: %s", err)
	}

	return values, nil
}

// ToOrderPayload combines the form with the line items that the checkout
// token was issued against.
func (f OrderForm) ToOrderPayload(token CheckoutToken) OrderPayload {
	gateway := f.Payment.Gateway
	if gateway == "" {
		gateway = "test_gateway"
	}

	return OrderPayload{
		LineItems: token.LineItems,
		Customer: Customer{
			FirstName: f.Customer.FirstName,
			LastName:  f.Customer.LastName,
			Email:     f.Customer.Email,
		},
		Shipping: ShippingAddress{
			Name:            f.Shipping.Name,
			Street:          f.Shipping.Street,
			City:            f.Shipping.City,
			StateOrProvince: f.Shipping.StateOrProvince,
			PostalCode:      f.Shipping.PostalCode,
			Country:         f.Shipping.Country,
		},
		Fulfillment: Fulfillment{
			ShippingOptionUID: f.Fulfillment.ShippingOptionUID,
		},
		Payment: Payment{
			Gateway: gateway,
			Card: CardDetails{
				Number:            f.Payment.CardNumber,
				ExpiryMonth:       f.Payment.ExpiryMonth,
				ExpiryYear:        f.Payment.ExpiryYear,
				CCV:               f.Payment.CCV,
				BillingPostalCode: f.Payment.BillingPostalCode,
			},
		},
	}
}
