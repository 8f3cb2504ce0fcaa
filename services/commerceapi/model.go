package commerceapi

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Amount is a money value as reported by the commerce gateway. The gateway
// owns all price computation; amounts are carried around verbatim and the
// pre-formatted representations are used for display.
type Amount struct {
	ValueInCents        int64  `json:"raw"`
	Formatted           string `json:"formatted"`
	FormattedWithSymbol string `json:"formatted_with_symbol"`
}

type Merchant struct {
	UID          string `json:"id"`
	BusinessName string `json:"business_name"`
	Country      string `json:"country"`
	Currency     string `json:"currency"`
}

type Product struct {
	UID         string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Amount `json:"price"`
	ImageURL    string `json:"image_url"`
}

type LineItem struct {
	UID        string `json:"id"`
	ProductUID string `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Price      Amount `json:"price"`
	LineTotal  Amount `json:"line_total"`
}

// Cart mirrors the server-side cart. It is never mutated locally: every
// mutation is a gateway round-trip and the gateway's response replaces the
// whole value.
type Cart struct {
	UID              string     `json:"id"`
	LineItems        []LineItem `json:"line_items"`
	Subtotal         Amount     `json:"subtotal"`
	TotalItems       int        `json:"total_items"`
	TotalUniqueItems int        `json:"total_unique_items"`
}

func (c Cart) IsEmpty() bool {
	return c.TotalItems == 0
}

// Fingerprint identifies the cart contents that a checkout-token was issued
// against: cart uid plus the ordered (line-item, quantity) pairs. A token
// whose fingerprint no longer matches the current cart must not be captured.
func (c Cart) Fingerprint() string {
	parts := make([]string, 0, len(c.LineItems)+1)
	parts = append(parts, c.UID)
	items := make([]LineItem, len(c.LineItems))
	copy(items, c.LineItems)
	sort.Slice(items, func(i, j int) bool {
		return items[i].UID < items[j].UID
	})
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s:%d", item.UID, item.Quantity))
	}

	return strings.Join(parts, "|")
}

// CheckoutToken is the short-lived handle that binds a cart snapshot to an
// in-progress checkout. Consumed exactly once by capture.
type CheckoutToken struct {
	UID       string     `json:"id"`
	CartUID   string     `json:"cart_id"`
	LineItems []LineItem `json:"line_items"`
	Total     Amount     `json:"total"`
	CreatedAt time.Time  `json:"created"`
}

type ShippingOption struct {
	UID         string `json:"id"`
	Description string `json:"description"`
	Price       Amount `json:"price"`
}

type Customer struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

type ShippingAddress struct {
	Name            string `json:"name"`
	Street          string `json:"street"`
	City            string `json:"town_city"`
	StateOrProvince string `json:"county_state"`
	PostalCode      string `json:"postal_zip_code"`
	Country         string `json:"country"`
}

type Fulfillment struct {
	ShippingOptionUID string `json:"shipping_method"`
	Description       string `json:"description,omitempty"`
}

type CardDetails struct {
	Number            string `json:"number"`
	ExpiryMonth       string `json:"expiry_month"`
	ExpiryYear        string `json:"expiry_year"`
	CCV               string `json:"cvc"`
	BillingPostalCode string `json:"postal_zip_code"`
}

type Payment struct {
	Gateway string      `json:"gateway"`
	Card    CardDetails `json:"card"`
}

type PaymentOutcome struct {
	Gateway   string `json:"gateway"`
	CardLast4 string `json:"card_last4,omitempty"`
	Status    string `json:"status"`
}

// OrderPayload is what capture sends to the gateway.
type OrderPayload struct {
	LineItems   []LineItem      `json:"line_items"`
	Customer    Customer        `json:"customer"`
	Shipping    ShippingAddress `json:"shipping"`
	Fulfillment Fulfillment     `json:"fulfillment"`
	Payment     Payment         `json:"payment"`
}

// Order is the immutable result of a successful capture.
type Order struct {
	UID               string          `json:"id"`
	CustomerReference string          `json:"customer_reference"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created"`
	Customer          Customer        `json:"customer"`
	Shipping          ShippingAddress `json:"shipping"`
	Fulfillment       Fulfillment     `json:"fulfillment"`
	Payment           PaymentOutcome  `json:"payment"`
	LineItems         []LineItem      `json:"line_items"`
	Total             Amount          `json:"total"`
}

// CodeName is a (code, display-name) pair, used for shipping countries and
// subdivisions. Kept as a slice instead of a map so it can be persisted in
// datastore and rendered in a stable order.
type CodeName struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func CodeNamesFromMap(m map[string]string) []CodeName {
	result := make([]CodeName, 0, len(m))
	for code, name := range m {
		result = append(result, CodeName{Code: code, Name: name})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Code < result[j].Code
	})

	return result
}
