package checkout

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

// currentCheckoutKey is the single slot holding the session's checkout. A new
// checkout replaces a finished (captured or failed) one.
const currentCheckoutKey = "current_checkout"

type State int

const (
	StateIdle State = iota
	StateTokenPending
	StateTokenReady
	StateLocaleLoading
	StateLocaleReady
	StateSubmitting
	StateCaptured
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTokenPending:
		return "tokenPending"
	case StateTokenReady:
		return "tokenReady"
	case StateLocaleLoading:
		return "localeLoading"
	case StateLocaleReady:
		return "localeReady"
	case StateSubmitting:
		return "submitting"
	case StateCaptured:
		return "captured"
	case StateFailed:
		return "failed"
	}

	return "unknown"
}

// allowedTransitions encodes the checkout state machine. Failed is reachable
// from every non-terminal state. Submitting can fall back to TokenPending when
// the cart turns out to have changed since the token was issued.
var allowedTransitions = map[State][]State{
	StateIdle:          {StateTokenPending},
	StateTokenPending:  {StateTokenReady, StateFailed},
	StateTokenReady:    {StateLocaleLoading, StateFailed},
	StateLocaleLoading: {StateLocaleLoading, StateLocaleReady, StateFailed},
	StateLocaleReady:   {StateLocaleLoading, StateSubmitting, StateFailed},
	StateSubmitting:    {StateCaptured, StateTokenPending, StateFailed},
	StateCaptured:      {},
	StateFailed:        {},
}

func (s State) CanTransitionTo(target State) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

func (s State) IsFinal() bool {
	return s == StateCaptured || s == StateFailed
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckoutContext is the persisted state of one checkout attempt.
type CheckoutContext struct {
	UID          string
	CreatedAt    time.Time
	LastModified *time.Time
	State        State

	CartUID         string
	CartFingerprint string
	// Set when a cart-modified event arrives after the token was issued.
	// The authoritative check remains the fingerprint comparison at submit.
	CartChangedSinceToken bool

	Token commerceapi.CheckoutToken

	Countries              []commerceapi.CodeName
	SelectedCountry        string
	Subdivisions           []commerceapi.CodeName
	SelectedSubdivision    string
	ShippingOptions        []commerceapi.ShippingOption
	SelectedShippingOption string

	// LocaleEpoch increments on every country or subdivision change. A locale
	// fetch only applies its result when its epoch is still the current one.
	LocaleEpoch int

	LastError string
}

func (ctx *CheckoutContext) transitionTo(target State, now time.Time) error {
	if !ctx.State.CanTransitionTo(target) {
		return myerrors.NewConflictError(fmt.Errorf("illegal checkout transition from %s to %s", ctx.State, target))
	}
	ctx.State = target
	ctx.LastModified = &now

	return nil
}

func (ctx CheckoutContext) hasShippingOption(optionUID string) bool {
	for _, option := range ctx.ShippingOptions {
		if option.UID == optionUID {
			return true
		}
	}

	return false
}

func (ctx CheckoutContext) hasCountry(code string) bool {
	for _, country := range ctx.Countries {
		if country.Code == code {
			return true
		}
	}

	return false
}

func (ctx CheckoutContext) hasSubdivision(code string) bool {
	for _, subdivision := range ctx.Subdivisions {
		if subdivision.Code == code {
			return true
		}
	}

	return false
}
