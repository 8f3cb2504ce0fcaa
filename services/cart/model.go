package cart

import (
	"fmt"
	"time"

	"github.com/MarcGrol/storefront/services/commerceapi"
)

// currentCartKey is the single slot under which the session's cart mirror is
// stored. One storefront session owns exactly one cart.
const currentCartKey = "current_cart"

// SessionCart is the local mirror of the server-side cart. It only ever
// holds a value the gateway returned: on failure of a mutating operation the
// previous mirror stays untouched.
type SessionCart struct {
	Cart         commerceapi.Cart
	CreatedAt    time.Time
	LastModified *time.Time
}

const (
	OperationRetrieve = "retrieve"
	OperationAdd      = "add"
	OperationUpdate   = "update"
	OperationRemove   = "remove"
	OperationEmpty    = "empty"
	OperationRefresh  = "refresh"
)

// OperationError reports which cart operation failed and why. The underlying
// error classification (network, validation, busy) is preserved.
type OperationError struct {
	Operation string
	Cause     error
}

func (e OperationError) Error() string {
	return fmt.Sprintf("cart operation %s failed: %s", e.Operation, e.Cause)
}

func (e OperationError) Unwrap() error {
	return e.Cause
}

func (e OperationError) GetHTTPErrorCode() int {
	type httpErrorCoder interface {
		GetHTTPErrorCode() int
	}
	if coder, ok := e.Cause.(httpErrorCoder); ok {
		return coder.GetHTTPErrorCode()
	}

	return 500
}
