package payfast

import "errors"

var (
	// ErrSignatureMismatch indicates the payload signature does not match
	// the locally computed digest. No state derived from the payload may
	// be trusted when this error is returned.
	ErrSignatureMismatch = errors.New("payfast: signature mismatch")

	// ErrInvalidPaymentReference indicates a payment reference that does
	// not parse back to a user identity and transaction time.
	ErrInvalidPaymentReference = errors.New("payfast: invalid payment reference")

	// ErrInvalidBillingCycle indicates an unknown billing cycle value.
	ErrInvalidBillingCycle = errors.New("payfast: invalid billing cycle")

	// ErrInvalidCheckout indicates an incomplete or malformed checkout request.
	ErrInvalidCheckout = errors.New("payfast: invalid checkout request")
)
