package payfast

import (
	"fmt"
	"net/url"
)

// BillingCycle is the subscription billing frequency requested at checkout.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Gateway frequency codes for recurring billing.
const (
	frequencyMonthly = "3"
	frequencyYearly  = "6"
)

// ParseBillingCycle validates a caller-supplied billing cycle string.
func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(s) {
	case CycleMonthly, CycleYearly:
		return BillingCycle(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBillingCycle, s)
	}
}

// CheckoutRequest describes one checkout attempt to be rendered as a
// signed redirect to the gateway's hosted payment page.
type CheckoutRequest struct {
	PaymentID       string // payment reference, see NewPaymentReference
	PayerFirstName  string
	PayerLastName   string
	PayerEmail      string
	AmountCents     int64 // smallest currency unit
	ItemName        string
	ItemDescription string
	Cycle           BillingCycle
}

// Validate reports whether the request carries everything the gateway
// requires for a recurring checkout.
func (r CheckoutRequest) Validate() error {
	if r.PaymentID == "" {
		return fmt.Errorf("%w: payment ID is required", ErrInvalidCheckout)
	}
	if r.PayerEmail == "" {
		return fmt.Errorf("%w: payer email is required", ErrInvalidCheckout)
	}
	if r.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidCheckout)
	}
	if r.ItemName == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalidCheckout)
	}
	if _, err := ParseBillingCycle(string(r.Cycle)); err != nil {
		return err
	}
	return nil
}

// CheckoutParams assembles the full unsigned parameter set for a checkout
// request: merchant credentials, callback URLs, payer identity, payment
// reference, amount in major units, item fields, and the recurring-billing
// parameters (subscription flag, recurring amount, frequency code,
// unlimited cycles).
func CheckoutParams(cfg Config, req CheckoutRequest) map[string]string {
	amount := FormatAmount(req.AmountCents)

	frequency := frequencyMonthly
	if req.Cycle == CycleYearly {
		frequency = frequencyYearly
	}

	return map[string]string{
		"merchant_id":       cfg.MerchantID,
		"merchant_key":      cfg.MerchantKey,
		"return_url":        cfg.ReturnURL,
		"cancel_url":        cfg.CancelURL,
		"notify_url":        cfg.NotifyURL,
		"name_first":        req.PayerFirstName,
		"name_last":         req.PayerLastName,
		"email_address":     req.PayerEmail,
		"m_payment_id":      req.PaymentID,
		"amount":            amount,
		"item_name":         req.ItemName,
		"item_description":  req.ItemDescription,
		"subscription_type": "1",
		"recurring_amount":  amount,
		"frequency":         frequency,
		"cycles":            "0",
	}
}

// CheckoutURL renders the signed redirect URL for the gateway's hosted
// checkout page. Every parameter, including the signature, travels as a
// query parameter.
func CheckoutURL(cfg Config, req CheckoutRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	params := CheckoutParams(cfg, req)
	params[FieldSignature] = Sign(params, cfg.Passphrase)

	u, err := url.Parse(cfg.ProcessURL)
	if err != nil {
		return "", fmt.Errorf("%w: bad process URL: %w", ErrInvalidCheckout, err)
	}

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// FormatAmount renders a smallest-unit amount as the fixed two-decimal
// major-unit string the gateway expects. Integer math only: float
// formatting drifts on large amounts.
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
