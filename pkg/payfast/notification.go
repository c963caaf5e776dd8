package payfast

import (
	"fmt"
	"net/url"
)

// Payment status sentinels delivered in notifications.
const (
	PaymentStatusComplete  = "COMPLETE"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusCancelled = "CANCELLED"
)

// Notification is a verified server-to-server callback from the gateway.
// Fields holds the full flattened payload for auditing; the named fields
// are the ones subscription state transitions depend on.
type Notification struct {
	PaymentID      string // m_payment_id, the payment reference from checkout
	PaymentStatus  string
	ItemName       string
	PayerEmail     string // email_address
	Token          string // gateway billing token, kept for cancellation/lookup
	SubscriptionID string // gateway subscription identifier

	Fields map[string]string
}

// Completed reports whether the notification confirms a successful payment.
func (n *Notification) Completed() bool {
	return n.PaymentStatus == PaymentStatusComplete
}

// ParseNotification flattens a form-encoded notification body and verifies
// its signature before exposing any field. Returns ErrSignatureMismatch
// (and no notification) when verification fails; callers must not mutate
// state on that path.
func ParseNotification(form url.Values, passphrase string) (*Notification, error) {
	fields := make(map[string]string, len(form))
	for k, vs := range form {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}

	if err := VerifySignature(fields, passphrase); err != nil {
		return nil, err
	}

	n := &Notification{
		PaymentID:      fields["m_payment_id"],
		PaymentStatus:  fields["payment_status"],
		ItemName:       fields["item_name"],
		PayerEmail:     fields["email_address"],
		Token:          fields["token"],
		SubscriptionID: fields["subscription_id"],
		Fields:         fields,
	}

	if n.PaymentID == "" {
		return nil, fmt.Errorf("%w: missing m_payment_id", ErrInvalidPaymentReference)
	}

	return n, nil
}
