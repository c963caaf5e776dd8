package payfast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewPaymentReference builds the identifier correlating an outbound
// checkout with its inbound notification: "<user uuid>-<epoch millis>".
// Millisecond granularity keeps references unique per user across
// consecutive checkout attempts.
func NewPaymentReference(userID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%s-%d", userID, at.UnixMilli())
}

// ParsePaymentReference recovers the user identity and checkout time from
// a payment reference. The reference is split at the LAST separator: user
// IDs are UUIDs and contain '-' themselves, so first-separator parsing
// would truncate the identity.
//
// The embedded timestamp is the original transaction time; expiry derived
// from it is stable under gateway redelivery of the same notification.
func ParsePaymentReference(ref string) (uuid.UUID, time.Time, error) {
	i := strings.LastIndexByte(ref, '-')
	if i <= 0 || i == len(ref)-1 {
		return uuid.Nil, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPaymentReference, ref)
	}

	userID, err := uuid.Parse(ref[:i])
	if err != nil {
		return uuid.Nil, time.Time{}, errors.Join(ErrInvalidPaymentReference, err)
	}

	millis, err := strconv.ParseInt(ref[i+1:], 10, 64)
	if err != nil || millis <= 0 {
		return uuid.Nil, time.Time{}, fmt.Errorf("%w: bad timestamp in %q", ErrInvalidPaymentReference, ref)
	}

	return userID, time.UnixMilli(millis).UTC(), nil
}
