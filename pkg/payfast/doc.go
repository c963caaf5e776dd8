// Package payfast implements the payment gateway wire protocol used for
// subscription billing: checkout parameter assembly, the canonical
// signature scheme shared by outbound requests and inbound notifications,
// and the payment reference that correlates the two.
//
// The gateway signs a flat key-value parameter set: entries are sorted by
// key, form-urlencoded, joined with '&', bound to the merchant passphrase,
// and digested with MD5 (the digest the gateway specifies). The identical
// routine serves both signing and verification, so a parameter set built
// here always verifies against the gateway's own computation.
//
// The package is pure: no I/O, no clock reads, no side effects. Callers
// supply time and transport.
//
// Example:
//
//	params := payfast.CheckoutParams(cfg, req)
//	url, err := payfast.CheckoutURL(cfg, req)
//
//	n, err := payfast.ParseNotification(form, cfg.Passphrase)
//	if errors.Is(err, payfast.ErrSignatureMismatch) {
//		// reject without touching state
//	}
package payfast
