package payfast

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// FieldSignature is the parameter carrying the payload signature on the wire.
const FieldSignature = "signature"

// Sign computes the gateway signature over a flat parameter set.
//
// Canonical form: entries sorted by key (bytewise), each emitted as
// key=encoded(value) and joined with '&'. A non-empty passphrase is
// appended as a final passphrase parameter before digesting; an empty
// passphrase digests the bare canonical string, matching gateway accounts
// that run without a shared secret.
//
// The digest is MD5 rendered as lowercase hex, as the gateway's signature
// scheme specifies. Determinism is load-bearing: the same routine backs
// outbound signing and inbound verification.
func Sign(fields map[string]string, passphrase string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(encode(fields[k]))
	}
	if passphrase != "" {
		b.WriteString("&passphrase=")
		b.WriteString(encode(passphrase))
	}

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// VerifySignature checks the signature field embedded in a parameter set
// against the digest recomputed over the remaining fields.
//
// A missing or empty signature field is treated as a mismatch: an
// unsigned payload must never pass verification. Comparison is
// constant-time.
func VerifySignature(fields map[string]string, passphrase string) error {
	received, ok := fields[FieldSignature]
	if !ok || received == "" {
		return fmt.Errorf("%w: signature field is missing", ErrSignatureMismatch)
	}

	rest := make(map[string]string, len(fields)-1)
	for k, v := range fields {
		if k == FieldSignature {
			continue
		}
		rest[k] = v
	}

	expected := Sign(rest, passphrase)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
		return ErrSignatureMismatch
	}
	return nil
}

// encode applies the gateway's form-urlencoding convention: space as '+',
// uppercase percent hex, unreserved set A-Z a-z 0-9 '-' '_' '.' '~'.
// url.QueryEscape produces exactly this encoding; validated against the
// gateway's published sample payloads.
func encode(s string) string {
	return url.QueryEscape(s)
}
