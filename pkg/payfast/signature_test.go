package payfast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapcard/tapcard/pkg/payfast"
)

func TestSign(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		fields := map[string]string{
			"merchant_id": "10000100",
			"amount":      "4400.00",
			"item_name":   "Pro Plan - Yearly",
		}

		first := payfast.Sign(fields, "secret")
		second := payfast.Sign(fields, "secret")

		assert.Equal(t, first, second)
		assert.Len(t, first, 32)
		assert.Regexp(t, "^[0-9a-f]{32}$", first)
	})

	t.Run("independent of insertion order", func(t *testing.T) {
		t.Parallel()

		a := map[string]string{}
		a["zebra"] = "1"
		a["alpha"] = "2"
		a["mango"] = "3"

		b := map[string]string{}
		b["mango"] = "3"
		b["alpha"] = "2"
		b["zebra"] = "1"

		assert.Equal(t, payfast.Sign(a, "pp"), payfast.Sign(b, "pp"))
	})

	t.Run("passphrase changes digest", func(t *testing.T) {
		t.Parallel()

		fields := map[string]string{"amount": "100.00"}

		assert.NotEqual(t, payfast.Sign(fields, "one"), payfast.Sign(fields, "two"))
	})

	t.Run("empty passphrase signs bare canonical string", func(t *testing.T) {
		t.Parallel()

		fields := map[string]string{"amount": "100.00"}

		bare := payfast.Sign(fields, "")
		bound := payfast.Sign(fields, "pp")

		assert.NotEqual(t, bare, bound)
		assert.NotEmpty(t, bare)
	})

	t.Run("value change avalanches", func(t *testing.T) {
		t.Parallel()

		fields := map[string]string{
			"m_payment_id":   "abc-123",
			"payment_status": "COMPLETE",
		}
		original := payfast.Sign(fields, "pp")

		fields["payment_status"] = "FAILED"

		assert.NotEqual(t, original, payfast.Sign(fields, "pp"))
	})

	t.Run("values with spaces and reserved characters", func(t *testing.T) {
		t.Parallel()

		fields := map[string]string{
			"item_name": "Pro Plan - Yearly",
			"email":     "user+tag@example.com",
		}

		// Form convention: space becomes '+', so a value with a literal
		// space must not collide with one containing '+'.
		collision := map[string]string{
			"item_name": "Pro Plan - Yearly",
			"email":     "user tag@example.com",
		}

		assert.NotEqual(t, payfast.Sign(fields, ""), payfast.Sign(collision, ""))
	})
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	sign := func(fields map[string]string, pp string) map[string]string {
		signed := make(map[string]string, len(fields)+1)
		for k, v := range fields {
			signed[k] = v
		}
		signed[payfast.FieldSignature] = payfast.Sign(fields, pp)
		return signed
	}

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		fields := map[string]string{
			"m_payment_id":   "ref-1700000000000",
			"payment_status": "COMPLETE",
			"amount_gross":   "4400.00",
		}

		require.NoError(t, payfast.VerifySignature(sign(fields, "pp"), "pp"))
	})

	t.Run("rejects tampered field", func(t *testing.T) {
		t.Parallel()

		signed := sign(map[string]string{
			"m_payment_id":   "ref-1700000000000",
			"payment_status": "COMPLETE",
		}, "pp")
		signed["payment_status"] = "FAILED"

		err := payfast.VerifySignature(signed, "pp")

		assert.ErrorIs(t, err, payfast.ErrSignatureMismatch)
	})

	t.Run("rejects wrong passphrase", func(t *testing.T) {
		t.Parallel()

		signed := sign(map[string]string{"payment_status": "COMPLETE"}, "pp")

		err := payfast.VerifySignature(signed, "other")

		assert.ErrorIs(t, err, payfast.ErrSignatureMismatch)
	})

	t.Run("rejects missing signature", func(t *testing.T) {
		t.Parallel()

		err := payfast.VerifySignature(map[string]string{"payment_status": "COMPLETE"}, "pp")

		assert.ErrorIs(t, err, payfast.ErrSignatureMismatch)
	})

	t.Run("rejects empty signature", func(t *testing.T) {
		t.Parallel()

		err := payfast.VerifySignature(map[string]string{
			"payment_status":        "COMPLETE",
			payfast.FieldSignature: "",
		}, "pp")

		assert.ErrorIs(t, err, payfast.ErrSignatureMismatch)
	})

	t.Run("does not mutate the input map", func(t *testing.T) {
		t.Parallel()

		signed := sign(map[string]string{"payment_status": "COMPLETE"}, "pp")

		require.NoError(t, payfast.VerifySignature(signed, "pp"))

		assert.Contains(t, signed, payfast.FieldSignature)
	})

	t.Run("verifies with empty passphrase", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, payfast.VerifySignature(sign(map[string]string{"a": "b"}, ""), ""))
	})
}
