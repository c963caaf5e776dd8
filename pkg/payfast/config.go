package payfast

// Config holds the merchant credentials and endpoints for the payment
// gateway. Passphrase is optional: accounts without a shared secret sign
// the bare canonical string.
type Config struct {
	MerchantID  string `env:"PAYFAST_MERCHANT_ID,required"`  // MerchantID is the gateway-assigned merchant identifier.
	MerchantKey string `env:"PAYFAST_MERCHANT_KEY,required"` // MerchantKey is the gateway-assigned merchant key.
	Passphrase  string `env:"PAYFAST_PASSPHRASE"`            // Passphrase is the shared signing secret configured on the merchant account.

	ProcessURL string `env:"PAYFAST_PROCESS_URL" envDefault:"https://www.payfast.co.za/eng/process"` // ProcessURL is the gateway's hosted checkout endpoint.
	ReturnURL  string `env:"PAYFAST_RETURN_URL,required"`                                            // ReturnURL receives the payer after successful payment.
	CancelURL  string `env:"PAYFAST_CANCEL_URL,required"`                                            // CancelURL receives the payer after a cancelled payment.
	NotifyURL  string `env:"PAYFAST_NOTIFY_URL,required"`                                            // NotifyURL is this service's own webhook endpoint for server-to-server notifications.
}
