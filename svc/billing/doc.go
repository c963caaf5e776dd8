// Package billing implements the subscription billing flow of the product:
// building signed checkout redirects to the payment gateway, consuming the
// gateway's asynchronous payment notifications as idempotent subscription
// state transitions, and serving the effective entitlement snapshot the
// SPA renders from.
//
// The flow, end to end:
//
//	SPA -> POST /billing/checkout  (bearer auth)   -> signed redirect URL
//	payer -> gateway hosted page   (external)
//	gateway -> POST /billing/notify (signed form)  -> subscriber upsert
//	SPA -> GET /billing/subscription (bearer auth) -> entitlement snapshot
//
// Correctness properties the package maintains:
//
//   - No subscription state changes without a verified payload signature.
//   - Both upsert sites key on the user ID; email is a denormalized
//     attribute with a secondary uniqueness constraint, never a join key.
//   - Expiry derives from the checkout transaction time embedded in the
//     payment reference, so gateway redelivery of the same notification
//     converges to the same row instead of extending the subscription.
//   - Expired rows demote lazily on read; the read result is truthful even
//     when the demotion write-back fails.
//   - The founder allow-list short-circuits before any store access.
package billing
