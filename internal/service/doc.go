// Package service contains the card dispatcher: the application layer that
// sits between the HTTP handlers and the per-variant card stores.
//
// The dispatcher resolves every request to exactly one route by card type.
// A route pairs the variant's validation rule with the store that persists
// that variant. Requests for unknown types fail with
// domain.ErrUnsupportedCardType before any store is touched.
//
// Error handling:
//   - Validation failures are returned as *domain.ValidationError
//   - Missing records are returned as store.ErrCardNotFound
//   - Other store failures are wrapped in *CardServiceError
//
// The service depends on store interfaces only, never on a specific
// storage engine.
package service
