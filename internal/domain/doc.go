// Package domain contains the core business entities, value objects, and
// domain logic of the application: the card type registry, the card record
// and the per-type validation policy. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
