// Package core contains the contribution registry: the store that collects
// serialization providers, serialization tokens, default properties and
// default strategy factories, the memoized base configuration derived from
// them, and the factory that composes per-call connector configurations.
//
// Registered default properties override caller-supplied overrides for the
// same key. This is intentional: process-wide registrations are
// authoritative over individual call sites.
package core
