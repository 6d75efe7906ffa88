// Package model defines the typed form schema consumed by the binding and
// rendering layers. A Schema declares the form's identity, submit target, and
// ordered fields; each Field carries its accepted type, canonical validation
// rules (min/max, minLength/maxLength, pattern), and a mutable Attrs map of
// presentation attributes. Rendering merges default style classes into
// Attrs["class"] as a set union, so the merge stays idempotent across
// repeated renders. Types live in internal/model and are re-exported here.
package model
