// Package configvalue models arbitrary configuration payloads as a tagged
// union of JSON-compatible kinds.
//
// Values are decoded with their object key order preserved so reports follow
// document order, while Equal compares objects without regard to key order and
// numbers by numeric value rather than by literal text.
package configvalue
