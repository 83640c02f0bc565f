// Package gwt decodes the GWT-RPC object stream of the schedule client.
//
// Ownership boundary:
// - type registry (class signature -> type id + decode routine)
// - read_object dispatch with back-reference resolution
// - composite decoders, one fixed field order per type
//
// Field order is data. Every layout in layouts.go mirrors the client's own read
// order, including fields whose meaning is unknown; those are read into opaque
// slots so the stream stays aligned. Types are never inferred from field shape.
package gwt
