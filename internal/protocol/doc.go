// Package protocol owns the GWT-RPC wire contract shared by the decoder packages.
//
// Ownership boundary:
// - terminal error kinds and their machine codes
// - envelope parsing (envelope)
// - cursor and string table primitives (stream)
// - object identity arena (arena)
// - type registry, dispatcher and composite decoders (gwt)
//
// The decoder never fetches payloads and never interprets business filters.
package protocol
