// Package skema turns decoded schedule and assignment graphs into flat records.
//
// Ownership boundary:
// - projection only reads a finished gwt.Graph; it never touches the cursor
// - Decoder runs the full pipeline (envelope, graph, projection) for one payload per call
package skema
