// Package observability owns the Prometheus collectors for decode outcomes.
// Collectors register on first use against the default registry.
package observability
