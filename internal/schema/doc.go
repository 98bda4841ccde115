// Package schema reads the graph's current label, relationship and property
// shape and renders it as the grounding text for query translation.
package schema
