// Package answer turns query result rows (or their absence) into bounded,
// user-facing text. Empty results get a fixed message rather than an error,
// and found content is truncated to a display bound with an explicit marker.
package answer
