// Package llm provides the completion-service contract used by query
// translation, plus its OpenAI-compatible implementation.
//
// Every completion call carries a timeout; on expiry the caller sees
// types.ErrModelTimeout rather than an indefinite hang. Caller cancellation
// is passed through as context.Canceled.
package llm
