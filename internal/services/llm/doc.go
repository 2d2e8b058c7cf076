// Package llm provides a minimal client for OpenAI-compatible chat
// completion endpoints. It sends a full conversation turn list and hands
// back the reply content, retrying transient transport failures with
// exponential backoff.
package llm
