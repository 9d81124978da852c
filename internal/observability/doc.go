// Package observability provides event logging, metrics aggregation, and
// alerting for the triage vault. Events persist as structured JSON Lines
// (JSONL) in the Logs folder; metrics and alerts are derived on demand
// from current folder contents, never from cached state.
package observability
