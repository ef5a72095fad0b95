// Package observability records board activity as structured JSON Lines
// (JSONL) events and derives session metrics from that log on demand.
// Events carry task IDs and title lengths, never titles.
package observability
