// Package protocol implements the binary wire format for streaming render
// mutations to a remote display target.
//
// A render pass produces a flat sequence of operations against numeric node
// identifiers (create, set text, set attribute, insert, move, remove). The
// operations of one pass travel together in a Batch with a monotonically
// increasing sequence number, so the receiving side can detect gaps after a
// reconnect and request a full remount.
//
// The encoding is length-prefixed and varint-based. Decoding is defensive:
// length prefixes are bounds-checked against the remaining buffer and capped
// by allocation limits, so a malicious peer cannot force large allocations
// with a small frame.
package protocol
