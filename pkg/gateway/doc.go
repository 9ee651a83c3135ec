// Package gateway is the HTTP boundary of the TTS gateway: request
// schema validation, the synthesis and discovery endpoints, and the
// mapping from classified dispatch failures to transport status codes.
//
// Validation happens here, before dispatch; the forwarding layer only
// ever sees well-formed payloads. Schema violations answer 422 with
// field-level details, unknown models 400, unreachable backends 503,
// backend timeouts 504, and backend validation rejections pass the
// backend's detail through verbatim.
package gateway
