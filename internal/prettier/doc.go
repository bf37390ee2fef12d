// Package prettier pretty-prints outgoing response bodies.
//
// Register decorates the host with a Formatter under a configurable name so
// handlers can format content directly, and installs a Hook on the host's
// outbound pipeline. The hook formats a response when formatting is always
// on or when the request carries the configured query parameter, for
// example GET /?pretty=true.
package prettier
