// Package atn provides transition and predicate evaluation for
// augmented transition networks (ATNs).
//
// The core code is in package 'core', and a command-line tool is in
// `cmd/atntool`.
package atn
