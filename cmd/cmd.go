// Package cmd implements the operator CLI's command handlers, wired to
// the running Router through a package-level set of globals.
package cmd

import (
	"lsrouted.dev/lsrouted/routing"
	"lsrouted.dev/lsrouted/sock"
)

var socket sock.Socket
var router *routing.Router

// SetGlobalVars wires the CLI's command handlers to the running daemon
// instance. Called once from main before starting the input loop.
func SetGlobalVars(s sock.Socket, r *routing.Router) {
	socket = s
	router = r
}
