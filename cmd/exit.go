package cmd

// ShutdownFunc is called when the operator types "exit". main wires it
// to a coordinated shutdown that stops both emitters before closing the
// control socket.
var ShutdownFunc func()

// HandleExit triggers a clean daemon shutdown.
func HandleExit(args []string) {
	if ShutdownFunc != nil {
		ShutdownFunc()
	}
}
