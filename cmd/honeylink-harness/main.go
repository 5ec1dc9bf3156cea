// Command honeylink-harness drives the HoneyLink core end-to-end from the
// command line: it runs a handshake through the Session Orchestrator,
// instantiates a Policy from a signed Profile, mints a proof-of-possession
// token off the derived session key, and prints the resulting session and
// policy state as JSON.
//
// It exists to exercise the wiring between packages the way a real
// control-plane collaborator would, without pulling in an HTTP server,
// database, or telemetry exporter — those remain external collaborators
// per the core's scope.
//
// Usage:
//
//	honeylink-harness handshake --device-a HL-A-0001 --device-b HL-B-0001 --client-version 1.2.0
//	honeylink-harness handshake --config /etc/honeylink/core.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "honeylink-harness",
		Short: "Exercise the HoneyLink session/crypto/policy core end-to-end",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a honeyconfig file (defaults to built-in defaults)")

	root.AddCommand(newHandshakeCmd(&configPath))
	root.AddCommand(newDiscoverCmd())
	return root
}
