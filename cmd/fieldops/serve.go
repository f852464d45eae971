package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/acmehome/fieldops"
)

func serveCommand(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to fieldops.yaml (empty for defaults)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Run the mock services and status board

USAGE:
    fieldops serve [flags]

FLAGS:
    --config string   Path to fieldops.yaml (empty for built-in defaults)

Services (default ports):
    customer      :8001
    appointment   :8002
    technician    :8003
    status board  :8080 (needs a reachable Kubernetes API)

EXAMPLES:
    fieldops serve
    fieldops serve --config fieldops.yaml
`)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	return fieldops.Run(*configPath)
}
