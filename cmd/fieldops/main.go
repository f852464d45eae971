package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionInfo := VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	registry := NewCommandRegistry(versionInfo)
	registerCommands(registry)

	if err := registry.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func registerCommands(r *CommandRegistry) {
	r.Register(&Command{
		Name:        "serve",
		Description: "Run the mock services and status board",
		Usage:       "fieldops serve [flags]",
		Examples: []string{
			"fieldops serve",
			"fieldops serve --config fieldops.yaml",
		},
		Run: serveCommand,
	})

	r.Register(&Command{
		Name:        "cluster",
		Description: "Manage local Kubernetes clusters (kind)",
		Usage:       "fieldops cluster <action> [flags]",
		Examples: []string{
			"fieldops cluster create --name fieldops-demo",
			"fieldops cluster create --node-image kindest/node:v1.31.2",
			"fieldops cluster delete --name fieldops-demo",
		},
		Run: clusterCommand,
	})

	r.Register(&Command{
		Name:        "deploy",
		Description: "Deploy and verify the demo app using Helm",
		Usage:       "fieldops deploy <action> [flags]",
		Examples: []string{
			"fieldops deploy install --chart chart/eks-demo-app",
			"fieldops deploy upgrade --set image.tag=v2",
			"fieldops deploy verify --deployment eks-demo-app",
			"fieldops deploy uninstall",
		},
		Run: deployCommand,
	})

	r.Register(&Command{
		Name:        "sessions",
		Description: "Maintain the conference session catalog",
		Usage:       "fieldops sessions <action> [flags]",
		Examples: []string{
			"fieldops sessions index",
			"fieldops sessions check --root .",
		},
		Run: sessionsCommand,
	})

	r.Register(&Command{
		Name:        "version",
		Description: "Show version information",
		Usage:       "fieldops version [flags]",
		Examples: []string{
			"fieldops version",
			"fieldops version --verbose",
		},
		Run: func(args []string) error { return versionCommand(versionInfoFromGlobals(), args) },
	})

	r.Register(&Command{
		Name:        "help",
		Description: "Show help information",
		Usage:       "fieldops help [command]",
		Examples: []string{
			"fieldops help",
			"fieldops help deploy",
		},
		Run: func(args []string) error {
			r.PrintHelp(os.Stdout)
			return nil
		},
	})
}

func versionInfoFromGlobals() VersionInfo {
	return VersionInfo{Version: version, Commit: commit, Date: date}
}
