package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"sigs.k8s.io/kind/pkg/cluster"
	"sigs.k8s.io/kind/pkg/cmd"
)

const defaultClusterName = "fieldops-demo"

func clusterCommand(args []string) error {
	if len(args) < 1 {
		printClusterUsage()
		return fmt.Errorf("no cluster action specified")
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "create":
		return clusterCreate(actionArgs)
	case "delete":
		return clusterDelete(actionArgs)
	case "help", "-h", "--help":
		printClusterUsage()
		return nil
	default:
		printClusterUsage()
		return fmt.Errorf("unknown cluster action: %s", action)
	}
}

func printClusterUsage() {
	fmt.Fprintf(os.Stderr, `Manage local Kubernetes clusters using kind

USAGE:
    fieldops cluster <action> [flags]

ACTIONS:
    create      Create a new kind cluster
    delete      Delete a kind cluster (no error if it does not exist)

FLAGS:
    --name string         Cluster name (default "fieldops-demo")
    --node-image string   Node image, e.g. kindest/node:v1.31.2
    --config string       Path to a kind cluster config file
    --wait duration       Wait for the control plane to be ready

EXAMPLES:
    # Create a cluster with default settings
    fieldops cluster create

    # Pin the Kubernetes version for an upgrade demo
    fieldops cluster create --node-image kindest/node:v1.31.2 --wait 60s

    # Clean up
    fieldops cluster delete
`)
}

func clusterCreate(args []string) error {
	fs := flag.NewFlagSet("cluster create", flag.ExitOnError)
	name := fs.String("name", defaultClusterName, "Cluster name")
	nodeImage := fs.String("node-image", "", "Node image")
	configPath := fs.String("config", "", "Path to kind config file")
	wait := fs.Duration("wait", time.Duration(0), "Wait for control plane to be ready")

	fs.Usage = printClusterUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	provider := cluster.NewProvider(
		cluster.ProviderWithLogger(cmd.NewLogger()),
	)

	existing, err := provider.List()
	if err != nil {
		return fmt.Errorf("failed to list clusters: %w", err)
	}
	if slices.Contains(existing, *name) {
		return fmt.Errorf("cluster %q already exists", *name)
	}

	fmt.Printf("Creating kind cluster: %s\n", *name)

	opts := []cluster.CreateOption{
		cluster.CreateWithWaitForReady(*wait),
	}
	if *nodeImage != "" {
		opts = append(opts, cluster.CreateWithNodeImage(*nodeImage))
	}
	if *configPath != "" {
		opts = append(opts, cluster.CreateWithConfigFile(*configPath))
	}

	if err := provider.Create(*name, opts...); err != nil {
		return fmt.Errorf("failed to create cluster: %w", err)
	}

	fmt.Printf("✓ Cluster '%s' created successfully\n", *name)
	fmt.Printf("\nTo use this cluster:\n")
	fmt.Printf("  kubectl cluster-info --context kind-%s\n", *name)
	return nil
}

func clusterDelete(args []string) error {
	fs := flag.NewFlagSet("cluster delete", flag.ExitOnError)
	name := fs.String("name", defaultClusterName, "Cluster name")
	kubeconfigPath := fs.String("kubeconfig", "", "Path to kubeconfig (defaults to standard location)")

	fs.Usage = printClusterUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	provider := cluster.NewProvider(
		cluster.ProviderWithLogger(cmd.NewLogger()),
	)

	existing, err := provider.List()
	if err != nil {
		return fmt.Errorf("failed to list clusters: %w", err)
	}
	if !slices.Contains(existing, *name) {
		fmt.Printf("Cluster '%s' does not exist, nothing to delete\n", *name)
		return nil
	}

	fmt.Printf("Deleting kind cluster: %s\n", *name)

	if err := provider.Delete(*name, *kubeconfigPath); err != nil {
		return fmt.Errorf("failed to delete cluster: %w", err)
	}

	fmt.Printf("✓ Cluster '%s' deleted successfully\n", *name)
	return nil
}
