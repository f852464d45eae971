package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/repo"
	"helm.sh/helm/v3/pkg/storage/driver"
	"helm.sh/helm/v3/pkg/strvals"

	"github.com/acmehome/fieldops/internal/adapters/outbound/kube"
)

const (
	defaultReleaseName = "eks-demo-app"
	defaultChart       = "chart/eks-demo-app"
)

func deployCommand(args []string) error {
	if len(args) < 1 {
		printDeployUsage()
		return fmt.Errorf("no deploy action specified")
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "install":
		return deployInstall(actionArgs)
	case "upgrade":
		return deployUpgrade(actionArgs)
	case "uninstall":
		return deployUninstall(actionArgs)
	case "status":
		return deployStatus(actionArgs)
	case "verify":
		return deployVerify(actionArgs)
	case "help", "-h", "--help":
		printDeployUsage()
		return nil
	default:
		printDeployUsage()
		return fmt.Errorf("unknown deploy action: %s", action)
	}
}

func printDeployUsage() {
	fmt.Fprintf(os.Stderr, `Deploy and verify the demo app using Helm

USAGE:
    fieldops deploy <action> [flags]

ACTIONS:
    install     Install the demo app chart
    upgrade     Upgrade the release (atomic, rolls back on failure)
    uninstall   Remove the release (no error if it does not exist)
    status      Show release status
    verify      Wait for the Deployment rollout and print pod logs on failure

FLAGS (install/upgrade):
    --release-name string   Helm release name (default "eks-demo-app")
    --namespace string      Kubernetes namespace (default "default")
    --chart string          Chart path or repo/chart reference (default "chart/eks-demo-app")
    --repo string           Helm repository as name=url, added before the chart is located
    --values string         Path to a values YAML file
    --set value             Set values, e.g. --set image.tag=v2 (repeatable)
    --wait                  Wait for resources to become ready (default true)
    --timeout duration      Wait timeout (default 5m)

EXAMPLES:
    # Install from the local chart
    fieldops deploy install

    # Install from a repository
    fieldops deploy install --repo demo=https://charts.example.com --chart demo/eks-demo-app

    # Upgrade the image for the rolling-update demo
    fieldops deploy upgrade --set image.tag=v2

    # Verify the rollout finished
    fieldops deploy verify --deployment eks-demo-app

    # Clean up
    fieldops deploy uninstall
`)
}

// stringList collects repeatable --set flags.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// helmConfig initializes Helm against the current kubeconfig context.
func helmConfig(namespace string) (*cli.EnvSettings, *action.Configuration, error) {
	settings := cli.New()
	settings.SetNamespace(namespace)

	cfg := new(action.Configuration)
	if err := cfg.Init(settings.RESTClientGetter(), namespace,
		os.Getenv("HELM_DRIVER"), func(format string, v ...interface{}) {
			fmt.Printf(format+"\n", v...)
		}); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Helm: %w", err)
	}
	return settings, cfg, nil
}

// buildValues merges a values file with --set overrides, overrides winning.
func buildValues(valuesFile string, sets []string) (map[string]interface{}, error) {
	values := map[string]interface{}{}

	if valuesFile != "" {
		data, err := os.ReadFile(filepath.Clean(valuesFile))
		if err != nil {
			return nil, fmt.Errorf("failed to read values file: %w", err)
		}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse values file: %w", err)
		}
	}

	for _, set := range sets {
		if err := strvals.ParseInto(set, values); err != nil {
			return nil, fmt.Errorf("failed to parse --set %q: %w", set, err)
		}
	}
	return values, nil
}

func deployInstall(args []string) error {
	fs := flag.NewFlagSet("deploy install", flag.ExitOnError)
	releaseName := fs.String("release-name", defaultReleaseName, "Helm release name")
	namespace := fs.String("namespace", "default", "Kubernetes namespace")
	chartRef := fs.String("chart", defaultChart, "Chart path or repo/chart reference")
	repoSpec := fs.String("repo", "", "Helm repository as name=url")
	valuesFile := fs.String("values", "", "Path to values YAML file")
	var sets stringList
	fs.Var(&sets, "set", "Set values (repeatable)")
	wait := fs.Bool("wait", true, "Wait for resources to become ready")
	timeout := fs.Duration("timeout", 5*time.Minute, "Wait timeout")

	fs.Usage = printDeployUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Installing demo app (release: %s, namespace: %s, chart: %s)\n",
		*releaseName, *namespace, *chartRef)

	settings, cfg, err := helmConfig(*namespace)
	if err != nil {
		return err
	}

	if *repoSpec != "" {
		name, url, ok := strings.Cut(*repoSpec, "=")
		if !ok {
			return fmt.Errorf("invalid --repo %q, expected name=url", *repoSpec)
		}
		if err := addHelmRepo(settings, name, url); err != nil {
			return fmt.Errorf("failed to add Helm repository: %w", err)
		}
	}

	client := action.NewInstall(cfg)
	client.ReleaseName = *releaseName
	client.Namespace = *namespace
	client.CreateNamespace = true
	client.Wait = *wait
	client.Timeout = *timeout

	chartPath, err := client.ChartPathOptions.LocateChart(*chartRef, settings)
	if err != nil {
		return fmt.Errorf("failed to locate chart: %w", err)
	}

	chart, err := loader.Load(chartPath)
	if err != nil {
		return fmt.Errorf("failed to load chart: %w", err)
	}

	values, err := buildValues(*valuesFile, sets)
	if err != nil {
		return err
	}

	release, err := client.Run(chart, values)
	if err != nil {
		return fmt.Errorf("failed to install demo app: %w", err)
	}

	fmt.Printf("✓ Demo app installed successfully (release: %s, status: %s)\n",
		release.Name, release.Info.Status)
	fmt.Printf("\nTo verify deployment:\n")
	fmt.Printf("  fieldops deploy verify --namespace %s\n", *namespace)
	return nil
}

func deployUpgrade(args []string) error {
	fs := flag.NewFlagSet("deploy upgrade", flag.ExitOnError)
	releaseName := fs.String("release-name", defaultReleaseName, "Helm release name")
	namespace := fs.String("namespace", "default", "Kubernetes namespace")
	chartRef := fs.String("chart", defaultChart, "Chart path or repo/chart reference")
	valuesFile := fs.String("values", "", "Path to values YAML file")
	var sets stringList
	fs.Var(&sets, "set", "Set values (repeatable)")
	wait := fs.Bool("wait", true, "Wait for upgrade to complete")
	timeout := fs.Duration("timeout", 5*time.Minute, "Wait timeout")

	fs.Usage = printDeployUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Upgrading demo app (release: %s, namespace: %s)\n", *releaseName, *namespace)

	settings, cfg, err := helmConfig(*namespace)
	if err != nil {
		return err
	}

	client := action.NewUpgrade(cfg)
	client.Namespace = *namespace
	client.Wait = *wait
	client.Timeout = *timeout
	// Atomic keeps the live-upgrade demo recoverable: a bad image rolls back
	// instead of stranding the release.
	client.Atomic = true

	chartPath, err := client.ChartPathOptions.LocateChart(*chartRef, settings)
	if err != nil {
		return fmt.Errorf("failed to locate chart: %w", err)
	}

	chart, err := loader.Load(chartPath)
	if err != nil {
		return fmt.Errorf("failed to load chart: %w", err)
	}

	values, err := buildValues(*valuesFile, sets)
	if err != nil {
		return err
	}

	release, err := client.Run(*releaseName, chart, values)
	if err != nil {
		return fmt.Errorf("failed to upgrade demo app: %w", err)
	}

	fmt.Printf("✓ Demo app upgraded successfully (release: %s, status: %s)\n",
		release.Name, release.Info.Status)
	return nil
}

func deployUninstall(args []string) error {
	fs := flag.NewFlagSet("deploy uninstall", flag.ExitOnError)
	releaseName := fs.String("release-name", defaultReleaseName, "Helm release name")
	namespace := fs.String("namespace", "default", "Kubernetes namespace")

	fs.Usage = printDeployUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Uninstalling demo app (release: %s, namespace: %s)\n", *releaseName, *namespace)

	_, cfg, err := helmConfig(*namespace)
	if err != nil {
		return err
	}

	client := action.NewUninstall(cfg)
	if _, err := client.Run(*releaseName); err != nil {
		if errors.Is(err, driver.ErrReleaseNotFound) {
			fmt.Printf("Release '%s' does not exist, nothing to uninstall\n", *releaseName)
			return nil
		}
		return fmt.Errorf("failed to uninstall demo app: %w", err)
	}

	fmt.Printf("✓ Demo app uninstalled successfully\n")
	return nil
}

func deployStatus(args []string) error {
	fs := flag.NewFlagSet("deploy status", flag.ExitOnError)
	releaseName := fs.String("release-name", defaultReleaseName, "Helm release name")
	namespace := fs.String("namespace", "default", "Kubernetes namespace")

	fs.Usage = printDeployUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, cfg, err := helmConfig(*namespace)
	if err != nil {
		return err
	}

	client := action.NewStatus(cfg)
	release, err := client.Run(*releaseName)
	if err != nil {
		return fmt.Errorf("failed to get release status: %w", err)
	}

	fmt.Printf("Release: %s\n", release.Name)
	fmt.Printf("Namespace: %s\n", release.Namespace)
	fmt.Printf("Status: %s\n", release.Info.Status)
	fmt.Printf("Version: %d\n", release.Version)
	fmt.Printf("Last deployed: %s\n", release.Info.LastDeployed.Format(time.RFC3339))
	return nil
}

func deployVerify(args []string) error {
	fs := flag.NewFlagSet("deploy verify", flag.ExitOnError)
	namespace := fs.String("namespace", "default", "Kubernetes namespace")
	deployment := fs.String("deployment", defaultReleaseName, "Deployment name to watch")
	selector := fs.String("selector", "app=eks-demo-app", "Pod label selector for diagnostics")
	timeout := fs.Duration("timeout", 3*time.Minute, "Rollout timeout")
	tail := fs.Int64("tail", 20, "Log lines per pod on failure")

	fs.Usage = printDeployUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	inspector, err := kube.NewEnvironmentInspector()
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Printf("Waiting for deployment %s/%s rollout...\n", *namespace, *deployment)

	if err := inspector.WaitForDeploymentRollout(ctx, *namespace, *deployment); err != nil {
		fmt.Println("❌ Rollout did not complete, recent pod logs:")
		logs, logErr := inspector.PodLogs(context.Background(), *namespace, *selector, *tail)
		if logErr != nil {
			fmt.Printf("  (failed to fetch logs: %v)\n", logErr)
		}
		for pod, out := range logs {
			fmt.Printf("--- %s ---\n", pod)
			for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
				fmt.Printf("  %s\n", line)
			}
		}
		return err
	}

	fmt.Printf("✓ Deployment %s/%s rolled out successfully\n", *namespace, *deployment)
	return nil
}

// addHelmRepo adds a Helm repository and downloads its index.
func addHelmRepo(settings *cli.EnvSettings, name, url string) error {
	repoFile := settings.RepositoryConfig
	repoDir := filepath.Dir(repoFile)

	if err := os.MkdirAll(repoDir, 0o750); err != nil {
		return fmt.Errorf("failed to create repository directory: %w", err)
	}

	entry := &repo.Entry{
		Name: name,
		URL:  url,
	}

	r, err := repo.NewChartRepository(entry, getter.All(settings))
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}

	if _, err := r.DownloadIndexFile(); err != nil {
		return fmt.Errorf("failed to download repository index: %w", err)
	}

	repoFileData, err := repo.LoadFile(repoFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load repository file: %w", err)
	}
	if os.IsNotExist(err) {
		repoFileData = repo.NewFile()
	}

	repoFileData.Update(entry)

	if err := repoFileData.WriteFile(repoFile, 0o644); err != nil {
		return fmt.Errorf("failed to write repository file: %w", err)
	}

	fmt.Printf("✓ Repository '%s' added: %s\n", name, url)
	return nil
}
