package main

import (
	"flag"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

func versionCommand(info VersionInfo, args []string) error {
	fs := flag.NewFlagSet("version", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "Also probe local tooling versions")

	fs.Usage = func() {
		fmt.Println(`Show version information for fieldops and local tooling

USAGE:
    fieldops version [flags]

FLAGS:
    --verbose   Also probe docker, kubectl, helm, and kind

EXAMPLES:
    fieldops version
    fieldops version --verbose`)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("fieldops %s (commit: %s, built: %s, %s/%s)\n",
		info.Version, info.Commit, info.Date, runtime.GOOS, runtime.GOARCH)

	if !*verbose {
		return nil
	}

	fmt.Println("\nLocal tooling:")
	table := NewTableWriter([]string{"Tool", "Version", "Status"})

	tools := []struct {
		name    string
		command []string
	}{
		{"Docker", []string{"docker", "version", "--format", "{{.Client.Version}}"}},
		{"kubectl", []string{"kubectl", "version", "--client", "--short"}},
		{"Helm", []string{"helm", "version", "--short"}},
		{"kind", []string{"kind", "version"}},
	}

	for _, tool := range tools {
		version, err := toolVersion(tool.command)
		status := "✓"
		if err != nil {
			status = "○ not found"
			version = "-"
		}
		table.AddRow([]string{tool.name, version, status})
	}

	table.Print()
	return nil
}

// toolVersion runs a version command and returns its first output line.
func toolVersion(command []string) (string, error) {
	out, err := exec.Command(command[0], command[1:]...).Output() // #nosec G204 - fixed command list above
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}
