package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/acmehome/fieldops/internal/sessions"
)

func sessionsCommand(args []string) error {
	if len(args) < 1 {
		printSessionsUsage()
		return fmt.Errorf("no sessions action specified")
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "index":
		return sessionsIndex(actionArgs)
	case "check":
		return sessionsCheck(actionArgs)
	case "help", "-h", "--help":
		printSessionsUsage()
		return nil
	default:
		printSessionsUsage()
		return fmt.Errorf("unknown sessions action: %s", action)
	}
}

func printSessionsUsage() {
	fmt.Fprintf(os.Stderr, `Maintain the conference session catalog

USAGE:
    fieldops sessions <action> [flags]

ACTIONS:
    index       Regenerate the top-level README from sessions/<ID>/README.md
    check       Lint the catalog: IDs, index entries, relative links

FLAGS:
    --root string   Catalog root directory (default ".")

EXAMPLES:
    fieldops sessions index
    fieldops sessions check --root ~/talks
`)
}

func sessionsIndex(args []string) error {
	fs := flag.NewFlagSet("sessions index", flag.ExitOnError)
	root := fs.String("root", ".", "Catalog root directory")

	fs.Usage = printSessionsUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	found, err := sessions.Scan(*root)
	if err != nil {
		return err
	}
	if err := sessions.WriteIndex(*root, found); err != nil {
		return err
	}

	table := NewTableWriter([]string{"Session", "Title"})
	for _, s := range found {
		table.AddRow([]string{s.ID, s.Title})
	}
	table.Print()
	fmt.Printf("✓ Indexed %d sessions\n", len(found))
	return nil
}

func sessionsCheck(args []string) error {
	fs := flag.NewFlagSet("sessions check", flag.ExitOnError)
	root := fs.String("root", ".", "Catalog root directory")

	fs.Usage = printSessionsUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	issues, err := sessions.Check(*root)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Println("✓ Session catalog is consistent")
		return nil
	}

	table := NewTableWriter([]string{"Kind", "Path", "Detail"})
	for _, issue := range issues {
		table.AddRow([]string{string(issue.Kind), issue.Path, issue.Detail})
	}
	table.Print()
	return fmt.Errorf("found %d catalog issues", len(issues))
}
