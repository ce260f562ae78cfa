// Command siteadmin provisions admins and chatbot rules outside the web
// surface. It reads the same config file as the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"institute-site-backend/config"
	"institute-site-backend/internal/auth"
	"institute-site-backend/internal/chatbot"
	"institute-site-backend/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	var run func(context.Context, store.Store, []string, io.Writer) error
	switch cmd {
	case "create-admin":
		run = cmdCreateAdmin
	case "load-rules":
		run = cmdLoadRules
	case "list-rules":
		run = cmdListRules
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err := withStore(func(ctx context.Context, s store.Store) error {
		return run(ctx, s, args, os.Stdout)
	}); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	yellow := color.New(color.FgYellow)

	fmt.Println("Usage: siteadmin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  create-admin -username U -password P   Provision an admin account")
	fmt.Println("  load-rules <rules.yaml>                Append chatbot rules from a file")
	fmt.Println("  list-rules                             Show chatbot rules in match order")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  CONFIG_PATH   Config file (default: ./config/config.yaml)")
}

// withStore opens the configured store for the duration of fn.
func withStore(fn func(context.Context, store.Store) error) error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := store.Open(ctx, &cfg.Database, zerolog.Nop())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer s.Close(ctx)

	return fn(ctx, s)
}

func cmdCreateAdmin(ctx context.Context, s store.Store, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(out)
	username := fs.String("username", "", "admin username")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, err := s.FindAdminByUsername(ctx, strings.TrimSpace(*username))
	if err == nil {
		return fmt.Errorf("admin %q already exists", *username)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	admin, err := auth.NewVerifier(s).CreateAdmin(ctx, *username, *password)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Fprintf(out, "Created admin %s\n", admin.Username)
	return nil
}

func cmdLoadRules(ctx context.Context, s store.Store, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: siteadmin load-rules <rules.yaml>")
	}

	rules, err := chatbot.LoadRulesFile(args[0])
	if err != nil {
		return err
	}
	n, err := chatbot.InsertRules(ctx, s, rules)
	if err != nil {
		return fmt.Errorf("inserted %d of %d rules: %w", n, len(rules), err)
	}

	green := color.New(color.FgGreen)
	green.Fprintf(out, "Loaded %d chatbot rules from %s\n", n, args[0])
	return nil
}

func cmdListRules(ctx context.Context, s store.Store, _ []string, out io.Writer) error {
	rules, err := s.ListChatbotRules(ctx)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		fmt.Fprintln(out, "No chatbot rules.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tKEYWORDS\tRESPONSE")
	for _, r := range rules {
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.Priority, strings.Join(r.Keywords, ", "), r.Response)
	}
	return w.Flush()
}
