package ctl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// Config carries the flags shared by every subcommand.
type Config struct {
	Addr    string
	Timeout time.Duration
}

// DefaultAddr resolves the daemon address from SESSIONCTL_ADDR.
func DefaultAddr() string {
	if v := os.Getenv("SESSIONCTL_ADDR"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}

// BuildRootCmd constructs the sessionctl command tree.
func BuildRootCmd() *cobra.Command {
	cfg := &Config{Addr: DefaultAddr(), Timeout: 10 * time.Second}

	root := &cobra.Command{
		Use:           "sessionctl",
		Short:         "Operator CLI for the sessiond vision-session daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Daemon base URL (defaults SESSIONCTL_ADDR)")
	root.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout")

	statusCmd := &cobra.Command{Use: "status", Short: "Show coordinator status", RunE: func(cmd *cobra.Command, args []string) error {
		c := NewClient(cfg.Addr, cfg.Timeout)
		st, err := c.Status(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(st)
	}}

	enginesCmd := &cobra.Command{Use: "engines", Short: "List selectable engines", RunE: func(cmd *cobra.Command, args []string) error {
		c := NewClient(cfg.Addr, cfg.Timeout)
		list, err := c.Engines(cmd.Context())
		if err != nil {
			return err
		}
		for _, e := range list.Engines {
			fmt.Printf("%s/%s\t%s\n", e.Mode, e.Engine, e.Description)
		}
		return nil
	}}

	switchCmd := &cobra.Command{
		Use:     "switch <mode> [engine]",
		Short:   "Switch to a mode (ar|pose|none), optionally naming the engine",
		Example: "  sessionctl switch pose movenet\n  sessionctl switch ar\n  sessionctl switch none",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := args[0]
			engine := ""
			if len(args) == 2 {
				engine = args[1]
			}
			c := NewClient(cfg.Addr, cfg.Timeout)
			st, err := c.Switch(cmd.Context(), mode, engine)
			if err != nil {
				return err
			}
			return printJSON(st)
		},
	}

	resetCmd := &cobra.Command{Use: "reset", Short: "Clear AR placements on the active session", RunE: func(cmd *cobra.Command, args []string) error {
		c := NewClient(cfg.Addr, cfg.Timeout)
		if err := c.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	}}

	placeCmd := &cobra.Command{Use: "place", Short: "Place a marker at the detected surface", RunE: func(cmd *cobra.Command, args []string) error {
		c := NewClient(cfg.Addr, cfg.Timeout)
		pl, err := c.Place(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(pl)
	}}

	watchCmd := &cobra.Command{Use: "watch", Short: "Tail the lifecycle/result event stream (Ctrl+C to stop)", RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		c := NewClient(cfg.Addr, cfg.Timeout)
		return c.Watch(ctx, os.Stdout)
	}}

	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})

	root.AddCommand(statusCmd, enginesCmd, switchCmd, resetCmd, placeCmd, watchCmd, completionCmd)
	return root
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
