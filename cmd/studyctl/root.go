package main

import (
	"fmt"
	"time"

	"studyBuddy/internal/client"
	"studyBuddy/internal/config"
	"studyBuddy/internal/logger"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	apiURL  string
	output  string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "studyctl",
		Short:         "studyctl - command line client for the study tracker API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.complete(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "API base URL (default from config, then "+client.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", formatTable, "Output format: table, json or yaml")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log requests to stderr")

	rootCmd.AddCommand(newTasksCmd(opts))
	rootCmd.AddCommand(newTimerCmd(opts))
	rootCmd.AddCommand(newResetCmd(opts))
	rootCmd.AddCommand(newFocusCmd(opts))

	return rootCmd
}

// complete fills unset flags from the config and validates the rest.
func (o *rootOptions) complete(cmd *cobra.Command) error {
	switch o.output {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}

	if o.verbose {
		if err := logger.Init(true); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}

	if o.apiURL != "" && o.timeout != 0 {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.apiURL == "" {
		o.apiURL = cfg.Client.APIURL
	}
	if o.timeout == 0 {
		o.timeout = cfg.Client.Timeout
	}
	return nil
}

func (o *rootOptions) client() *client.Client {
	opts := []client.Option{}
	if o.timeout > 0 {
		opts = append(opts, client.WithTimeout(o.timeout))
	}
	return client.New(o.apiURL, opts...)
}
