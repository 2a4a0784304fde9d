package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sitegen-base/pkg/billing"
	"sitegen-base/pkg/config"
	"sitegen-base/pkg/generate"
	"sitegen-base/pkg/logger"
	"sitegen-base/pkg/models"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flagBaseURL    string
		flagAPIKey     string
		flagPublicURL  string
		flagOut        string
		flagPretty     bool
		flagShowErrors bool
		flagStrictTLS  bool
		flagVerbose    bool
	)

	cmd := &cobra.Command{
		Use:          "sitegen-base",
		Short:        "Generate the public catalog document from a billing install",
		Long:         "One-shot batch job: pulls catalog, pricing and branding data from a billing platform's API and writes one public JSON document for the static front end.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if flagBaseURL != "" {
				cfg.BaseURL = flagBaseURL
			}
			if flagAPIKey != "" {
				cfg.APIKey = flagAPIKey
			}
			if flagPublicURL != "" {
				cfg.PublicURL = flagPublicURL
			}
			if flagOut != "" {
				cfg.OutFile = flagOut
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Pretty = flagPretty
			}
			if cmd.Flags().Changed("show-errors") {
				cfg.ShowErrors = flagShowErrors
			}
			if cmd.Flags().Changed("strict-tls") {
				cfg.StrictTLS = flagStrictTLS
			}
			cfg.Verbose = flagVerbose
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.New(cfg.Verbose)
			defer log.Sync()

			api := billing.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, cfg.StrictTLS)
			gen := generate.New(cfg, api, log)
			doc := gen.Run()

			if err := writeDocument(cfg.OutFile, doc, cfg.Pretty); err != nil {
				return fmt.Errorf("write %s: %w", cfg.OutFile, err)
			}

			if warnings := gen.Warnings(); cfg.ShowErrors && len(warnings) > 0 {
				color.Yellow("warnings:")
				for _, warning := range warnings {
					color.Yellow(" - %s", warning)
				}
			}
			log.Infof("wrote %s", cfg.OutFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagBaseURL, "base-url", "", "billing install base URL")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "admin API key")
	cmd.Flags().StringVar(&flagPublicURL, "public-url", "", "public site URL published in meta")
	cmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file path")
	cmd.Flags().BoolVar(&flagPretty, "pretty", true, "pretty-print the output JSON")
	cmd.Flags().BoolVar(&flagShowErrors, "show-errors", false, "print accumulated warnings")
	cmd.Flags().BoolVar(&flagStrictTLS, "strict-tls", true, "verify the billing install's TLS certificate")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	return cmd
}

func writeDocument(path string, doc *models.Document, pretty bool) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o775); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(doc); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
