package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/englishbay/zoomreport/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show which configuration values are present",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration status:")
			fmt.Fprintf(out, "  Zoom account ID:    %s\n", presence(cfg.ZoomAccountID != ""))
			fmt.Fprintf(out, "  Zoom client ID:     %s\n", presence(cfg.ZoomClientID != ""))
			fmt.Fprintf(out, "  Zoom client secret: %s\n", presence(cfg.ZoomClientSecret != ""))
			fmt.Fprintf(out, "  Sender email:       %s\n", presence(cfg.SenderEmail != ""))
			fmt.Fprintf(out, "  Sender password:    %s\n", presence(cfg.SenderPassword != ""))
			fmt.Fprintf(out, "  SMTP server:        %s:%d\n", cfg.SMTPServer, cfg.SMTPPort)
			fmt.Fprintf(out, "  Recipients:         %d configured\n", len(cfg.Recipients))
			fmt.Fprintf(out, "  Report timezone:    %s (%s)\n", cfg.Timezone, cfg.TimezoneLabel)
			return nil
		},
	}
}

func presence(set bool) string {
	if set {
		return "set"
	}
	return "missing"
}

func newInitCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .env template to fill in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(output); err == nil {
				return fmt.Errorf("%s already exists, not overwriting", output)
			}
			if err := os.WriteFile(output, []byte(config.Template), 0600); err != nil {
				return fmt.Errorf("failed to write template: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s - copy to .env and fill in your values\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", ".env.template", "Path of the template file to write")
	return cmd
}
