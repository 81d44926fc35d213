package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/englishbay/zoomreport/internal/config"
	"github.com/englishbay/zoomreport/internal/excel"
	"github.com/englishbay/zoomreport/internal/instrumentation"
	"github.com/englishbay/zoomreport/internal/logging"
	"github.com/englishbay/zoomreport/internal/mail"
	"github.com/englishbay/zoomreport/internal/report"
	"github.com/englishbay/zoomreport/internal/timeutil"
	"github.com/englishbay/zoomreport/internal/zoom"
)

func newCronCmd() *cobra.Command {
	var (
		meetingID   string
		window      string
		sendEmail   bool
		outputDir   string
		dumpMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "cron",
		Short: "Generate and email an attendance report non-interactively",
		Long: `Generate an attendance report for a fixed meeting ID and lookback
window, email it to the configured recipients and remove the temporary
report file. Designed to run from a scheduler; never prompts, validates all
configuration up front and exits non-zero on failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.DefaultLogger()
			log.Info("starting automated attendance report run")

			cfg := config.Load()
			if meetingID == "" {
				return fmt.Errorf("--meeting is required for scheduled runs")
			}
			if !cfg.HasZoomCredentials() {
				return fmt.Errorf("missing Zoom credentials: set ZOOM_ACCOUNT_ID, ZOOM_CLIENT_ID and ZOOM_CLIENT_SECRET")
			}
			if sendEmail {
				if !cfg.HasMailCredentials() {
					return fmt.Errorf("email enabled but missing credentials: set SENDER_EMAIL and SENDER_PASSWORD")
				}
				if len(cfg.Recipients) == 0 {
					return fmt.Errorf("email enabled but no recipients configured: set EMAIL_RECIPIENTS")
				}
			}

			ctx := context.Background()
			lookback := timeutil.ParseWindow(window)

			conv, err := timeutil.NewConverter(cfg.Timezone, cfg.TimezoneLabel)
			if err != nil {
				return err
			}

			provider := instrumentation.NewProvider(dumpMetrics)
			defer func() { _ = provider.Shutdown(ctx) }()
			metrics, err := provider.NewMetrics()
			if err != nil {
				return fmt.Errorf("failed to initialize metrics: %w", err)
			}

			log.Info("looking for meetings",
				logging.KeyMeeting, meetingID,
				logging.KeyWindow, lookback.String())

			client := zoom.NewClient(ctx, cfg.ZoomAccountID, cfg.ZoomClientID, cfg.ZoomClientSecret,
				zoom.WithLogger(log), zoom.WithMetrics(metrics))
			builder := report.NewBuilder(client, conv, log, metrics)
			rows, names := builder.Build(ctx, meetingID, lookback)

			path, err := excel.NewWriter(outputDir, cfg.TimezoneLabel).Write(rows)
			if err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			// The workbook only exists to be attached; clean it up either way.
			defer func() {
				if err := os.Remove(path); err != nil {
					log.Warn("failed to remove report file", "path", path, logging.KeyError, err.Error())
				}
			}()
			log.Info("report generated", "path", path, "rows", len(rows))

			if sendEmail {
				sender := mail.NewSender(mail.Settings{
					Server:        cfg.SMTPServer,
					Port:          cfg.SMTPPort,
					From:          cfg.SenderEmail,
					Password:      cfg.SenderPassword,
					TimezoneLabel: cfg.TimezoneLabel,
				}, log)
				if err := sender.SendReport(path, cfg.Recipients, names); err != nil {
					return fmt.Errorf("report generated but email failed: %w", err)
				}
				log.Info("report generated and emailed successfully")
			} else {
				log.Info("report generated successfully (email disabled)")
			}

			if dumpMetrics {
				if err := provider.Dump(ctx, os.Stdout); err != nil {
					log.Warn("failed to dump metrics", logging.KeyError, err.Error())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&meetingID, "meeting", "", "Meeting ID to report on (required)")
	cmd.Flags().StringVar(&window, "window", "24h", "How far back to look, e.g. 2h, 30m, 1d")
	cmd.Flags().BoolVar(&sendEmail, "email", true, "Email the report to the configured recipients")
	cmd.Flags().StringVar(&outputDir, "output-dir", os.TempDir(), "Directory to write the report file to")
	cmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "Print collected metrics to stdout after the run")
	return cmd
}
