package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/englishbay/zoomreport/internal/config"
	"github.com/englishbay/zoomreport/internal/excel"
	"github.com/englishbay/zoomreport/internal/logging"
	"github.com/englishbay/zoomreport/internal/mail"
	"github.com/englishbay/zoomreport/internal/report"
	"github.com/englishbay/zoomreport/internal/timeutil"
	"github.com/englishbay/zoomreport/internal/zoom"
)

func newReportCmd() *cobra.Command {
	var (
		meetingID string
		window    string
		sendEmail bool
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate an attendance report",
		Long: `Fetch meetings and participants from the Zoom API, merge repeated
join/leave sessions per participant and save the attendance report as an
Excel file. Missing inputs are prompted for when running on a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if !cfg.HasZoomCredentials() {
				return fmt.Errorf("missing Zoom credentials: set ZOOM_ACCOUNT_ID, ZOOM_CLIENT_ID and ZOOM_CLIENT_SECRET")
			}

			if meetingID == "" && !cmd.Flags().Changed("meeting") {
				meetingID = prompt("Enter meeting ID (or press Enter for all meetings): ")
			}
			if !cmd.Flags().Changed("window") && isTerminal() {
				if in := prompt("Time to look back, e.g. 2h, 30m, 1d (default 1d): "); in != "" {
					window = in
				}
			}

			ctx := context.Background()
			lookback := timeutil.ParseWindow(window)

			conv, err := timeutil.NewConverter(cfg.Timezone, cfg.TimezoneLabel)
			if err != nil {
				return err
			}

			log := logging.DefaultLogger()
			log.Info("generating attendance report",
				logging.KeyMeeting, meetingID,
				logging.KeyWindow, lookback.String())

			client := zoom.NewClient(ctx, cfg.ZoomAccountID, cfg.ZoomClientID, cfg.ZoomClientSecret,
				zoom.WithLogger(log))
			builder := report.NewBuilder(client, conv, log, nil)
			rows, names := builder.Build(ctx, meetingID, lookback)

			path, err := excel.NewWriter(outputDir, cfg.TimezoneLabel).Write(rows)
			if err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			log.Info("report saved", "path", path, "rows", len(rows))

			if !sendEmail && isTerminal() {
				sendEmail = promptYes("Send via email? (y/n): ")
			}
			if !sendEmail {
				return nil
			}

			if !cfg.HasMailCredentials() {
				return fmt.Errorf("missing email credentials: set SENDER_EMAIL and SENDER_PASSWORD")
			}
			recipients := cfg.Recipients
			if len(recipients) == 0 {
				recipients = config.SplitList(prompt("Enter recipient emails (comma-separated): "))
			}
			if len(recipients) == 0 {
				return fmt.Errorf("no recipients configured: set EMAIL_RECIPIENTS")
			}

			sender := mail.NewSender(mail.Settings{
				Server:        cfg.SMTPServer,
				Port:          cfg.SMTPPort,
				From:          cfg.SenderEmail,
				Password:      cfg.SenderPassword,
				TimezoneLabel: cfg.TimezoneLabel,
			}, log)
			if err := sender.SendReport(path, recipients, names); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&meetingID, "meeting", "", "Meeting ID to report on (default: all recent meetings)")
	cmd.Flags().StringVar(&window, "window", "1d", "How far back to look, e.g. 2h, 30m, 1d")
	cmd.Flags().BoolVar(&sendEmail, "email", false, "Email the report to the configured recipients")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory to write the report file to")
	return cmd
}
