package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/englishbay/zoomreport/internal/config"
	"github.com/englishbay/zoomreport/internal/logging"
	"github.com/englishbay/zoomreport/internal/mail"
)

func newEmailTestCmd() *cobra.Command {
	var recipient string

	cmd := &cobra.Command{
		Use:   "email-test",
		Short: "Send a test email to verify the SMTP configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if !cfg.HasMailCredentials() {
				return fmt.Errorf("missing email credentials: set SENDER_EMAIL and SENDER_PASSWORD")
			}

			if recipient == "" {
				recipient = prompt("Test recipient: ")
			}
			if recipient == "" {
				return fmt.Errorf("a recipient is required: pass --to")
			}

			sender := mail.NewSender(mail.Settings{
				Server:        cfg.SMTPServer,
				Port:          cfg.SMTPPort,
				From:          cfg.SenderEmail,
				Password:      cfg.SenderPassword,
				TimezoneLabel: cfg.TimezoneLabel,
			}, nil)
			if err := sender.SendTest(recipient); err != nil {
				return err
			}

			logging.DefaultLogger().Info("test email sent", logging.KeyStatus, logging.StatusSuccess)
			return nil
		},
	}

	cmd.Flags().StringVar(&recipient, "to", "", "Recipient of the test email")
	return cmd
}
