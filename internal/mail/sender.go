package mail

import (
	"fmt"
	"sort"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/englishbay/zoomreport/internal/logging"
)

// Settings holds the SMTP configuration for a Sender.
type Settings struct {
	Server   string
	Port     int
	From     string
	Password string

	// TimezoneLabel is appended to the generation timestamp in message bodies.
	TimezoneLabel string
}

// Sender sends report and test emails over SMTP with STARTTLS.
type Sender struct {
	settings Settings
	log      logging.Logger
	now      func() time.Time

	// send is swapped out in tests.
	send func(s Settings, msg *gomail.Msg) error
}

// NewSender creates a Sender. logger may be nil.
func NewSender(settings Settings, logger logging.Logger) *Sender {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Sender{
		settings: settings,
		log:      logger,
		now:      time.Now,
		send:     dialAndSend,
	}
}

func dialAndSend(s Settings, msg *gomail.Msg) error {
	client, err := gomail.NewClient(s.Server,
		gomail.WithPort(s.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.From),
		gomail.WithPassword(s.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client.DialAndSend(msg)
}

// SendReport emails the report workbook to the recipients with the
// participant summary in the body.
func (s *Sender) SendReport(attachmentPath string, recipients, participants []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.settings.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	now := s.now()
	msg.Subject("Zoom Attendance Report - " + now.Format("2006-01-02"))
	msg.SetBodyString(gomail.TypeTextPlain, s.reportBody(now, participants))
	msg.AttachFile(attachmentPath)

	if err := s.send(s.settings, msg); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	s.log.Info("report email sent",
		"recipients", len(recipients),
		logging.KeyStatus, logging.StatusSuccess)
	return nil
}

// SendTest sends a minimal message to verify the SMTP configuration.
func (s *Sender) SendTest(recipient string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.settings.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Test Email - Zoom Attendance System")
	msg.SetBodyString(gomail.TypeTextPlain, "Test email successful!")

	if err := s.send(s.settings, msg); err != nil {
		return fmt.Errorf("failed to send test email: %w", err)
	}
	return nil
}

func (s *Sender) reportBody(now time.Time, participants []string) string {
	generated := now.Format("2006-01-02 at 15:04")
	if s.settings.TimezoneLabel != "" {
		generated += " " + s.settings.TimezoneLabel
	}

	return fmt.Sprintf(`Hello,

Please find attached the Zoom attendance report.

Generated: %s

Participants:
%s

Best regards,
Zoom Attendance System
`, generated, ParticipantSummary(participants))
}

// ParticipantSummary deduplicates the participant names, sorts them
// alphabetically and joins them with newlines for use in a message body.
func ParticipantSummary(participants []string) string {
	seen := make(map[string]bool)
	var unique []string
	for _, name := range participants {
		if !seen[name] {
			seen[name] = true
			unique = append(unique, name)
		}
	}
	if len(unique) == 0 {
		return "No participants found"
	}
	sort.Strings(unique)
	return strings.Join(unique, "\n")
}
