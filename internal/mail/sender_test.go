package mail

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

func newTestSender(captured **gomail.Msg) *Sender {
	s := NewSender(Settings{
		Server:        "smtp.example.com",
		Port:          587,
		From:          "reports@example.com",
		Password:      "hunter2",
		TimezoneLabel: "PST",
	}, nil)
	s.now = func() time.Time { return time.Date(2025, 8, 20, 10, 30, 0, 0, time.UTC) }
	s.send = func(_ Settings, msg *gomail.Msg) error {
		*captured = msg
		return nil
	}
	return s
}

func writeAttachment(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("workbook"), 0644))
	return path
}

func TestSendReport(t *testing.T) {
	var captured *gomail.Msg
	s := newTestSender(&captured)

	err := s.SendReport(writeAttachment(t), []string{"hr@example.com"}, []string{"Bob", "Alice", "Bob"})
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Equal(t, []string{"Zoom Attendance Report - 2025-08-20"}, captured.GetGenHeader(gomail.HeaderSubject))
	assert.Equal(t, []string{"<hr@example.com>"}, captured.GetToString())

	attachments := captured.GetAttachments()
	require.Len(t, attachments, 1)
	assert.Equal(t, "report.xlsx", attachments[0].Name)
}

func TestSendReport_BodyContents(t *testing.T) {
	var captured *gomail.Msg
	s := newTestSender(&captured)

	body := s.reportBody(s.now(), []string{"Bob", "Alice", "Bob"})

	assert.Contains(t, body, "Generated: 2025-08-20 at 10:30 PST")
	assert.Contains(t, body, "Alice\nBob")
	assert.Contains(t, body, "Zoom Attendance System")
}

func TestSendReport_NoRecipients(t *testing.T) {
	var captured *gomail.Msg
	s := newTestSender(&captured)

	err := s.SendReport(writeAttachment(t), nil, nil)
	require.Error(t, err)
	assert.Nil(t, captured)
}

func TestSendReport_SendFailure(t *testing.T) {
	var captured *gomail.Msg
	s := newTestSender(&captured)
	s.send = func(Settings, *gomail.Msg) error { return fmt.Errorf("connection refused") }

	err := s.SendReport(writeAttachment(t), []string{"hr@example.com"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send report email")
}

func TestSendTest(t *testing.T) {
	var captured *gomail.Msg
	s := newTestSender(&captured)

	err := s.SendTest("me@example.com")
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, []string{"Test Email - Zoom Attendance System"}, captured.GetGenHeader(gomail.HeaderSubject))
}

func TestParticipantSummary(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"empty", nil, "No participants found"},
		{"single", []string{"Alice"}, "Alice"},
		{"dedupe and sort", []string{"Bob", "Alice", "Bob", "Carol"}, "Alice\nBob\nCarol"},
		{"placeholder kept", []string{"No attendees"}, "No attendees"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParticipantSummary(tt.in))
		})
	}
}
