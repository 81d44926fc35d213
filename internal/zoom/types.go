package zoom

import (
	"strconv"

	"github.com/englishbay/zoomreport/internal/report"
)

// Meeting is one meeting occurrence as returned by the meetings and
// past-meeting-instances endpoints.
type Meeting struct {
	UUID      string `json:"uuid"`
	ID        int64  `json:"id"`
	Topic     string `json:"topic"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
}

// Participant is one attendance session as returned by the meeting
// participants report endpoint.
type Participant struct {
	Name      string `json:"name"`
	Email     string `json:"user_email"`
	JoinTime  string `json:"join_time"`
	LeaveTime string `json:"leave_time"`
	Duration  int    `json:"duration"`
	Status    string `json:"status"`
}

type meetingsResponse struct {
	Meetings []Meeting `json:"meetings"`
}

type participantsResponse struct {
	Participants []Participant `json:"participants"`
}

// toOccurrence converts a wire meeting into a report occurrence. Instances
// returned by some endpoints omit the uuid; the numeric meeting id stands in
// for it then.
func (m Meeting) toOccurrence() report.Occurrence {
	uuid := m.UUID
	if uuid == "" && m.ID != 0 {
		uuid = strconv.FormatInt(m.ID, 10)
	}
	topic := m.Topic
	if topic == "" {
		topic = "Unknown Meeting"
	}
	return report.Occurrence{
		UUID:      uuid,
		MeetingID: strconv.FormatInt(m.ID, 10),
		Topic:     topic,
		StartTime: m.StartTime,
	}
}

// toSession converts a wire participant into a report session, applying the
// documented field defaults.
func (p Participant) toSession() report.Session {
	name := p.Name
	if name == "" {
		name = "Unknown"
	}
	status := p.Status
	if status == "" {
		status = "Unknown"
	}
	duration := p.Duration
	if duration < 0 {
		duration = 0
	}
	return report.Session{
		Name:      name,
		Email:     p.Email,
		JoinTime:  p.JoinTime,
		LeaveTime: p.LeaveTime,
		Duration:  duration,
		Status:    status,
	}
}
