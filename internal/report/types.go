package report

import (
	"context"
	"time"
)

// Session is one continuous join-to-leave interval for one participant within
// one meeting occurrence, as reported by the provider.
//
// JoinTime and LeaveTime are kept as the provider's ISO-8601-prefixed UTC
// strings; they compare correctly under lexicographic order and an absent
// time (empty string) sorts first. Duration is in seconds and never negative.
// A Session is immutable after construction.
type Session struct {
	Name      string
	Email     string
	JoinTime  string
	LeaveTime string
	Duration  int
	Status    string
}

// Record is the merged attendance entry for one logical participant in one
// meeting occurrence: earliest join, latest leave, summed duration.
type Record struct {
	Name      string
	Email     string
	JoinTime  string
	LeaveTime string
	Duration  int
	Status    string
}

// Occurrence is one concrete past instance of a (possibly recurring) meeting.
// UUID identifies the occurrence and is the handle used to fetch its
// participants; MeetingID is the meeting's stable identifier shared by all
// occurrences. StartTime is the provider's UTC timestamp string.
type Occurrence struct {
	UUID      string
	MeetingID string
	Topic     string
	StartTime string
}

// Row is one line of the final report: date and time in the reporting
// timezone plus a participant name.
type Row struct {
	Date string
	Time string
	Name string
}

// Source supplies raw meeting data. Implementations are expected to return an
// error on provider failure; the Builder downgrades errors to empty results
// so that a flaky provider call degrades the report instead of aborting it.
type Source interface {
	// ListRecentMeetings returns occurrences whose start time falls within the
	// lookback window, in provider order.
	ListRecentMeetings(ctx context.Context, window time.Duration) ([]Occurrence, error)

	// ListMeetingInstances returns all known past occurrences of one meeting,
	// unfiltered. Callers apply the lookback window themselves.
	ListMeetingInstances(ctx context.Context, meetingID string) ([]Occurrence, error)

	// ListParticipants returns the raw participant sessions of one occurrence.
	ListParticipants(ctx context.Context, occurrenceUUID string) ([]Session, error)
}
