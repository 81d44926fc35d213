package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/englishbay/zoomreport/internal/timeutil"
)

func utcConverter(t *testing.T) timeutil.Converter {
	t.Helper()
	conv, err := timeutil.NewConverter("UTC", "UTC")
	require.NoError(t, err)
	return conv
}

func newTestBuilder(t *testing.T, src Source) *Builder {
	t.Helper()
	return NewBuilder(src, utcConverter(t), nil, nil)
}

type fakeSource struct {
	recent    []Occurrence
	instances []Occurrence
	sessions  map[string][]Session

	recentErr       error
	instancesErr    error
	participantsErr error
}

func (f *fakeSource) ListRecentMeetings(ctx context.Context, window time.Duration) ([]Occurrence, error) {
	return f.recent, f.recentErr
}

func (f *fakeSource) ListMeetingInstances(ctx context.Context, meetingID string) ([]Occurrence, error) {
	return f.instances, f.instancesErr
}

func (f *fakeSource) ListParticipants(ctx context.Context, uuid string) ([]Session, error) {
	if f.participantsErr != nil {
		return nil, f.participantsErr
	}
	return f.sessions[uuid], nil
}

func TestBuildRows_EmptyOccurrenceList(t *testing.T) {
	b := newTestBuilder(t, &fakeSource{})

	rows, names := b.BuildRows(nil, func(string) ([]Session, error) { return nil, nil })

	assert.Empty(t, rows)
	assert.Empty(t, names)
}

func TestBuildRows_NoAttendeesPlaceholder(t *testing.T) {
	b := newTestBuilder(t, &fakeSource{})
	occurrences := []Occurrence{
		{UUID: "u1", Topic: "Standup", StartTime: "2025-08-20T17:30:00Z"},
	}

	rows, names := b.BuildRows(occurrences, func(string) ([]Session, error) { return nil, nil })

	require.Len(t, rows, 1)
	assert.Equal(t, Row{Date: "2025-08-20", Time: "17:30", Name: NoAttendees}, rows[0])
	assert.Equal(t, []string{NoAttendees}, names)
}

func TestBuildRows_FetchErrorDegradesToPlaceholder(t *testing.T) {
	b := newTestBuilder(t, &fakeSource{})
	occurrences := []Occurrence{
		{UUID: "u1", StartTime: "2025-08-20T17:30:00Z"},
	}

	rows, names := b.BuildRows(occurrences, func(string) ([]Session, error) {
		return nil, fmt.Errorf("provider unavailable")
	})

	require.Len(t, rows, 1)
	assert.Equal(t, NoAttendees, rows[0].Name)
	assert.Equal(t, []string{NoAttendees}, names)
}

func TestBuildRows_OrderAndNames(t *testing.T) {
	b := newTestBuilder(t, &fakeSource{})
	occurrences := []Occurrence{
		{UUID: "u1", StartTime: "2025-08-20T17:30:00Z"},
		{UUID: "u2", StartTime: "2025-08-21T09:00:00Z"},
	}
	sessions := map[string][]Session{
		"u1": {
			{Name: "Alice", Email: "alice@co.com", JoinTime: "t1"},
			{Name: "Bob", Email: "bob@co.com", JoinTime: "t2"},
			{Name: "Alice", Email: "alice@co.com", JoinTime: "t3"},
		},
		"u2": {
			{Name: "Carol", Email: "carol@co.com", JoinTime: "t1"},
		},
	}

	rows, names := b.BuildRows(occurrences, func(uuid string) ([]Session, error) {
		return sessions[uuid], nil
	})

	require.Len(t, rows, 3)
	assert.Equal(t, Row{Date: "2025-08-20", Time: "17:30", Name: "Alice"}, rows[0])
	assert.Equal(t, Row{Date: "2025-08-20", Time: "17:30", Name: "Bob"}, rows[1])
	assert.Equal(t, Row{Date: "2025-08-21", Time: "09:00", Name: "Carol"}, rows[2])
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names)
}

func TestBuildRows_MissingStartTime(t *testing.T) {
	b := newTestBuilder(t, &fakeSource{})
	occurrences := []Occurrence{{UUID: "u1", StartTime: ""}}

	rows, _ := b.BuildRows(occurrences, func(string) ([]Session, error) {
		return []Session{{Name: "Alice"}}, nil
	})

	require.Len(t, rows, 1)
	assert.Equal(t, "Unknown", rows[0].Date)
	assert.Equal(t, "Unknown", rows[0].Time)
}

func TestBuild_AllRecentMeetings(t *testing.T) {
	src := &fakeSource{
		recent: []Occurrence{
			{UUID: "u1", MeetingID: "111", StartTime: "2025-08-20T17:30:00Z"},
		},
		sessions: map[string][]Session{
			"u1": {{Name: "Alice", Email: "alice@co.com"}},
		},
	}
	b := newTestBuilder(t, src)

	rows, names := b.Build(context.Background(), "", 24*time.Hour)

	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, []string{"Alice"}, names)
}

func TestBuild_RecentMeetingsErrorDegradesToEmpty(t *testing.T) {
	src := &fakeSource{recentErr: fmt.Errorf("boom")}
	b := newTestBuilder(t, src)

	rows, names := b.Build(context.Background(), "", 24*time.Hour)

	assert.Empty(t, rows)
	assert.Empty(t, names)
}

func TestBuild_SpecificMeetingUsesBothQueries(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-time.Hour).Format("2006-01-02T15:04:05Z")
	src := &fakeSource{
		recent: []Occurrence{
			{UUID: "u1", MeetingID: "469737038", StartTime: start},
			{UUID: "u9", MeetingID: "999", StartTime: start}, // different meeting
		},
		instances: []Occurrence{
			{UUID: "u2", MeetingID: "469737038", StartTime: start},
		},
		sessions: map[string][]Session{
			"u1": {{Name: "Alice"}},
			"u2": {{Name: "Bob"}},
		},
	}
	b := newTestBuilder(t, src)

	_, names := b.Build(context.Background(), "469737038", 24*time.Hour)

	// Instances are merged first, then the filtered recent listing.
	assert.Equal(t, []string{"Bob", "Alice"}, names)
}

func TestResolveInstances_DedupSecondSourceWins(t *testing.T) {
	cutoff := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	instances := []Occurrence{
		{UUID: "789", MeetingID: "1", Topic: "from instances", StartTime: "2025-08-21T10:00:00Z"},
	}
	recent := []Occurrence{
		{UUID: "789", MeetingID: "1", Topic: "from recent", StartTime: "2025-08-21T10:00:00Z"},
	}

	resolved := ResolveInstances(recent, instances, "1", cutoff)

	require.Len(t, resolved, 1)
	assert.Equal(t, "from recent", resolved[0].Topic)
}

func TestResolveInstances_CutoffFilter(t *testing.T) {
	cutoff := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	instances := []Occurrence{
		{UUID: "old", StartTime: "2025-08-10T10:00:00Z"},
		{UUID: "at-cutoff", StartTime: "2025-08-20T00:00:00Z"},
		{UUID: "new", StartTime: "2025-08-21T10:00:00Z"},
		{UUID: "garbled", StartTime: "not-a-time"},
		{UUID: "", StartTime: "2025-08-21T10:00:00Z"},
	}

	resolved := ResolveInstances(nil, instances, "1", cutoff)

	require.Len(t, resolved, 2)
	assert.Equal(t, "at-cutoff", resolved[0].UUID)
	assert.Equal(t, "new", resolved[1].UUID)
}

func TestResolveInstances_RecentFilteredByMeetingID(t *testing.T) {
	cutoff := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	recent := []Occurrence{
		{UUID: "a", MeetingID: "1", StartTime: "2025-08-21T10:00:00Z"},
		{UUID: "b", MeetingID: "2", StartTime: "2025-08-21T10:00:00Z"},
	}

	resolved := ResolveInstances(recent, nil, "1", cutoff)

	require.Len(t, resolved, 1)
	assert.Equal(t, "a", resolved[0].UUID)
}
