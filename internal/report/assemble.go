package report

import (
	"context"
	"time"

	"github.com/englishbay/zoomreport/internal/instrumentation"
	"github.com/englishbay/zoomreport/internal/logging"
	"github.com/englishbay/zoomreport/internal/timeutil"
)

// NoAttendees is the placeholder participant name emitted for an occurrence
// that has no sessions at all.
const NoAttendees = "No attendees"

// Builder assembles the flat attendance report from a meeting data source.
type Builder struct {
	src     Source
	conv    timeutil.Converter
	log     logging.Logger
	metrics *instrumentation.Metrics
	now     func() time.Time
}

// NewBuilder creates a Builder. logger may be nil, in which case the default
// slog logger is used. metrics may be nil to disable instrumentation.
func NewBuilder(src Source, conv timeutil.Converter, logger logging.Logger, metrics *instrumentation.Metrics) *Builder {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Builder{
		src:     src,
		conv:    conv,
		log:     logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Build produces the report rows and the flat participant-name list for the
// lookback window. When meetingID is non-empty only occurrences of that
// meeting are reported, resolved from both provider queries (see
// ResolveInstances); otherwise all recent meetings are included.
//
// Provider failures are downgraded to empty results: a flaky call degrades
// the report rather than aborting it.
func (b *Builder) Build(ctx context.Context, meetingID string, window time.Duration) ([]Row, []string) {
	var occurrences []Occurrence

	if meetingID != "" {
		recent, err := b.src.ListRecentMeetings(ctx, window)
		if err != nil {
			b.log.Warn("recent meetings lookup failed, continuing with instances only",
				logging.KeyMeeting, meetingID, logging.KeyError, err.Error())
		}
		instances, err := b.src.ListMeetingInstances(ctx, meetingID)
		if err != nil {
			b.log.Warn("meeting instances lookup failed, continuing with recent meetings only",
				logging.KeyMeeting, meetingID, logging.KeyError, err.Error())
		}
		cutoff := b.now().UTC().Add(-window)
		occurrences = ResolveInstances(recent, instances, meetingID, cutoff)
		b.log.Info("resolved meeting instances",
			logging.KeyMeeting, meetingID, "instances", len(occurrences))
	} else {
		var err error
		occurrences, err = b.src.ListRecentMeetings(ctx, window)
		if err != nil {
			b.log.Warn("recent meetings lookup failed", logging.KeyError, err.Error())
			occurrences = nil
		}
		b.log.Info("found meetings", "meetings", len(occurrences))
	}

	rows, names := b.BuildRows(occurrences, func(uuid string) ([]Session, error) {
		return b.src.ListParticipants(ctx, uuid)
	})
	b.metrics.RecordReportRows(ctx, len(rows))
	return rows, names
}

// BuildRows runs the merge over each occurrence in input order and flattens
// the result. An occurrence whose fetch fails or returns no sessions yields
// exactly one NoAttendees placeholder row. An empty occurrence list yields
// empty outputs with no placeholder.
//
// Rows are ordered by occurrence, then by first-seen participant identity
// within the occurrence. names receives one entry per emitted row.
func (b *Builder) BuildRows(occurrences []Occurrence, fetch func(uuid string) ([]Session, error)) ([]Row, []string) {
	rows := []Row{}
	names := []string{}

	for i, occ := range occurrences {
		b.log.Info("processing occurrence",
			logging.KeyOccurrence, occ.UUID,
			"topic", occ.Topic,
			"progress", i+1,
			"total", len(occurrences))

		sessions, err := fetch(occ.UUID)
		if err != nil {
			b.log.Warn("participant fetch failed, treating occurrence as empty",
				logging.KeyOccurrence, occ.UUID, logging.KeyError, err.Error())
			sessions = nil
		}

		date := b.conv.ToLocalDate(occ.StartTime)
		clock := b.conv.ToLocalTime(occ.StartTime)

		if len(sessions) == 0 {
			rows = append(rows, Row{Date: date, Time: clock, Name: NoAttendees})
			names = append(names, NoAttendees)
			continue
		}

		records := MergeSessions(sessions)
		if merged := len(sessions) - len(records); merged > 0 {
			b.metrics.RecordMergedSessions(context.Background(), merged)
			b.log.Info("combined duplicate sessions",
				logging.KeyOccurrence, occ.UUID, "collapsed", merged)
		}
		for _, rec := range records {
			rows = append(rows, Row{Date: date, Time: clock, Name: rec.Name})
			names = append(names, rec.Name)
		}
	}

	return rows, names
}

// ResolveInstances combines the dedicated instances-of-meeting query with the
// generic recent-meetings listing filtered to meetingID, keeps occurrences
// starting at or after cutoff, and deduplicates by occurrence UUID.
//
// Deduplication is insert-or-replace over an insertion-ordered map: when both
// sources report the same occurrence the copy merged in second (the recent
// listing) wins. The overwrite-on-conflict is intentional, not accidental.
func ResolveInstances(recent, instances []Occurrence, meetingID string, cutoff time.Time) []Occurrence {
	combined := make([]Occurrence, 0, len(instances)+len(recent))
	combined = append(combined, instances...)
	for _, occ := range recent {
		if occ.MeetingID == meetingID {
			combined = append(combined, occ)
		}
	}

	var order []string
	byUUID := make(map[string]Occurrence)
	for _, occ := range combined {
		if occ.UUID == "" {
			continue
		}
		start, err := timeutil.ParseTimestamp(occ.StartTime)
		if err != nil || start.Before(cutoff) {
			continue
		}
		if _, seen := byUUID[occ.UUID]; !seen {
			order = append(order, occ.UUID)
		}
		byUUID[occ.UUID] = occ
	}

	resolved := make([]Occurrence, 0, len(order))
	for _, uuid := range order {
		resolved = append(resolved, byUUID[uuid])
	}
	return resolved
}
