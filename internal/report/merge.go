package report

import (
	"sort"
	"strings"
)

// identityKey decides which sessions belong to the same logical participant.
// A usable email (non-empty, not the provider's literal "n/a" filler) wins;
// otherwise the lower-cased display name is used.
//
// Known limitation, preserved for output compatibility: two different people
// who share a display name and have no email collapse into a single record.
func identityKey(s Session) string {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email != "" && email != "n/a" {
		return email
	}
	return strings.ToLower(strings.TrimSpace(s.Name))
}

// usableEmail reports whether e is a real address rather than empty or the
// provider's "n/a" filler.
func usableEmail(e string) bool {
	e = strings.TrimSpace(e)
	return e != "" && !strings.EqualFold(e, "n/a")
}

// MergeSessions collapses the raw sessions of one meeting occurrence into one
// Record per distinct participant identity. Records are returned in the order
// each identity was first encountered; the relative order of sessions within
// a group is likewise the encounter order.
//
// MergeSessions never fails: every field has a defined default and malformed
// input contributes zero values.
func MergeSessions(sessions []Session) []Record {
	var keys []string
	groups := make(map[string][]Session)
	for _, s := range sessions {
		k := identityKey(s)
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], s)
	}

	records := make([]Record, 0, len(keys))
	for _, k := range keys {
		group := groups[k]
		if len(group) == 1 {
			records = append(records, Record(group[0]))
			continue
		}
		records = append(records, combineSessions(group))
	}
	return records
}

// combineSessions merges a group of two or more sessions belonging to one
// participant (reconnects, multiple devices) into a single record.
//
// Name, join time and status come from the chronologically first session,
// the leave time from the chronologically last, and the duration is the sum
// of all sessions. Sessions are assumed non-overlapping; no overlap
// correction is applied. The best-known email is the first usable one in
// encounter order, independent of the chronological sort.
func combineSessions(group []Session) Record {
	email := "N/A"
	for _, s := range group {
		if usableEmail(s.Email) {
			email = s.Email
			break
		}
	}

	total := 0
	for _, s := range group {
		total += s.Duration
	}

	ordered := make([]Session, len(group))
	copy(ordered, group)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].JoinTime < ordered[j].JoinTime
	})

	first := ordered[0]
	last := ordered[len(ordered)-1]

	return Record{
		Name:      first.Name,
		Email:     email,
		JoinTime:  first.JoinTime,
		LeaveTime: last.LeaveTime,
		Duration:  total,
		Status:    first.Status,
	}
}
