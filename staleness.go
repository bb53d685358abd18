package pitchprofile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// StalenessResult contains the roadmap staleness check result for a profile
type StalenessResult struct {
	ProjectName string            `json:"project_name"`
	CheckedAt   time.Time         `json:"checked_at"`
	IsStale     bool              `json:"is_stale"`
	Milestones  []MilestoneStatus `json:"milestones"`
	Overdue     int               `json:"overdue"`
	Unscheduled int               `json:"unscheduled"`
	Message     string            `json:"message"`
}

// MilestoneStatus is one roadmap entry with its resolved period.
type MilestoneStatus struct {
	Period    string    `json:"period"`
	Milestone string    `json:"milestone"`
	Ends      time.Time `json:"ends,omitempty"`
	Overdue   bool      `json:"overdue"`
	DaysPast  int       `json:"days_past,omitempty"`
	Parsed    bool      `json:"parsed"`
}

var (
	quarterPeriod = regexp.MustCompile(`^(?i)q([1-4])\s*[-/ ]?\s*(\d{4})$`)
	halfPeriod    = regexp.MustCompile(`^(?i)h([12])\s*[-/ ]?\s*(\d{4})$`)
	yearPeriod    = regexp.MustCompile(`^(\d{4})$`)
	yearMonth     = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
)

// PeriodEnd returns the first instant after the roadmap period, for periods
// like "Q1 2025", "H2 2024", "Jan 2025", "January 2025", "2025" or "2025-03".
func PeriodEnd(period string) (time.Time, error) {
	p := strings.TrimSpace(period)

	if m := quarterPeriod.FindStringSubmatch(p); m != nil {
		q, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC), nil
	}
	if m := halfPeriod.FindStringSubmatch(p); m != nil {
		h, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, time.Month(h*6+1), 1, 0, 0, 0, 0, time.UTC), nil
	}
	if m := yearPeriod.FindStringSubmatch(p); m != nil {
		year, _ := strconv.Atoi(m[1])
		return time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}
	if m := yearMonth.FindStringSubmatch(p); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	for _, layout := range []string{"Jan 2006", "January 2006"} {
		if t, err := time.Parse(layout, p); err == nil {
			return t.AddDate(0, 1, 0), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised roadmap period %q", period)
}

// CheckStaleness checks whether the profile's roadmap has milestones whose
// period ended more than graceDays before now. Such a profile needs updating.
func CheckStaleness(profile Profile, now time.Time, graceDays int) StalenessResult {
	result := StalenessResult{
		ProjectName: profile.BasicInfo.ProjectName,
		CheckedAt:   now,
	}

	grace := time.Duration(graceDays) * 24 * time.Hour
	for _, e := range profile.Details.Roadmap {
		status := MilestoneStatus{Period: e.Key, Milestone: e.Value}
		if ends, err := PeriodEnd(e.Key); err == nil {
			status.Parsed = true
			status.Ends = ends
			if now.Sub(ends) > grace {
				status.Overdue = true
				status.DaysPast = int(now.Sub(ends).Hours() / 24)
				result.Overdue++
			}
		} else {
			result.Unscheduled++
		}
		result.Milestones = append(result.Milestones, status)
	}

	result.IsStale = result.Overdue > 0
	if result.IsStale {
		result.Message = fmt.Sprintf("Profile %s has %d roadmap milestone(s) past their period (grace: %d days)",
			result.ProjectName, result.Overdue, graceDays)
	} else {
		result.Message = fmt.Sprintf("Profile %s roadmap is current", result.ProjectName)
	}
	return result
}

// FormatStalenessResults formats staleness results as human-readable text
func FormatStalenessResults(results []StalenessResult) string {
	var b strings.Builder
	b.WriteString("Roadmap Staleness Report\n")
	b.WriteString("========================\n\n")

	staleCount := 0
	for _, r := range results {
		if !r.IsStale && r.Unscheduled == 0 {
			continue
		}
		if r.IsStale {
			staleCount++
			fmt.Fprintf(&b, "STALE: %s\n", r.ProjectName)
		} else {
			fmt.Fprintf(&b, "CURRENT: %s\n", r.ProjectName)
		}
		for _, m := range r.Milestones {
			switch {
			case m.Overdue:
				fmt.Fprintf(&b, "  %s: %s (ended %s, %d days ago)\n", m.Period, m.Milestone, m.Ends.Format("2006-01-02"), m.DaysPast)
			case !m.Parsed:
				fmt.Fprintf(&b, "  %s: %s (unrecognised period)\n", m.Period, m.Milestone)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Summary: %d profiles checked, %d stale\n", len(results), staleCount)
	return b.String()
}
