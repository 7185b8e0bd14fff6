package attendance

import (
	"github.com/wathiq-erp/attendance-engine/internal/domain/attendance"
	"github.com/wathiq-erp/attendance-engine/internal/domain/punch"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/timeutil"
)

// Config carries the engine's tunable knobs.
type Config struct {
	// OutWindowStart/OutWindowEnd bound the afternoon/evening window
	// (minutes since midnight, inclusive) a punch must fall in to count
	// as the check-out. Keeps an early re-entry from being read as the
	// out punch.
	OutWindowStart int
	OutWindowEnd   int

	// LateIssueThresholdMinutes is the lateness above which a summary
	// is flagged even without a monetary deduction.
	LateIssueThresholdMinutes int
}

// DefaultConfig returns the production defaults: out window 14:00-23:00,
// late issue threshold 15 minutes.
func DefaultConfig() Config {
	return Config{
		OutWindowStart:            14 * 60,
		OutWindowEnd:              23 * 60,
		LateIssueThresholdMinutes: 15,
	}
}

// punchTimes holds one employee's resolved clock times for a day, in
// minutes since midnight.
type punchTimes struct {
	in  *int
	out *int
}

// resolvePunches derives in/out from a day's punches for one employee,
// ordered ascending by time. In is the first punch of the day. Out is
// the last punch inside the configured out window, and only in evening
// mode. Punches with unparseable times are ignored.
func resolvePunches(punches []punch.Punch, mode attendance.RunMode, cfg Config) punchTimes {
	var times punchTimes

	for _, p := range punches {
		minutes, err := timeutil.ToMinutes(p.ClockTime)
		if err != nil {
			continue
		}

		if times.in == nil {
			m := minutes
			times.in = &m
		}

		if mode == attendance.RunModeEvening && minutes >= cfg.OutWindowStart && minutes <= cfg.OutWindowEnd {
			m := minutes
			times.out = &m
		}
	}

	return times
}
