package punch

import "time"

// Punch is one raw biometric clock event. Produced by the external
// ingestion path; the engine reads it and flags it processed, nothing
// else ever mutates it.
type Punch struct {
	ID            string
	BiometricCode string
	Date          time.Time
	ClockTime     string // "HH:MM:SS" wall-clock of the event
	Processed     bool
	CreatedAt     time.Time
}
