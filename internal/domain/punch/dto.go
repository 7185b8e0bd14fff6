package punch

import (
	"fmt"

	"github.com/wathiq-erp/attendance-engine/internal/pkg/validator"
)

// IngestRequest is a batch of raw punches pushed by the biometric
// gateway.
type IngestRequest struct {
	Punches []IngestPunch `json:"punches"`
}

type IngestPunch struct {
	BiometricCode string `json:"biometric_code"`
	Date          string `json:"date"`
	ClockTime     string `json:"clock_time"`
}

func (r *IngestRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Punches) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "punches",
			Message: "punches must not be empty",
		})
		return errs
	}

	for i, p := range r.Punches {
		if p.BiometricCode == "" {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("punches[%d].biometric_code", i),
				Message: "biometric_code is required",
			})
		}
		if _, ok := validator.IsValidDate(p.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("punches[%d].date", i),
				Message: "date must be formatted YYYY-MM-DD",
			})
		}
		if !validator.IsValidClockTime(p.ClockTime) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("punches[%d].clock_time", i),
				Message: "clock_time must be formatted HH:MM or HH:MM:SS",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IngestResponse reports how many punches were accepted.
type IngestResponse struct {
	AcceptedCount int `json:"accepted_count"`
}
