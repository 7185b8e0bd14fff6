package http

import (
	"encoding/json"
	"net/http"

	"github.com/wathiq-erp/attendance-engine/internal/domain/punch"
	"github.com/wathiq-erp/attendance-engine/internal/handler/http/response"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/validator"
)

type PunchHandler interface {
	Ingest(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchRepo punch.PunchRepository
}

func NewPunchHandler(punchRepo punch.PunchRepository) PunchHandler {
	return &punchHandlerImpl{punchRepo: punchRepo}
}

// Ingest implements PunchHandler. The biometric gateway pushes batches
// of raw clock events here; they stay untouched until the next
// processing run consumes them.
func (h *punchHandlerImpl) Ingest(w http.ResponseWriter, r *http.Request) {
	var req punch.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	punches := make([]punch.Punch, len(req.Punches))
	for i, p := range req.Punches {
		date, _ := validator.IsValidDate(p.Date)
		punches[i] = punch.Punch{
			BiometricCode: p.BiometricCode,
			Date:          date,
			ClockTime:     p.ClockTime,
		}
	}

	if err := h.punchRepo.CreateBatch(r.Context(), punches); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punches ingested", punch.IngestResponse{
		AcceptedCount: len(punches),
	})
}
