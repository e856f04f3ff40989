// internal/gateway/handlers.go

package gateway

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"carrier-portal/internal/common/errors"
	"carrier-portal/internal/wizard/engine"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	writeJSON(w, http.StatusOK, eng.Snapshot())
}

type editRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	var req editRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := eng.Edit(r.Context(), req.Field, req.Value); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eng.Snapshot())
}

type addVINRequest struct {
	VIN string `json:"vin"`
}

func (s *Server) handleAddVIN(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	var req addVINRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := eng.AddVIN(r.Context(), req.VIN); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eng.Snapshot())
}

func (s *Server) handleRemoveVIN(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "index must be an integer"})
		return
	}
	if err := eng.RemoveVIN(r.Context(), index); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eng.Snapshot())
}

type attachRequest struct {
	Field       string `json:"field"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

func (s *Server) handleAttach(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	var req attachRequest
	if !decodeBody(w, r, &req) {
		return
	}
	id, err := eng.AttachFile(r.Context(), req.Field, req.Filename, req.Size, req.ContentType)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"attachmentId": id})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	started := time.Now()
	result, err := eng.Next(r.Context())
	if err != nil {
		if isAuthError(err) {
			s.dropSession(eng.Email())
		}
		s.writeError(w, err)
		return
	}
	if s.obs != nil && result.Outcome != nil {
		s.obs.RecordSubmitDuration(r.Context(), time.Since(started), string(result.Outcome.Kind))
	}
	writeJSON(w, http.StatusOK, struct {
		*engine.NextResult
		State engine.Snapshot `json:"state"`
	}{result, eng.Snapshot()})
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	if err := eng.Prev(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eng.Snapshot())
}

type goToStepRequest struct {
	Step int `json:"step"`
}

func (s *Server) handleGoToStep(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	var req goToStepRequest
	if !decodeBody(w, r, &req) {
		return
	}
	moved, err := eng.GoToStep(r.Context(), req.Step)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Moved bool            `json:"moved"`
		State engine.Snapshot `json:"state"`
	}{moved, eng.Snapshot()})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	state := eng.Progress()
	writeJSON(w, http.StatusOK, s.summary.Render(&state))
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	state := eng.Progress()
	// Finalization is only reachable from the summary; a candidate mid-wizard
	// must not be able to submit (and have their record cleared) early.
	if !state.InSummary() {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "all steps must be completed before finalizing"})
		return
	}
	conf := s.summary.Finalize(r.Context(), &state, eng.Token())
	if conf.Warning == "" {
		s.dropSession(eng.Email())
	}
	writeJSON(w, http.StatusOK, conf)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var stdErr *errors.StandardError
	if !stderrors.As(err, &stdErr) {
		if stderrors.Is(err, engine.ErrSubmissionInFlight) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		if stderrors.Is(err, engine.ErrUnknownField) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.logger.Error("request failed", map[string]interface{}{"error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.IsAuthError(stdErr.Code):
		status = http.StatusUnauthorized
	case stdErr.Code == errors.ErrCodePermissionDenied:
		status = http.StatusForbidden
	case stdErr.Code == errors.ErrCodeValidationFailed:
		status = http.StatusUnprocessableEntity
	case stdErr.Code == errors.ErrCodeStepRejected:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, stdErr)
}

func isAuthError(err error) bool {
	var stdErr *errors.StandardError
	return stderrors.As(err, &stdErr) && errors.IsAuthError(stdErr.Code)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}
