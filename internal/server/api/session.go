package api

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"io"
	"net/http"
	"strings"

	"github.com/ayusman/chromatip/internal/detector"
	"github.com/ayusman/chromatip/internal/session"
	"github.com/ayusman/chromatip/internal/store"
)

// SessionController is the part of the running application the session
// endpoints drive.
type SessionController interface {
	Mode() detector.Mode
	Modes() []detector.Mode
	Cycle() detector.Mode
	SetMode(m detector.Mode) error
	ReportClick(p image.Point) error
	Last() (session.Detection, bool)
	Save(ctx context.Context) (*store.Color, error)
}

// SessionHandler exposes the detection session.
//
//	GET  /api/session
//	POST /api/session/mode   {"mode": "skin"}; empty body cycles
//	POST /api/session/click  {"x": 10, "y": 20}
//	POST /api/session/save
type SessionHandler struct {
	ctrl SessionController
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(ctrl SessionController) *SessionHandler {
	return &SessionHandler{ctrl: ctrl}
}

type sessionResponse struct {
	Mode  detector.Mode      `json:"mode"`
	Modes []detector.Mode    `json:"modes"`
	Last  *session.Detection `json:"last,omitempty"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type modeResponse struct {
	Mode detector.Mode `json:"mode"`
}

type clickRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// ServeHTTP routes /api/session requests.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/session"), "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.state(w)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch path {
	case "mode":
		h.mode(w, r)
	case "click":
		h.click(w, r)
	case "save":
		h.save(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *SessionHandler) state(w http.ResponseWriter) {
	resp := sessionResponse{Mode: h.ctrl.Mode(), Modes: h.ctrl.Modes()}
	if last, ok := h.ctrl.Last(); ok {
		resp.Last = &last
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) mode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Mode == "" {
		writeJSON(w, http.StatusOK, modeResponse{Mode: h.ctrl.Cycle()})
		return
	}

	m, err := detector.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ctrl.SetMode(m); err != nil {
		if errors.Is(err, session.ErrModeUnavailable) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to set mode")
		return
	}
	writeJSON(w, http.StatusOK, modeResponse{Mode: m})
}

func (h *SessionHandler) click(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.X == nil || req.Y == nil {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}

	if err := h.ctrl.ReportClick(image.Pt(*req.X, *req.Y)); err != nil {
		if errors.Is(err, session.ErrModeUnavailable) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to report click")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) save(w http.ResponseWriter, r *http.Request) {
	c, err := h.ctrl.Save(r.Context())
	if err != nil {
		if errors.Is(err, session.ErrNothingToSave) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save color")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
