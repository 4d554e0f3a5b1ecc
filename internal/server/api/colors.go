package api

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/ayusman/chromatip/internal/chroma"
	"github.com/ayusman/chromatip/internal/colorlog"
	"github.com/ayusman/chromatip/internal/store"
)

// ColorHandler serves the saved color history.
//
//	GET    /api/colors          newest first, optional ?limit=
//	DELETE /api/colors          clear history
//	GET    /api/colors/export   palette document, oldest first
//	GET    /api/colors/{id}
//	DELETE /api/colors/{id}
type ColorHandler struct {
	store *store.Store
}

// NewColorHandler creates a ColorHandler backed by s.
func NewColorHandler(s *store.Store) *ColorHandler {
	return &ColorHandler{store: s}
}

type listColorsResponse struct {
	Colors []*store.Color `json:"colors"`
	Total  int            `json:"total"`
}

type deleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}

// ServeHTTP routes collection, export and item requests.
func (h *ColorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/colors")
	path = strings.Trim(path, "/")

	switch {
	case path == "":
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodDelete:
			h.deleteAll(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case path == "export":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.export(w, r)
	default:
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, path)
		case http.MethodDelete:
			h.delete(w, r, path)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// parseLimit reads ?limit=; absent means no limit.
func parseLimit(r *http.Request) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	return n, nil
}

func (h *ColorHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	colors, err := h.store.Colors().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list colors")
		return
	}
	total, err := h.store.Colors().Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count colors")
		return
	}

	writeJSON(w, http.StatusOK, listColorsResponse{Colors: colors, Total: total})
}

func (h *ColorHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.store.Colors().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Color not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get color")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ColorHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Colors().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Color not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete color")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ColorHandler) deleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Colors().DeleteAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete colors")
		return
	}
	writeJSON(w, http.StatusOK, deleteAllResponse{Deleted: n})
}

func (h *ColorHandler) export(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	colors, err := h.store.Colors().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list colors")
		return
	}
	slices.Reverse(colors)

	palette := make([]chroma.Classification, len(colors))
	for i, c := range colors {
		palette[i] = c.Classification
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="palette.txt"`)
	colorlog.WritePalette(w, palette)
}
