package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ayusman/chromatip/internal/chroma"
)

// ClassifyHandler classifies a color given in the query string.
//
//	GET /api/classify?hex=#ff6347
//	GET /api/classify?r=255&g=99&b=71&scheme=triadic
type ClassifyHandler struct {
	classifier *chroma.Classifier
}

// NewClassifyHandler creates a ClassifyHandler.
func NewClassifyHandler(c *chroma.Classifier) *ClassifyHandler {
	return &ClassifyHandler{classifier: c}
}

type classifyResponse struct {
	chroma.Classification
	Light         bool     `json:"light"`
	Contrast      string   `json:"contrast"`
	Complementary string   `json:"complementary"`
	Scheme        string   `json:"scheme"`
	Palette       []string `json:"palette"`
}

// ServeHTTP handles GET /api/classify.
func (h *ClassifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rgb, err := parseColorQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	scheme := chroma.SchemeComplementary
	if s := r.URL.Query().Get("scheme"); s != "" {
		if scheme, err = chroma.ParseScheme(s); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	c := h.classifier.Classify(rgb)
	resp := classifyResponse{
		Classification: c,
		Light:          c.IsLight(),
		Contrast:       c.Contrast().Hex(),
		Complementary:  chroma.Complementary(rgb).Hex(),
		Scheme:         string(scheme),
	}
	for _, p := range chroma.Palette(rgb, scheme) {
		resp.Palette = append(resp.Palette, p.Hex())
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseColorQuery reads either ?hex= or all of ?r=&g=&b=.
func parseColorQuery(r *http.Request) (chroma.RGB, error) {
	q := r.URL.Query()
	if hex := q.Get("hex"); hex != "" {
		return chroma.ParseHex(hex)
	}

	if !q.Has("r") || !q.Has("g") || !q.Has("b") {
		return chroma.RGB{}, errors.New("hex or r, g and b are required")
	}

	var ch [3]uint8
	for i, key := range []string{"r", "g", "b"} {
		v, err := strconv.Atoi(q.Get(key))
		if err != nil || v < 0 || v > 255 {
			return chroma.RGB{}, fmt.Errorf("%s must be an integer in [0,255]", key)
		}
		ch[i] = uint8(v)
	}
	return chroma.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}
