package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ayusman/chromatip/internal/chroma"
)

func TestClassifyHandler(t *testing.T) {
	handler := NewClassifyHandler(chroma.NewClassifier(nil))

	tests := []struct {
		name         string
		query        url.Values
		wantName     string
		wantHex      string
		wantLight    bool
		wantContrast string
		wantPalette  int
	}{
		{
			name:         "hex",
			query:        url.Values{"hex": {"#ff0000"}},
			wantName:     "red",
			wantHex:      "#ff0000",
			wantContrast: "#ffffff",
			wantPalette:  4,
		},
		{
			name:         "components",
			query:        url.Values{"r": {"255"}, "g": {"255"}, "b": {"255"}},
			wantName:     "white",
			wantHex:      "#ffffff",
			wantLight:    true,
			wantContrast: "#000000",
			wantPalette:  4,
		},
		{
			name:         "scheme",
			query:        url.Values{"hex": {"0000ff"}, "scheme": {"triadic"}},
			wantName:     "blue",
			wantHex:      "#0000ff",
			wantContrast: "#ffffff",
			wantPalette:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/classify?"+tt.query.Encode(), nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}

			var resp classifyResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Name != tt.wantName || resp.Hex != tt.wantHex {
				t.Errorf("got %s %s, want %s %s", resp.Name, resp.Hex, tt.wantName, tt.wantHex)
			}
			if resp.Light != tt.wantLight {
				t.Errorf("light = %v, want %v", resp.Light, tt.wantLight)
			}
			if resp.Contrast != tt.wantContrast {
				t.Errorf("contrast = %s, want %s", resp.Contrast, tt.wantContrast)
			}
			if len(resp.Palette) != tt.wantPalette || resp.Palette[0] != tt.wantHex {
				t.Errorf("palette = %v", resp.Palette)
			}
		})
	}
}

func TestClassifyHandler_RedComplementary(t *testing.T) {
	rec := httptest.NewRecorder()
	NewClassifyHandler(chroma.NewClassifier(nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/classify?hex=%23ff0000", nil))

	var resp classifyResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Complementary != "#00ffff" {
		t.Errorf("complementary = %s, want #00ffff", resp.Complementary)
	}
	if resp.HSV != (chroma.HSV{H: 0, S: 100, V: 100}) {
		t.Errorf("hsv = %v", resp.HSV)
	}
}

func TestClassifyHandler_BadRequest(t *testing.T) {
	handler := NewClassifyHandler(chroma.NewClassifier(nil))

	for _, q := range []string{
		"",
		"hex=zzzzzz",
		"r=1&g=2",
		"r=256&g=0&b=0",
		"r=-1&g=0&b=0",
		"r=x&g=0&b=0",
		"hex=ff0000&scheme=rainbow",
	} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/classify?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%q: status = %d, want %d", q, rec.Code, http.StatusBadRequest)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/classify?hex=ff0000", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST: status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
