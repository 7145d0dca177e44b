// Package httpapi exposes the placement engine and fleet partitioner as
// a thin JSON/REST contract, grounded on the original service's Flask
// blueprint (optimize/suggest-fleet/health/truck-specs).
package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cargoplan/loadplanner/internal/engine"
	"github.com/cargoplan/loadplanner/internal/fleet"
	"github.com/cargoplan/loadplanner/internal/importer"
	"github.com/cargoplan/loadplanner/internal/model"
	"github.com/cargoplan/loadplanner/internal/tariff"
)

// maxManifestUploadBytes caps the multipart body accepted by /manifest/import.
const maxManifestUploadBytes = 10 << 20 // 10MB

// NewRouter builds the chi router mounting all loadplanner HTTP routes.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)
	r.Get("/truck-catalog", handleTruckCatalog)
	r.Post("/optimize", handleOptimize)
	r.Post("/fleet/suggest", handleFleetSuggest)
	r.Post("/manifest/import", handleManifestImport)

	return r
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": msg})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  "healthy",
	})
}

func handleTruckCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"trucks":  model.DefaultInventory().Trucks,
		"tariffs": tariff.BuiltinProfiles(),
	})
}

// optimizeRequest is the JSON body for POST /optimize.
type optimizeRequest struct {
	Items  []model.Item       `json:"items"`
	Truck  model.TruckSpecs   `json:"truck"`
	Config *model.PlannerConfig `json:"config,omitempty"`
}

func handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "no items provided")
		return
	}

	cfg := model.DefaultPlannerConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	result, err := engine.Optimize(req.Items, req.Truck, cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

// fleetSuggestRequest is the JSON body for POST /fleet/suggest.
type fleetSuggestRequest struct {
	Items          []model.Item      `json:"items"`
	AvailableTrucks []model.TruckSpecs `json:"available_trucks"`
	DistanceKM     float64           `json:"distance_km"`
}

func handleFleetSuggest(w http.ResponseWriter, r *http.Request) {
	var req fleetSuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "no items provided")
		return
	}

	trucks := req.AvailableTrucks
	if len(trucks) == 0 {
		for _, tp := range model.DefaultInventory().Trucks {
			trucks = append(trucks, tp.ToTruckSpecs())
		}
	}

	scenarios := fleet.SuggestFleet(req.Items, trucks, req.DistanceKM)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"scenarios": scenarios,
	})
}

// handleManifestImport accepts a multipart "file" field holding a CSV or
// Excel manifest and returns the parsed items alongside any warnings/errors,
// reusing the same column-detection logic as the desktop importer.
func handleManifestImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxManifestUploadBytes)
	if err := r.ParseMultipartForm(maxManifestUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing \"file\" field")
		return
	}
	defer file.Close()

	var result importer.ImportResult
	if isExcelFilename(header.Filename) {
		result, err = importExcelUpload(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			writeError(w, http.StatusBadRequest, "cannot read upload: "+readErr.Error())
			return
		}
		result = importer.ImportCSVFromReader(bytes.NewReader(data), importer.DetectCSVDelimiter(data))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

func isExcelFilename(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".xlsx" || ext == ".xls"
}

// importExcelUpload spools the multipart file to a temp path since excelize
// only reads from disk paths, then delegates to importer.ImportExcel.
func importExcelUpload(file io.Reader) (importer.ImportResult, error) {
	tmp, err := os.CreateTemp("", "manifest-*.xlsx")
	if err != nil {
		return importer.ImportResult{}, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		return importer.ImportResult{}, err
	}
	if err := tmp.Close(); err != nil {
		return importer.ImportResult{}, err
	}

	return importer.ImportExcel(tmp.Name()), nil
}
