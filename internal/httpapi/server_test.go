package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cargoplan/loadplanner/internal/importer"
	"github.com/cargoplan/loadplanner/internal/model"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewRouter())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestTruckCatalogEndpoint(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/truck-catalog")
	if err != nil {
		t.Fatalf("GET /truck-catalog: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["trucks"] == nil {
		t.Error("expected trucks field in response")
	}
}

func TestOptimizeEndpointRejectsEmptyItems(t *testing.T) {
	ts := testServer(t)
	resp := postJSON(t, ts.URL+"/optimize", optimizeRequest{
		Items: nil,
		Truck: model.NewTruckSpecs("Box Truck", 600, 240, 250, 5000),
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestOptimizeEndpointHappyPath(t *testing.T) {
	ts := testServer(t)
	req := optimizeRequest{
		Items: []model.Item{model.NewItem("Pallet", 120, 100, 100, 250, 2)},
		Truck: model.NewTruckSpecs("Box Truck", 600, 240, 250, 5000),
	}
	resp := postJSON(t, ts.URL+"/optimize", req)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool        `json:"success"`
		Result  model.Result `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success {
		t.Error("expected success=true")
	}
	if body.Result.ItemsTotal != 2 {
		t.Errorf("expected items_total=2, got %d", body.Result.ItemsTotal)
	}
}

func TestFleetSuggestEndpointRejectsEmptyItems(t *testing.T) {
	ts := testServer(t)
	resp := postJSON(t, ts.URL+"/fleet/suggest", fleetSuggestRequest{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestFleetSuggestEndpointFallsBackToDefaultCatalog(t *testing.T) {
	ts := testServer(t)
	req := fleetSuggestRequest{
		Items:      []model.Item{model.NewItem("Crate", 80, 60, 60, 40, 10)},
		DistanceKM: 150,
	}
	resp := postJSON(t, ts.URL+"/fleet/suggest", req)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success   bool                     `json:"success"`
		Scenarios []map[string]interface{} `json:"scenarios"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success {
		t.Error("expected success=true")
	}
	if len(body.Scenarios) == 0 {
		t.Error("expected at least one scenario")
	}
}

func TestManifestImportEndpointParsesCSV(t *testing.T) {
	ts := testServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "manifest.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("reference,length,width,height,weight,quantity\nPallet,120,100,100,250,2\n"))
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/manifest/import", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /manifest/import: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool                    `json:"success"`
		Result  importer.ImportResult   `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success {
		t.Error("expected success=true")
	}
	if len(body.Result.Items) != 1 {
		t.Fatalf("expected 1 parsed item, got %d", len(body.Result.Items))
	}
}

func TestManifestImportEndpointRejectsMissingFile(t *testing.T) {
	ts := testServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/manifest/import", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /manifest/import: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
