package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	cerrors "github.com/matzehuels/orgcanvas/pkg/errors"
	"github.com/matzehuels/orgcanvas/pkg/store"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	srv := &chartServer{store: st, logger: newLogger(io.Discard, log.InfoLevel)}
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts, st
}

func putChart(t *testing.T, ts *httptest.Server, name string, s chart.Snapshot) *http.Response {
	t.Helper()
	body, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/charts/"+name, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func apiChart(t *testing.T) chart.Snapshot {
	t.Helper()
	return chart.Snapshot{
		Name:  "acme",
		Nodes: []chart.Node{{ID: "ceo", Name: "Avery"}, {ID: "cto", ParentID: "ceo", Name: "Sam"}},
		Positions: []chart.Position{
			{ID: "ceo", X: 200, Y: 40},
			{ID: "cto", X: 200, Y: 180},
		},
	}
}

func TestServe_PutGetRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := putChart(t, ts, "acme", apiChart(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err := http.Get(ts.URL + "/api/charts/acme")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got chart.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != 2 || got.Nodes[1].ParentID != "ceo" {
		t.Errorf("GET returned %+v", got.Nodes)
	}
}

func TestServe_GetMissingIs404(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/charts/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServe_InvalidChartRejected(t *testing.T) {
	ts, _ := newTestServer(t)
	bad := chart.Snapshot{Nodes: []chart.Node{{ID: "a"}, {ID: "a"}}}
	resp := putChart(t, ts, "bad", bad)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 for duplicate ids", resp.StatusCode)
	}
}

// Error bodies carry the structured code so API clients can branch on it,
// and the code decides the status.
func TestServe_ErrorsCarryCodes(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/charts/nope")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing chart status = %d, want 404", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte(cerrors.ErrCodeChartNotFound)) {
		t.Errorf("missing chart body = %s, want %s code", body, cerrors.ErrCodeChartNotFound)
	}

	bad := chart.Snapshot{Nodes: []chart.Node{{ID: "a"}, {ID: "a"}}}
	resp = putChart(t, ts, "bad", bad)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("invalid chart status = %d, want 422", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte(cerrors.ErrCodeInvalidChart)) {
		t.Errorf("invalid chart body = %s, want %s code", body, cerrors.ErrCodeInvalidChart)
	}
}

func TestServe_UnknownConnectionOpIs422(t *testing.T) {
	ts, _ := newTestServer(t)
	putChart(t, ts, "acme", apiChart(t)).Body.Close()

	patch := chart.ConnectionPatch{Op: "merge", Connection: chart.Connection{FromID: "ceo", ToID: "cto"}}
	body, _ := json.Marshal(patch)
	resp, err := http.Post(ts.URL+"/api/charts/acme/connections", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("unknown op status = %d, want 422", resp.StatusCode)
	}
}

func TestServe_PositionPatch(t *testing.T) {
	ts, st := newTestServer(t)
	putChart(t, ts, "acme", apiChart(t)).Body.Close()

	patch := chart.PositionPatch{Upserts: []chart.Position{{ID: "cto", X: 500, Y: 300}}}
	body, _ := json.Marshal(patch)
	resp, err := http.Post(ts.URL+"/api/charts/acme/positions", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	saved, err := st.Load(context.Background(), "acme")
	if err != nil {
		t.Fatal(err)
	}
	got := saved.PositionMap()["cto"]
	if got.X != 500 || got.Y != 300 {
		t.Errorf("patched position = %+v, want (500, 300)", got)
	}
}

func TestServe_ConnectionPatchDuplicateRejected(t *testing.T) {
	ts, _ := newTestServer(t)
	putChart(t, ts, "acme", apiChart(t)).Body.Close()

	add := chart.ConnectionPatch{Op: chart.PatchAdd, Connection: chart.Connection{FromID: "ceo", ToID: "cto"}}
	body, _ := json.Marshal(add)
	resp, err := http.Post(ts.URL+"/api/charts/acme/connections", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first add status = %d, want 200", resp.StatusCode)
	}

	// Reversed direction still counts as the same pair.
	dup := chart.ConnectionPatch{Op: chart.PatchAdd, Connection: chart.Connection{FromID: "cto", ToID: "ceo"}}
	body, _ = json.Marshal(dup)
	resp, err = http.Post(ts.URL+"/api/charts/acme/connections", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("duplicate add status = %d, want 422", resp.StatusCode)
	}
}

func TestServe_ArrangePersistsPositions(t *testing.T) {
	ts, st := newTestServer(t)
	s := apiChart(t)
	s.Hierarchy = chart.SavedHierarchy{Rows: []chart.Row{
		{ItemIDs: []string{"ceo"}},
		{ItemIDs: []string{"cto"}},
	}}
	putChart(t, ts, "acme", s).Body.Close()

	resp, err := http.Post(ts.URL+"/api/charts/acme/arrange", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	saved, err := st.Load(context.Background(), "acme")
	if err != nil {
		t.Fatal(err)
	}
	pm := saved.PositionMap()
	if pm["ceo"].Y >= pm["cto"].Y {
		t.Errorf("arrange did not stack rows: ceo.Y=%v cto.Y=%v", pm["ceo"].Y, pm["cto"].Y)
	}
}

func TestServe_SVGEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	putChart(t, ts, "acme", apiChart(t)).Body.Close()

	resp, err := http.Get(ts.URL + "/api/charts/acme/svg")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(data, []byte("Avery")) {
		t.Error("SVG missing card content")
	}
}
