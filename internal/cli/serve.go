package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/connections"
	cerrors "github.com/matzehuels/orgcanvas/pkg/errors"
	"github.com/matzehuels/orgcanvas/pkg/export"
	"github.com/matzehuels/orgcanvas/pkg/hierarchy"
	"github.com/matzehuels/orgcanvas/pkg/observability"
	"github.com/matzehuels/orgcanvas/pkg/store"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart HTTP API",
		Long: `Run the chart HTTP API.

The server exposes chart CRUD, position and connection patches, hierarchy
capture, auto-arrange, and SVG rendering over the configured store backend.
Use the redis or mongo backend to share charts across instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}

			st, err := newStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &chartServer{store: st, logger: c.Logger}
			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()

			c.Logger.Infof("listening on %s", addr)
			if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// =============================================================================
// HTTP Handlers
// =============================================================================

// chartServer serves the chart API against a snapshot store.
type chartServer struct {
	store  store.Store
	logger *log.Logger
}

func (s *chartServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/charts", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Post("/positions", s.handlePositions)
			r.Post("/connections", s.handleConnections)
			r.Post("/hierarchy", s.handleCapture)
			r.Post("/arrange", s.handleArrange)
			r.Get("/svg", s.handleSVG)
		})
	})

	return r
}

func (s *chartServer) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"charts": names})
}

func (s *chartServer) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadChart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *chartServer) handlePut(w http.ResponseWriter, r *http.Request) {
	var snap chart.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode chart: %w", err))
		return
	}
	if err := chart.Validate(snap); err != nil {
		s.writeError(w, httpStatus(err), err)
		return
	}
	if err := s.saveChart(w, r, snap); err != nil {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *chartServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeError(w, httpStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePositions applies a position patch: the commit of a drag.
func (s *chartServer) handlePositions(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadChart(w, r)
	if !ok {
		return
	}
	var patch chart.PositionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode patch: %w", err))
		return
	}
	for _, p := range patch.Upserts {
		snap.UpsertPosition(p)
	}
	if err := s.saveChart(w, r, snap); err != nil {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleConnections applies a connection patch (add, update, or remove).
func (s *chartServer) handleConnections(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadChart(w, r)
	if !ok {
		return
	}
	var patch chart.ConnectionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode patch: %w", err))
		return
	}
	if err := applyConnectionPatch(&snap, patch); err != nil {
		s.writeError(w, httpStatus(err), err)
		return
	}
	if err := s.saveChart(w, r, snap); err != nil {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleCapture stores the row structure derived from current positions.
func (s *chartServer) handleCapture(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadChart(w, r)
	if !ok {
		return
	}
	snap.Hierarchy = hierarchy.Capture(snap.PositionMap())
	if err := s.saveChart(w, r, snap); err != nil {
		return
	}
	writeJSON(w, http.StatusOK, snap.Hierarchy)
}

// handleArrange replays the saved hierarchy (or a derived one) and persists
// the resulting positions.
func (s *chartServer) handleArrange(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadChart(w, r)
	if !ok {
		return
	}
	visible := chart.VisibleNodes(&snap)
	start := time.Now()
	observability.Engine().OnArrangeStart(r.Context(), len(visible))
	result := hierarchy.AutoArrange(&snap, visible, hierarchy.Options{
		HasConnections: len(snap.Connections) > 0,
	})
	observability.Engine().OnArrangeComplete(r.Context(), len(visible), len(result.Dropped), time.Since(start))
	for _, id := range result.Dropped {
		s.logger.Warnf("chart %s: dropping saved hierarchy entry %q", chi.URLParam(r, "name"), id)
	}
	snap.SetPositions(result.Positions)
	if err := s.saveChart(w, r, snap); err != nil {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *chartServer) handleSVG(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadChart(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(export.SVG(&snap))
}

// =============================================================================
// Helpers
// =============================================================================

func (s *chartServer) loadChart(w http.ResponseWriter, r *http.Request) (chart.Snapshot, bool) {
	name := chi.URLParam(r, "name")
	snap, err := s.store.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, httpStatus(err), err)
		return chart.Snapshot{}, false
	}
	return snap, true
}

// httpStatus maps coded collaborator errors onto HTTP statuses. Errors
// without a code are server faults.
func httpStatus(err error) int {
	switch cerrors.GetCode(err) {
	case cerrors.ErrCodeInvalidChart, cerrors.ErrCodeInvalidFormat, cerrors.ErrCodeInvalidPatch:
		return http.StatusUnprocessableEntity
	case cerrors.ErrCodeNotFound, cerrors.ErrCodeChartNotFound, cerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *chartServer) saveChart(w http.ResponseWriter, r *http.Request, snap chart.Snapshot) error {
	name := chi.URLParam(r, "name")
	if err := s.store.Save(r.Context(), name, snap); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return err
	}
	return nil
}

func (s *chartServer) writeError(w http.ResponseWriter, status int, err error) {
	if status >= 500 {
		s.logger.Errorf("request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// applyConnectionPatch runs the patch through the connection set so server
// writes get the same defaulting and duplicate rules as the canvas.
func applyConnectionPatch(s *chart.Snapshot, patch chart.ConnectionPatch) error {
	set := connections.NewSet(s.Connections)
	switch patch.Op {
	case chart.PatchAdd:
		if _, ok := set.Add(patch.Connection); !ok {
			return cerrors.New(cerrors.ErrCodeInvalidPatch, "connection between %q and %q rejected",
				patch.Connection.FromID, patch.Connection.ToID)
		}
	case chart.PatchUpdate:
		if !set.Update(patch.Connection) {
			return cerrors.New(cerrors.ErrCodeInvalidPatch, "connection %q not found", patch.Connection.ID)
		}
	case chart.PatchRemove:
		if !set.Delete(patch.Connection.ID) {
			return cerrors.New(cerrors.ErrCodeInvalidPatch, "connection %q not found", patch.Connection.ID)
		}
	default:
		return cerrors.New(cerrors.ErrCodeInvalidPatch, "unknown patch op %q", patch.Op)
	}
	s.Connections = set.All()
	return nil
}
