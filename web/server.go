// Package web serves the stored records over a read-only JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/planport/daextract"
	"github.com/planport/daextract/store"
)

// RecordSource is the slice of the store the API reads from.
type RecordSource interface {
	List(ctx context.Context) ([]daextract.Record, error)
	Get(ctx context.Context, reference string) (daextract.Record, error)
}

// Server exposes a RecordSource over HTTP.
type Server struct {
	source     RecordSource
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, source RecordSource) *Server {
	s := &Server{source: source}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/records", s.handleListRecords).Methods(http.MethodGet)
	s.router.HandleFunc("/records/{reference:.+}", s.handleGetRecord).Methods(http.MethodGet)
}

// Handler returns the routing handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// recordJSON is the wire form of a record. DateReceived is omitted when
// the document carried no parseable date.
type recordJSON struct {
	CouncilReference string     `json:"councilReference"`
	Address          string     `json:"address"`
	Description      string     `json:"description"`
	InfoURL          string     `json:"infoUrl"`
	CommentURL       string     `json:"commentUrl"`
	DateScraped      time.Time  `json:"dateScraped"`
	DateReceived     *time.Time `json:"dateReceived,omitempty"`
	LegalDescription string     `json:"legalDescription,omitempty"`
}

func toRecordJSON(rec daextract.Record) recordJSON {
	rj := recordJSON{
		CouncilReference: rec.CouncilReference,
		Address:          rec.Address,
		Description:      rec.Description,
		InfoURL:          rec.InfoURL,
		CommentURL:       rec.CommentURL,
		DateScraped:      rec.DateScraped,
		LegalDescription: rec.LegalDescription,
	}
	if !rec.DateReceived.IsZero() {
		received := rec.DateReceived
		rj.DateReceived = &received
	}
	return rj
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.source.List(r.Context())
	if err != nil {
		log.Printf("listing records: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]recordJSON, len(records))
	for i, rec := range records {
		out[i] = toRecordJSON(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	rec, err := s.source.Get(r.Context(), reference)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		log.Printf("fetching record %s: %v", reference, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toRecordJSON(rec))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
