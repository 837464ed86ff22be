package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"task-tracker/pkg/task"
)

// ServerName is sent in the Server header of every response.
const ServerName = "task-tracker"

// TaskService is the part of task.Service the HTTP layer calls.
type TaskService interface {
	Create(ctx context.Context, title, description string) (int64, error)
	List(ctx context.Context) ([]task.Task, error)
}

// Options tunes how the server reports failures.
type Options struct {
	// StrictStatus maps validation failures to 400 and missing tasks to 404.
	// When false every failure is a 500.
	StrictStatus bool
}

// Server is the HTTP API server. It dispatches one request at a time.
type Server struct {
	tasks    TaskService
	opts     Options
	handlers map[string]http.HandlerFunc
	mu       sync.Mutex
}

// New creates a new Server.
func New(tasks TaskService, opts Options) *Server {
	s := &Server{
		tasks: tasks,
		opts:  opts,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := uuid.Must(uuid.NewV7()).String()

	h := w.Header()
	h.Set("Server", ServerName)
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("X-Request-ID", reqID)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	s.mu.Lock()
	s.dispatch(rec, r)
	s.mu.Unlock()

	log.Printf("%s %s %d %s req=%s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond), reqID)
}

// dispatch is the fault boundary: a panic in a handler becomes a 500.
func (s *Server) dispatch(w *statusRecorder, r *http.Request) {
	defer func() {
		if v := recover(); v != nil {
			log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, v)
			if !w.wrote {
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}
	}()
	h, ok := s.handlers[r.Method+" "+r.RequestURI]
	if !ok {
		h = s.handleNotFound
	}
	h(w, r)
}

// routes keys handlers by method and raw request target. The target is
// matched as sent: no path cleaning, no trailing-slash handling, and a query
// string makes it a different target, so "/tasks?x=1" and "//tasks" are 404.
func (s *Server) routes() {
	s.handlers = map[string]http.HandlerFunc{
		"GET /tasks":  s.handleTaskList,
		"POST /tasks": s.handleTaskCreate,
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

// fail writes err as a JSON error body.
func (s *Server) fail(w http.ResponseWriter, err error) {
	writeError(w, s.statusFor(err), err.Error())
}

func (s *Server) statusFor(err error) int {
	if !s.opts.StrictStatus {
		return http.StatusInternalServerError
	}
	switch task.KindOf(err) {
	case task.KindValidation:
		return http.StatusBadRequest
	case task.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// NewHTTPServer wraps h in an http.Server that closes every connection after
// its first response.
func NewHTTPServer(addr string, h http.Handler, readTimeout, writeTimeout time.Duration) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}
	srv.SetKeepAlivesEnabled(false)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.wrote {
		return
	}
	r.status = status
	r.wrote = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wrote {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}
