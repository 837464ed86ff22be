package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"task-tracker/pkg/task"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	title, description, err := decodeCreate(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, err)
		return
	}
	id, err := s.tasks.Create(r.Context(), title, description)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// decodeCreate reads {"title": string, "description"?: string}.
func decodeCreate(body io.Reader) (title, description string, err error) {
	dec := json.NewDecoder(body)
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return "", "", badRequest("invalid JSON: %v", err)
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return "", "", badRequest("invalid JSON: unexpected data after top-level value")
	}
	raw, ok := fields["title"]
	if !ok {
		return "", "", badRequest("Field 'title' is required")
	}
	if err := json.Unmarshal(raw, &title); err != nil {
		return "", "", badRequest("Field 'title' must be a string")
	}
	if raw, ok := fields["description"]; ok {
		if err := json.Unmarshal(raw, &description); err != nil {
			return "", "", badRequest("Field 'description' must be a string")
		}
	}
	return title, description, nil
}

// badRequest reports a malformed request body. The HTTP layer treats it like
// any other validation failure.
func badRequest(format string, args ...any) error {
	return &task.Error{Kind: task.KindValidation, Err: fmt.Errorf(format, args...)}
}
