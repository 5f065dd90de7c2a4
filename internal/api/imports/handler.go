package imports

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/api/exports"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

const maxUploadBytes = 10 << 20

// Handler handles import HTTP requests.
type Handler struct {
	store *store.Store
}

// Result reports how an import went. Row numbers count the header as row 1.
type Result struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors"`
}

// RowError describes one rejected CSV row.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Import handles POST /onboardings/{id}/import. The CSV arrives as the
// multipart field "file" with the header written by the export endpoint.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid multipart form data", "file", corrID))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("CSV file is required", "file", corrID))
		return
	}
	defer func() { _ = file.Close() }()

	res, err := Tasks(r.Context(), h.store, r.PathValue("id"), file)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "tasks imported", "onboardingId", r.PathValue("id"), "imported", res.Imported, "failed", res.Failed)
	api.WriteJSON(w, http.StatusOK, res)
}

// Tasks reads CSV rows from src into onboarding id. Phases named in the file
// are created when missing. Rows that fail validation are reported in the
// result and skipped; any other error aborts the import.
func Tasks(ctx context.Context, s *store.Store, id string, src io.Reader) (*Result, error) {
	if _, err := s.Onboardings.Get(ctx, id); err != nil {
		return nil, err
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, domain.Invalid("file", "cannot read CSV header: %v", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"phase", "title"} {
		if _, ok := cols[required]; !ok {
			return nil, domain.Invalid("file", "missing %q column", required)
		}
	}

	phases, err := s.Phases.List(ctx, id)
	if err != nil {
		return nil, err
	}
	phaseIDs := make(map[string]string, len(phases))
	for _, p := range phases {
		if _, ok := phaseIDs[p.Name]; !ok {
			phaseIDs[p.Name] = p.ID
		}
	}

	res := &Result{Errors: []RowError{}}
	reject := func(row int, err error) error {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		res.Failed++
		res.Errors = append(res.Errors, RowError{Row: row, Message: ve.Error()})
		return nil
	}

	type pending struct {
		row     int
		taskID  string
		blocker string
	}
	var blocked []pending

	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.Invalid("file", "row %d: %v", row, err)
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		phaseName := field("phase")
		if phaseName == "" {
			res.Failed++
			res.Errors = append(res.Errors, RowError{Row: row, Message: domain.Required("phase").Error()})
			continue
		}
		phaseID, ok := phaseIDs[phaseName]
		if !ok {
			p, err := s.Phases.Create(ctx, domain.PhaseInput{OnboardingID: id, Name: phaseName})
			if err != nil {
				if err := reject(row, err); err != nil {
					return nil, err
				}
				continue
			}
			phaseID = p.ID
			phaseIDs[phaseName] = phaseID
		}

		t, err := s.Tasks.Create(ctx, taskInput(id, phaseID, field))
		if err != nil {
			if err := reject(row, err); err != nil {
				return nil, err
			}
			continue
		}
		res.Imported++
		if b := field("blockedby"); b != "" {
			blocked = append(blocked, pending{row: row, taskID: t.ID, blocker: b})
		}
	}

	if len(blocked) == 0 {
		return res, nil
	}

	// Blockers are resolved by title once every row exists, so a row may
	// refer to one further down the file.
	tasks, err := s.Tasks.List(ctx, id)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]string, len(tasks))
	for _, t := range tasks {
		if _, ok := byTitle[t.Title]; !ok {
			byTitle[t.Title] = t.ID
		}
	}
	for _, p := range blocked {
		blockerID, ok := byTitle[p.blocker]
		if !ok {
			res.Errors = append(res.Errors, RowError{
				Row:     p.row,
				Message: domain.Invalid("blockedBy", "no task titled %q", p.blocker).Error(),
			})
			continue
		}
		_, err := s.Tasks.Update(ctx, p.taskID, domain.TaskPatch{BlockedByTaskID: domain.Set(blockerID)})
		if err != nil {
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				return nil, fmt.Errorf("link blocker for row %d: %w", p.row, err)
			}
			res.Errors = append(res.Errors, RowError{Row: p.row, Message: ve.Error()})
		}
	}
	return res, nil
}

func taskInput(onboardingID, phaseID string, field func(string) string) domain.TaskInput {
	in := domain.TaskInput{
		OnboardingID: onboardingID,
		PhaseID:      phaseID,
		Title:        field("title"),
		Description:  field("description"),
		Status:       domain.TaskStatus(field("status")),
		Owner:        field("owner"),
		Notes:        field("notes"),
	}
	if v := field("priority"); v != "" {
		p := domain.Priority(strings.ToLower(v))
		in.Priority = &p
	}
	if v := field("due"); v != "" {
		in.Due = &v
	}
	for _, m := range strings.Split(field("members"), exports.MemberSeparator) {
		if m = strings.TrimSpace(m); m != "" {
			in.Members = append(in.Members, m)
		}
	}
	return in
}
