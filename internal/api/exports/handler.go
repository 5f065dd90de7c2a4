package exports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

// Columns is the CSV header shared by export and import.
var Columns = []string{
	"phase", "title", "description", "status", "priority", "due",
	"owner", "members", "notes", "blockedBy",
}

// MemberSeparator joins task members inside one CSV cell.
const MemberSeparator = ";"

// Handler handles export HTTP requests.
type Handler struct {
	store *store.Store
}

// Export handles GET /onboardings/{id}/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Onboardings.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	// Generate CSV in memory so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := WriteCSV(&buf, d); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename(d.CompanyName)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// WriteCSV writes the board's tasks in board order, one row per task.
// Blockers are written as the blocking task's title.
func WriteCSV(buf *bytes.Buffer, d *domain.OnboardingDetail) error {
	phaseNames := make(map[string]string, len(d.Phases))
	for _, p := range d.Phases {
		phaseNames[p.ID] = p.Name
	}
	titles := make(map[string]string, len(d.Tasks))
	for _, t := range d.Tasks {
		titles[t.ID] = t.Title
	}

	cw := csv.NewWriter(buf)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range d.Tasks {
		var blockedBy string
		if t.BlockedByTaskID != nil {
			blockedBy = titles[*t.BlockedByTaskID]
		}
		row := []string{
			phaseNames[t.PhaseID],
			t.Title,
			t.Description,
			string(t.Status),
			deref(t.Priority),
			deref(t.Due),
			t.Owner,
			strings.Join(t.Members, MemberSeparator),
			t.Notes,
			blockedBy,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write task %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func deref[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}

func filename(company string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, company)
	name = strings.Trim(name, "-")
	if name == "" {
		name = "onboarding"
	}
	return name + "-tasks.csv"
}
