package ui

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
	"github.com/johnwards/onboard/web"
)

// Handler renders UI pages.
type Handler struct {
	store *store.Store
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	// date trims a timestamp to its calendar date.
	"date": func(ts string) string {
		if len(ts) >= len(domain.DateLayout) {
			return ts[:len(domain.DateLayout)]
		}
		return ts
	},
	"healthClass": func(h domain.Health) string { return classify(string(h)) },
	"statusClass": func(s domain.TaskStatus) string { return classify(string(s)) },
	"taskTitle": func(d *domain.OnboardingDetail, id *string) string {
		if id == nil {
			return ""
		}
		for _, t := range d.Tasks {
			if t.ID == *id {
				return t.Title
			}
		}
		return "a deleted task"
	},
}

func classify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

func mustParsePages() map[string]*template.Template {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"companies", "onboardings", "board"} {
		pages[name] = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(web.FS,
			"templates/layout.html",
			"templates/"+name+".html",
		))
	}
	return pages
}

type page struct {
	Title  string
	Caller api.Caller
	Data   any
}

// Index handles GET /ui/.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/ui/onboardings", http.StatusFound)
}

// Companies handles GET /ui/companies.
func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.Companies.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "companies", "Companies", struct {
		Companies []domain.Company
	}{companies})
}

// Onboardings handles GET /ui/onboardings.
func (h *Handler) Onboardings(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(domain.OnboardingActive)
	}
	companyID := r.URL.Query().Get("companyId")

	list, err := h.store.Onboardings.List(r.Context(), store.OnboardingFilter{Status: status, CompanyID: companyID})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	companies, err := h.store.Companies.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	filters := []string{domain.StatusFilterAll}
	for _, s := range domain.OnboardingStatuses {
		filters = append(filters, string(s))
	}
	h.render(w, r, "onboardings", "Onboardings", struct {
		Onboardings []domain.OnboardingSummary
		Companies   []domain.Company
		Filters     []string
		Status      string
		CompanyID   string
	}{list, companies, filters, status, companyID})
}

// Board handles GET /ui/onboardings/{id}.
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Onboardings.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "board", d.Company.Name, struct {
		Detail             *domain.OnboardingDetail
		TaskStatuses       []domain.TaskStatus
		OnboardingStatuses []domain.OnboardingStatus
		ContactRoles       []string
	}{d, domain.TaskStatuses, domain.OnboardingStatuses, domain.SuggestedContactRoles})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	caller, _ := api.CallerFrom(r.Context())

	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout.html", page{Title: title, Caller: caller, Data: data}); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	default:
		slog.ErrorContext(r.Context(), "render page", "error", err, "path", r.URL.Path,
			"correlationId", api.CorrelationID(r.Context()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
