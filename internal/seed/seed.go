// Package seed loads sample onboardings from YAML through the store, so
// seeded rows obey the same validation as API writes.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

//go:embed sample.yaml
var sampleYAML []byte

// Dataset is the YAML seed document.
type Dataset struct {
	Onboardings []Onboarding `yaml:"onboardings"`
}

// Onboarding seeds one onboarding and everything under it. Company names the
// company, which is created when missing.
type Onboarding struct {
	Company      string    `yaml:"company"`
	Owner        string    `yaml:"owner"`
	Status       string    `yaml:"status"`
	TargetGoLive string    `yaml:"targetGoLive"`
	Phases       []Phase   `yaml:"phases"`
	Contacts     []Contact `yaml:"contacts"`
}

// Phase seeds a phase and its tasks in order.
type Phase struct {
	Name  string `yaml:"name"`
	Tasks []Task `yaml:"tasks"`
}

// Task seeds a task. Key is a local handle that BlockedBy can refer to
// within the same onboarding.
type Task struct {
	Key         string    `yaml:"key"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Status      string    `yaml:"status"`
	Priority    string    `yaml:"priority"`
	Due         string    `yaml:"due"`
	Owner       string    `yaml:"owner"`
	Members     []string  `yaml:"members"`
	Notes       string    `yaml:"notes"`
	BlockedBy   string    `yaml:"blockedBy"`
	Comments    []Comment `yaml:"comments"`
}

// Comment seeds a task comment.
type Comment struct {
	Author string `yaml:"author"`
	Body   string `yaml:"body"`
}

// Contact seeds an onboarding contact.
type Contact struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

// Result reports what Seed did.
type Result struct {
	Created int
	Skipped int
}

// Parse decodes a dataset. Unknown keys are rejected.
func Parse(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return &ds, nil
		}
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &ds, nil
}

// Sample returns the embedded sample dataset.
func Sample() (*Dataset, error) {
	return Parse(bytes.NewReader(sampleYAML))
}

// LoadFile reads a dataset from path, or the sample dataset when path is
// empty.
func LoadFile(path string) (*Dataset, error) {
	if path == "" {
		return Sample()
	}
	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Seed inserts ds through s. It is idempotent: an onboarding is skipped when
// its company already has one.
func Seed(ctx context.Context, s *store.Store, ds *Dataset) (Result, error) {
	var res Result

	companies, err := s.Companies.List(ctx)
	if err != nil {
		return res, err
	}
	byName := make(map[string]string, len(companies))
	for _, c := range companies {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	for _, so := range ds.Onboardings {
		name := strings.TrimSpace(so.Company)
		if id, ok := byName[strings.ToLower(name)]; ok {
			existing, err := s.Onboardings.List(ctx, store.OnboardingFilter{Status: domain.StatusFilterAll, CompanyID: id})
			if err != nil {
				return res, err
			}
			if len(existing) > 0 {
				res.Skipped++
				continue
			}
		}

		o, err := seedOnboarding(ctx, s, byName[strings.ToLower(name)], so)
		if err != nil {
			return res, fmt.Errorf("seed %q: %w", name, err)
		}
		byName[strings.ToLower(name)] = o.CompanyID
		res.Created++
	}
	return res, nil
}

func seedOnboarding(ctx context.Context, s *store.Store, companyID string, so Onboarding) (*domain.Onboarding, error) {
	in := domain.OnboardingInput{
		CompanyID:    companyID,
		Owner:        optional(so.Owner),
		Status:       domain.OnboardingStatus(so.Status),
		TargetGoLive: optional(so.TargetGoLive),
	}
	if companyID == "" {
		in.CompanyName = so.Company
	}
	o, err := s.Onboardings.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]string)
	type pending struct{ taskID, blockedBy string }
	var blocked []pending

	for _, sp := range so.Phases {
		p, err := s.Phases.Create(ctx, domain.PhaseInput{OnboardingID: o.ID, Name: sp.Name})
		if err != nil {
			return nil, err
		}
		for _, st := range sp.Tasks {
			t, err := s.Tasks.Create(ctx, taskInput(o.ID, p.ID, st))
			if err != nil {
				return nil, fmt.Errorf("task %q: %w", st.Title, err)
			}
			if st.Key != "" {
				keys[st.Key] = t.ID
			}
			if st.BlockedBy != "" {
				blocked = append(blocked, pending{taskID: t.ID, blockedBy: st.BlockedBy})
			}
			for _, sc := range st.Comments {
				if _, err := s.Comments.Create(ctx, t.ID, sc.Author, domain.CommentInput{Body: sc.Body}); err != nil {
					return nil, fmt.Errorf("comment on %q: %w", st.Title, err)
				}
			}
		}
	}

	// Blockers are linked once every task exists so keys may point forward.
	for _, b := range blocked {
		id, ok := keys[b.blockedBy]
		if !ok {
			return nil, fmt.Errorf("blockedBy %q: no task with that key", b.blockedBy)
		}
		if _, err := s.Tasks.Update(ctx, b.taskID, domain.TaskPatch{BlockedByTaskID: domain.Set(id)}); err != nil {
			return nil, err
		}
	}

	for _, sc := range so.Contacts {
		if _, err := s.Contacts.Create(ctx, domain.ContactInput{
			OnboardingID: o.ID,
			Name:         sc.Name,
			Email:        sc.Email,
			Role:         sc.Role,
		}); err != nil {
			return nil, fmt.Errorf("contact %q: %w", sc.Name, err)
		}
	}
	return o, nil
}

func taskInput(onboardingID, phaseID string, st Task) domain.TaskInput {
	in := domain.TaskInput{
		OnboardingID: onboardingID,
		PhaseID:      phaseID,
		Title:        st.Title,
		Description:  st.Description,
		Status:       domain.TaskStatus(st.Status),
		Due:          optional(st.Due),
		Owner:        st.Owner,
		Members:      st.Members,
		Notes:        st.Notes,
	}
	if st.Priority != "" {
		p := domain.Priority(st.Priority)
		in.Priority = &p
	}
	return in
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
