// Package projects stores saved generation results as a single JSON list.
package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Ayash-Bera/goai/backend/internal/storage"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

var ErrProjectNotFound = errors.New("project not found")

type File struct {
	Path     string `json:"path" binding:"required"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Prompt      string    `json:"prompt"`
	Files       []File    `json:"files"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tags        []string  `json:"tags"`
}

type NewProject struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Prompt      string   `json:"prompt"`
	Files       []File   `json:"files" binding:"required,dive"`
	Tags        []string `json:"tags"`
}

// Update holds the fields to change; nil fields are left as they are.
type Update struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Prompt      *string  `json:"prompt"`
	Files       []File   `json:"files"`
	Tags        []string `json:"tags"`
}

type ImportResult struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

type Repository struct {
	mu     sync.Mutex
	store  storage.Store
	logger *logrus.Logger
	now    func() time.Time
}

func NewRepository(store storage.Store, logger *logrus.Logger) *Repository {
	return &Repository{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (r *Repository) load(ctx context.Context) ([]Project, error) {
	data, err := r.store.Load(ctx, storage.ProjectsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		r.logger.WithError(err).Warn("Stored projects are corrupt, treating as empty")
		return []Project{}, nil
	}
	if projects == nil {
		projects = []Project{}
	}
	return projects, nil
}

func (r *Repository) save(ctx context.Context, projects []Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to marshal projects: %w", err)
	}
	return r.store.Save(ctx, storage.ProjectsKey, data)
}

// Save appends a new project and returns its id.
func (r *Repository) Save(ctx context.Context, in NewProject) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load(ctx)
	if err != nil {
		return "", err
	}

	now := r.now().UTC()
	project := Project{
		ID:          utils.NewID("project"),
		Name:        in.Name,
		Description: in.Description,
		Prompt:      in.Prompt,
		Files:       in.Files,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        in.Tags,
	}
	if project.Files == nil {
		project.Files = []File{}
	}
	if project.Tags == nil {
		project.Tags = []string{}
	}

	if err := r.save(ctx, append(projects, project)); err != nil {
		return "", err
	}

	r.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"files":      len(project.Files),
	}).Info("Project saved")

	return project.ID, nil
}

// List returns every project in save order.
func (r *Repository) List(ctx context.Context) ([]Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *Repository) Get(ctx context.Context, id string) (*Project, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, ErrProjectNotFound
}

// Update applies the non-nil fields and bumps UpdatedAt.
func (r *Repository) Update(ctx context.Context, id string, u Update) (*Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if projects[i].ID != id {
			continue
		}
		p := &projects[i]
		if u.Name != nil {
			p.Name = *u.Name
		}
		if u.Description != nil {
			p.Description = *u.Description
		}
		if u.Prompt != nil {
			p.Prompt = *u.Prompt
		}
		if u.Files != nil {
			p.Files = u.Files
		}
		if u.Tags != nil {
			p.Tags = u.Tags
		}
		p.UpdatedAt = r.now().UTC()

		if err := r.save(ctx, projects); err != nil {
			return nil, err
		}
		updated := *p
		return &updated, nil
	}

	return nil, ErrProjectNotFound
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load(ctx)
	if err != nil {
		return err
	}

	filtered := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == len(projects) {
		return ErrProjectNotFound
	}

	return r.save(ctx, filtered)
}

// Export renders every project as indented JSON.
func (r *Repository) Export(ctx context.Context) (string, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal projects: %w", err)
	}
	return string(data), nil
}

// Import merges an exported list. Entries without id, name or files are
// skipped, as are ids that already exist. A payload that is not a JSON list
// imports nothing and reports an invalid format.
func (r *Repository) Import(ctx context.Context, data []byte) (ImportResult, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ImportResult{Success: false, Imported: 0, Errors: []string{"invalid file format"}}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	existing := make(map[string]bool, len(projects))
	for _, p := range projects {
		existing[p.ID] = true
	}

	result := ImportResult{Success: true, Errors: []string{}}
	for _, entry := range raw {
		var p Project
		if err := json.Unmarshal(entry, &p); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to import project %s", projectName(entry)))
			continue
		}
		if p.ID == "" || p.Name == "" || p.Files == nil {
			continue
		}
		if existing[p.ID] {
			continue
		}
		existing[p.ID] = true
		projects = append(projects, p)
		result.Imported++
	}

	if err := r.save(ctx, projects); err != nil {
		return ImportResult{}, err
	}

	r.logger.WithFields(logrus.Fields{
		"imported": result.Imported,
		"errors":   len(result.Errors),
	}).Info("Projects imported")

	return result, nil
}

func projectName(entry json.RawMessage) string {
	var named struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(entry, &named) == nil && named.Name != "" {
		return named.Name
	}
	return "without name"
}
