// Package storage persists saved analyses: a priced infrastructure
// comparison a user chose to keep, with its configuration and results.
// Backends: file, memory, PostgreSQL.
package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"cloudguide/core/advisory"
	"cloudguide/core/determinism"
	"cloudguide/core/types"
	"cloudguide/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendFile     Backend = "file"
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
)

// Store is the storage interface
type Store interface {
	// Save stores a new analysis, assigning its ID and timestamps
	Save(ctx context.Context, a *SavedAnalysis) error

	// Get retrieves an analysis by ID
	Get(ctx context.Context, id string) (*SavedAnalysis, error)

	// List returns analyses newest first
	List(ctx context.Context, filter ListFilter) ([]*SavedAnalysis, error)

	// Update applies a partial change and returns the updated analysis
	Update(ctx context.Context, id string, patch Patch) (*SavedAnalysis, error)

	// Delete removes an analysis owned by userID
	Delete(ctx context.Context, id, userID string) error

	// Close releases backend resources
	Close() error
}

// AnalysisConfig is the input a saved analysis was priced from
type AnalysisConfig struct {
	Spec      types.InfrastructureSpec `json:"spec" yaml:"spec"`
	Providers []types.Provider         `json:"providers,omitempty" yaml:"providers,omitempty"`
}

// SavedAnalysis is a stored comparison
type SavedAnalysis struct {
	ID        string                   `json:"id" yaml:"id"`
	UserID    string                   `json:"user_id" yaml:"user_id"`
	Title     string                   `json:"title" yaml:"title"`
	Config    AnalysisConfig           `json:"config" yaml:"config"`
	Estimates []types.ProviderEstimate `json:"estimates" yaml:"estimates"`
	Advisory  *advisory.Result         `json:"advisory,omitempty" yaml:"advisory,omitempty"`

	// Trends is caller-defined chart data, stored verbatim
	Trends json.RawMessage `json:"trends,omitempty" yaml:"-"`

	InputHash string    `json:"input_hash" yaml:"input_hash"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// ListFilter filters analysis listing
type ListFilter struct {
	// UserID restricts results to one owner; empty lists everything
	UserID string
	Limit  int
	Offset int
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title     *string                  `json:"title,omitempty"`
	Config    *AnalysisConfig          `json:"config,omitempty"`
	Estimates []types.ProviderEstimate `json:"estimates,omitempty"`
	Trends    json.RawMessage          `json:"trends,omitempty"`
}

// now is the store clock
var now = func() time.Time {
	return time.Now().UTC()
}

// validate checks the fields every saved analysis must carry
func validate(a *SavedAnalysis) error {
	if a == nil {
		return errors.Input("analysis is required")
	}
	if err := validateUserID(a.UserID); err != nil {
		return err
	}
	if strings.TrimSpace(a.Title) == "" {
		return errors.Input("title is required").WithContext("field", "title")
	}
	if len(a.Estimates) == 0 {
		return errors.Input("estimates are required").WithContext("field", "estimates")
	}
	return nil
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.Input("user_id is required").WithContext("field", "user_id")
	}
	if userID != filepath.Base(userID) || userID == "." || userID == ".." {
		return errors.Inputf("invalid user_id %q", userID).WithContext("field", "user_id")
	}
	return nil
}

// prepare validates a new analysis and fills its ID, hash and timestamps
func prepare(a *SavedAnalysis) error {
	if err := validate(a); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.InputHash == "" {
		hash, err := determinism.HashJSON(a.Config)
		if err != nil {
			return errors.Internal("failed to hash analysis config", err)
		}
		a.InputHash = hash.Hex()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now()
	}
	a.UpdatedAt = a.CreatedAt
	return nil
}

// apply merges a patch into an analysis
func (p Patch) apply(a *SavedAnalysis) error {
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return errors.Input("title cannot be empty").WithContext("field", "title")
		}
		a.Title = *p.Title
	}
	if p.Config != nil {
		a.Config = *p.Config
		hash, err := determinism.HashJSON(a.Config)
		if err != nil {
			return errors.Internal("failed to hash analysis config", err)
		}
		a.InputHash = hash.Hex()
	}
	if p.Estimates != nil {
		a.Estimates = p.Estimates
	}
	if p.Trends != nil {
		a.Trends = p.Trends
	}
	a.UpdatedAt = now()
	return nil
}

// sortNewest orders analyses by creation time, newest first, ID breaking ties
func sortNewest(items []*SavedAnalysis) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

// paginate applies offset and limit
func paginate(items []*SavedAnalysis, filter ListFilter) []*SavedAnalysis {
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return []*SavedAnalysis{}
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items
}

func notFound(id string) error {
	return errors.NotFound("analysis", id)
}

// Options configures Open
type Options struct {
	Path string
	DSN  string
}

// Open creates a store by backend type
func Open(backend Backend, opts Options) (Store, error) {
	switch backend {
	case BackendFile, "":
		path := opts.Path
		if path == "" {
			path = ".cloudguide/analyses"
		}
		return NewFileStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendPostgres:
		return NewPostgresStore(opts.DSN)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported storage backend: %s", backend)
	}
}
