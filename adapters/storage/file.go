package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"cloudguide/internal/errors"
	"cloudguide/internal/logging"
)

// FileStore keeps one JSON file per analysis under a directory per user
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStore creates a file store
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to create storage directory", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) Save(ctx context.Context, a *SavedAnalysis) error {
	if err := prepare(a); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(a); err != nil {
		return err
	}
	logging.Debug("saved analysis", zap.String("id", a.ID), zap.String("user_id", a.UserID))
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*SavedAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.find(id)
}

func (s *FileStore) List(ctx context.Context, filter ListFilter) ([]*SavedAnalysis, error) {
	if filter.UserID != "" {
		if err := validateUserID(filter.UserID); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	dirs := []string{filter.UserID}
	if filter.UserID == "" {
		entries, err := os.ReadDir(s.basePath)
		if err != nil {
			return nil, errors.Internal("failed to read storage", err)
		}
		dirs = dirs[:0]
		for _, e := range entries {
			if e.IsDir() {
				dirs = append(dirs, e.Name())
			}
		}
	}

	results := []*SavedAnalysis{}
	for _, dir := range dirs {
		files, err := filepath.Glob(filepath.Join(s.basePath, dir, "*.json"))
		if err != nil {
			return nil, errors.Internal("failed to list storage", err)
		}
		for _, path := range files {
			a, err := readAnalysis(path)
			if err != nil {
				logging.Warn("skipping unreadable analysis", zap.String("path", path), zap.Error(err))
				continue
			}
			results = append(results, a)
		}
	}

	sortNewest(results)
	return paginate(results, filter), nil
}

func (s *FileStore) Update(ctx context.Context, id string, patch Patch) (*SavedAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if err := patch.apply(a); err != nil {
		return nil, err
	}
	if err := s.write(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *FileStore) Delete(ctx context.Context, id, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(userID, id)
	if _, err := os.Stat(path); err != nil {
		return errors.Newf(errors.TypeNotFound, "analysis not found or unauthorized: %s", id)
	}
	if err := os.Remove(path); err != nil {
		return errors.Internal("failed to delete analysis", err)
	}
	logging.Debug("deleted analysis", zap.String("id", id), zap.String("user_id", userID))
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(userID, id string) string {
	return filepath.Join(s.basePath, userID, filepath.Base(id)+".json")
}

func (s *FileStore) write(a *SavedAnalysis) error {
	dir := filepath.Join(s.basePath, a.UserID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Internal("failed to create user directory", err)
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return errors.Internal("failed to marshal analysis", err)
	}
	if err := os.WriteFile(s.path(a.UserID, a.ID), data, 0644); err != nil {
		return errors.Internal("failed to write analysis", err)
	}
	return nil
}

// find searches every user directory for the analysis
func (s *FileStore) find(id string) (*SavedAnalysis, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, errors.Internal("failed to read storage", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := s.path(entry.Name(), id)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return readAnalysis(path)
	}

	return nil, notFound(id)
}

func readAnalysis(path string) (*SavedAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Internal("failed to read analysis", err)
	}
	var a SavedAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Parsing("failed to unmarshal analysis", err).WithContext("path", path)
	}
	return &a, nil
}
