package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudguide/core/types"
	"cloudguide/internal/errors"
)

// fixedClock makes now() advance one minute per call
func fixedClock(t *testing.T) {
	t.Helper()
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
	t.Cleanup(func() { now = prev })
}

func sampleAnalysis(userID, title string) *SavedAnalysis {
	return &SavedAnalysis{
		UserID: userID,
		Title:  title,
		Config: AnalysisConfig{
			Spec: types.InfrastructureSpec{
				VCPU:     4,
				RAM:      16,
				Storage:  256,
				OS:       types.OSUbuntuLTS,
				DiskType: types.DiskStandardSSD,
				UseCase:  types.UseCaseWebApp,
				Region:   types.RegionEurope,
			},
			Providers: []types.Provider{types.ProviderAWS},
		},
		Estimates: []types.ProviderEstimate{{
			Provider:         types.ProviderAWS,
			InstanceType:     "t3.large",
			MonthlyCost:      decimal.RequireFromString("146.51"),
			YearlyCost:       decimal.RequireFromString("1670.21"),
			IsMostEconomical: true,
		}},
	}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "analyses"))
	require.NoError(t, err)
	return map[string]Store{
		"file":   fs,
		"memory": NewMemoryStore(),
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fixedClock(t)
			ctx := context.Background()

			a := sampleAnalysis("user-1", "Web tier")
			a.Trends = json.RawMessage(`{"months":[1,2,3]}`)
			require.NoError(t, store.Save(ctx, a))

			assert.NotEmpty(t, a.ID)
			assert.Len(t, a.InputHash, 64)
			assert.False(t, a.CreatedAt.IsZero())
			assert.True(t, a.CreatedAt.Equal(a.UpdatedAt))

			got, err := store.Get(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, a.ID, got.ID)
			assert.Equal(t, "Web tier", got.Title)
			assert.Equal(t, a.Config, got.Config)
			assert.Equal(t, a.InputHash, got.InputHash)
			require.Len(t, got.Estimates, 1)
			assert.Equal(t, "146.51", got.Estimates[0].MonthlyCost.StringFixed(2))
			assert.JSONEq(t, `{"months":[1,2,3]}`, string(got.Trends))
			assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
		})
	}
}

func TestStoreSaveSameConfigSameHash(t *testing.T) {
	store := NewMemoryStore()
	a := sampleAnalysis("u", "one")
	b := sampleAnalysis("u", "two")
	require.NoError(t, store.Save(context.Background(), a))
	require.NoError(t, store.Save(context.Background(), b))
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.InputHash, b.InputHash)
}

func TestStoreSaveValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SavedAnalysis)
		field  string
	}{
		{"missing user", func(a *SavedAnalysis) { a.UserID = "" }, "user_id"},
		{"path user", func(a *SavedAnalysis) { a.UserID = "../etc" }, "user_id"},
		{"missing title", func(a *SavedAnalysis) { a.Title = "  " }, "title"},
		{"missing estimates", func(a *SavedAnalysis) { a.Estimates = nil }, "estimates"},
	}

	for name, store := range backends(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				a := sampleAnalysis("u", "t")
				tt.mutate(a)
				err := store.Save(context.Background(), a)
				require.Error(t, err)

				var e *errors.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, errors.TypeInput, e.Type)
				assert.Equal(t, tt.field, e.Context["field"])
			})
		}
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fixedClock(t)
			ctx := context.Background()

			for _, title := range []string{"first", "second", "third"} {
				require.NoError(t, store.Save(ctx, sampleAnalysis("alice", title)))
			}
			require.NoError(t, store.Save(ctx, sampleAnalysis("bob", "other")))

			list, err := store.List(ctx, ListFilter{UserID: "alice"})
			require.NoError(t, err)
			assert.Equal(t, []string{"third", "second", "first"}, titles(list))

			page, err := store.List(ctx, ListFilter{UserID: "alice", Offset: 1, Limit: 1})
			require.NoError(t, err)
			assert.Equal(t, []string{"second"}, titles(page))

			all, err := store.List(ctx, ListFilter{})
			require.NoError(t, err)
			assert.Equal(t, []string{"other", "third", "second", "first"}, titles(all))

			none, err := store.List(ctx, ListFilter{UserID: "carol"})
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)

			past, err := store.List(ctx, ListFilter{UserID: "alice", Offset: 10})
			require.NoError(t, err)
			assert.Empty(t, past)
		})
	}
}

func TestStoreUpdate(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fixedClock(t)
			ctx := context.Background()

			a := sampleAnalysis("alice", "draft")
			require.NoError(t, store.Save(ctx, a))

			title := "final"
			updated, err := store.Update(ctx, a.ID, Patch{Title: &title})
			require.NoError(t, err)
			assert.Equal(t, "final", updated.Title)
			assert.Equal(t, a.InputHash, updated.InputHash)
			assert.Len(t, updated.Estimates, 1)
			assert.True(t, updated.UpdatedAt.After(a.UpdatedAt))
			assert.True(t, updated.CreatedAt.Equal(a.CreatedAt))

			cfg := a.Config
			cfg.Spec.VCPU = 8
			updated, err = store.Update(ctx, a.ID, Patch{Config: &cfg})
			require.NoError(t, err)
			assert.NotEqual(t, a.InputHash, updated.InputHash)

			got, err := store.Get(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, "final", got.Title)
			assert.Equal(t, 8, got.Config.Spec.VCPU)

			empty := ""
			_, err = store.Update(ctx, a.ID, Patch{Title: &empty})
			assert.True(t, errors.IsType(err, errors.TypeInput))

			_, err = store.Update(ctx, "missing", Patch{Title: &title})
			assert.True(t, errors.IsType(err, errors.TypeNotFound))
		})
	}
}

func TestStoreDeleteIsScopedToOwner(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := sampleAnalysis("alice", "mine")
			require.NoError(t, store.Save(ctx, a))

			err := store.Delete(ctx, a.ID, "mallory")
			assert.True(t, errors.IsType(err, errors.TypeNotFound))

			err = store.Delete(ctx, a.ID, "")
			assert.True(t, errors.IsType(err, errors.TypeInput))

			require.NoError(t, store.Delete(ctx, a.ID, "alice"))

			_, err = store.Get(ctx, a.ID)
			assert.True(t, errors.IsType(err, errors.TypeNotFound))

			err = store.Delete(ctx, a.ID, "alice")
			assert.True(t, errors.IsType(err, errors.TypeNotFound))
			assert.NoError(t, store.Close())
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	a := sampleAnalysis("alice", "original")
	require.NoError(t, store.Save(context.Background(), a))

	a.Title = "mutated"
	got, err := store.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)

	got.Title = "mutated again"
	again, err := store.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}

func TestOpen(t *testing.T) {
	s, err := Open(BackendMemory, Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(BackendFile, Options{Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(BackendPostgres, Options{})
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	_, err = Open("s3", Options{})
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func titles(items []*SavedAnalysis) []string {
	out := make([]string, len(items))
	for i, a := range items {
		out[i] = a.Title
	}
	return out
}
