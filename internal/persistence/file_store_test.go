package persistence

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return store
}

func TestNewFileStore_RequiresPath(t *testing.T) {
	_, err := NewFileStore("  ")
	require.Error(t, err)
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := newFileStore(t)

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, ErrNoDocument)
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoDocument)
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	doc := domain.NewDocument()
	doc.Users = append(doc.Users, domain.User{ID: doc.AllocateUserID(), Name: "Ann", Email: "ann@x.com", PasswordHash: "h"})
	doc.Deadlines = append(doc.Deadlines, domain.Deadline{UserID: 1, Subject: "Maths", DueDate: "2024-05-01"})
	require.NoError(t, store.Save(ctx, doc))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), "\n    \"users\""), "document should be indented with four spaces")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, doc.Users[0].Email, loaded.Users[0].Email)
	require.Equal(t, doc.Deadlines, loaded.Deadlines)
	require.EqualValues(t, 2, loaded.NextUserID)
}

func TestFileStore_LoadTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"users":[{"id":1,"name":"A","email":"a@x.com","password":"h","nick":"aa"}],"tasks":[],"deadlines":[],"schedules":[]}`), 0o600))

	first, err := store.Load(ctx)
	require.NoError(t, err)
	second, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFileStore_SaveCreatesParentDirAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "state", "data.json"))
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), domain.NewDocument()))

	entries, err := os.ReadDir(filepath.Join(dir, "state"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "data.json", entries[0].Name())
}
