package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitor-desk/internal/domain/visitors"
)

func testRecord(name string, createdAt time.Time) visitors.Record {
	return visitors.Record{
		Name:            name,
		Mobile:          "123",
		Email:           name + "@x.com",
		AppointmentWith: visitors.OfficeElloraManpower,
		Purpose:         "Demo",
		Status:          visitors.StatusPending,
		CreatedAt:       createdAt,
	}
}

func TestVisitorsRepo_SeedsWhenNoMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visitors.json")
	repo := NewVisitorsRepo(path, nil)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "John Doe", items[0].Name)
	assert.Equal(t, visitors.StatusPending, items[0].Status)
}

func TestVisitorsRepo_CreateAssignsTimeBasedID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visitors.json")
	repo := NewVisitorsRepo(path, nil)

	a, err := repo.Create(context.Background(), testRecord("A", time.Now()))
	require.NoError(t, err)
	b, err := repo.Create(context.Background(), testRecord("B", time.Now()))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)

	// ULID: orden lexicográfico sigue al orden temporal
	assert.Less(t, a.ID, b.ID)
}

func TestVisitorsRepo_MirrorSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visitors.json")

	repo := NewVisitorsRepo(path, nil)
	created, err := repo.Create(context.Background(), testRecord("Asha", time.Now()))
	require.NoError(t, err)

	// el espejo se reescribe en cada mutación
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var mirrored []map[string]any
	require.NoError(t, json.Unmarshal(raw, &mirrored))
	require.Len(t, mirrored, 2) // Asha + semilla
	assert.Equal(t, "Asha", mirrored[0]["name"])

	// "reinicio": un repo nuevo sobre el mismo archivo ve lo mismo
	reopened := NewVisitorsRepo(path, nil)
	got, err := reopened.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Status, got.Status)

	items, err := reopened.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "Asha", items[0].Name) // más nuevo primero
}

func TestVisitorsRepo_UpdateAndDeleteMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visitors.json")
	repo := NewVisitorsRepo(path, nil)

	created, err := repo.Create(context.Background(), testRecord("Asha", time.Now()))
	require.NoError(t, err)

	created.Status = visitors.StatusApproved
	created.AppointmentTime = "14:30:00"
	require.NoError(t, repo.Update(context.Background(), created))

	reopened := NewVisitorsRepo(path, nil)
	got, err := reopened.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, visitors.StatusApproved, got.Status)
	assert.Equal(t, "14:30:00", got.AppointmentTime)

	require.NoError(t, repo.Delete(context.Background(), created.ID))

	reopened = NewVisitorsRepo(path, nil)
	_, err = reopened.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, visitors.ErrNotFound)
}

func TestVisitorsRepo_NotFoundErrors(t *testing.T) {
	repo := NewVisitorsRepo(filepath.Join(t.TempDir(), "visitors.json"), nil)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, visitors.ErrNotFound)

	err = repo.Update(context.Background(), visitors.Record{ID: "nope"})
	assert.ErrorIs(t, err, visitors.ErrNotFound)

	err = repo.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, visitors.ErrNotFound)
}
