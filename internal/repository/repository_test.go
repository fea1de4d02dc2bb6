package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/andy/clientdesk/internal/db"
	"github.com/andy/clientdesk/internal/domain"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "clientdesk.db"), "test-key")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, database.RunMigrations())
	return database
}

func newClient(name string) *domain.Client {
	return &domain.Client{
		Name:      name,
		Telephone: "(11)9999-8888",
		BirthDate: domain.Date(1990, time.May, 20),
		CPF:       "123.456.789-00",
	}
}

func TestClientRepo_FindAllEmpty(t *testing.T) {
	repo := NewClientRepo(newTestDB(t))

	clients, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, clients)
	assert.Empty(t, clients)
}

func TestClientRepo_FindAllOrderedByName(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(newTestDB(t))

	require.NoError(t, repo.Insert(ctx, newClient("Bob")))
	require.NoError(t, repo.Insert(ctx, newClient("Ana")))

	clients, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Ana", clients[0].Name)
	assert.Equal(t, "Bob", clients[1].Name)
}

func TestClientRepo_FindAllOrderingWithFakeData(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(newTestDB(t))
	faker := gofakeit.New(42)

	var names []string
	for i := 0; i < 25; i++ {
		c := newClient(faker.Name())
		c.Telephone = faker.Phone()
		names = append(names, c.Name)
		require.NoError(t, repo.Insert(ctx, c))
	}
	sort.Strings(names)

	clients, err := repo.FindAll(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(clients))
	for _, c := range clients {
		got = append(got, c.Name)
	}
	assert.Equal(t, names, got)
}

func TestClientRepo_InsertAssignsFreshID(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(newTestDB(t))

	first := newClient("Ana")
	require.NoError(t, repo.Insert(ctx, first))
	assert.NotZero(t, first.ID)

	second := newClient("Ana")
	require.NoError(t, repo.Insert(ctx, second))
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)

	found, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, second, found)
}

func TestClientRepo_InsertRejectsExistingID(t *testing.T) {
	repo := NewClientRepo(newTestDB(t))

	c := newClient("Ana")
	c.ID = 99
	err := repo.Insert(context.Background(), c)
	assert.ErrorIs(t, err, ErrIDAssigned)
	assert.Equal(t, int64(99), c.ID)
}

func TestClientRepo_UpdateChangesOnlyThatRow(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(newTestDB(t))

	ana := newClient("Ana")
	bob := newClient("Bob")
	require.NoError(t, repo.Insert(ctx, ana))
	require.NoError(t, repo.Insert(ctx, bob))

	id := ana.ID
	ana.Name = "Ana Maria"
	ana.Telephone = "(21)1234-5678"
	ana.BirthDate = domain.Date(1985, time.December, 1)
	ana.CPF = "987.654.321-00"
	require.NoError(t, repo.Update(ctx, ana))
	assert.Equal(t, id, ana.ID)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ana, found)

	other, err := repo.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob, other)
}

func TestClientRepo_UpdateMissingRow(t *testing.T) {
	repo := NewClientRepo(newTestDB(t))

	c := newClient("Ghost")
	c.ID = 1234
	err := repo.Update(context.Background(), c)

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsIntegrity(err))
}

func TestClientRepo_UpdateRequiresID(t *testing.T) {
	repo := NewClientRepo(newTestDB(t))
	err := repo.Update(context.Background(), newClient("New"))
	assert.ErrorIs(t, err, ErrIDMissing)
}

func TestClientRepo_SaveOrUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(newTestDB(t))

	c := newClient("Ana")
	require.NoError(t, repo.SaveOrUpdate(ctx, c))
	id := c.ID
	require.NotZero(t, id)

	c.Name = "Ana Clara"
	require.NoError(t, repo.SaveOrUpdate(ctx, c))
	assert.Equal(t, id, c.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ana Clara", all[0].Name)
}

func TestClientRepo_FailedInsertLeavesIDUnset(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	repo := NewClientRepo(database)

	_, err := database.Exec(`DROP TABLE visit`)
	require.NoError(t, err)
	_, err = database.Exec(`DROP TABLE client`)
	require.NoError(t, err)

	c := newClient("Ana")
	err = repo.SaveOrUpdate(ctx, c)

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "no such table")
	assert.True(t, c.IsNew())
}

func TestClientRepo_FindByIDNotFound(t *testing.T) {
	repo := NewClientRepo(newTestDB(t))

	c, err := repo.FindByID(context.Background(), 77)
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestClientRepo_Remove(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(newTestDB(t))

	c := newClient("Ana")
	require.NoError(t, repo.Insert(ctx, c))
	require.NoError(t, repo.Remove(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	err = repo.Remove(ctx, c)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepo_RemoveReferencedClient(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	repo := NewClientRepo(database)
	visits := NewVisitRepo(database)

	c := newClient("Ana")
	require.NoError(t, repo.Insert(ctx, c))
	require.NoError(t, visits.Create(ctx, domain.NewVisit(c.ID, time.Now(), "first visit")))

	err := repo.Remove(ctx, c)
	require.Error(t, err)
	assert.True(t, IsIntegrity(err))

	var ie *IntegrityError
	require.True(t, errors.As(err, &ie))
	var se *StorageError
	require.True(t, errors.As(err, &se), "IntegrityError must also match StorageError")
	assert.Contains(t, err.Error(), "FOREIGN KEY")

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, c.ID, all[0].ID)
}

func TestVisitRepo(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	clients := NewClientRepo(database)
	visits := NewVisitRepo(database)

	c := newClient("Ana")
	require.NoError(t, clients.Insert(ctx, c))

	older := domain.NewVisit(c.ID, domain.Date(2024, time.March, 1), "checkup")
	newer := domain.NewVisit(c.ID, domain.Date(2024, time.June, 9), "follow-up")
	require.NoError(t, visits.Create(ctx, older))
	require.NoError(t, visits.Create(ctx, newer))

	list, err := visits.ListByClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer, list[0])
	assert.Equal(t, older, list[1])

	n, err := visits.CountByClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestVisitRepo_UnknownClient(t *testing.T) {
	visits := NewVisitRepo(newTestDB(t))

	err := visits.Create(context.Background(), domain.NewVisit(404, time.Now(), ""))
	assert.True(t, IsIntegrity(err))

	err = visits.Create(context.Background(), &domain.Visit{})
	assert.Error(t, err)
	assert.False(t, IsIntegrity(err))
}
