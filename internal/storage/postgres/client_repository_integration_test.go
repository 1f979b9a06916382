package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

func TestClientRepository_PostgresCRUD(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewClientRepository(store)
	ctx := context.Background()

	client := &domain.Client{Name: "Ivan", Surname: "Petrov", Phone: "+7 900 123 45 67"}
	require.NoError(t, repo.Save(ctx, client))
	require.NotZero(t, client.ID)

	got, err := repo.FindByID(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, client, got)

	second := &domain.Client{Name: "", Surname: "", Phone: ""}
	require.NoError(t, repo.Save(ctx, second))
	require.NotEqual(t, client.ID, second.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	client.Phone = "+7 999 000 00 00"
	require.NoError(t, repo.Update(ctx, *client))
	updated, err := repo.FindByID(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, "+7 999 000 00 00", updated.Phone)

	require.NoError(t, repo.Delete(ctx, client.ID))
	deleted, err := repo.FindByID(ctx, client.ID)
	require.NoError(t, err)
	require.Nil(t, deleted)
}

func TestClientRepository_PostgresMissingRows(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewClientRepository(store)
	ctx := context.Background()

	got, err := repo.FindByID(ctx, 999)
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, repo.Update(ctx, domain.Client{ID: 999, Name: "ghost"}))
	require.NoError(t, repo.Delete(ctx, 999))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)
}
