package bakery_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bakery/internal/dto"
	"github.com/vladislavdragonenkov/bakery/internal/service/bakery"
	"github.com/vladislavdragonenkov/bakery/internal/storage/memory"
)

func TestProductService_CreateThenGet(t *testing.T) {
	svc := bakery.NewProductService(memory.NewProductRepository(), nil, nil, loggerForTests())
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.ProductDto{Title: "Bread", Price: 1.99})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	require.Equal(t, "Bread", created.Title)
	require.Equal(t, 1.99, created.Price)

	got, err := svc.GetByID(ctx, *created.ID)
	require.NoError(t, err)
	require.Equal(t, &created, got)
}

func TestProductService_NoValidation(t *testing.T) {
	svc := bakery.NewProductService(memory.NewProductRepository(), nil, nil, loggerForTests())
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.ProductDto{Title: "", Price: -10})
	require.NoError(t, err)
	require.Equal(t, -10.0, created.Price)
	require.Empty(t, created.Title)
}

func TestProductService_GetAllPreservesOrderAndDelete(t *testing.T) {
	svc := bakery.NewProductService(memory.NewProductRepository(), nil, nil, loggerForTests())
	ctx := context.Background()

	for _, title := range []string{"Bread", "Bun", "Croissant"} {
		_, err := svc.Create(ctx, dto.ProductDto{Title: title, Price: 1})
		require.NoError(t, err)
	}

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Bread", all[0].Title)
	require.Equal(t, "Croissant", all[2].Title)

	deleted, err := svc.Delete(ctx, *all[1].ID)
	require.NoError(t, err)
	require.Equal(t, "Bun", deleted.Title)

	missing, err := svc.Delete(ctx, 999)
	require.NoError(t, err)
	require.Nil(t, missing)
}
