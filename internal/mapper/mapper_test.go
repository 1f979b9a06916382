package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
	"github.com/vladislavdragonenkov/bakery/internal/dto"
	"github.com/vladislavdragonenkov/bakery/internal/mapper"
)

func TestClientMapper_RoundTrip(t *testing.T) {
	m := mapper.ClientMapper{}
	client := domain.Client{ID: 42, Name: "Ivan", Surname: "Petrov", Phone: "+7 900 000 00 00"}

	got := m.ToEntity(m.ToDto(client))
	require.Equal(t, client, got)
}

func TestClientMapper_UnsavedHasNullID(t *testing.T) {
	m := mapper.ClientMapper{}

	d := m.ToDto(domain.Client{Name: "Anna"})
	require.Nil(t, d.ID)
	require.Equal(t, "Anna", d.Name)

	e := m.ToEntity(dto.ClientDto{Name: "Anna"})
	require.Zero(t, e.ID)
}

func TestProductMapper_RoundTrip(t *testing.T) {
	m := mapper.ProductMapper{}
	product := domain.Product{ID: 5, Title: "Bread", Price: 1.99}

	d := m.ToDto(product)
	require.NotNil(t, d.ID)
	require.Equal(t, int64(5), *d.ID)
	require.Equal(t, product, m.ToEntity(d))
}

func TestProductMapper_AcceptsNegativePrice(t *testing.T) {
	m := mapper.ProductMapper{}
	got := m.ToEntity(dto.ProductDto{Title: "", Price: -3})
	require.Equal(t, domain.Product{Price: -3}, got)
}

func TestOrderMapper_ToDto(t *testing.T) {
	m := mapper.OrderMapper{}

	tests := []struct {
		name        string
		agg         domain.OrderAggregate
		wantClient  *int64
		wantProduct []int64
	}{
		{
			name:        "no associations",
			agg:         domain.OrderAggregate{Order: domain.Order{ID: 1}},
			wantClient:  nil,
			wantProduct: []int64{},
		},
		{
			name: "first client wins",
			agg: domain.OrderAggregate{
				Order:      domain.Order{ID: 2},
				ClientIDs:  []int64{9, 4},
				ProductIDs: []int64{11},
			},
			wantClient:  dto.Int64(9),
			wantProduct: []int64{11},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.ToDto(tt.agg)
			require.NotNil(t, got.ID)
			require.Equal(t, tt.agg.Order.ID, *got.ID)
			require.Equal(t, tt.wantClient, got.ClientID)
			require.NotNil(t, got.ProductsID)
			require.Equal(t, tt.wantProduct, got.ProductsID)
		})
	}
}

func TestOrderMapper_ToEntityCopiesOnlyID(t *testing.T) {
	m := mapper.OrderMapper{}
	got := m.ToEntity(dto.OrderDto{ID: dto.Int64(3), ClientID: dto.Int64(8), ProductsID: []int64{1, 2}})
	require.Equal(t, domain.Order{ID: 3}, got)

	require.Equal(t, domain.Order{}, m.ToEntity(dto.OrderDto{ClientID: dto.Int64(8)}))
}
