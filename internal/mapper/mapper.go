// Package mapper преобразует доменные сущности в транспортные объекты и обратно.
//
// Набор ресурсов закрыт, поэтому на каждый ресурс есть свой конкретный тип
// без общего интерфейса. Все преобразования чистые: связи заказа собирает
// сервисный слой и передаёт в OrderMapper готовый агрегат.
package mapper

import (
	"github.com/vladislavdragonenkov/bakery/internal/domain"
	"github.com/vladislavdragonenkov/bakery/internal/dto"
)

// ClientMapper преобразует domain.Client <-> dto.ClientDto.
type ClientMapper struct{}

// ToDto копирует все поля. Несохранённый клиент (ID == 0) получает id = null.
func (ClientMapper) ToDto(c domain.Client) dto.ClientDto {
	return dto.ClientDto{
		ID:      idToDto(c.ID),
		Name:    c.Name,
		Surname: c.Surname,
		Phone:   c.Phone,
	}
}

// ToEntity копирует все поля; id = null превращается в 0.
func (ClientMapper) ToEntity(d dto.ClientDto) domain.Client {
	return domain.Client{
		ID:      idFromDto(d.ID),
		Name:    d.Name,
		Surname: d.Surname,
		Phone:   d.Phone,
	}
}

// ProductMapper преобразует domain.Product <-> dto.ProductDto.
type ProductMapper struct{}

func (ProductMapper) ToDto(p domain.Product) dto.ProductDto {
	return dto.ProductDto{
		ID:    idToDto(p.ID),
		Title: p.Title,
		Price: p.Price,
	}
}

func (ProductMapper) ToEntity(d dto.ProductDto) domain.Product {
	return domain.Product{
		ID:    idFromDto(d.ID),
		Title: d.Title,
		Price: d.Price,
	}
}

// OrderMapper преобразует domain.OrderAggregate -> dto.OrderDto и dto.OrderDto -> domain.Order.
type OrderMapper struct{}

// ToDto берёт первого клиента (или null) и весь список товаров.
// productsId всегда сериализуется как массив, даже пустой.
func (OrderMapper) ToDto(agg domain.OrderAggregate) dto.OrderDto {
	products := make([]int64, len(agg.ProductIDs))
	copy(products, agg.ProductIDs)

	return dto.OrderDto{
		ID:         idToDto(agg.Order.ID),
		ClientID:   agg.FirstClientID(),
		ProductsID: products,
	}
}

// ToEntity копирует только идентификатор: clientId и productsId
// применяются сервисом отдельно.
func (OrderMapper) ToEntity(d dto.OrderDto) domain.Order {
	return domain.Order{ID: idFromDto(d.ID)}
}

func idToDto(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return dto.Int64(id)
}

func idFromDto(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
