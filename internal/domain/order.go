package domain

// Order заказ. Единственный собственный атрибут заказа это идентификатор,
// связи с клиентом и товарами хранятся вне строки заказа.
type Order struct {
	ID int64
}

// OrderAggregate собирает заказ вместе с идентификаторами связанных клиентов и товаров.
type OrderAggregate struct {
	Order Order
	// ClientIDs все строки order_clients для заказа, в порядке выборки.
	ClientIDs []int64
	// ProductIDs содержит не более одного элемента: схема хранит один product_id на заказ.
	ProductIDs []int64
}

// FirstClientID возвращает первый связанный идентификатор клиента или nil.
func (a OrderAggregate) FirstClientID() *int64 {
	if len(a.ClientIDs) == 0 {
		return nil
	}
	id := a.ClientIDs[0]
	return &id
}
