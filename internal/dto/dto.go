// Package dto содержит транспортные представления ресурсов, которыми обменивается HTTP API.
package dto

// ClientDto представляет клиента на границе API. ID равен nil до сохранения.
type ClientDto struct {
	ID      *int64 `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
}

// ProductDto представляет товар на границе API.
type ProductDto struct {
	ID    *int64  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// OrderDto представляет заказ на границе API.
type OrderDto struct {
	ID         *int64  `json:"id"`
	ClientID   *int64  `json:"clientId"`
	ProductsID []int64 `json:"productsId"`
}

// Int64 возвращает указатель на копию v.
func Int64(v int64) *int64 {
	return &v
}
