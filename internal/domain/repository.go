package domain

import "context"

// ClientRepository описывает требования к хранилищу клиентов.
type ClientRepository interface {
	// Save вставляет клиента и записывает сгенерированный ID в client.ID.
	Save(ctx context.Context, client *Client) error
	// FindByID возвращает клиента или (nil, nil), если строки нет.
	FindByID(ctx context.Context, id int64) (*Client, error)
	// FindAll возвращает всех клиентов в естественном порядке хранилища.
	FindAll(ctx context.Context) ([]Client, error)
	// Update перезаписывает все поля, кроме ID. Отсутствие строки не считается ошибкой.
	Update(ctx context.Context, client Client) error
	// Delete удаляет клиента. Отсутствие строки не считается ошибкой.
	Delete(ctx context.Context, id int64) error
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, id int64) error
}

// OrderRepository описывает хранилище заказов и их связей.
type OrderRepository interface {
	// Save вставляет строку заказа со значениями по умолчанию и записывает ID в order.ID.
	Save(ctx context.Context, order *Order) error
	// FindByID читает только идентификатор; связи не загружаются.
	FindByID(ctx context.Context, id int64) (*Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	// Update перепривязывает клиента заказа в таблице связей.
	Update(ctx context.Context, orderID, clientID int64) error
	Delete(ctx context.Context, id int64) error

	// ClientIDsByOrderID возвращает всех клиентов из таблицы связей (пустой срез, если их нет).
	ClientIDsByOrderID(ctx context.Context, orderID int64) ([]int64, error)
	// ProductIDsByOrderID возвращает 0 или 1 идентификатор товара из колонки orders.product_id.
	ProductIDsByOrderID(ctx context.Context, orderID int64) ([]int64, error)
	// AddClientToOrder добавляет строку связи без проверки уникальности.
	AddClientToOrder(ctx context.Context, orderID, clientID int64) error
}
