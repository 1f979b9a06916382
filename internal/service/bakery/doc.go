// Package bakery реализует сервисы ресурсов пекарни: клиентов, товаров и заказов.
//
// Каждый сервис является тонкой композицией репозитория и маппера. Сервис заказов
// дополнительно собирает агрегат заказа (связанные клиенты и товары) перед
// преобразованием в DTO и записывает связь с клиентом при создании.
package bakery
