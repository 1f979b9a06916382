package domain

import "errors"

var (
	// ErrStoreUnavailable возвращается, если хранилище не инициализировано.
	ErrStoreUnavailable = errors.New("store is not initialized")
	// ErrReferenceNotFound означает нарушение внешнего ключа (например, несуществующий клиент в заказе).
	ErrReferenceNotFound = errors.New("referenced entity not found")
)

// IsReferenceNotFound проверяет, вызвана ли ошибка ссылкой на несуществующую сущность.
func IsReferenceNotFound(err error) bool {
	return errors.Is(err, ErrReferenceNotFound)
}
