package domain

// Product позиция ассортимента пекарни.
type Product struct {
	ID    int64
	Title string
	// Price не валидируется: отрицательные значения сохраняются как есть.
	Price float64
}
