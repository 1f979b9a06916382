package domain

// Client покупатель пекарни.
type Client struct {
	// ID назначается базой при вставке; 0 означает "ещё не сохранён".
	ID      int64
	Name    string
	Surname string
	Phone   string
}
