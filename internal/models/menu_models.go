package models

// MenuItem represents a sellable dish or drink together with its stock level.
// Stock of 0 means the item is out of stock.
type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	ImageURL string  `json:"image_url,omitempty"`
}

// OrderItem is an independent copy of a MenuItem taken when it was added to an order.
type OrderItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// LineTotal returns price times quantity for this line.
func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// SpecialDish is a chef's special suggested by the text generation service
type SpecialDish struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Ingredients []string `json:"ingredients"`
}

// PublicMenuSection groups in-stock items of one category for the QR menu.
type PublicMenuSection struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

// PublicMenu is the read-only menu shown to guests who scan a table QR code.
type PublicMenu struct {
	Table    Table               `json:"table"`
	Sections []PublicMenuSection `json:"sections"`
}
