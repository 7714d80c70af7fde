package models

// Tax is a configurable tax applied on the pre-tax subtotal when enabled.
// Rate is a percentage, e.g. 18 for 18%.
type Tax struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Rate    float64 `json:"rate"`
	Enabled bool    `json:"enabled"`
}
