package domain

// CartItem is one line of a cart. ID is synthetic and unique per
// product+color+size combination; two additions with the same combination
// merge by summing quantity instead of producing a second line.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color,omitempty"`
	ColorHex  string  `json:"color_hex,omitempty"`
	Size      string  `json:"size,omitempty"`
	Image     string  `json:"image,omitempty"`
}

// WishlistItem is a saved product. A product id appears at most once in a
// wishlist regardless of chosen color or size.
type WishlistItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	InStock   bool    `json:"in_stock"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
}
