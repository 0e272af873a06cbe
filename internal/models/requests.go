package models

// AddCartItemRequest is the body of POST /api/cart/items
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest is the body of PUT /api/cart/items/{productId}/{size}
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// OrderRequest places a single-product order. Size defaults to the first
// listed size and quantity to 1.
type OrderRequest struct {
	Customer  Customer `json:"customer"`
	ProductID string   `json:"productId"`
	Size      string   `json:"size,omitempty"`
	Quantity  int      `json:"quantity,omitempty"`
}

// CartOrderRequest checks out the whole session cart
type CartOrderRequest struct {
	Customer Customer `json:"customer"`
}
