package domain

// OrderSummary is one joined row of the admin orders listing: the order, its
// customer, and one ordered item per row.
type OrderSummary struct {
	OrderID         int64   `json:"order_id"`
	CustomerName    string  `json:"customer_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	OrderStatus     string  `json:"order_status"`
	TotalPrice      float64 `json:"total_price"`
	DeliveryType    string  `json:"delivery_type"`
	DeliveryAddress string  `json:"delivery_address"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	ItemPrice       float64 `json:"item_price"`
}

// UpdateStatusRequest is the payload of PUT /update_status, the fulfilment
// shortcut restricted to shipping states.
type UpdateStatusRequest struct {
	OrderID   int64  `json:"order_id" binding:"required"`
	NewStatus string `json:"new_status" binding:"required"`
}

// SetStatusRequest is the payload of PUT /orders/:id/status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,max=50"`
}
