package models

// OrderItem is a single line entry within an order. Name, price and
// waiter_name are snapshots taken at insert time; they do not follow later
// changes to the product or the user.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"not null;index" json:"order_id"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	CategoryID uint    `json:"category_id"`
	WaiterID   *uint   `json:"waiter_id"`
	WaiterName string  `gorm:"type:varchar(255)" json:"waiter_name"`
}
