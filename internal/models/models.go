package models

// Collection names in the document store.
const (
	UserCollection    = "user"
	ProductCollection = "product"
	OrderCollection   = "order"
)

type User struct {
	ID       string `json:"id"        bson:"_id,omitempty"`
	Name     string `json:"name"      bson:"name"`
	Email    string `json:"email"     bson:"email"`
	Address  string `json:"address"   bson:"address"`
	Age      *int   `json:"age"       bson:"age"`
	IsActive bool   `json:"is_active" bson:"is_active"`
}

type Product struct {
	ID          string  `json:"id"          bson:"_id,omitempty"`
	Title       string  `json:"title"       bson:"title"`
	Description *string `json:"description" bson:"description"`
	Price       float64 `json:"price"       bson:"price"`
	Category    string  `json:"category"    bson:"category"`
	Image       *string `json:"image"       bson:"image"`
	InStock     bool    `json:"in_stock"    bson:"in_stock"`
}

// OrderItem keeps title and price as they were when the order was placed.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Title     string  `json:"title"      bson:"title"`
	Price     float64 `json:"price"      bson:"price"`
	Quantity  int     `json:"quantity"   bson:"quantity"`
}

type Order struct {
	ID              string      `json:"id"               bson:"_id,omitempty"`
	CustomerName    string      `json:"customer_name"    bson:"customer_name"`
	CustomerEmail   string      `json:"customer_email"   bson:"customer_email"`
	CustomerPhone   *string     `json:"customer_phone"   bson:"customer_phone"`
	ShippingAddress string      `json:"shipping_address" bson:"shipping_address"`
	Items           []OrderItem `json:"items"            bson:"items"`
	Subtotal        float64     `json:"subtotal"         bson:"subtotal"`
	Notes           *string     `json:"notes"            bson:"notes"`
}
