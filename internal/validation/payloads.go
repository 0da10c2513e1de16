package validation

// Payload shapes accepted from clients. Pointer fields separate "absent" from a zero value.

type UserPayload struct {
	Name     string `json:"name"                validate:"required"              jsonschema:"description=Full name"`
	Email    string `json:"email"               validate:"required,email"        jsonschema:"format=email,description=Email address"`
	Address  string `json:"address"             validate:"required"              jsonschema:"description=Address"`
	Age      *int   `json:"age,omitempty"       validate:"omitempty,gte=0,lte=120" jsonschema:"minimum=0,maximum=120,description=Age in years"`
	IsActive *bool  `json:"is_active,omitempty"                                  jsonschema:"default=true,description=Whether user is active"`
}

type ProductPayload struct {
	Title       string   `json:"title"                 validate:"required"      jsonschema:"description=Product title"`
	Description *string  `json:"description,omitempty"                          jsonschema:"description=Product description"`
	Price       *float64 `json:"price"                 validate:"required,gte=0" jsonschema:"minimum=0,description=Price in dollars"`
	Category    string   `json:"category"              validate:"required"      jsonschema:"description=Product category"`
	Image       *string  `json:"image,omitempty"       validate:"omitempty,url" jsonschema:"format=uri,description=Product image URL"`
	InStock     *bool    `json:"in_stock,omitempty"                             jsonschema:"default=true,description=Whether product is in stock"`
}

type OrderItemPayload struct {
	ProductID string   `json:"product_id" validate:"required"       jsonschema:"description=Referenced product id as string"`
	Title     string   `json:"title"      validate:"required"       jsonschema:"description=Snapshot of product title"`
	Price     *float64 `json:"price"      validate:"required,gte=0" jsonschema:"minimum=0,description=Unit price at purchase time"`
	Quantity  int      `json:"quantity"   validate:"required,gte=1" jsonschema:"minimum=1,description=Quantity ordered"`
}

type OrderPayload struct {
	CustomerName    string             `json:"customer_name"            validate:"required"       jsonschema:"description=Customer full name"`
	CustomerEmail   string             `json:"customer_email"           validate:"required,email" jsonschema:"format=email,description=Customer email"`
	CustomerPhone   *string            `json:"customer_phone,omitempty"                           jsonschema:"description=Customer phone number"`
	ShippingAddress string             `json:"shipping_address"         validate:"required"       jsonschema:"description=Shipping address"`
	Items           []OrderItemPayload `json:"items"                    validate:"required,dive"  jsonschema:"description=List of items in the order"`
	// Subtotal is accepted for compatibility and always recomputed by the server.
	Subtotal *float64 `json:"subtotal,omitempty" jsonschema:"minimum=0,description=Subtotal before tax/shipping (recomputed by the server)"`
	Notes    *string  `json:"notes,omitempty"                                                jsonschema:"description=Special instructions"`
}
