package schema

import (
	"github.com/invopop/jsonschema"

	"github.com/Skotchmaster/buildmart/internal/validation"
)

// Descriptors are the JSON schemas of the accepted payloads, keyed by collection.
type Descriptors struct {
	User    *jsonschema.Schema `json:"user"`
	Product *jsonschema.Schema `json:"product"`
	Order   *jsonschema.Schema `json:"order"`
}

func Build() Descriptors {
	r := &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	return Descriptors{
		User:    titled(r.Reflect(&validation.UserPayload{}), "User", "Users collection schema"),
		Product: titled(r.Reflect(&validation.ProductPayload{}), "Product", "Products collection schema"),
		Order:   titled(r.Reflect(&validation.OrderPayload{}), "Order", "Orders collection schema"),
	}
}

func titled(s *jsonschema.Schema, title, description string) *jsonschema.Schema {
	s.Title = title
	s.Description = description
	return s
}
