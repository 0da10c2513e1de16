package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/buildmart/internal/models"
)

var ErrValidation = errors.New("validation")

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed. errors.Is(err, ErrValidation) holds for it.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation: " + strings.Join(msgs, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

func (val *Validator) Product(body []byte) (models.Product, error) {
	var p ProductPayload
	if err := val.check(body, &p); err != nil {
		return models.Product{}, err
	}
	return models.Product{
		Title:       p.Title,
		Description: p.Description,
		Price:       *p.Price,
		Category:    p.Category,
		Image:       p.Image,
		InStock:     boolDefault(p.InStock, true),
	}, nil
}

// Order leaves Subtotal at zero; the caller owns computing it.
func (val *Validator) Order(body []byte) (models.Order, error) {
	var p OrderPayload
	if err := val.check(body, &p); err != nil {
		return models.Order{}, err
	}

	items := make([]models.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     *it.Price,
			Quantity:  it.Quantity,
		})
	}

	return models.Order{
		CustomerName:    p.CustomerName,
		CustomerEmail:   p.CustomerEmail,
		CustomerPhone:   p.CustomerPhone,
		ShippingAddress: p.ShippingAddress,
		Items:           items,
		Notes:           p.Notes,
	}, nil
}

func (val *Validator) User(body []byte) (models.User, error) {
	var p UserPayload
	if err := val.check(body, &p); err != nil {
		return models.User{}, err
	}
	return models.User{
		Name:     p.Name,
		Email:    p.Email,
		Address:  p.Address,
		Age:      p.Age,
		IsActive: boolDefault(p.IsActive, true),
	}, nil
}

func (val *Validator) check(body []byte, dst any) error {
	if err := decode(body, dst); err != nil {
		return err
	}
	err := val.v.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, fieldError(fe))
	}
	return out
}

func decode(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "required", Message: "request body is empty"}}}
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{Fields: []FieldError{{
				Field:   typeErr.Field,
				Rule:    "type",
				Message: fmt.Sprintf("field %s must be of type %s", typeErr.Field, typeErr.Type),
			}}}
		}
		return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "json", Message: "invalid JSON: " + err.Error()}}}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "json", Message: "invalid JSON: trailing data"}}}
	}
	return nil
}

func fieldError(fe validator.FieldError) FieldError {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("field %s is required", field)
	case "email":
		msg = fmt.Sprintf("field %s must be a valid email address", field)
	case "url":
		msg = fmt.Sprintf("field %s must be a valid URL", field)
	case "gte":
		msg = fmt.Sprintf("field %s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		msg = fmt.Sprintf("field %s must be less than or equal to %s", field, fe.Param())
	default:
		msg = fmt.Sprintf("field %s is invalid", field)
	}
	return FieldError{Field: field, Rule: fe.Tag(), Message: msg}
}

func boolDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
