package orders

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/roasthouse/storefront/pkg/models"
)

var (
	phonePattern      = regexp.MustCompile(`^[\d\s\-\+\(\)]{10,}$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{5,6}$`)
)

// Validator is the single validation entry point for checkout payloads.
// The historical split between a coarse required-fields gate and a
// fine-grained schema is collapsed here: one pass, every rule, all
// failures accumulated.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names, not Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return postalCodePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// ValidateCheckout checks every field rule and returns a ValidationError
// listing all failures, or nil when the payload is acceptable.
func (v *Validator) ValidateCheckout(req *models.CheckoutRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate checkout: %w", err)
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field:  fieldName(fe),
			Reason: reason(fe),
		})
	}
	return ve
}

func fieldName(fe validator.FieldError) string {
	// Namespace looks like CheckoutRequest.items[0].quantity; strip the
	// struct prefix so callers see the payload path.
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a well-formed email address"
	case "phone":
		return "must be a phone number of at least 10 digits"
	case "postalcode":
		return "must be exactly 5 or 6 digits"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s characters or entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}
