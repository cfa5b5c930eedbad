package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"restaurant-reviews/review-svc/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields under their JSON names so violations line up
// with the request body.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldLabels = map[string]string{
	"name":         "Restaurant name",
	"location":     "Location",
	"cuisine_type": "Cuisine type",
	"rating":       "Rating",
	"comment":      "Comment",
}

// collectViolations runs the validate tags of value and records one message
// per failing field.
func collectViolations(errs *domain.ValidationError, value any) error {
	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(value); !errors.As(err, &fieldErrs) {
		return err
	}

	structType := reflect.TypeOf(value)
	for _, fieldErr := range fieldErrs {
		errs.Add(fieldErr.Field(), violationMessage(structType, fieldErr))
	}
	return nil
}

func violationMessage(structType reflect.Type, fieldErr validator.FieldError) string {
	label, ok := fieldLabels[fieldErr.Field()]
	if !ok {
		label = fieldErr.Field()
	}
	if fieldErr.Tag() == "required" {
		return label + " is required"
	}

	lower, upper := tagBounds(structType, fieldErr.StructField())
	if fieldErr.Kind() == reflect.String {
		return fmt.Sprintf("%s must be between %s and %s characters", label, lower, upper)
	}
	return fmt.Sprintf("%s must be between %s and %s", label, lower, upper)
}

// tagBounds reads the min= and max= params of a field's validate tag, so the
// message always quotes both ends of the range.
func tagBounds(structType reflect.Type, fieldName string) (lower, upper string) {
	field, ok := structType.FieldByName(fieldName)
	if !ok {
		return "", ""
	}
	for _, rule := range strings.Split(field.Tag.Get("validate"), ",") {
		if v, ok := strings.CutPrefix(rule, "min="); ok {
			lower = v
		}
		if v, ok := strings.CutPrefix(rule, "max="); ok {
			upper = v
		}
	}
	return lower, upper
}

// normalizeRestaurant trims the fields and collects every violation.
func normalizeRestaurant(fields domain.RestaurantFields) (domain.RestaurantFields, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.Location = strings.TrimSpace(fields.Location)
	fields.CuisineType = strings.TrimSpace(fields.CuisineType)

	errs := &domain.ValidationError{}
	if err := collectViolations(errs, fields); err != nil {
		return fields, err
	}
	return fields, errs.OrNil()
}

// normalizeReview trims the comment and adds rating and comment violations
// to errs. The caller decides when errs is final.
func normalizeReview(errs *domain.ValidationError, fields domain.ReviewFields) (domain.ReviewFields, error) {
	fields.Comment = strings.TrimSpace(fields.Comment)
	return fields, collectViolations(errs, fields)
}
