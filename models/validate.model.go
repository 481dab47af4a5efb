package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
)

var (
	phonePattern = regexp.MustCompile(`^(\+84|0)[0-9]{9,10}$`)
	validate     = validator.New()
)

// ValidPhone accepts Vietnamese mobile/landline numbers, 10-11 digits.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// ValidEmail applies the same rule as the email binding tag.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// text trims *p in place and checks presence and length.
func text(field string, p *string, required bool, max int) error {
	if p == nil {
		if required {
			return apperror.Validation(field, field+" is required")
		}
		return nil
	}
	*p = strings.TrimSpace(*p)
	if *p == "" && required {
		return apperror.Validation(field, field+" is required")
	}
	if max > 0 && len([]rune(*p)) > max {
		return apperror.Validation(field, fmt.Sprintf("%s cannot be more than %d characters", field, max))
	}
	return nil
}

func objectID(field string, p *string) (*primitive.ObjectID, error) {
	if p == nil || *p == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(*p)
	if err != nil {
		return nil, apperror.Validation(field, "Invalid "+field+" ID")
	}
	return &id, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
