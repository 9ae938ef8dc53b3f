package validation

import (
	"fmt"
	"strings"
)

// Violations maps a field name to a message code. Empty map means the payload passed.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func RequiredID(field string, id uint, v Violations) {
	if id == 0 {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func MaxLen(field, value string, max int, v Violations) {
	if len(value) > max {
		v[field] = "too_long"
	}
}

// ItemField names a field inside a repeated payload section, e.g. items[2].quantity.
func ItemField(section string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", section, index, field)
}
