package types

import "strings"

// Address is the structured postal address embedded into customers and orders.
type Address struct {
	Street     string `json:"street" gorm:"column:street" validate:"required"`
	City       string `json:"city" gorm:"column:city" validate:"required"`
	State      string `json:"state" gorm:"column:state" validate:"required"`
	PostalCode string `json:"postal_code" gorm:"column:postal_code" validate:"required"`
}

// IsZero reports whether no component of the address is set.
func (a Address) IsZero() bool {
	return strings.TrimSpace(a.Street) == "" &&
		strings.TrimSpace(a.City) == "" &&
		strings.TrimSpace(a.State) == "" &&
		strings.TrimSpace(a.PostalCode) == ""
}
