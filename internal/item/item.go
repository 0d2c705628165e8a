// Package item holds the catalogue managed through the admin UI.
package item

import "errors"

var ErrNotFound = errors.New("item not found")

type Item struct {
	ID       int64
	Name     string
	Price    int
	Quantity int
}

// TotalPrice is Price * Quantity.
func (i Item) TotalPrice() int {
	return i.Price * i.Quantity
}
