// Package seed loads the demo data the application starts with.
package seed

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/sessionlab/internal/item"
	"github.com/dmitrymomot/sessionlab/internal/login"
)

// Demo member credentials.
const (
	LoginID  = "test"
	Name     = "tester"
	Password = "test!"
)

// Load stores itemA and itemB and registers the demo member.
func Load(ctx context.Context, items *item.Repository, accounts *login.Service) error {
	items.Save(ctx, item.Item{Name: "itemA", Price: 10000, Quantity: 10})
	items.Save(ctx, item.Item{Name: "itemB", Price: 20000, Quantity: 20})

	if _, err := accounts.Register(ctx, LoginID, Name, Password); err != nil {
		return fmt.Errorf("seed member: %w", err)
	}
	return nil
}
