// Package wishlist keeps the treks each user has saved for later.
package wishlist

import (
	"errors"
	"time"
)

// ErrItemNotFound is returned when a trek is not in the user's wishlist.
var ErrItemNotFound = errors.New("wishlist item not found")

// Item is a trek saved by a user.
type Item struct {
	ID        string
	UserID    string
	TrekID    string
	CreatedAt time.Time
}

func (i *Item) clone() *Item {
	cpy := *i
	return &cpy
}
