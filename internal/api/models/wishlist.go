package models

// WishlistItem represents a trek saved to a user's wishlist.
type WishlistItem struct {
	ID      string    `json:"id"`
	TrekID  string    `json:"trekId"`
	AddedAt Timestamp `json:"addedAt"`
	Trek    Trek      `json:"trek"`
}

// Wishlist represents a user's wishlist in the order items were added.
type Wishlist struct {
	Items []WishlistItem    `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// WishlistAddRequest is the request body for adding a trek to the wishlist.
type WishlistAddRequest struct {
	TrekID string `json:"trekId" validate:"required,max=64"`
}
