package domain

import "time"

// ItemType identifies which catalog a list entry refers to.
type ItemType string

const (
	ItemTypeMovie  ItemType = "movie"
	ItemTypeTVShow ItemType = "tvshow"
)

// IsValidItemType reports whether s is a recognized catalog item type.
func IsValidItemType(s string) bool {
	switch ItemType(s) {
	case ItemTypeMovie, ItemTypeTVShow:
		return true
	}
	return false
}

// ItemTypes returns all recognized item types.
func ItemTypes() []ItemType {
	return []ItemType{ItemTypeMovie, ItemTypeTVShow}
}

// ListItem is a single entry in a user's watchlist.
type ListItem struct {
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	ItemType  ItemType  `json:"item_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
