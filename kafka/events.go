package kafka

import "time"

// FavoriteAddedEvent is emitted when a user favorites a product
type FavoriteAddedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	FavoriteID string    `json:"favorite_id"`
	UserID     string    `json:"user_id"`
	ProductID  string    `json:"product_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFavoriteAdded = "favorite.added"
)

// Kafka topics
const (
	TopicFavoriteAdded = "favorite-added"
)
