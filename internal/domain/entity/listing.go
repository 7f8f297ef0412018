package entity

import (
	"time"
)

// Listing is a single business entry. Listings live in a per-owner
// subcollection, so the owner id comes from the document path and is
// never written into the document itself.
type Listing struct {
	ID           string `json:"id" firestore:"-"`
	OwnerID      string `json:"owner_id" firestore:"-"`
	Name         string `json:"name" firestore:"name"`
	Category     string `json:"category" firestore:"category"`
	Description  string `json:"description" firestore:"description"`
	ContactPhone string `json:"contact_phone" firestore:"contactPhone"`

	Instagram string `json:"instagram,omitempty" firestore:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty" firestore:"facebook,omitempty"`
	TikTok    string `json:"tiktok,omitempty" firestore:"tiktok,omitempty"`
	Website   string `json:"website,omitempty" firestore:"website,omitempty"`

	ImageURL string `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Location string `json:"location,omitempty" firestore:"location,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}
