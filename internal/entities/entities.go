package entities

import (
	"time"
)

// User is identified solely by a normalized username. There is no password or
// token; usernames are unauthenticated identifiers.
type User struct {
	Username  string    `gorm:"primaryKey;size:255" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Book belongs to exactly one owner and may be lent out to a named recipient.
// LentToName is set if and only if the book is currently lent; BorrowerUsername
// is additionally set when the recipient is a registered user.
type Book struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Title            string    `gorm:"size:512;not null" json:"title"`
	Author           string    `gorm:"size:256" json:"author"`
	CoverURL         string    `gorm:"size:2048" json:"cover_url,omitempty"`
	CatalogKey       string    `gorm:"size:255" json:"catalog_key,omitempty"`
	OwnerUsername    string    `gorm:"index;size:255;not null" json:"owner_username"`
	BorrowerUsername *string   `gorm:"index;size:255" json:"borrower_username"`
	LentToName       *string   `gorm:"size:255" json:"lent_to_name"`
	CreatedAt        time.Time `json:"created_at"`
}
