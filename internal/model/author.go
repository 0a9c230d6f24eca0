package model

// Author is the read-only projection of a user account maintained by the
// posting service. Comment queries join against it for display.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Email    string `json:"email"`
}

// Post is the read-only projection of a post maintained by the posting
// service. Only the fields needed for notification fan-out are mirrored.
type Post struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}
