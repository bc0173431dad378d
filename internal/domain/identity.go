package domain

// Identity is the authenticated seller carried by a verified session token.
type Identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
}
