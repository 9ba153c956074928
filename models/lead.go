package models

// ContactMessage is the payload of POST /contact.
type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Lead is the payload of POST /leads (newsletter / waitlist capture).
type Lead struct {
	Email  string `json:"email" binding:"required,email"`
	Source string `json:"source"`
}
