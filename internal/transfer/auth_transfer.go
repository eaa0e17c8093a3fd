package transfer

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=120"`
	Company  string `json:"company" validate:"max=120"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	UserID   int64  `json:"user_id"`
	Redirect string `json:"redirect"`
}

// GoogleUser is the subset of the Google userinfo payload used at login.
type GoogleUser struct {
	ID      string
	Email   string
	Name    string
	Picture string
}
