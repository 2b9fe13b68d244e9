package dto

// LoginRequest payload for POST /api/login. Role selects which credential
// table the username is looked up in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResponse returns the signed token and the role it embeds.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// RegisterEndocrinologistRequest payload for clinician registration.
type RegisterEndocrinologistRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}
