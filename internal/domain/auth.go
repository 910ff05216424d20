package domain

type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type Account struct {
	ID           string
	Email        string
	PasswordHash string
}
