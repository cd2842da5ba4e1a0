package dto

// LoginRequest carries the external student identifier plus password.
type LoginRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}

// CurrentUserResponse combines user identity with profile fields for /auth/me.
type CurrentUserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	StudentID *string `json:"studentId,omitempty"`
	Name      *string `json:"name,omitempty"`
	Branch    *string `json:"branch,omitempty"`
	Semester  *int    `json:"semester,omitempty"`
}
