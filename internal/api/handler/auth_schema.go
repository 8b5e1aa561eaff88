package handler

import "time"

// --- Request / Response types ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

// messageResponse is the envelope for plain success messages.
type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// claimsResponse mirrors token claims. Response-only, so the JSON contract
// is not coupled to the codec's internal layout.
type claimsResponse struct {
	SubjectID string    `json:"subject_id"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type verifyResponse struct {
	Valid bool            `json:"valid"`
	User  *claimsResponse `json:"user,omitempty"`
	Error string          `json:"error,omitempty"`
}
