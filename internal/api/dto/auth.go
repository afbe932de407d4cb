package dto

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type AuthResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user,omitempty"`
}

type AuthStatusResponse struct {
	IsAuthenticated bool          `json:"is_authenticated"`
	User            *UserResponse `json:"user,omitempty"`
}
