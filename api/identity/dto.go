package identity

// AuthRequest carries the credentials for registration and login.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the successful login payload.
type AuthResponse struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	BestTimeMillis int64  `json:"best_time_millis"`
	Token          string `json:"token"`
}
