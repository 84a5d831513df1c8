package dto

// LoginReq represents the request body for the /auth/login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRes is the response for a successful login.
type LoginRes struct {
	AccessToken string `json:"access_token"`
}
