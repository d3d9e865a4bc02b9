package dto

// RegisterUserRequestBody defines a request body for RegisterUser service.
type RegisterUserRequestBody struct {
	Username string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequestBody defines a request body for CreateAuthenticationToken service.
type LoginRequestBody struct {
	Username string `json:"userName"`
	Password string `json:"password"`
}
