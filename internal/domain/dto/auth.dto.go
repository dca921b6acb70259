package dto

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserData struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SignupResponse struct {
	UserData UserData `json:"user_data"`
}

type LoginResponse struct {
	LoggedIn bool `json:"loggedin"`
}
