package handlers

import (
	"net/http"

	"interview-coach/internal/domain/dto"
	Iservices "interview-coach/internal/domain/interfaces/services"
	"interview-coach/internal/infra/logger"
)

type AuthHandlers struct {
	Logger      *logger.Logger
	UserService Iservices.IUserService
}

func NewAuthHandlers(logger *logger.Logger, userService Iservices.IUserService) *AuthHandlers {
	return &AuthHandlers{Logger: logger, UserService: userService}
}

func (ah *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := decodeRequest(r, &req, "name", "email", "password"); err != nil {
		writeError(w, ah.Logger, err, http.StatusNotFound)
		return
	}

	user, err := ah.UserService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, ah.Logger, err, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, dto.SignupResponse{UserData: dto.UserData{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}})
}

func (ah *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeRequest(r, &req, "email", "password"); err != nil {
		writeError(w, ah.Logger, err, http.StatusNotFound)
		return
	}

	ok, err := ah.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, ah.Logger, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, dto.LoginResponse{LoggedIn: ok})
}
