package Iservices

import (
	"context"

	"interview-coach/internal/domain/entities"
)

type IUserService interface {
	Signup(ctx context.Context, name, email, password string) (entities.User, error)
	Login(ctx context.Context, email, password string) (bool, error)
}
