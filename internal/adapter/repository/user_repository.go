package repository

import (
	"context"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
)

// userRepository implements UserRepository over the REST API
type userRepository struct {
	api APIClient
}

// NewUserRepository creates a new user repository
func NewUserRepository(api APIClient) repositories.UserRepository {
	return &userRepository{api: api}
}

// Me returns the signed-in user's profile
func (r *userRepository) Me(ctx context.Context) (*entities.User, error) {
	var u entities.User
	if err := r.api.Get(ctx, "/Users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(ctx context.Context, id entities.ID) (*entities.User, error) {
	var u entities.User
	if err := r.api.Get(ctx, path("Users", id.String()), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns the user directory
func (r *userRepository) List(ctx context.Context) ([]entities.User, error) {
	var page entities.Page[entities.User]
	if err := r.api.Get(ctx, "/Users", nil, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// authRepository implements AuthRepository over the REST API
type authRepository struct {
	api APIClient
}

// NewAuthRepository creates a new auth repository
func NewAuthRepository(api APIClient) repositories.AuthRepository {
	return &authRepository{api: api}
}

// loginResponse tolerates the token under either name
type loginResponse struct {
	Token       string         `json:"token"`
	AccessToken string         `json:"accessToken"`
	User        *entities.User `json:"user"`
}

// Login exchanges credentials for a token
func (r *authRepository) Login(ctx context.Context, email, password string) (*repositories.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := r.api.Post(ctx, "/Auth/login", body, &resp); err != nil {
		return nil, err
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	return &repositories.LoginResult{Token: token, User: resp.User}, nil
}

// Register creates a user account
func (r *authRepository) Register(ctx context.Context, input repositories.RegisterInput) (*entities.User, error) {
	var u entities.User
	if err := r.api.Post(ctx, "/Auth/register", input, &u); err != nil {
		return nil, err
	}
	if u.Email == "" {
		u.Email = input.Email
		u.FirstName = input.FirstName
		u.LastName = input.LastName
	}
	return &u, nil
}

// ChangePassword changes the signed-in user's password
func (r *authRepository) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return r.api.Post(ctx, "/Auth/change-password", body, nil)
}

// Delete removes a user account
func (r *authRepository) Delete(ctx context.Context, userID entities.ID) error {
	return r.api.Delete(ctx, path("Auth", userID.String()))
}

// ChangeRole replaces a user's role
func (r *authRepository) ChangeRole(ctx context.Context, userID entities.ID, role entities.UserRole) error {
	return r.api.Put(ctx, path("Auth", "role", userID.String()), map[string]entities.UserRole{"role": role}, nil)
}
