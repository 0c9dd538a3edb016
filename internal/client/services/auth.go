package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/marmota/failboard/internal/client/models"
	"github.com/marmota/failboard/internal/common"
)

// AuthService signs users in and out.
//
// Contract:
//   - Login: POST the credentials; on success the token and user are stored.
//   - Logout: forget the stored session. No request is made.
//   - CurrentUser: the stored user, or nil when nobody is signed in.
//   - LoggedIn: whether a usable (unexpired) token is stored.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	LoggedIn(ctx context.Context) (bool, error)
}

type authService struct {
	api     API
	session SessionStore
}

func NewAuthService(api API, session SessionStore) AuthService {
	return &authService{api: api, session: session}
}

func (a *authService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var raw json.RawMessage
	req := models.LoginRequest{Username: username, Password: password}
	if err := a.api.Post(ctx, common.LoginPath, req, &raw); err != nil {
		return nil, err
	}

	resp, err := models.DecodeLoginResponse(raw)
	if err != nil {
		return nil, err
	}

	if err := a.session.Save(ctx, resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return resp, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.session.User(ctx)
}

func (a *authService) LoggedIn(ctx context.Context) (bool, error) {
	return a.session.LoggedIn(ctx)
}
