package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/marmota/failboard/internal/client/models"
	"github.com/marmota/failboard/internal/common"
)

// UserService manages accounts on /user.
type UserService interface {
	List(ctx context.Context, filter url.Values) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
	Update(ctx context.Context, id int64, in models.UserInput) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	api API
}

func NewUserService(api API) UserService {
	return &userService{api: api}
}

func userPath(id int64) string {
	return common.UsersPath + "/" + strconv.FormatInt(id, 10)
}

// List forwards filter as query parameters.
func (s *userService) List(ctx context.Context, filter url.Values) ([]models.User, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, common.UsersPath, filter, &raw); err != nil {
		return nil, err
	}
	return models.DecodeUsers(raw)
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, userPath(id), nil, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (s *userService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, common.UsersPath, in, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (s *userService) Update(ctx context.Context, id int64, in models.UserInput) (*models.User, error) {
	var raw json.RawMessage
	if err := s.api.Put(ctx, userPath(id), in, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, userPath(id), nil)
}

func decodeUser(raw []byte) (*models.User, error) {
	u, err := models.DecodeUser(raw)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
