package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/marmota/failboard/internal/client/models"
	"github.com/marmota/failboard/internal/common"
)

// FailureService reads and writes failure records on /falhas.
type FailureService interface {
	List(ctx context.Context) ([]models.Failure, error)
	Create(ctx context.Context, in models.NewFailure) (*models.Failure, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
}

type failureService struct {
	api API
}

func NewFailureService(api API) FailureService {
	return &failureService{api: api}
}

func (s *failureService) List(ctx context.Context) ([]models.Failure, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, common.FailuresPath, nil, &raw); err != nil {
		return nil, err
	}
	return models.DecodeFailures(raw)
}

// Create rejects an invalid request before sending it.
func (s *failureService) Create(ctx context.Context, in models.NewFailure) (*models.Failure, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid failure: %w", err)
	}

	var raw json.RawMessage
	if err := s.api.Post(ctx, common.FailuresPath, in, &raw); err != nil {
		return nil, err
	}

	f, err := models.DecodeFailure(raw)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateStatus ignores whatever the backend answers with.
func (s *failureService) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStatus, status)
	}
	path := common.FailuresPath + "/" + url.PathEscape(id) + "/status"
	return s.api.Put(ctx, path, models.StatusUpdate{Status: status}, nil)
}
