package service

import (
	"context"
	"fmt"
	"strings"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/block"
	"github.com/emrgen/jobpost/internal/model"
	"github.com/emrgen/jobpost/internal/store"
	"github.com/sirupsen/logrus"
)

// NewSchemeService creates a new SchemeService.
func NewSchemeService(store store.Store) *SchemeService {
	return &SchemeService{store: store}
}

// SchemeService manages the government schemes listing.
type SchemeService struct {
	store store.Store
}

func validateScheme(in *v1.SchemeInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if in.Link != nil && *in.Link != "" && !block.SafeURL(*in.Link) {
		return fmt.Errorf("%w: invalid link %q", ErrInvalidArgument, *in.Link)
	}
	return nil
}

func (s *SchemeService) CreateScheme(ctx context.Context, in *v1.SchemeInput) (*v1.Scheme, error) {
	if err := validateScheme(in); err != nil {
		return nil, err
	}

	scheme := &model.Scheme{
		Name:     strings.TrimSpace(in.Name),
		Category: in.Category,
		Link:     nonEmpty(in.Link),
	}
	if err := s.store.CreateScheme(ctx, scheme); err != nil {
		return nil, err
	}
	logrus.Infof("created scheme id: %v", scheme.ID)

	return toScheme(scheme), nil
}

func (s *SchemeService) GetScheme(ctx context.Context, id uint64) (*v1.Scheme, error) {
	scheme, err := s.store.GetScheme(ctx, uint(id))
	if err != nil {
		return nil, err
	}
	return toScheme(scheme), nil
}

func (s *SchemeService) ListSchemes(ctx context.Context) (*v1.ListSchemesResponse, error) {
	schemes, err := s.store.ListSchemes(ctx)
	if err != nil {
		return nil, err
	}

	res := &v1.ListSchemesResponse{Schemes: make([]*v1.Scheme, 0, len(schemes))}
	for _, scheme := range schemes {
		res.Schemes = append(res.Schemes, toScheme(scheme))
	}
	return res, nil
}

func (s *SchemeService) CountSchemes(ctx context.Context) (*v1.CountSchemesResponse, error) {
	count, err := s.store.CountSchemes(ctx)
	if err != nil {
		return nil, err
	}
	return &v1.CountSchemesResponse{Count: count}, nil
}

func (s *SchemeService) UpdateScheme(ctx context.Context, id uint64, in *v1.SchemeInput) (*v1.Scheme, error) {
	if err := validateScheme(in); err != nil {
		return nil, err
	}

	scheme, err := s.store.GetScheme(ctx, uint(id))
	if err != nil {
		return nil, err
	}

	scheme.Name = strings.TrimSpace(in.Name)
	scheme.Category = in.Category
	scheme.Link = nonEmpty(in.Link)
	if err := s.store.UpdateScheme(ctx, scheme); err != nil {
		return nil, err
	}

	return toScheme(scheme), nil
}

func (s *SchemeService) DeleteScheme(ctx context.Context, id uint64) error {
	return s.store.DeleteScheme(ctx, uint(id))
}

func toScheme(scheme *model.Scheme) *v1.Scheme {
	return &v1.Scheme{
		ID:       uint64(scheme.ID),
		Name:     scheme.Name,
		Category: scheme.Category,
		Link:     scheme.Link,
	}
}
