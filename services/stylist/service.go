package stylist

import (
	"context"

	stylistRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/stylist"
	"github.com/sekharpasem/YouCanStyle-Api/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCatalogService is the production CatalogService.
type DefaultCatalogService struct {
	Stylists stylistRepo.StylistRepository
	Logger   *zap.Logger
}

func (s *DefaultCatalogService) GetStylist(ctx context.Context, stylistID string) (*models.Stylist, error) {
	return s.Stylists.GetByID(ctx, stylistID)
}

func (s *DefaultCatalogService) AddService(ctx context.Context, stylistID string, svc models.StylistService) (*models.Stylist, error) {
	if err := validateService(svc); err != nil {
		return nil, err
	}
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	svc.Active = true

	if err := s.Stylists.AddService(ctx, stylistID, svc); err != nil {
		return nil, err
	}
	if err := s.RecomputeDisplayedPrice(ctx, stylistID); err != nil {
		return nil, err
	}
	return s.Stylists.GetByID(ctx, stylistID)
}

func (s *DefaultCatalogService) UpdateService(ctx context.Context, stylistID string, svc models.StylistService) (*models.Stylist, error) {
	if svc.ID == "" {
		return nil, &models.ValidationError{Field: "id", Message: "service id is required"}
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}

	if err := s.Stylists.UpdateService(ctx, stylistID, svc); err != nil {
		return nil, err
	}
	if err := s.RecomputeDisplayedPrice(ctx, stylistID); err != nil {
		return nil, err
	}
	return s.Stylists.GetByID(ctx, stylistID)
}

func (s *DefaultCatalogService) DeactivateService(ctx context.Context, stylistID, serviceID string) (*models.Stylist, error) {
	if err := s.Stylists.DeactivateService(ctx, stylistID, serviceID); err != nil {
		return nil, err
	}
	if err := s.RecomputeDisplayedPrice(ctx, stylistID); err != nil {
		return nil, err
	}
	return s.Stylists.GetByID(ctx, stylistID)
}

func (s *DefaultCatalogService) RecomputeDisplayedPrice(ctx context.Context, stylistID string) error {
	st, err := s.Stylists.GetByID(ctx, stylistID)
	if err != nil {
		return err
	}

	price := 0
	for _, svc := range st.Services {
		if !svc.Active {
			continue
		}
		if price == 0 || svc.Price < price {
			price = svc.Price
		}
	}

	if err := s.Stylists.SetDisplayedPrice(ctx, stylistID, price); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Debug("displayed price recomputed",
			zap.String("stylistId", stylistID), zap.Int("price", price))
	}
	return nil
}

func validateService(svc models.StylistService) error {
	if svc.Name == "" {
		return &models.ValidationError{Field: "name", Message: "service name is required"}
	}
	if svc.Price <= 0 {
		return &models.ValidationError{Field: "price", Message: "must be greater than zero"}
	}
	if svc.Duration <= 0 {
		return &models.ValidationError{Field: "duration", Message: "must be greater than zero"}
	}
	return nil
}
