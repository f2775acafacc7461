package stylist

import (
	"context"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// CatalogService manages a stylist's service catalog and keeps the derived
// displayed price (the minimum price across active catalog entries) current.
type CatalogService interface {
	GetStylist(ctx context.Context, stylistID string) (*models.Stylist, error)

	AddService(ctx context.Context, stylistID string, svc models.StylistService) (*models.Stylist, error)
	UpdateService(ctx context.Context, stylistID string, svc models.StylistService) (*models.Stylist, error)
	DeactivateService(ctx context.Context, stylistID, serviceID string) (*models.Stylist, error)

	// RecomputeDisplayedPrice rebuilds the stylist's displayed price from the
	// active catalog entries. Zero when no entry is active.
	RecomputeDisplayedPrice(ctx context.Context, stylistID string) error
}
