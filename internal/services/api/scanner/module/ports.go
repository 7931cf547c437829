package module

import (
	"context"

	"scanwedge/internal/adapters/catalog"
	"scanwedge/internal/services/api/scanner/domain"
	svc "scanwedge/internal/services/api/scanner/service"
)

// Ports exposed by the scanner module
type Ports struct {
	Sessions domain.ServicePort
	// Runner closes idle sessions until its context ends
	Runner interface {
		Run(ctx context.Context) error
	}
	// Catalog is the configured catalog client, nil when lookups are disabled
	Catalog any
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// catalogFinder adapts the catalog client to the scanner lookup port
type catalogFinder struct{ c *catalog.Client }

// FindProduct resolves a barcode through the catalog service
func (f catalogFinder) FindProduct(ctx context.Context, in domain.Lookup) (*domain.Product, error) {
	p, err := f.c.FindByBarcode(ctx, in.Barcode, catalog.Auth{Token: in.Token, CompanyID: in.CompanyID})
	if err != nil {
		return nil, err
	}
	out := &domain.Product{ID: p.ID, Name: p.Name, ImageURL: p.ImageURL}
	if p.Category != nil {
		out.Category = p.Category.Name
	}
	return out, nil
}

var _ domain.ServicePort = (*svc.Svc)(nil)
