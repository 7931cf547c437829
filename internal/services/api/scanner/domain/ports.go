package domain

import "context"

// Lookup is one catalog query
type Lookup struct {
	Barcode   string
	CompanyID string
	Token     string
}

// ProductFinder resolves barcodes against the catalog. A missing product is an
// ErrorCodeNotFound error.
type ProductFinder interface {
	FindProduct(ctx context.Context, in Lookup) (*Product, error)
}

// ServicePort defines the service contract for scanner sessions
type ServicePort interface {
	Open(ctx context.Context, c Caller, in OpenInput) (SessionInfo, error)
	Get(ctx context.Context, id string) (SessionInfo, error)
	Close(ctx context.Context, id string) error
	Feed(ctx context.Context, id string, c Caller, keys []KeyInput) (FeedResult, error)
	Reset(ctx context.Context, id string) (SessionInfo, error)
	SetEnabled(ctx context.Context, id string, on bool) (SessionInfo, error)
	Submit(ctx context.Context, id string, c Caller, code string) (ScanEvent, error)
	Events(ctx context.Context, id string, after uint64) (EventsResult, error)
	Subscribe(ctx context.Context, id string) (<-chan ScanEvent, func(), error)
	Touch(id string)
	Defaults() Thresholds
	Count() int
}
