package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"

	perr "scanwedge/internal/platform/errors"
)

// Product is the subset of the catalog product document scanners care about
type Product struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	ImageURL   string           `json:"imageUrl,omitempty"`
	Category   *Category        `json:"category,omitempty"`
	Attributes []AttributeValue `json:"productAttributeValues,omitempty"`
}

// Category is a product's category reference
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AttributeValue is one attribute on a product
type AttributeValue struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// FindByBarcode looks a product up by its barcode. A missing product yields
// an ErrorCodeNotFound error, and so does a 5xx unless MissingAsError is set.
func (c *Client) FindByBarcode(ctx context.Context, barcode string, a Auth) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, perr.WithField(perr.InvalidArgf("barcode is required"), "barcode")
	}
	resp, err := c.Do(ctx, "/product/barcode", url.Values{"barcode": {barcode}}, a)
	if err != nil {
		if e, ok := perr.As(err); ok && e.Op() == opServerError && !c.opts.MissingAsError {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "catalog has no product for %q", barcode)
		}
		return nil, perr.WithOp(err, "catalog.FindByBarcode")
	}
	defer resp.Body.Close()

	// an empty or null body is how the product service says "no such product"
	var p Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, perr.NotFoundf("catalog returned no product for %q", barcode)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "catalog product decode failed")
	}
	if p.ID == 0 {
		return nil, perr.NotFoundf("catalog returned an empty product for %q", barcode)
	}
	return &p, nil
}
