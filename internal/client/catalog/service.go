package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/netx"
)

// Doer sends a JSON request relative to the backend base URL.
// *gateway.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, method, path string, header http.Header, in any) (*netx.Response, error)
}

// SessionReader exposes the current session.
type SessionReader interface {
	Session() session.Snapshot
}

type Service struct {
	api      Doer
	sessions SessionReader
}

func NewService(api Doer, sessions SessionReader) *Service {
	return &Service{api: api, sessions: sessions}
}

// Create validates form and posts it to /products.
func (s *Service) Create(ctx context.Context, form ProductForm) (*Product, error) {
	return s.submit(ctx, http.MethodPost, "/products", form)
}

// Update validates form and replaces product id.
func (s *Service) Update(ctx context.Context, id string, form ProductForm) (*Product, error) {
	if id == "" {
		return nil, ValidationErrors{"id": "Product ID is required"}
	}
	return s.submit(ctx, http.MethodPut, "/products/"+url.PathEscape(id), form)
}

func (s *Service) submit(ctx context.Context, method, path string, form ProductForm) (*Product, error) {
	p, err := form.Validate()
	if err != nil {
		return nil, err
	}

	snap := s.sessions.Session()
	if !snap.Authenticated() {
		return nil, common.ErrorUnauthorized
	}

	header := http.Header{}
	header.Set(common.AuthorizationHeaderName, "Bearer "+snap.Token)

	resp, err := s.api.Do(ctx, method, path, header, p)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	var out Product
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
