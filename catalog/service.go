package catalog

import (
	"fmt"
	"net/http"

	resp "github.com/kingdomliving/soulfood/response"

	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// ServiceOptions contains the configuration for the catalog Service router
type ServiceOptions struct {
	Catalog Catalog
	Logger  *zap.Logger
}

// Service is the catalog API router
type Service struct {
	ServiceOptions
}

// NewService will create an instance of the catalog API router
func NewService(option ServiceOptions) (*Service, error) {
	if option.Catalog == nil {
		return nil, fmt.Errorf("nil Catalog is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Service{
		ServiceOptions: option,
	}, nil
}

func (s *Service) listProducts(w http.ResponseWriter, r *http.Request) {
	resp.WriteResponse(w, r, s.Catalog)
}

func (s *Service) getProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	product, ok := s.Catalog.Get(productID)
	if !ok {
		resp.WriteError(w, r, resp.ErrNotFound().AddMessages("Invalid product"))
		return
	}
	resp.WriteResponse(w, r, product)
}

func (s *Service) listSeries(w http.ResponseWriter, r *http.Request) {
	resp.WriteResponse(w, r, DefinedSeries())
}

func (s *Service) listEditions(w http.ResponseWriter, r *http.Request) {
	resp.WriteResponse(w, r, DefinedEditions())
}

// Router will return the routes under catalog API
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", s.listProducts)
	r.Get("/products/{id}", s.getProduct)
	r.Get("/series", s.listSeries)
	r.Get("/editions", s.listEditions)

	return r
}
