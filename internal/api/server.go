package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/b3rknt/Modanist/internal/auth"
	"github.com/b3rknt/Modanist/internal/catalog"
	"github.com/b3rknt/Modanist/internal/checkout"
	"github.com/b3rknt/Modanist/internal/favorites"
	"github.com/b3rknt/Modanist/internal/profile"
	"github.com/b3rknt/Modanist/internal/session"
)

// Server wires the storefront services to the HTTP surface.
type Server struct {
	catalog   *catalog.Service
	sessions  *session.Manager
	auth      *auth.Service
	favorites *favorites.Service
	checkout  *checkout.Service
	profiles  profile.Store
	validate  *validator.Validate
	log       zerolog.Logger

	gateMu sync.Mutex
	gates  map[string]*auth.Gate // one per device
}

type Deps struct {
	Catalog   *catalog.Service
	Sessions  *session.Manager
	Auth      *auth.Service
	Favorites *favorites.Service
	Checkout  *checkout.Service
	Profiles  profile.Store
	Logger    zerolog.Logger
}

func NewServer(deps Deps) *Server {
	return &Server{
		catalog:   deps.Catalog,
		sessions:  deps.Sessions,
		auth:      deps.Auth,
		favorites: deps.Favorites,
		checkout:  deps.Checkout,
		profiles:  deps.Profiles,
		validate:  validator.New(),
		log:       deps.Logger,
		gates:     make(map[string]*auth.Gate),
	}
}

// Router builds the chi router. Paths are stable identifiers; display
// strings live client-side.
func (s *Server) Router(requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(s.RequestLogger)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(s.AuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.Register)
			r.Post("/login", s.Login)
			r.Post("/guest", s.GuestLogin)
			r.Post("/logout", s.Logout)
			r.Get("/session", s.SessionCheck)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.ListProducts)
			r.Get("/facets", s.ProductFacets)
			r.Get("/{id}", s.GetProduct)
			r.Post("/", s.CreateProduct)
			r.Post("/import", s.ImportProducts)
			r.Patch("/{id}", s.UpdateProduct)
			r.Delete("/{id}", s.DeleteProduct)
		})
		r.Get("/categories", s.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", s.GetCart)
				r.Post("/items", s.AddCartItem)
				r.Delete("/items", s.RemoveCartItem)
				r.Post("/items/increase", s.IncreaseCartItem)
				r.Post("/items/decrease", s.DecreaseCartItem)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", s.ListFavorites)
				r.Post("/{id}/toggle", s.ToggleFavorite)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", s.CheckoutSummary)
				r.Post("/", s.SubmitCheckout)
			})
			r.Get("/orders", s.ListOrders)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAccount)
			r.Get("/profile", s.GetProfile)
			r.Put("/profile", s.SaveProfile)
		})
	})

	return r
}

// gate returns the navigation gate for a device, creating it pending. An
// empty device id gets a fresh unregistered gate, so anonymous requests
// never grow the registry.
func (s *Server) gate(deviceID string) *auth.Gate {
	if deviceID == "" {
		return auth.NewGate()
	}

	s.gateMu.Lock()
	defer s.gateMu.Unlock()

	g, ok := s.gates[deviceID]
	if !ok {
		g = auth.NewGate()
		s.gates[deviceID] = g
	}
	return g
}

func deviceID(r *http.Request) string {
	return r.Header.Get("X-Device-ID")
}
