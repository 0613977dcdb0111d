package api

import (
	"net/http"

	"imobhub/internal/domain"
	"imobhub/internal/service/agent"
	"imobhub/internal/service/billing"
	"imobhub/internal/service/feed"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server wires the HTTP surface: feed import/proxy, billing, agent
// provisioning and CRM CRUD.
type Server struct {
	logger *zap.Logger
	router *mux.Router

	importer   *feed.Importer
	checkout   *billing.CheckoutService
	reconciler *billing.Reconciler
	agents     *agent.Service

	properties   domain.PropertyRepo
	leads        domain.LeadRepo
	tenants      domain.TenantRepo
	appointments domain.AppointmentRepo
	partners     domain.PartnerRepo

	notifier    domain.LeadNotifier
	forceExport chan struct{}

	httpClient *http.Client
}

// Deps carries everything the server needs. Notifier and ForceExport may
// be nil when the respective integrations are unconfigured.
type Deps struct {
	Importer   *feed.Importer
	Checkout   *billing.CheckoutService
	Reconciler *billing.Reconciler
	Agents     *agent.Service

	Properties   domain.PropertyRepo
	Leads        domain.LeadRepo
	Tenants      domain.TenantRepo
	Appointments domain.AppointmentRepo
	Partners     domain.PartnerRepo

	Notifier    domain.LeadNotifier
	ForceExport chan struct{}
}

func NewServer(deps Deps, logger *zap.Logger) *Server {
	s := &Server{
		logger:       logger,
		router:       mux.NewRouter(),
		importer:     deps.Importer,
		checkout:     deps.Checkout,
		reconciler:   deps.Reconciler,
		agents:       deps.Agents,
		properties:   deps.Properties,
		leads:        deps.Leads,
		tenants:      deps.Tenants,
		appointments: deps.Appointments,
		partners:     deps.Partners,
		notifier:     deps.Notifier,
		forceExport:  deps.ForceExport,
		httpClient:   &http.Client{},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// Unauthenticated: the webhook authenticates by signature, the proxy
	// serves the browser before any session exists.
	s.router.HandleFunc("/api/billing/webhook", s.handleWebhook).Methods(http.MethodPost)
	s.router.HandleFunc("/api/feed/proxy", s.handleFeedProxy).Methods(http.MethodGet, http.MethodOptions)

	authed := s.router.PathPrefix("/api").Subrouter()
	authed.Use(newAuthMiddleware(s.tenants, s.logger).wrap)

	authed.HandleFunc("/feed/import", s.handleFeedImport).Methods(http.MethodPost)
	authed.HandleFunc("/billing/checkout", s.handleCheckout).Methods(http.MethodPost)
	authed.HandleFunc("/agents", s.handleAgentCreate).Methods(http.MethodPost)

	authed.HandleFunc("/leads", s.handleLeadCreate).Methods(http.MethodPost)
	authed.HandleFunc("/leads", s.handleLeadList).Methods(http.MethodGet)
	authed.HandleFunc("/leads/{id:[0-9]+}", s.handleLeadGet).Methods(http.MethodGet)
	authed.HandleFunc("/leads/{id:[0-9]+}", s.handleLeadUpdate).Methods(http.MethodPut)
	authed.HandleFunc("/leads/{id:[0-9]+}", s.handleLeadDelete).Methods(http.MethodDelete)

	authed.HandleFunc("/appointments", s.handleAppointmentCreate).Methods(http.MethodPost)
	authed.HandleFunc("/appointments", s.handleAppointmentList).Methods(http.MethodGet)
	authed.HandleFunc("/appointments/{id:[0-9]+}", s.handleAppointmentDelete).Methods(http.MethodDelete)

	authed.HandleFunc("/partners", s.handlePartnerCreate).Methods(http.MethodPost)
	authed.HandleFunc("/partners", s.handlePartnerList).Methods(http.MethodGet)
	authed.HandleFunc("/partners/{id:[0-9]+}", s.handlePartnerDelete).Methods(http.MethodDelete)

	authed.HandleFunc("/properties", s.handlePropertyList).Methods(http.MethodGet)
	authed.HandleFunc("/properties/{id:[0-9]+}", s.handlePropertyGet).Methods(http.MethodGet)
	authed.HandleFunc("/properties/{id:[0-9]+}", s.handlePropertyDelete).Methods(http.MethodDelete)

	authed.HandleFunc("/tenant/profile", s.handleTenantProfile).Methods(http.MethodGet)
	authed.HandleFunc("/tenant/profile", s.handleTenantProfileUpdate).Methods(http.MethodPut)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
