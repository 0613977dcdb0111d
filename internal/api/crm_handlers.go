package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"imobhub/internal/domain"
	"imobhub/internal/model"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Leads

type leadRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Source      string `json:"source"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	PropertyRef string `json:"property_ref"`
}

func (s *Server) handleLeadCreate(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	var req leadRequest
	if err := decodeJSON(r, &req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		apiError(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = model.LeadStatusNovo
	}

	lead := model.Lead{
		TenantID:    tenant.ID,
		Name:        strings.TrimSpace(req.Name),
		Phone:       req.Phone,
		Email:       req.Email,
		Source:      req.Source,
		Status:      req.Status,
		Notes:       req.Notes,
		PropertyRef: req.PropertyRef,
	}
	if err := s.leads.Insert(r.Context(), &lead); err != nil {
		s.logger.Error("error inserting lead", zap.Error(err))
		apiError(w, "could not save lead", http.StatusInternalServerError)
		return
	}

	// Alert and export fan-out; neither failure blocks the response.
	if s.notifier != nil {
		_ = s.notifier.NotifyNewLead(tenant.TelegramChatID, lead)
	}
	if s.forceExport != nil {
		select {
		case s.forceExport <- struct{}{}:
		default:
		}
	}

	apiJSON(w, lead, http.StatusCreated)
}

func (s *Server) handleLeadList(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	leads, err := s.leads.ListByTenant(r.Context(), tenant.ID)
	if err != nil {
		s.logger.Error("error listing leads", zap.Error(err))
		apiError(w, "could not list leads", http.StatusInternalServerError)
		return
	}
	apiJSON(w, leads, http.StatusOK)
}

func (s *Server) handleLeadGet(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		apiError(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	lead, err := s.leads.GetByID(r.Context(), id)
	if err != nil || lead.TenantID != tenant.ID {
		apiError(w, "lead not found", http.StatusNotFound)
		return
	}
	apiJSON(w, lead, http.StatusOK)
}

func (s *Server) handleLeadUpdate(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		apiError(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	lead, err := s.leads.GetByID(r.Context(), id)
	if err != nil || lead.TenantID != tenant.ID {
		apiError(w, "lead not found", http.StatusNotFound)
		return
	}

	var req leadRequest
	if err := decodeJSON(r, &req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		apiError(w, "name is required", http.StatusBadRequest)
		return
	}

	lead.Name = strings.TrimSpace(req.Name)
	lead.Phone = req.Phone
	lead.Email = req.Email
	lead.Source = req.Source
	lead.Notes = req.Notes
	lead.PropertyRef = req.PropertyRef
	if req.Status != "" {
		// No transition rules: any screen may set any status.
		lead.Status = req.Status
	}

	if err := s.leads.Update(r.Context(), lead); err != nil {
		s.logger.Error("error updating lead", zap.Error(err), zap.Uint("lead_id", id))
		apiError(w, "could not update lead", http.StatusInternalServerError)
		return
	}
	apiJSON(w, lead, http.StatusOK)
}

func (s *Server) handleLeadDelete(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		apiError(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	lead, err := s.leads.GetByID(r.Context(), id)
	if err != nil || lead.TenantID != tenant.ID {
		apiError(w, "lead not found", http.StatusNotFound)
		return
	}

	if err := s.leads.Delete(r.Context(), id); err != nil {
		s.logger.Error("error deleting lead", zap.Error(err), zap.Uint("lead_id", id))
		apiError(w, "could not delete lead", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Appointments

type appointmentRequest struct {
	LeadID      uint   `json:"lead_id"`
	ScheduledAt string `json:"scheduled_at"`
	Note        string `json:"note"`
}

func (s *Server) handleAppointmentCreate(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	var req appointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		apiError(w, "scheduled_at must be RFC3339", http.StatusBadRequest)
		return
	}

	appointment := model.Appointment{
		TenantID:    tenant.ID,
		LeadID:      req.LeadID,
		ScheduledAt: scheduledAt,
		Note:        req.Note,
	}
	if err := s.appointments.Insert(r.Context(), &appointment); err != nil {
		s.logger.Error("error inserting appointment", zap.Error(err))
		apiError(w, "could not save appointment", http.StatusInternalServerError)
		return
	}
	apiJSON(w, appointment, http.StatusCreated)
}

func (s *Server) handleAppointmentList(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	appointments, err := s.appointments.ListByTenant(r.Context(), tenant.ID)
	if err != nil {
		s.logger.Error("error listing appointments", zap.Error(err))
		apiError(w, "could not list appointments", http.StatusInternalServerError)
		return
	}
	apiJSON(w, appointments, http.StatusOK)
}

func (s *Server) handleAppointmentDelete(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		apiError(w, "invalid appointment id", http.StatusBadRequest)
		return
	}

	appointment, err := s.appointments.GetByID(r.Context(), id)
	if err != nil || appointment.TenantID != tenant.ID {
		apiError(w, "appointment not found", http.StatusNotFound)
		return
	}

	if err := s.appointments.Delete(r.Context(), id); err != nil {
		s.logger.Error("error deleting appointment", zap.Error(err), zap.Uint("appointment_id", id))
		apiError(w, "could not delete appointment", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Partners

type partnerRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func (s *Server) handlePartnerCreate(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	var req partnerRequest
	if err := decodeJSON(r, &req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		apiError(w, "name is required", http.StatusBadRequest)
		return
	}

	partner := model.Partner{
		TenantID:  tenant.ID,
		Name:      strings.TrimSpace(req.Name),
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if err := s.partners.Insert(r.Context(), &partner); err != nil {
		s.logger.Error("error inserting partner", zap.Error(err))
		apiError(w, "could not save partner", http.StatusInternalServerError)
		return
	}
	apiJSON(w, partner, http.StatusCreated)
}

func (s *Server) handlePartnerList(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	partners, err := s.partners.ListByTenant(r.Context(), tenant.ID)
	if err != nil {
		s.logger.Error("error listing partners", zap.Error(err))
		apiError(w, "could not list partners", http.StatusInternalServerError)
		return
	}
	apiJSON(w, partners, http.StatusOK)
}

func (s *Server) handlePartnerDelete(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		apiError(w, "invalid partner id", http.StatusBadRequest)
		return
	}

	partner, err := s.partners.GetByID(r.Context(), id)
	if err != nil || partner.TenantID != tenant.ID {
		apiError(w, "partner not found", http.StatusNotFound)
		return
	}

	if err := s.partners.Delete(r.Context(), id); err != nil {
		s.logger.Error("error deleting partner", zap.Error(err), zap.Uint("partner_id", id))
		apiError(w, "could not delete partner", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Properties

func (s *Server) handlePropertyList(w http.ResponseWriter, r *http.Request) {
	filter := domain.PropertyFilter{
		Origin:   r.URL.Query().Get("origin"),
		DealType: r.URL.Query().Get("deal_type"),
	}

	properties, err := s.properties.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("error listing properties", zap.Error(err))
		apiError(w, "could not list properties", http.StatusInternalServerError)
		return
	}
	apiJSON(w, properties, http.StatusOK)
}

func (s *Server) handlePropertyGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		apiError(w, "invalid property id", http.StatusBadRequest)
		return
	}

	property, err := s.properties.GetByID(r.Context(), id)
	if err != nil {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}
	apiJSON(w, property, http.StatusOK)
}

func (s *Server) handlePropertyDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		apiError(w, "invalid property id", http.StatusBadRequest)
		return
	}
	if err := s.properties.Delete(r.Context(), id); err != nil {
		s.logger.Error("error deleting property", zap.Error(err), zap.Uint("property_id", id))
		apiError(w, "could not delete property", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tenant profile

type tenantProfileRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
	TelegramChatID int64  `json:"telegram_chat_id"`
}

func (s *Server) handleTenantProfile(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())
	apiJSON(w, tenant, http.StatusOK)
}

func (s *Server) handleTenantProfileUpdate(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	var req tenantProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated := *tenant
	if req.Name != "" {
		updated.Name = req.Name
	}
	if req.Phone != "" {
		updated.Phone = req.Phone
	}
	if req.Company != "" {
		updated.Company = req.Company
	}
	if req.TelegramChatID != 0 {
		updated.TelegramChatID = req.TelegramChatID
	}

	if err := s.tenants.Update(r.Context(), &updated); err != nil {
		s.logger.Error("error updating tenant profile", zap.Error(err), zap.String("user_id", tenant.UserID))
		apiError(w, "could not update profile", http.StatusInternalServerError)
		return
	}
	apiJSON(w, updated, http.StatusOK)
}
