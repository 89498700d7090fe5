// Package handler exposes the organization service lifecycle over HTTP.
// Handlers decode and validate the payload, resolve the caller's scope, and
// delegate to the lifecycle service; no business logic lives here.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"registrar/internal/org/models"
	"registrar/internal/org/service"
	"registrar/internal/platform/middleware"
	"registrar/internal/scope"
	"registrar/internal/transport/http/shared"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
	"registrar/pkg/requestcontext"
)

// LifecycleService is the slice of the organization service the handlers
// call into.
type LifecycleService interface {
	GetOrganization(ctx context.Context, sc scope.Scope, did domain.DID) (*models.Organization, error)
	AddService(ctx context.Context, sc scope.Scope, did domain.DID, req service.AddServiceRequest) (*service.AddServiceResult, error)
	UpdateService(ctx context.Context, sc scope.Scope, did domain.DID, serviceID string, patch service.UpdateServicePatch) (*models.Service, error)
	DeleteService(ctx context.Context, sc scope.Scope, did domain.DID, serviceID string) (*service.DeleteServiceResult, error)
	ActivateServices(ctx context.Context, sc scope.Scope, did domain.DID, serviceIDs []string) (*service.ActivationResult, error)
	DeactivateServices(ctx context.Context, sc scope.Scope, did domain.DID, serviceIDs []string) (*service.ActivationResult, error)
}

// ScopeResolver turns the authenticated caller into the authorization scope
// the lifecycle service enforces.
type ScopeResolver interface {
	ResolveOrganizationScope(ctx context.Context, caller requestcontext.CallerIdentity, targetDID domain.DID, intent scope.Intent) (scope.Scope, error)
}

type Handler struct {
	logger    *slog.Logger
	lifecycle LifecycleService
	scopes    ScopeResolver
	validate  *validator.Validate
	validator middleware.TokenValidator
}

func New(lifecycle LifecycleService, scopes ScopeResolver, tokenValidator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		lifecycle: lifecycle,
		scopes:    scopes,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		validator: tokenValidator,
	}
}

// Register mounts the organization routes with the auth middleware applied.
func (h *Handler) Register(r chi.Router) {
	orgRouter := chi.NewRouter()
	orgRouter.Use(middleware.ContentTypeJSON)
	orgRouter.Use(middleware.RequireAuth(h.validator, h.logger))

	orgRouter.Get("/organizations/{did}", h.handleGetOrganization)
	orgRouter.Post("/organizations/{did}/services", h.handleAddService)
	orgRouter.Put("/organizations/{did}/services/{serviceID}", h.handleUpdateService)
	orgRouter.Delete("/organizations/{did}/services/{serviceID}", h.handleDeleteService)
	orgRouter.Post("/organizations/{did}/activate-services", h.handleActivateServices)
	orgRouter.Post("/organizations/{did}/deactivate-services", h.handleDeactivateServices)

	r.Mount("/", orgRouter)
}

// resolveRequest extracts the target DID from the path and resolves the
// caller's scope for it.
func (h *Handler) resolveRequest(r *http.Request, intent scope.Intent) (domain.DID, scope.Scope, error) {
	did, err := domain.ParseDID(pathParam(r, "did"))
	if err != nil {
		return "", scope.Scope{}, err
	}
	caller := requestcontext.Caller(r.Context())
	sc, err := h.scopes.ResolveOrganizationScope(r.Context(), caller, did, intent)
	if err != nil {
		return "", scope.Scope{}, err
	}
	return did, sc, nil
}

func (h *Handler) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	did, sc, err := h.resolveRequest(r, scope.IntentRead)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	org, err := h.lifecycle.GetOrganization(ctx, sc, did)
	if err != nil {
		h.logFailure(ctx, "get organization failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, org)
}

type addServiceRequest struct {
	ID              string   `json:"id" validate:"required"`
	Type            string   `json:"type" validate:"required"`
	ServiceEndpoint string   `json:"serviceEndpoint" validate:"required"`
	CredentialTypes []string `json:"credentialTypes"`

	LogoURL                    string   `json:"logoUrl"`
	PlayStoreURL               string   `json:"playStoreUrl"`
	AppleAppStoreURL           string   `json:"appleAppStoreUrl"`
	AppleAppID                 string   `json:"appleAppId"`
	GooglePlayID               string   `json:"googlePlayId"`
	SupportedExchangeProtocols []string `json:"supportedExchangeProtocols"`
	Name                       string   `json:"name"`

	InvitationCode string `json:"invitationCode"`
	Activate       bool   `json:"activate"`
}

type addServiceResponse struct {
	Service    models.Service                 `json:"service"`
	AuthClient *service.ProvisionedAuthClient `json:"authClient,omitempty"`
}

func (h *Handler) handleAddService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	did, sc, err := h.resolveRequest(r, scope.IntentWrite)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req addServiceRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.lifecycle.AddService(ctx, sc, did, service.AddServiceRequest{
		Service: models.Service{
			ID:                         req.ID,
			Type:                       domain.ServiceType(req.Type),
			ServiceEndpoint:            req.ServiceEndpoint,
			CredentialTypes:            req.CredentialTypes,
			LogoURL:                    req.LogoURL,
			PlayStoreURL:               req.PlayStoreURL,
			AppleAppStoreURL:           req.AppleAppStoreURL,
			AppleAppID:                 req.AppleAppID,
			GooglePlayID:               req.GooglePlayID,
			SupportedExchangeProtocols: req.SupportedExchangeProtocols,
			Name:                       req.Name,
		},
		InvitationCode: req.InvitationCode,
		Activate:       req.Activate,
	})
	if err != nil {
		h.logFailure(ctx, "add service failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, addServiceResponse{
		Service:    result.Service,
		AuthClient: result.AuthClient,
	})
}

func (h *Handler) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	did, sc, err := h.resolveRequest(r, scope.IntentWrite)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var patch service.UpdateServicePatch
	if !h.decode(w, r, &patch) {
		return
	}

	updated, err := h.lifecycle.UpdateService(ctx, sc, did, pathParam(r, "serviceID"), patch)
	if err != nil {
		h.logFailure(ctx, "update service failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	did, sc, err := h.resolveRequest(r, scope.IntentWrite)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if _, err := h.lifecycle.DeleteService(ctx, sc, did, pathParam(r, "serviceID")); err != nil {
		h.logFailure(ctx, "delete service failed", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type activateServicesRequest struct {
	ServiceIDs []string `json:"serviceIds" validate:"required,min=1,dive,required"`
}

type activationResponse struct {
	Profile             models.Profile `json:"profile"`
	ActivatedServiceIDs []string       `json:"activatedServiceIds"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`

	AuthClients []service.ProvisionedAuthClient `json:"authClients,omitempty"`
}

func (h *Handler) handleActivateServices(w http.ResponseWriter, r *http.Request) {
	h.handleActivation(w, r, h.lifecycle.ActivateServices)
}

func (h *Handler) handleDeactivateServices(w http.ResponseWriter, r *http.Request) {
	h.handleActivation(w, r, h.lifecycle.DeactivateServices)
}

func (h *Handler) handleActivation(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, sc scope.Scope, did domain.DID, serviceIDs []string) (*service.ActivationResult, error),
) {
	ctx := r.Context()
	did, sc, err := h.resolveRequest(r, scope.IntentWrite)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req activateServicesRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := op(ctx, sc, did, req.ServiceIDs)
	if err != nil {
		h.logFailure(ctx, "service activation change failed", err)
		shared.WriteError(w, err)
		return
	}
	if !result.Changed {
		// idempotent no-op renders an empty object
		shared.WriteJSON(w, http.StatusOK, struct{}{})
		return
	}
	shared.WriteJSON(w, http.StatusOK, activationResponse{
		Profile:             result.Profile,
		ActivatedServiceIDs: result.ActivatedServiceIDs,
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
		AuthClients:         result.AuthClients,
	})
}

// decode unmarshals and validates the request body, writing the error
// response itself when either step fails.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
		return false
	}
	return true
}

// pathParam returns an unescaped chi route parameter. Service ids arrive
// percent-encoded ("%23svc-1") since they carry a fragment marker.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return
	}
	h.logger.WarnContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
}
