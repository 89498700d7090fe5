package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks OrganizationStore,ConsentStore,InvitationStore,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"registrar/internal/audit"
	"registrar/internal/authclient"
	"registrar/internal/chain"
	"registrar/internal/consent"
	"registrar/internal/didresolve"
	groupmodels "registrar/internal/group/models"
	"registrar/internal/invitation"
	"registrar/internal/monitor"
	"registrar/internal/notify"
	"registrar/internal/org/metrics"
	"registrar/internal/org/models"
	"registrar/internal/platform/errsink"
	"registrar/internal/scope"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// OrganizationStore is the slice of the organization store the lifecycle
// manager needs. Execute runs validate and mutate atomically against the
// stored record; a validation error leaves the record untouched.
type OrganizationStore interface {
	FindByDID(ctx context.Context, did domain.DID) (*models.Organization, error)
	FindByServiceRef(ctx context.Context, ref domain.ServiceRef) (*models.Organization, error)
	Execute(ctx context.Context, did domain.DID,
		validate func(org *models.Organization) error,
		mutate func(org *models.Organization)) (*models.Organization, error)
}

// GroupStore provides notification recipients for an organization.
type GroupStore interface {
	FindByDID(ctx context.Context, did domain.DID) (*groupmodels.Group, error)
}

// ConsentStore records append-only consent entries.
type ConsentStore interface {
	Append(ctx context.Context, c consent.Consent) error
	LatestVersion(ctx context.Context, did domain.DID, serviceID string) (int, error)
}

// InvitationStore looks up and consumes invitations.
type InvitationStore interface {
	FindByCode(ctx context.Context, code string) (*invitation.Invitation, error)
	MarkAccepted(ctx context.Context, invitationID string, acceptedBy domain.DID, at time.Time) error
}

// CredentialTypeRegistry validates declared credential types.
type CredentialTypeRegistry interface {
	Unknown(ctx context.Context, types []string) []string
}

// AuditPublisher captures lifecycle audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the organization service lifecycle manager. The organization's
// service list is the source of truth; auth clients, consents, monitors,
// emails and chain scopes are reconciled after the organization write, each
// as an explicitly recorded best-effort side effect.
type Service struct {
	orgs        OrganizationStore
	groups      GroupStore
	consents    ConsentStore
	invitations InvitationStore
	credTypes   CredentialTypeRegistry
	resolver    didresolve.Resolver

	provisioner authclient.Provisioner
	dispatcher  notify.Dispatcher
	monitors    monitor.Client
	chain       chain.Updater

	chainAudience string

	logger  *slog.Logger
	sink    errsink.Sink
	auditor AuditPublisher
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithErrorSink(sink errsink.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditor = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithProvisioner(p authclient.Provisioner) Option {
	return func(s *Service) { s.provisioner = p }
}

func WithDispatcher(d notify.Dispatcher) Option {
	return func(s *Service) { s.dispatcher = d }
}

func WithMonitorClient(c monitor.Client) Option {
	return func(s *Service) { s.monitors = c }
}

func WithChainUpdater(u chain.Updater, audience string) Option {
	return func(s *Service) {
		s.chain = u
		s.chainAudience = audience
	}
}

// New constructs the lifecycle manager. Collaborators not supplied through
// options default to in-process mocks, which keeps local development and
// tests free of external dependencies.
func New(
	orgs OrganizationStore,
	groups GroupStore,
	consents ConsentStore,
	invitations InvitationStore,
	credTypes CredentialTypeRegistry,
	resolver didresolve.Resolver,
	opts ...Option,
) *Service {
	s := &Service{
		orgs:        orgs,
		groups:      groups,
		consents:    consents,
		invitations: invitations,
		credTypes:   credTypes,
		resolver:    resolver,
		provisioner: authclient.NewMock(),
		dispatcher:  notify.NewRecorder(),
		monitors:    monitor.NewMock(),
		chain:       chain.NewMock(),
		logger:      slog.Default(),
		tracer:      otel.Tracer("registrar/org/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sink == nil {
		s.sink = errsink.NewSlogSink(s.logger)
	}
	return s
}

// loadOrganization fetches the organization and, for non-custodied DIDs,
// resolves the live DID document as well. Resolution failure is a
// BadRequest, not a NotFound: the organization record exists, its document
// does not resolve.
func (s *Service) loadOrganization(ctx context.Context, did domain.DID) (*models.Organization, *domain.DIDDocument, error) {
	org, err := s.orgs.FindByDID(ctx, did)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "organization "+did.String()+" not found")
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organization")
	}

	if !org.DIDNotCustodied {
		return org, nil, nil
	}

	doc, err := s.resolver.Resolve(ctx, did)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeBadRequest) {
			return nil, nil, err
		}
		return nil, nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonDIDResolutionFailed, "could not resolve "+did.String())
	}
	return org, doc, nil
}

// translateStoreErr maps store sentinels leaking out of Execute into domain
// errors. Validation callbacks return domain errors already; those pass
// through untouched. A NotFound here means the organization vanished between
// loadOrganization and the write.
func translateStoreErr(err error, did domain.DID) error {
	var de *dErrors.DomainError
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "organization "+did.String()+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "organization update failed")
}

// requireScope maps an out-of-scope DID to NotFound so callers cannot probe
// which organizations exist.
func requireScope(sc scope.Scope, did domain.DID) error {
	if sc.Covers(did) {
		return nil
	}
	return dErrors.NewWithReason(dErrors.CodeNotFound,
		dErrors.ReasonCannotAccessGroup, "cannot access group of another organization")
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed",
			"action", event.Action, "organization", event.OrganizationID.String(), "error", err)
	}
}
