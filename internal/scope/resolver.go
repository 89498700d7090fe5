package scope

import (
	"context"
	"errors"
	"log/slog"

	groupmodels "registrar/internal/group/models"
	"registrar/internal/platform/errsink"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

// GroupStore is the slice of the group store the resolver needs.
type GroupStore interface {
	FindByDID(ctx context.Context, did domain.DID) (*groupmodels.Group, error)
	FindByGroupID(ctx context.Context, groupID string) (*groupmodels.Group, error)
	AddClientAdmin(ctx context.Context, groupID, userID string) error
}

// Resolver decides which group and DID set a caller may act within.
type Resolver struct {
	groups GroupStore
	logger *slog.Logger
	sink   errsink.Sink
}

func NewResolver(groups GroupStore, logger *slog.Logger, sink errsink.Sink) *Resolver {
	return &Resolver{groups: groups, logger: logger, sink: sink}
}

// Intent distinguishes creation-style writes, where a caller without a
// target acts on a not-yet-existing organization.
type Intent int

const (
	IntentRead Intent = iota
	IntentWrite
	IntentCreate
)

// ResolveOrganizationScope authorizes caller against targetDID (empty for
// collection-level requests) and returns the scope the request may act in.
//
// Admin capability short-circuits to an unrestricted scope. Group mismatches
// resolve to NotFound rather than Forbidden so an unauthorized caller cannot
// probe which DIDs exist.
func (r *Resolver) ResolveOrganizationScope(
	ctx context.Context,
	caller requestcontext.CallerIdentity,
	targetDID domain.DID,
	intent Intent,
) (Scope, error) {
	if caller.HasCapability(domain.CapabilityOrganizationsAdmin) {
		return Scope{GroupID: caller.GroupID, UserID: caller.Subject, Unrestricted: true}, nil
	}

	required := domain.CapabilityOrganizationsRead
	if intent != IntentRead {
		required = domain.CapabilityOrganizationsWrite
	}
	if !caller.HasCapability(required) {
		return Scope{}, dErrors.NewWithReason(dErrors.CodeForbidden,
			dErrors.ReasonMissingScopes, "caller lacks "+string(required))
	}

	if targetDID != "" {
		return r.resolveTargeted(ctx, caller, targetDID)
	}

	if caller.GroupID != "" {
		return r.resolveOwnGroup(ctx, caller, intent)
	}

	// No target and no group claim: the caller may only be creating a brand
	// new organization.
	s := NewOrganizationScope()
	s.UserID = caller.Subject
	return s, nil
}

func (r *Resolver) resolveTargeted(
	ctx context.Context,
	caller requestcontext.CallerIdentity,
	targetDID domain.DID,
) (Scope, error) {
	group, err := r.groups.FindByDID(ctx, targetDID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Scope{}, dErrors.New(dErrors.CodeNotFound,
				"no group owns "+targetDID.String())
		}
		return Scope{}, dErrors.Wrap(err, dErrors.CodeInternal, "group lookup failed")
	}

	if caller.GroupID != group.GroupID {
		return Scope{}, dErrors.NewWithReason(dErrors.CodeNotFound,
			dErrors.ReasonCannotAccessGroup, "cannot access group of another organization")
	}

	r.registerClientAdmin(ctx, group, caller.Subject)

	return Scope{
		DIDs:    append([]domain.DID(nil), group.DIDs...),
		GroupID: group.GroupID,
		UserID:  caller.Subject,
	}, nil
}

func (r *Resolver) resolveOwnGroup(
	ctx context.Context,
	caller requestcontext.CallerIdentity,
	intent Intent,
) (Scope, error) {
	group, err := r.groups.FindByGroupID(ctx, caller.GroupID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Scope{}, dErrors.New(dErrors.CodeNotFound,
				"group "+caller.GroupID+" not found")
		}
		return Scope{}, dErrors.Wrap(err, dErrors.CodeInternal, "group lookup failed")
	}

	if intent == IntentCreate {
		return Scope{
			DIDs:    []domain.DID{domain.DID(Sentinel)},
			GroupID: group.GroupID,
			UserID:  caller.Subject,
		}, nil
	}
	return Scope{
		DIDs:    append([]domain.DID(nil), group.DIDs...),
		GroupID: group.GroupID,
		UserID:  caller.Subject,
	}, nil
}

// registerClientAdmin links the caller to the group on first touch. Failure
// must never block the primary request.
func (r *Resolver) registerClientAdmin(ctx context.Context, group *groupmodels.Group, userID string) {
	if userID == "" || group.HasClientAdmin(userID) {
		return
	}
	if err := r.groups.AddClientAdmin(ctx, group.GroupID, userID); err != nil {
		r.logger.WarnContext(ctx, "client admin registration failed",
			"group_id", group.GroupID, "user_id", userID, "error", err)
		r.sink.Report(ctx, err, "op", "register_client_admin", "group_id", group.GroupID)
	}
}

// ResolveUserScope is the user-keyed variant. Targeting yourself always
// succeeds regardless of capability.
func (r *Resolver) ResolveUserScope(
	ctx context.Context,
	caller requestcontext.CallerIdentity,
	targetUserID string,
	intent Intent,
) (Scope, error) {
	if targetUserID != "" && targetUserID == caller.Subject {
		return Scope{GroupID: caller.GroupID, UserID: caller.Subject}, nil
	}

	if caller.HasCapability(domain.CapabilityUsersAdmin) {
		return Scope{GroupID: caller.GroupID, UserID: caller.Subject, Unrestricted: true}, nil
	}

	required := domain.CapabilityUsersRead
	if intent != IntentRead {
		required = domain.CapabilityUsersWrite
	}
	if !caller.HasCapability(required) {
		return Scope{}, dErrors.NewWithReason(dErrors.CodeForbidden,
			dErrors.ReasonMissingScopes, "caller lacks "+string(required))
	}

	if caller.GroupID == "" {
		return Scope{GroupID: Sentinel, UserID: caller.Subject}, nil
	}

	group, err := r.groups.FindByGroupID(ctx, caller.GroupID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Scope{}, dErrors.New(dErrors.CodeNotFound,
				"group "+caller.GroupID+" not found")
		}
		return Scope{}, dErrors.Wrap(err, dErrors.CodeInternal, "group lookup failed")
	}
	return Scope{
		DIDs:    append([]domain.DID(nil), group.DIDs...),
		GroupID: group.GroupID,
		UserID:  caller.Subject,
	}, nil
}
