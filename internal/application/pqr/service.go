package pqr

import (
	"context"

	"github.com/armonia/backend/internal/domain/audit"
	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/identity"
	"github.com/armonia/backend/internal/domain/pqr"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeatureGate answers whether a complex currently has access to a feature
type FeatureGate interface {
	HasAccess(ctx context.Context, tenantID uuid.UUID, key complexes.FeatureKey) (bool, error)
}

// Service orchestrates the PQR ticket lifecycle: creation, assignment,
// status transitions, and the comment thread.
type Service struct {
	ticketRepo   pqr.TicketRepository
	commentRepo  pqr.CommentRepository
	complexRepo  complexes.ComplexRepository
	userRepo     identity.UserRepository
	activityRepo audit.Repository
	features     FeatureGate
	logger       *zap.Logger
}

// NewService creates a new PQR Service
func NewService(
	ticketRepo pqr.TicketRepository,
	commentRepo pqr.CommentRepository,
	complexRepo complexes.ComplexRepository,
	userRepo identity.UserRepository,
	activityRepo audit.Repository,
	features FeatureGate,
	logger *zap.Logger,
) *Service {
	return &Service{
		ticketRepo:   ticketRepo,
		commentRepo:  commentRepo,
		complexRepo:  complexRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		features:     features,
		logger:       logger,
	}
}

// CreateTicket opens a new ticket reported by the calling user
func (s *Service) CreateTicket(ctx context.Context, tenantID, reporterID uuid.UUID, req CreateTicketRequest) (*TicketResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "PQRService", "CreateTicket")
	defer span.End()
	telemetry.SetAttributes(span, "tenant.id", tenantID.String())

	reporter, err := s.userRepo.FindByID(ctx, tenantID, reporterID)
	if err != nil {
		return nil, err
	}

	ticket, err := pqr.NewTicket(tenantID, req.Title, req.Description,
		pqr.TicketType(req.Type), pqr.TicketPriority(req.Priority),
		reporter.ID, reporter.Name, string(reporter.Role))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	ticket.PropertyID = req.PropertyID
	if len(req.Tags) > 0 {
		ticket.SetTags(req.Tags)
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.recordActivity(ctx, tenantID, reporter, ticket.ID, "ticket.created", audit.Details{
		"number": ticket.Number,
		"type":   string(ticket.Type),
	})

	resp := ToTicketResponse(ticket)
	return &resp, nil
}

// ChangeStatus moves a ticket through its state machine. The transition
// table decides whether the caller may perform the move; every applied
// transition leaves an audit trail entry.
func (s *Service) ChangeStatus(ctx context.Context, tenantID, ticketID, actorID uuid.UUID, req ChangeStatusRequest) (*TicketResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "PQRService", "ChangeStatus")
	defer span.End()
	telemetry.SetAttributes(span, "ticket.id", ticketID.String(), "target.status", req.Status)

	ticket, err := s.ticketRepo.FindByID(ctx, tenantID, ticketID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, tenantID, actorID)
	if err != nil {
		return nil, err
	}
	complex, err := s.complexRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	actor := s.actorFor(ticket, user)
	target := pqr.TicketStatus(req.Status)
	input := pqr.TransitionInput{
		Reason:           req.Reason,
		Resolution:       req.Resolution,
		RootCause:        req.RootCause,
		PreventiveAction: req.PreventiveAction,
	}

	previous := ticket.Status
	if err := pqr.Decide(previous, target, actor, complex.PQRSettings, input); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	ticket.ApplyTransition(target, input)

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.recordActivity(ctx, tenantID, user, ticket.ID, "ticket.status_changed", audit.Details{
		"number": ticket.Number,
		"from":   string(previous),
		"to":     string(target),
		"reason": req.Reason,
	})

	resp := ToTicketResponse(ticket)
	return &resp, nil
}

// AssignTicket assigns a ticket to a staff member. Assignment is part of
// the advanced PQR workflow and is plan-gated.
func (s *Service) AssignTicket(ctx context.Context, tenantID, ticketID, actorID uuid.UUID, req AssignTicketRequest) (*TicketResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "PQRService", "AssignTicket")
	defer span.End()

	allowed, err := s.features.HasAccess(ctx, tenantID, complexes.FeatureAdvancedPQR)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !allowed {
		return nil, shared.ErrFeatureNotInPlan
	}

	actorUser, err := s.userRepo.FindByID(ctx, tenantID, actorID)
	if err != nil {
		return nil, err
	}
	if !actorUser.Role.IsAdmin() && !actorUser.Role.IsStaff() {
		return nil, shared.ErrForbidden
	}

	ticket, err := s.ticketRepo.FindByID(ctx, tenantID, ticketID)
	if err != nil {
		return nil, err
	}
	assignee, err := s.userRepo.FindByID(ctx, tenantID, req.AssigneeID)
	if err != nil {
		return nil, err
	}
	if !assignee.Role.IsAdmin() && !assignee.Role.IsStaff() {
		return nil, shared.NewDomainError("INVALID_ASSIGNEE", "Solo el personal puede ser asignado a incidentes")
	}

	if err := ticket.Assign(assignee.ID, assignee.Name); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.recordActivity(ctx, tenantID, actorUser, ticket.ID, "ticket.assigned", audit.Details{
		"number":   ticket.Number,
		"assignee": assignee.Name,
	})

	resp := ToTicketResponse(ticket)
	return &resp, nil
}

// AddComment appends a comment to a ticket's thread. Internal comments
// require a privileged author and the advanced PQR plan feature.
func (s *Service) AddComment(ctx context.Context, tenantID, ticketID, authorID uuid.UUID, req AddCommentRequest) (*CommentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "PQRService", "AddComment")
	defer span.End()

	ticket, err := s.ticketRepo.FindByID(ctx, tenantID, ticketID)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.FindByID(ctx, tenantID, authorID)
	if err != nil {
		return nil, err
	}

	privileged := author.Role.IsAdmin() || author.Role.IsStaff() || ticket.IsAssignedTo(author.ID)
	if req.Internal {
		allowed, gateErr := s.features.HasAccess(ctx, tenantID, complexes.FeatureAdvancedPQR)
		if gateErr != nil {
			return nil, gateErr
		}
		if !allowed {
			return nil, shared.ErrFeatureNotInPlan
		}
	}

	comment, err := pqr.NewComment(tenantID, ticketID, author.ID, author.Name, string(author.Role),
		req.Content, req.Internal, privileged)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.ParentID != nil {
		comment.SetParent(*req.ParentID)
	}

	if err := s.commentRepo.Save(ctx, comment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToCommentResponse(comment)
	return &resp, nil
}

// ListComments returns a ticket's thread filtered to what the viewer may
// read: internal comments stay hidden from residents.
func (s *Service) ListComments(ctx context.Context, tenantID, ticketID, viewerID uuid.UUID) ([]CommentResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, tenantID, ticketID)
	if err != nil {
		return nil, err
	}
	viewer, err := s.userRepo.FindByID(ctx, tenantID, viewerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByTicket(ctx, tenantID, ticketID)
	if err != nil {
		return nil, err
	}

	visible := pqr.FilterVisible(comments,
		viewer.Role.IsAdmin(), viewer.Role.IsStaff(), ticket.IsAssignedTo(viewer.ID))
	responses := make([]CommentResponse, len(visible))
	for i := range visible {
		responses[i] = ToCommentResponse(&visible[i])
	}
	return responses, nil
}

// GetTicket retrieves a ticket by ID
func (s *Service) GetTicket(ctx context.Context, tenantID, ticketID uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, tenantID, ticketID)
	if err != nil {
		return nil, err
	}
	resp := ToTicketResponse(ticket)
	return &resp, nil
}

// ListTickets retrieves tickets matching the filter. Residents only see
// their own tickets; staff see everything.
func (s *Service) ListTickets(ctx context.Context, tenantID, viewerID uuid.UUID, filter TicketListFilter) (*shared.Paginated[TicketResponse], error) {
	viewer, err := s.userRepo.FindByID(ctx, tenantID, viewerID)
	if err != nil {
		return nil, err
	}

	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		repoFilter.OrderBy = filter.SortBy
	}
	if filter.SortOrder != "" {
		repoFilter.OrderDir = filter.SortOrder
	}
	repoFilter.Search = filter.Search
	if filter.Status != "" {
		repoFilter.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		repoFilter.Filters["type"] = filter.Type
	}
	if filter.Priority != "" {
		repoFilter.Filters["priority"] = filter.Priority
	}

	staff := viewer.Role.IsAdmin() || viewer.Role.IsStaff()
	var tickets []pqr.Ticket
	switch {
	case filter.Assigned && staff:
		tickets, err = s.ticketRepo.FindByAssignee(ctx, tenantID, viewerID, repoFilter)
	case filter.Mine || !staff:
		tickets, err = s.ticketRepo.FindByReporter(ctx, tenantID, viewerID, repoFilter)
	default:
		tickets, err = s.ticketRepo.FindAll(ctx, tenantID, repoFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.ticketRepo.Count(ctx, tenantID, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]TicketResponse, len(tickets))
	for i := range tickets {
		responses[i] = ToTicketResponse(&tickets[i])
	}
	page := shared.NewPaginated(responses, total, repoFilter.Page, repoFilter.PageSize)
	return &page, nil
}

// AuditTrail returns the recorded transitions and actions for a ticket,
// newest first.
func (s *Service) AuditTrail(ctx context.Context, tenantID, ticketID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	return s.activityRepo.FindByEntity(ctx, tenantID, pqr.AggregateTypeTicket, ticketID, filter)
}

// actorFor resolves the caller's relationship to the ticket for the
// transition decision
func (s *Service) actorFor(ticket *pqr.Ticket, user *identity.User) pqr.Actor {
	return pqr.Actor{
		ID:         user.ID,
		Name:       user.Name,
		Role:       string(user.Role),
		IsAdmin:    user.Role.IsAdmin(),
		IsStaff:    user.Role.IsStaff(),
		IsOwner:    ticket.IsReportedBy(user.ID),
		IsAssigned: ticket.IsAssignedTo(user.ID),
	}
}

func (s *Service) recordActivity(ctx context.Context, tenantID uuid.UUID, user *identity.User, ticketID uuid.UUID, action string, details audit.Details) {
	entry, err := audit.NewActivityLog(tenantID, user.ID, user.Name, string(user.Role),
		pqr.AggregateTypeTicket, ticketID, action, details)
	if err != nil {
		s.logger.Warn("activity log entry rejected", zap.String("action", action), zap.Error(err))
		return
	}
	if err := s.activityRepo.Save(ctx, entry); err != nil {
		s.logger.Warn("activity log write failed", zap.String("action", action), zap.Error(err))
	}
}
