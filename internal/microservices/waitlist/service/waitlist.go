package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"restaurant-floor/internal/common/apperr"
	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/common/telemetry"
	"restaurant-floor/internal/common/validate"
	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/domain"
	"restaurant-floor/internal/microservices/waitlist/repository"
)

type WaitlistServiceInterface interface {
	RegisterParty(ctx context.Context, req domain.RegisterPartyRequest) (domain.WaitListEntry, error)
	ListQueue(ctx context.Context) ([]domain.WaitListEntry, error)
	SeatParty(ctx context.Context, waitID string) (domain.WaitListEntry, error)
	Now() time.Time
}

type WaitlistService struct {
	db  repository.WaitlistRepositoryInterface
	lg  *logger.Logger
	now func() time.Time
}

func NewWaitlistService(db repository.WaitlistRepositoryInterface, lg *logger.Logger, now func() time.Time) *WaitlistService {
	if now == nil {
		now = time.Now
	}
	return &WaitlistService{db: db, lg: lg, now: now}
}

func (s *WaitlistService) Now() time.Time { return s.now().UTC() }

func (s *WaitlistService) RegisterParty(ctx context.Context, req domain.RegisterPartyRequest) (e domain.WaitListEntry, err error) {
	const op = "waitlist.register"
	ctx, span := telemetry.Start(ctx, op)
	defer func() { telemetry.End(span, err) }()

	name := strings.TrimSpace(req.Name)
	if err := validate.RequireText(op, "name", name); err != nil {
		return domain.WaitListEntry{}, err
	}
	partySize, err := validate.ParseCount(op, "partySize", req.PartySize.Text, req.PartySize.Present)
	if err != nil {
		return domain.WaitListEntry{}, err
	}
	var comment *string
	if req.Comment != nil && strings.TrimSpace(*req.Comment) != "" {
		c := strings.TrimSpace(*req.Comment)
		comment = &c
	}

	e, err = s.db.Insert(ctx, name, partySize, comment, s.Now())
	if err != nil {
		return domain.WaitListEntry{}, apperr.Internal(op, err)
	}
	span.SetAttributes(attribute.Int64("wait_id", e.WaitID))
	s.lg.WithContext(ctx).Info("party_registered", map[string]any{"wait_id": e.WaitID, "party_size": e.PartySize})
	return e, nil
}

func (s *WaitlistService) ListQueue(ctx context.Context) (out []domain.WaitListEntry, err error) {
	const op = "waitlist.list"
	ctx, span := telemetry.Start(ctx, op)
	defer func() { telemetry.End(span, err) }()

	out, err = s.db.List(ctx)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	return out, nil
}

// SeatParty marks the entry seated. Seating an already seated party is a
// no-op that returns the stored entry.
func (s *WaitlistService) SeatParty(ctx context.Context, waitID string) (e domain.WaitListEntry, err error) {
	const op = "waitlist.seat"
	ctx, span := telemetry.Start(ctx, op)
	defer func() { telemetry.End(span, err) }()

	id, err := validate.ParseID(op, "waitId", waitID)
	if err != nil {
		return domain.WaitListEntry{}, err
	}
	span.SetAttributes(attribute.Int64("wait_id", id))

	e, err = s.db.MarkSeated(ctx, id, s.Now())
	if database.IsNoRows(err) {
		return domain.WaitListEntry{}, apperr.NotFound(op, "waitId is invalid: number not in DB")
	}
	if err != nil {
		return domain.WaitListEntry{}, apperr.Internal(op, err)
	}
	s.lg.WithContext(ctx).Info("party_seated", map[string]any{"wait_id": e.WaitID})
	return e, nil
}
