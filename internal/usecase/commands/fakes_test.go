//go:build unit

package commands_test

import (
	"context"
	"time"

	"dealerbid/internal/domain/bidrequest"
	"dealerbid/internal/domain/offer"
	"dealerbid/internal/domain/token"
	"dealerbid/internal/infra"
	"dealerbid/internal/infra/db"
	"dealerbid/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeJob is a captured outbox entry.
type fakeJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

// fakeState is an in-memory stand-in for the database. Transactions snapshot
// and restore it so rollback behavior matches the real unit of work.
type fakeState struct {
	requests map[uuid.UUID]*shared.BidRequestSnapshot
	tokens   map[string]*shared.TokenSnapshot
	offers   map[uuid.UUID]*shared.OfferSnapshot
	buyers   map[uuid.UUID]*shared.BuyerContact
	creators map[uuid.UUID]*shared.CreatorContact
	jobs     []fakeJob

	lastLogins []uuid.UUID
}

func newFakeState() *fakeState {
	return &fakeState{
		requests: make(map[uuid.UUID]*shared.BidRequestSnapshot),
		tokens:   make(map[string]*shared.TokenSnapshot),
		offers:   make(map[uuid.UUID]*shared.OfferSnapshot),
		buyers:   make(map[uuid.UUID]*shared.BuyerContact),
		creators: make(map[uuid.UUID]*shared.CreatorContact),
	}
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for k, v := range s.requests {
		cp := *v
		c.requests[k] = &cp
	}
	for k, v := range s.tokens {
		cp := *v
		c.tokens[k] = &cp
	}
	for k, v := range s.offers {
		cp := *v
		c.offers[k] = &cp
	}
	for k, v := range s.buyers {
		cp := *v
		c.buyers[k] = &cp
	}
	for k, v := range s.creators {
		cp := *v
		c.creators[k] = &cp
	}
	c.jobs = append([]fakeJob(nil), s.jobs...)
	c.lastLogins = append([]uuid.UUID(nil), s.lastLogins...)
	return c
}

func (s *fakeState) restore(from *fakeState) {
	s.requests = from.requests
	s.tokens = from.tokens
	s.offers = from.offers
	s.buyers = from.buyers
	s.creators = from.creators
	s.jobs = from.jobs
	s.lastLogins = from.lastLogins
}

func (s *fakeState) addRequest(id uuid.UUID, summary string, createdBy uuid.UUID) {
	s.requests[id] = &shared.BidRequestSnapshot{
		ID:             id,
		VehicleSummary: summary,
		Status:         string(bidrequest.StatusPending),
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}
}

func (s *fakeState) addToken(value string, bidRequestID, buyerID uuid.UUID, expiresAt time.Time) {
	s.tokens[value] = &shared.TokenSnapshot{
		Value:        value,
		BidRequestID: bidRequestID,
		BuyerID:      buyerID,
		ExpiresAt:    expiresAt,
	}
}

func (s *fakeState) addBuyer(id uuid.UUID, email, phone, dealership string) {
	s.buyers[id] = &shared.BuyerContact{UserID: id, Email: email, Phone: phone, Dealership: dealership}
}

func (s *fakeState) addCreator(bidRequestID, userID uuid.UUID, email string) {
	s.creators[bidRequestID] = &shared.CreatorContact{UserID: userID, Email: email}
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type fakeUoW struct {
	state *fakeState
}

func newFakeUoW(state *fakeState) *fakeUoW {
	return &fakeUoW{state: state}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	snapshot := u.state.clone()
	if err := fn(ctx, &fakeTx{state: u.state}); err != nil {
		u.state.restore(snapshot)
		return err
	}
	return nil
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{state: u.state}
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) BidRequests() shared.BidRequestRepository { return &fakeBidRequestRepo{t.state} }
func (t *fakeTx) Tokens() shared.TokenRepository           { return &fakeTokenRepo{t.state} }
func (t *fakeTx) Offers() shared.OfferRepository           { return &fakeOfferRepo{t.state} }
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{t.state}
}
func (t *fakeTx) Users() shared.UserRepository { return &fakeUserRepo{t.state} }
func (t *fakeTx) Reads() shared.CommandReads   { return &fakeReads{t.state} }
func (t *fakeTx) DB() db.DBTX                  { return nil }

type fakeReads struct {
	state *fakeState
}

func (r *fakeReads) BidRequestByID(_ context.Context, id uuid.UUID) (*shared.BidRequestSnapshot, error) {
	if snap, ok := r.state.requests[id]; ok {
		cp := *snap
		return &cp, nil
	}
	return nil, notFoundErr("bid request not found")
}

func (r *fakeReads) TokenByValue(_ context.Context, value string) (*shared.TokenSnapshot, error) {
	if snap, ok := r.state.tokens[value]; ok {
		cp := *snap
		return &cp, nil
	}
	return nil, notFoundErr("token not found")
}

func (r *fakeReads) OfferByID(_ context.Context, id uuid.UUID) (*shared.OfferSnapshot, error) {
	if snap, ok := r.state.offers[id]; ok {
		cp := *snap
		return &cp, nil
	}
	return nil, notFoundErr("offer not found")
}

func (r *fakeReads) OfferByRequestAndBuyer(_ context.Context, bidRequestID, buyerID uuid.UUID) (*shared.OfferSnapshot, error) {
	for _, snap := range r.state.offers {
		if snap.BidRequestID == bidRequestID && snap.BuyerID == buyerID {
			cp := *snap
			return &cp, nil
		}
	}
	return nil, notFoundErr("offer not found")
}

func (r *fakeReads) CreatorContactByRequestID(_ context.Context, bidRequestID uuid.UUID) (*shared.CreatorContact, error) {
	if c, ok := r.state.creators[bidRequestID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, notFoundErr("creator not found")
}

func (r *fakeReads) BuyerContactByID(_ context.Context, buyerID uuid.UUID) (*shared.BuyerContact, error) {
	if c, ok := r.state.buyers[buyerID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, notFoundErr("buyer not found")
}

type fakeBidRequestRepo struct {
	state *fakeState
}

func (r *fakeBidRequestRepo) Create(_ context.Context, _ db.DBTX, req *bidrequest.BidRequest) (uuid.UUID, error) {
	id := uuid.New()
	r.state.requests[id] = &shared.BidRequestSnapshot{
		ID:             id,
		VehicleSummary: req.Vehicle().Summary(),
		Status:         string(req.Status()),
		CreatedBy:      req.CreatedBy(),
		CreatedAt:      time.Now(),
	}
	return id, nil
}

func (r *fakeBidRequestRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status bidrequest.Status) error {
	snap, ok := r.state.requests[id]
	if !ok {
		return notFoundErr("bid request not found")
	}
	snap.Status = string(status)
	return nil
}

type fakeTokenRepo struct {
	state *fakeState
}

func (r *fakeTokenRepo) Create(_ context.Context, _ db.DBTX, t *token.SubmissionToken) error {
	r.state.tokens[t.Value()] = &shared.TokenSnapshot{
		Value:        t.Value(),
		BidRequestID: t.BidRequestID(),
		BuyerID:      t.BuyerID(),
		ExpiresAt:    t.ExpiresAt(),
	}
	return nil
}

func (r *fakeTokenRepo) Consume(_ context.Context, _ db.DBTX, value string, now time.Time) (*shared.TokenSnapshot, error) {
	snap, ok := r.state.tokens[value]
	if !ok || snap.IsUsed || !snap.ExpiresAt.After(now) {
		return nil, notFoundErr("token not consumable")
	}
	snap.IsUsed = true
	usedAt := now
	snap.UsedAt = &usedAt
	cp := *snap
	return &cp, nil
}

type fakeOfferRepo struct {
	state *fakeState
}

func (r *fakeOfferRepo) Create(_ context.Context, _ db.DBTX, o *offer.Offer) (uuid.UUID, error) {
	if _, ok := r.state.requests[o.BidRequestID()]; !ok {
		return uuid.Nil, infra.WrapRepoErr("bid request missing", nil, infra.KindForeignKeyViolated)
	}
	for _, existing := range r.state.offers {
		if existing.BidRequestID == o.BidRequestID() && existing.BuyerID == o.BuyerID() {
			return uuid.Nil, infra.WrapRepoErr("duplicate offer", nil, infra.KindDuplicateKey)
		}
	}

	id := uuid.New()
	r.state.offers[id] = &shared.OfferSnapshot{
		ID:           id,
		BidRequestID: o.BidRequestID(),
		BuyerID:      o.BuyerID(),
		AmountCents:  o.Amount().Cents(),
		Status:       string(o.Status()),
		CreatedAt:    time.Now(),
	}
	return id, nil
}

func (r *fakeOfferRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status offer.Status) error {
	snap, ok := r.state.offers[id]
	if !ok {
		return notFoundErr("offer not found")
	}
	snap.Status = string(status)
	return nil
}

func (r *fakeOfferRepo) DeclinePendingSiblings(_ context.Context, _ db.DBTX, bidRequestID, acceptedOfferID uuid.UUID) error {
	for id, snap := range r.state.offers {
		if snap.BidRequestID == bidRequestID && id != acceptedOfferID && snap.Status == string(offer.StatusPending) {
			snap.Status = string(offer.StatusDeclined)
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	state *fakeState
}

func (r *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.state.jobs = append(r.state.jobs, fakeJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type fakeUserRepo struct {
	state *fakeState
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ db.DBTX, userID uuid.UUID) error {
	r.state.lastLogins = append(r.state.lastLogins, userID)
	return nil
}
