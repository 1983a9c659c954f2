package usecase

import (
	"context"
	"sync"
	"time"

	"prompt-template-store/internal/domain"
	"prompt-template-store/internal/domain/model"
	"prompt-template-store/internal/domain/ports/adapter"
	"prompt-template-store/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// --- payment repository ---

type mockPaymentRepo struct {
	mu      sync.Mutex
	records map[string]*model.PaymentRecord // keyed by session id
	saveErr error
	findErr error
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{records: make(map[string]*model.PaymentRecord)}
}

func (m *mockPaymentRepo) Save(ctx context.Context, tx repository.Tx, rec *model.PaymentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *rec
	m.records[rec.SessionID] = &cp
	return nil
}

func (m *mockPaymentRepo) FindBySessionID(ctx context.Context, tx repository.Tx, sessionID string) (*model.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	rec, ok := m.records[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockPaymentRepo) FindByPaymentIntentID(ctx context.Context, tx repository.Tx, intentID string) (*model.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, rec := range m.records {
		if rec.PaymentIntentID == intentID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPaymentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.PaymentRecord
	for _, rec := range m.records {
		if rec.UserID == userID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockPaymentRepo) UpdateStatusIf(ctx context.Context, tx repository.Tx, sessionID string, status model.PaymentStatus, from []model.PaymentStatus, refundedAt *time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[sessionID]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if rec.Status == f {
			rec.Status = status
			rec.UpdatedAt = time.Now()
			if refundedAt != nil {
				rec.RefundedAt = refundedAt
			}
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPaymentRepo) SetPaymentIntentID(ctx context.Context, tx repository.Tx, sessionID, intentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[sessionID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.PaymentIntentID = intentID
	return nil
}

func (m *mockPaymentRepo) get(sessionID string) *model.PaymentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[sessionID]
	if !ok {
		return nil
	}
	cp := *rec
	return &cp
}

// --- webhook event repository ---

type mockEventRepo struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{seen: make(map[string]bool)}
}

func (m *mockEventRepo) Record(ctx context.Context, tx repository.Tx, ev *model.WebhookEvent) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	key := ev.Provider + ":" + ev.EventID
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

// --- template grant repository ---

type mockGrantRepo struct {
	mu     sync.Mutex
	grants map[string]map[string]*model.TemplateGrant // userID -> templateID -> grant
	err    error
}

func newMockGrantRepo() *mockGrantRepo {
	return &mockGrantRepo{grants: make(map[string]map[string]*model.TemplateGrant)}
}

func (m *mockGrantRepo) Grant(ctx context.Context, tx repository.Tx, g *model.TemplateGrant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.grants[g.UserID] == nil {
		m.grants[g.UserID] = make(map[string]*model.TemplateGrant)
	}
	if _, ok := m.grants[g.UserID][g.TemplateID]; ok {
		return nil
	}
	cp := *g
	m.grants[g.UserID][g.TemplateID] = &cp
	return nil
}

func (m *mockGrantRepo) Revoke(ctx context.Context, tx repository.Tx, userID, templateID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.grants[userID], templateID)
	return nil
}

func (m *mockGrantRepo) Exists(ctx context.Context, tx repository.Tx, userID, templateID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.grants[userID][templateID]
	return ok, nil
}

func (m *mockGrantRepo) ListTemplateIDs(ctx context.Context, tx repository.Tx, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []string
	for id := range m.grants[userID] {
		out = append(out, id)
	}
	return out, nil
}

func (m *mockGrantRepo) count(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.grants[userID])
}

// --- subscription repository ---

type mockSubRepo struct {
	mu   sync.Mutex
	subs map[string]*model.FullAccessSubscription
	err  error
}

func newMockSubRepo() *mockSubRepo {
	return &mockSubRepo{subs: make(map[string]*model.FullAccessSubscription)}
}

func (m *mockSubRepo) Upsert(ctx context.Context, tx repository.Tx, sub *model.FullAccessSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cp := *sub
	if prev, ok := m.subs[sub.UserID]; ok {
		cp.CreatedAt = prev.CreatedAt
	}
	m.subs[sub.UserID] = &cp
	return nil
}

func (m *mockSubRepo) Cancel(ctx context.Context, tx repository.Tx, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	sub, ok := m.subs[userID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	sub.Status = model.SubscriptionStatusCancelled
	sub.CancelledAt = &now
	sub.UpdatedAt = now
	return nil
}

func (m *mockSubRepo) FindByUser(ctx context.Context, tx repository.Tx, userID string) (*model.FullAccessSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	sub, ok := m.subs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (m *mockSubRepo) get(userID string) *model.FullAccessSubscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subs[userID]
	if !ok {
		return nil
	}
	cp := *sub
	return &cp
}

// --- transaction manager ---

// mockTxManager just runs the function; the mocks above are not
// transactional.
type mockTxManager struct {
	err error
}

func (m *mockTxManager) WithTx(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx, nil)
}

// --- checkout gateway ---

type mockGateway struct {
	mu       sync.Mutex
	sessions []adapter.CheckoutSessionRequest
	nextID   string
	err      error
}

func (m *mockGateway) Name() string { return "mock" }

func (m *mockGateway) CreateSession(ctx context.Context, req adapter.CheckoutSessionRequest) (*adapter.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.sessions = append(m.sessions, req)
	id := m.nextID
	if id == "" {
		id = "cs_test_1"
	}
	return &adapter.CheckoutSession{
		ID:       id,
		URL:      "https://checkout.example.com/" + id,
		Amount:   req.Amount,
		Currency: req.Currency,
	}, nil
}

// --- lock state cache ---

type mockLockCache struct {
	mu   sync.Mutex
	data map[string]map[string]bool
	gets int
	hits int
	dels int
}

func newMockLockCache() *mockLockCache {
	return &mockLockCache{data: make(map[string]map[string]bool)}
}

func (m *mockLockCache) Get(ctx context.Context, userID string) (map[string]bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	state, ok := m.data[userID]
	if ok {
		m.hits++
	}
	return state, ok
}

func (m *mockLockCache) Set(ctx context.Context, userID string, state map[string]bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[userID] = state
}

func (m *mockLockCache) Del(ctx context.Context, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dels++
	delete(m.data, userID)
}

// --- lock state listener ---

type lockChange struct {
	userID     string
	templateID string
	unlocked   bool
}

type mockListener struct {
	mu      sync.Mutex
	changes []lockChange
}

func (m *mockListener) LockStateChanged(userID, templateID string, unlocked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changes = append(m.changes, lockChange{userID, templateID, unlocked})
}

func (m *mockListener) changesFor(templateID string) []lockChange {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []lockChange
	for _, c := range m.changes {
		if c.templateID == templateID {
			out = append(out, c)
		}
	}
	return out
}
