package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Assignments
// ---------------------------------------------------------------------------

type stubAssignmentRepo struct {
	mu             sync.Mutex
	rows           map[string]map[string]struct{}
	listErr        error
	upsertErr      error
	deleteErr      error
	reportInserted bool
	upsertCalls    int
}

func newStubAssignmentRepo() *stubAssignmentRepo {
	return &stubAssignmentRepo{rows: make(map[string]map[string]struct{})}
}

func (r *stubAssignmentRepo) seed(shiftID string, workerIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rows[shiftID] == nil {
		r.rows[shiftID] = make(map[string]struct{})
	}
	for _, id := range workerIDs {
		r.rows[shiftID][id] = struct{}{}
	}
}

func (r *stubAssignmentRepo) assignees(shiftID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.rows[shiftID]))
	for id := range r.rows[shiftID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (r *stubAssignmentRepo) ListAssignees(_ context.Context, shiftID string) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.assignees(shiftID), nil
}

func (r *stubAssignmentRepo) UpsertAssignments(_ context.Context, shiftID string, workerIDs []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertCalls++
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	if r.rows[shiftID] == nil {
		r.rows[shiftID] = make(map[string]struct{})
	}
	inserted := []string{}
	for _, id := range workerIDs {
		if _, ok := r.rows[shiftID][id]; ok {
			continue
		}
		r.rows[shiftID][id] = struct{}{}
		inserted = append(inserted, id)
	}
	if !r.reportInserted {
		return nil, nil
	}
	return inserted, nil
}

func (r *stubAssignmentRepo) DeleteAssignments(_ context.Context, shiftID string, workerIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for _, id := range workerIDs {
		delete(r.rows[shiftID], id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Profiles and shifts
// ---------------------------------------------------------------------------

type stubProfileRepo struct {
	mu        sync.Mutex
	profiles  map[string]domain.Profile
	findErr   error
	upsertErr error
	upserted  []domain.Profile
}

func newStubProfileRepo(profiles ...domain.Profile) *stubProfileRepo {
	r := &stubProfileRepo{profiles: make(map[string]domain.Profile)}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *stubProfileRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Profile
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrWorkerNotFound
	}
	return &p, nil
}

func (r *stubProfileRepo) Upsert(_ context.Context, p *domain.Profile) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = *p
	r.upserted = append(r.upserted, *p)
	return nil
}

type stubShiftRepo struct {
	shifts map[string]*domain.Shift
	err    error
}

func (r *stubShiftRepo) FindByID(_ context.Context, id string) (*domain.Shift, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.shifts[id]
	if !ok {
		return nil, domain.ErrShiftNotFound
	}
	clone := *s
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

type sentMessage struct {
	To, From, Body string
}

type stubTransport struct {
	mu       sync.Mutex
	failFor  map[string]error // keyed by phone
	panicFor string
	sent     []sentMessage
	attempts int
}

func (t *stubTransport) Send(_ context.Context, to, from, body string) (string, error) {
	t.mu.Lock()
	t.attempts++
	t.mu.Unlock()

	if to == t.panicFor && to != "" {
		panic("transport exploded")
	}
	if err, ok := t.failFor[to]; ok {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, sentMessage{To: to, From: from, Body: body})
	return "SM" + to, nil
}

// ---------------------------------------------------------------------------
// Identity provider
// ---------------------------------------------------------------------------

type stubIdentityProvider struct {
	mu        sync.Mutex
	byEmail   map[string]string
	findErr   error
	createErr error
	deleteErr error
	updateErr error
	inviteErr error
	resetErr  error

	created   []string
	deleted   []string
	updated   []string
	passwords map[string]string
	metadata  map[string]map[string]any
	invites   []string
	resets    []string
}

func newStubIdentityProvider() *stubIdentityProvider {
	return &stubIdentityProvider{
		byEmail:   make(map[string]string),
		passwords: make(map[string]string),
		metadata:  make(map[string]map[string]any),
	}
}

func (p *stubIdentityProvider) CreateIdentity(_ context.Context, email, password string, _ bool, metadata map[string]any) (string, error) {
	if p.createErr != nil {
		return "", p.createErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	id := "id-" + email
	p.byEmail[email] = id
	p.passwords[id] = password
	p.metadata[id] = metadata
	p.created = append(p.created, id)
	return id, nil
}

func (p *stubIdentityProvider) FindByEmail(_ context.Context, email string) (string, error) {
	if p.findErr != nil {
		return "", p.findErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.byEmail[email]
	if !ok {
		return "", domain.ErrIdentityNotFound
	}
	return id, nil
}

func (p *stubIdentityProvider) DeleteIdentity(_ context.Context, id string) error {
	if p.deleteErr != nil {
		return p.deleteErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for email, got := range p.byEmail {
		if got == id {
			delete(p.byEmail, email)
		}
	}
	p.deleted = append(p.deleted, id)
	return nil
}

func (p *stubIdentityProvider) UpdateCredential(_ context.Context, id, password string, metadata map[string]any) error {
	if p.updateErr != nil {
		return p.updateErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.passwords[id] = password
	p.metadata[id] = metadata
	p.updated = append(p.updated, id)
	return nil
}

func (p *stubIdentityProvider) SendInvitation(_ context.Context, email, _ string) error {
	if p.inviteErr != nil {
		return p.inviteErr
	}
	p.invites = append(p.invites, email)
	return nil
}

func (p *stubIdentityProvider) SendCredentialReset(_ context.Context, email, _ string) error {
	if p.resetErr != nil {
		return p.resetErr
	}
	p.resets = append(p.resets, email)
	return nil
}

// ---------------------------------------------------------------------------
// Change guard
// ---------------------------------------------------------------------------

// stubGuard keeps the last marked fingerprint per shift, like the Redis guard.
type stubGuard struct {
	seen     map[string]string
	checkErr error
	marked   []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{seen: make(map[string]string)}
}

func (g *stubGuard) IsDuplicate(_ context.Context, shiftID, fp string) (bool, error) {
	if g.checkErr != nil {
		return false, g.checkErr
	}
	last, ok := g.seen[shiftID]
	return ok && last == fp, nil
}

func (g *stubGuard) Mark(_ context.Context, shiftID, fp string) error {
	g.seen[shiftID] = fp
	g.marked = append(g.marked, shiftID)
	return nil
}

var (
	_ ports.AssignmentRepository = (*stubAssignmentRepo)(nil)
	_ ports.ProfileRepository    = (*stubProfileRepo)(nil)
	_ ports.ShiftRepository      = (*stubShiftRepo)(nil)
	_ ports.MessageTransport     = (*stubTransport)(nil)
	_ ports.IdentityProvider     = (*stubIdentityProvider)(nil)
	_ ports.ChangeGuard          = (*stubGuard)(nil)
)

var errBoom = errors.New("boom")
