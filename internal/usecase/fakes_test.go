package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/notify"
	"slot-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore is a shared in-memory backing store for the fake repositories.
// A single mutex serializes whole transactions, which matches the atomicity
// the real store provides via row locks.
type memStore struct {
	mu        sync.Mutex
	slots     map[uuid.UUID]*entity.Slot
	bookings  map[uuid.UUID]*entity.Booking
	keys      map[string]*entity.BookingKey
	waitlist  map[uuid.UUID]*entity.WaitlistEntry
	resources map[uuid.UUID]*entity.Resource
	services  map[uuid.UUID]*entity.Service

	failEarliest bool // forces the page-and-sort fallback path
}

func newMemStore() *memStore {
	return &memStore{
		slots:     make(map[uuid.UUID]*entity.Slot),
		bookings:  make(map[uuid.UUID]*entity.Booking),
		keys:      make(map[string]*entity.BookingKey),
		waitlist:  make(map[uuid.UUID]*entity.WaitlistEntry),
		resources: make(map[uuid.UUID]*entity.Resource),
		services:  make(map[uuid.UUID]*entity.Service),
	}
}

func (m *memStore) addSlot(capacity int, status entity.SlotStatus) *entity.Slot {
	slot := &entity.Slot{
		ResourceID: uuid.New(),
		ServiceID:  uuid.New(),
		StartAt:    time.Now().Add(24 * time.Hour),
		EndAt:      time.Now().Add(25 * time.Hour),
		Capacity:   capacity,
		Status:     status,
	}
	slot.ID = uuid.New()
	m.slots[slot.ID] = slot
	return slot
}

func (m *memStore) addResource(name string) *entity.Resource {
	res := &entity.Resource{ID: uuid.New(), Name: name}
	m.resources[res.ID] = res
	return res
}

func (m *memStore) addService(name string) *entity.Service {
	svc := &entity.Service{ID: uuid.New(), Name: name}
	m.services[svc.ID] = svc
	return svc
}

func (m *memStore) addWaitlistEntry(slotID uuid.UUID, userID string, createdAt time.Time) *entity.WaitlistEntry {
	entry := &entity.WaitlistEntry{SlotID: slotID, UserID: userID}
	entry.ID = uuid.New()
	entry.CreatedAt = createdAt
	m.waitlist[entry.ID] = entry
	return entry
}

// repos builds standalone repositories that take the store lock per call,
// the way pool-backed repositories get their own consistent snapshot.
func (m *memStore) repos() *repository.Repository {
	return m.buildRepos(true)
}

// txRepos builds repositories for use inside a fake transaction, where the
// caller already holds the store lock.
func (m *memStore) txRepos() *repository.Repository {
	return m.buildRepos(false)
}

func (m *memStore) buildRepos(locked bool) *repository.Repository {
	return &repository.Repository{
		Slot:       &fakeSlotRepo{store: m, locked: locked},
		Booking:    &fakeBookingRepo{store: m, locked: locked},
		BookingKey: &fakeBookingKeyRepo{store: m, locked: locked},
		Waitlist:   &fakeWaitlistRepo{store: m, locked: locked},
		Resource:   &fakeResourceRepo{store: m, locked: locked},
	}
}

// guard takes the store lock for standalone repositories and is a no-op for
// in-transaction ones.
func (m *memStore) guard(locked bool) func() {
	if !locked {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

// fakeAtomic serializes transaction bodies with the store mutex so
// concurrent goroutines contend the way they would on a locked slot row.
type fakeAtomic struct {
	store *memStore
}

func (a *fakeAtomic) InTx(ctx context.Context, fn func(r *repository.Repository) error) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(a.store.txRepos())
}

type fakeSlotRepo struct {
	store  *memStore
	locked bool
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *entity.Slot) (bool, error) {
	defer f.store.guard(f.locked)()
	for _, s := range f.store.slots {
		if s.ResourceID == slot.ResourceID && s.StartAt.Equal(slot.StartAt) {
			return false, nil
		}
	}
	cp := *slot
	f.store.slots[slot.ID] = &cp
	return true, nil
}

func (f *fakeSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	defer f.store.guard(f.locked)()
	slot, ok := f.store.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *slot
	return &cp, nil
}

func (f *fakeSlotRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeSlotRepo) FindUpcoming(ctx context.Context, from, to time.Time, limit int) ([]*entity.Slot, error) {
	defer f.store.guard(f.locked)()
	var out []*entity.Slot
	for _, s := range f.store.slots {
		if !s.StartAt.Before(from) && s.StartAt.Before(to) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSlotRepo) UpdateCapacityStatus(ctx context.Context, id uuid.UUID, capacity int, status entity.SlotStatus) error {
	defer f.store.guard(f.locked)()
	if slot, ok := f.store.slots[id]; ok {
		slot.Capacity = capacity
		slot.Status = status
	}
	return nil
}

type fakeBookingRepo struct {
	store  *memStore
	locked bool
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	defer f.store.guard(f.locked)()
	cp := *booking
	f.store.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	defer f.store.guard(f.locked)()
	b, ok := f.store.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Booking, error) {
	defer f.store.guard(f.locked)()
	var out []*entity.Booking
	for _, b := range f.store.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	defer f.store.guard(f.locked)()
	var n int64
	for _, b := range f.store.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	defer f.store.guard(f.locked)()
	if b, ok := f.store.bookings[bookingID]; ok {
		b.Status = status
	}
	return nil
}

func (f *fakeBookingRepo) MarkCanceled(ctx context.Context, bookingID uuid.UUID, canceledAt time.Time) error {
	defer f.store.guard(f.locked)()
	if b, ok := f.store.bookings[bookingID]; ok {
		b.Status = entity.BookingStatusCanceled
		b.CanceledAt = &canceledAt
	}
	return nil
}

func (f *fakeBookingRepo) CountActiveBySlotIDs(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	defer f.store.guard(f.locked)()
	wanted := make(map[uuid.UUID]bool, len(slotIDs))
	for _, id := range slotIDs {
		wanted[id] = true
	}
	counts := make(map[uuid.UUID]int)
	for _, b := range f.store.bookings {
		if wanted[b.SlotID] && b.Active() {
			counts[b.SlotID]++
		}
	}
	return counts, nil
}

type fakeBookingKeyRepo struct {
	store  *memStore
	locked bool
}

func (f *fakeBookingKeyRepo) Create(ctx context.Context, key *entity.BookingKey) error {
	defer f.store.guard(f.locked)()
	if _, ok := f.store.keys[key.Key]; ok {
		return repository.ErrKeyExists
	}
	cp := *key
	f.store.keys[key.Key] = &cp
	return nil
}

func (f *fakeBookingKeyRepo) Exists(ctx context.Context, slotID uuid.UUID, userID string) (bool, error) {
	defer f.store.guard(f.locked)()
	_, ok := f.store.keys[entity.BookingKeyFor(slotID, userID)]
	return ok, nil
}

func (f *fakeBookingKeyRepo) Delete(ctx context.Context, slotID uuid.UUID, userID string) error {
	defer f.store.guard(f.locked)()
	delete(f.store.keys, entity.BookingKeyFor(slotID, userID))
	return nil
}

type fakeWaitlistRepo struct {
	store  *memStore
	locked bool
}

func (f *fakeWaitlistRepo) CreateIfAbsent(ctx context.Context, entry *entity.WaitlistEntry) (bool, error) {
	defer f.store.guard(f.locked)()
	for _, e := range f.store.waitlist {
		if e.SlotID == entry.SlotID && e.UserID == entry.UserID {
			return false, nil
		}
	}
	cp := *entry
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	f.store.waitlist[entry.ID] = &cp
	return true, nil
}

func (f *fakeWaitlistRepo) FindEarliest(ctx context.Context, slotID uuid.UUID) (*entity.WaitlistEntry, error) {
	if f.store.failEarliest {
		return nil, context.DeadlineExceeded
	}
	entries, _ := f.FindPageBySlot(ctx, slotID, 1<<20)
	if len(entries) == 0 {
		return nil, nil
	}
	sortEntries(entries)
	return entries[0], nil
}

func (f *fakeWaitlistRepo) FindPageBySlot(ctx context.Context, slotID uuid.UUID, limit int) ([]*entity.WaitlistEntry, error) {
	defer f.store.guard(f.locked)()
	var out []*entity.WaitlistEntry
	for _, e := range f.store.waitlist {
		if e.SlotID == slotID {
			cp := *e
			out = append(out, &cp)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeWaitlistRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.WaitlistEntry, error) {
	defer f.store.guard(f.locked)()
	e, ok := f.store.waitlist[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeWaitlistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer f.store.guard(f.locked)()
	delete(f.store.waitlist, id)
	return nil
}

func sortEntries(entries []*entity.WaitlistEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
}

type fakeResourceRepo struct {
	store  *memStore
	locked bool
}

func (f *fakeResourceRepo) FindResourceByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	defer f.store.guard(f.locked)()
	res, ok := f.store.resources[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (f *fakeResourceRepo) FindServiceByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	defer f.store.guard(f.locked)()
	svc, ok := f.store.services[id]
	if !ok {
		return nil, nil
	}
	cp := *svc
	return &cp, nil
}

// fakeNotifier records dispatched events.
type fakeNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (f *fakeNotifier) Dispatch(ctx context.Context, event notify.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func zapNop() *zap.Logger {
	return zap.NewNop()
}

func newTestCoordinator(store *memStore) (CoordinatorService, *fakeNotifier) {
	notifier := &fakeNotifier{}
	cfg := utils.BookingConfig{TxMaxRetries: 3, WaitlistPage: 50, ListWindowDays: 7}
	svc := NewCoordinatorService(&fakeAtomic{store: store}, store.repos(), notifier, cfg, zap.NewNop())
	return svc, notifier
}
