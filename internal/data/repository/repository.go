package repository

import (
	"slot-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Slot        SlotRepository
	Booking     BookingRepository
	BookingKey  BookingKeyRepository
	Waitlist    WaitlistRepository
	Resource    ResourceRepository
	UserRole    UserRoleRepository
	LineBinding LineBindingRepository
	NotifyLog   NotifyLogRepository

	db  database.Queryer
	log *zap.Logger
}

func NewRepository(db database.Queryer, log *zap.Logger) *Repository {
	return &Repository{
		Slot:        NewSlotRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BookingKey:  NewBookingKeyRepository(db, log),
		Waitlist:    NewWaitlistRepository(db, log),
		Resource:    NewResourceRepository(db, log),
		UserRole:    NewUserRoleRepository(db, log),
		LineBinding: NewLineBindingRepository(db, log),
		NotifyLog:   NewNotifyLogRepository(db, log),

		db:  db,
		log: log,
	}
}

// WithTx returns a Repository bound to the given transaction. The coordinator
// uses this so one operation's reads and writes share a single atomic
// transaction.
func (r *Repository) WithTx(tx database.Queryer) *Repository {
	return NewRepository(tx, r.log)
}
