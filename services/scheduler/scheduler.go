package scheduler

import (
	"context"
	"fmt"
	"time"

	"venue-booking/logger"
	"venue-booking/models/reservation"
	"venue-booking/services/lifecycle"

	"gorm.io/gorm"
)

// Scheduler retires paid reservations whose stay has ended, moving them to
// completada on a fixed interval. Each retirement goes through the normal
// lifecycle path so it is audited and published like any other transition.
type Scheduler struct {
	db        *gorm.DB
	lifecycle *lifecycle.Service
	interval  time.Duration
}

func New(db *gorm.DB, lc *lifecycle.Service, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{db: db, lifecycle: lc, interval: interval}
}

// Start runs the retirement loop until the context is cancelled. It sweeps
// once immediately so a restart never leaves stale paid reservations behind.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		logger.Info(fmt.Sprintf("Reservation scheduler started (interval %s)", s.interval))
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("Reservation scheduler stopped")
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *Scheduler) sweep() {
	now := time.Now().UTC()
	retired := 0
	retired += s.retire(reservation.KindEvento, &reservation.EventReservation{}, now)
	retired += s.retire(reservation.KindHabitacion, &reservation.RoomReservation{}, now)
	retired += s.retire(reservation.KindMasaje, &reservation.MassageReservation{}, now)
	if retired > 0 {
		logger.Info(fmt.Sprintf("Scheduler retired %d paid reservations to completada", retired))
	}
}

// retire completes paid reservations of one kind whose window has passed.
// Rows are processed one by one through the lifecycle service; a failure on
// one row never blocks the rest.
func (s *Scheduler) retire(kind reservation.Kind, model interface{}, now time.Time) int {
	var ids []uint
	err := s.db.Model(model).
		Where("status = ?", reservation.StatusPagada).
		Where("ends_at <= ?", now).
		Order("ends_at").
		Pluck("id", &ids).Error
	if err != nil {
		logger.Error("Scheduler failed to scan "+kind.String()+" reservations", err)
		return 0
	}

	retired := 0
	for _, id := range ids {
		if _, _, err := s.lifecycle.SetStatus(kind, id, reservation.StatusCompletada, "scheduler"); err != nil {
			logger.Error(fmt.Sprintf("Scheduler failed to complete %s %d", kind, id), err)
			continue
		}
		retired++
	}
	return retired
}
