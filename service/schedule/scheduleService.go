package schedulesvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Madruu/astrocode-project/model"
	"github.com/Madruu/astrocode-project/util/apperr"
)

const (
	ErrNotFound  apperr.Code = "TASK_NOT_FOUND"
	ErrForbidden apperr.Code = "FORBIDDEN"
	ErrBadSlot   apperr.Code = "BAD_SLOT"
)

// Bookable window: hourly slots from 08:00 through 18:00 inclusive.
const (
	OpenHour  = 8
	CloseHour = 18
)

// SlotsForDay generates the candidate slots for a calendar day and filters
// out anything not strictly in the future, already booked or blocked.
// A slot exactly equal to now is unavailable. The result is ascending and
// recomputed on every call.
func SlotsForDay(day time.Time, now time.Time, booked, blocked []time.Time) []time.Time {
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	out := make([]time.Time, 0, CloseHour-OpenHour+1)
	for hour := OpenHour; hour <= CloseHour; hour++ {
		slot := base.Add(time.Duration(hour) * time.Hour)
		if !slot.After(now) {
			continue
		}
		if containsTime(booked, slot) || containsTime(blocked, slot) {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// IsConflicting reports whether a non-cancelled booking exists at exactly
// the given instant. Conflicts are exact-timestamp, not interval overlap.
func IsConflicting(at time.Time, existing []model.Booking) bool {
	for _, b := range existing {
		if b.Status != model.BookingCancelled && b.ScheduledDate.Equal(at) {
			return true
		}
	}
	return false
}

func containsTime(list []time.Time, t time.Time) bool {
	for _, v := range list {
		if v.Equal(t) {
			return true
		}
	}
	return false
}

type Repo interface {
	BookedSlots(ctx context.Context, taskID int64, from, to time.Time) ([]time.Time, error)
	BlockedSlots(ctx context.Context, taskID int64, from, to time.Time) ([]time.Time, error)
	BlockSlot(ctx context.Context, taskID int64, at time.Time) error
	UnblockSlot(ctx context.Context, taskID int64, at time.Time) error
}

type Tasks interface {
	Detail(ctx context.Context, id int64) (*model.Task, error)
}

type Service interface {
	AvailableSlots(ctx context.Context, taskID int64, day time.Time) ([]time.Time, error)
	Block(ctx context.Context, requesterID, taskID int64, at time.Time) error
	Unblock(ctx context.Context, requesterID, taskID int64, at time.Time) error
	Blocked(ctx context.Context, taskID int64, day time.Time) ([]time.Time, error)
}

type service struct {
	r     Repo
	tasks Tasks
	now   func() time.Time
}

func New(r Repo, tasks Tasks) Service {
	return &service{r: r, tasks: tasks, now: time.Now}
}

// NewWithClock is used by tests to pin "now".
func NewWithClock(r Repo, tasks Tasks, now func() time.Time) Service {
	return &service{r: r, tasks: tasks, now: now}
}

func (s *service) AvailableSlots(ctx context.Context, taskID int64, day time.Time) ([]time.Time, error) {
	if _, err := s.taskByID(ctx, taskID); err != nil {
		return nil, err
	}

	from, to := dayBounds(day)
	booked, err := s.r.BookedSlots(ctx, taskID, from, to)
	if err != nil {
		return nil, err
	}
	blocked, err := s.r.BlockedSlots(ctx, taskID, from, to)
	if err != nil {
		return nil, err
	}
	return SlotsForDay(day, s.now(), booked, blocked), nil
}

func (s *service) Block(ctx context.Context, requesterID, taskID int64, at time.Time) error {
	if at.Minute() != 0 || at.Second() != 0 || at.Nanosecond() != 0 ||
		at.Hour() < OpenHour || at.Hour() > CloseHour {
		return apperr.New(ErrBadSlot)
	}
	if err := s.ownedBy(ctx, requesterID, taskID); err != nil {
		return err
	}
	return s.r.BlockSlot(ctx, taskID, at)
}

func (s *service) Unblock(ctx context.Context, requesterID, taskID int64, at time.Time) error {
	if err := s.ownedBy(ctx, requesterID, taskID); err != nil {
		return err
	}
	return s.r.UnblockSlot(ctx, taskID, at)
}

func (s *service) Blocked(ctx context.Context, taskID int64, day time.Time) ([]time.Time, error) {
	if _, err := s.taskByID(ctx, taskID); err != nil {
		return nil, err
	}
	from, to := dayBounds(day)
	return s.r.BlockedSlots(ctx, taskID, from, to)
}

func (s *service) taskByID(ctx context.Context, taskID int64) (*model.Task, error) {
	t, err := s.tasks.Detail(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (s *service) ownedBy(ctx context.Context, requesterID, taskID int64) error {
	t, err := s.taskByID(ctx, taskID)
	if err != nil {
		return err
	}
	if t.ProviderID != requesterID {
		return apperr.New(ErrForbidden)
	}
	return nil
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return from, from.AddDate(0, 0, 1)
}
