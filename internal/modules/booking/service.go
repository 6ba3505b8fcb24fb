package booking

import (
	"context"
	"errors"
	"time"

	"aura/internal/domain"
	"aura/internal/notification"
	"aura/internal/pkg/logger"
	"aura/internal/pkg/metrics"
	"aura/internal/pkg/timeutil"
	"aura/internal/repository"
)

type Service struct {
	bookings BookingRepository
	services ServiceRepository
	schedule ScheduleRepository
	notifier notification.BookingNotifier
	metrics  *metrics.Metrics
	log      *logger.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	services ServiceRepository,
	schedule ScheduleRepository,
	notifier notification.BookingNotifier,
	m *metrics.Metrics,
	log *logger.Logger,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		bookings: bookings,
		services: services,
		schedule: schedule,
		notifier: notifier,
		metrics:  m,
		log:      log,
		loc:      loc,
		now:      time.Now,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// FreeTimes returns the start times still open on date for the combined
// duration of serviceIDs, across every master that owns one of them.
func (s *Service) FreeTimes(ctx context.Context, date string, serviceIDs []int64) ([]string, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	if day.Before(s.today()) {
		return nil, invalid("The date cannot be in the past")
	}
	if len(serviceIDs) == 0 {
		return nil, invalid("No service id provided")
	}

	services, err := s.resolveServices(ctx, serviceIDs, "Service with ID %d not found")
	if err != nil {
		return nil, err
	}
	rows, err := s.workingRanges(ctx, services, day)
	if err != nil {
		return nil, err
	}

	var total time.Duration
	for _, id := range serviceIDs {
		d, err := timeutil.ParseDuration(services[id].Duration)
		if err != nil {
			return nil, invalid("Service with ID %d has an invalid duration", id)
		}
		total += d
	}
	if total <= 0 {
		return nil, invalid("Total service duration must be greater than zero")
	}

	booked, err := s.bookings.TimesOnDate(ctx, timeutil.FormatDate(day))
	if err != nil {
		return nil, err
	}

	s.metrics.FreeTimeQuery()
	return Calculate(windowsFrom(rows), total, booked), nil
}

func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	ids := uniqueIDs(req.ServiceIDs)
	if len(ids) == 0 {
		return nil, invalid("At least one service must be selected")
	}
	day, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	services, err := s.resolveServices(ctx, ids, "Service with ID %d does not exist")
	if err != nil {
		return nil, err
	}
	if _, err := s.workingRanges(ctx, services, day); err != nil {
		return nil, err
	}

	clock, err := timeutil.ParseClock(req.Time)
	if err != nil {
		return nil, invalid("Invalid time format. Expected HH:MM.")
	}
	today := s.today()
	if day.Before(today) {
		return nil, invalid("The date cannot be in the past")
	}
	if day.Equal(today) {
		now := s.now().In(s.loc)
		if clock < now.Sub(today) {
			return nil, invalid("The time cannot be in the past")
		}
	}

	dateStr := timeutil.FormatDate(day)
	timeStr := timeutil.FormatClock(clock)
	conflict, err := s.bookings.HasConflict(ctx, dateStr, timeStr, ids)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrConflict
	}

	b := &domain.Booking{
		Date:     dateStr,
		Time:     timeStr,
		UserID:   userID,
		Status:   domain.BookingPending,
		Services: make([]domain.Service, 0, len(ids)),
	}
	for _, id := range ids {
		b.Services = append(b.Services, services[id])
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.metrics.BookingEvent("created")
	return b, nil
}

// UpdateStatus changes the status of a booking in the caller's scope and
// notifies the customer. Masters act on bookings of their services, customers
// on their own bookings. Notification failures are logged only.
func (s *Service) UpdateStatus(ctx context.Context, userID int64, isMaster bool, bookingID int64, status string) (*domain.Booking, error) {
	st := domain.BookingStatus(status)
	if !st.Valid() {
		return nil, invalid("Invalid status")
	}

	b, err := s.visible(ctx, bookingID, userID, isMaster)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateStatus(ctx, b.ID, st); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	b.Status = st
	s.metrics.BookingEvent("status_changed")

	s.notifyStatus(ctx, b, userID)
	return b, nil
}

func (s *Service) DeleteBooking(ctx context.Context, userID int64, isMaster bool, bookingID int64) error {
	b, err := s.visible(ctx, bookingID, userID, isMaster)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, b.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	s.metrics.BookingEvent("deleted")
	return nil
}

// MyBookings lists the caller's bookings. A master sees bookings of their
// services first, then bookings they placed themselves. A customer gets one
// entry per booked service, paired with that service's master.
func (s *Service) MyBookings(ctx context.Context, userID int64, isMaster bool, q MyBookingsQuery) ([]Entry, error) {
	f, err := s.filter(q)
	if err != nil {
		return nil, err
	}

	out := []Entry{}
	if isMaster {
		provided, err := s.bookings.ListForProvider(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		for i := range provided {
			out = append(out, newEntry(&provided[i], provided[i].User))
		}

		made, err := s.bookings.ListMadeBy(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		for i := range made {
			var master *domain.User
			if len(made[i].Services) > 0 {
				master = made[i].Services[0].User
			}
			out = append(out, newEntry(&made[i], master))
		}
		return out, nil
	}

	made, err := s.bookings.ListMadeBy(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	for i := range made {
		for _, svc := range made[i].Services {
			out = append(out, newEntry(&made[i], svc.User))
		}
	}
	return out, nil
}

func (s *Service) notifyStatus(ctx context.Context, b *domain.Booking, changedBy int64) {
	if s.notifier == nil || b.User == nil {
		return
	}
	ev := notification.BookingStatusEvent{
		BookingID:     b.ID,
		Date:          b.Date,
		Time:          b.Time,
		Status:        string(b.Status),
		CustomerID:    b.UserID,
		CustomerEmail: b.User.Email,
		CustomerName:  b.User.FullName,
		ChangedBy:     changedBy,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.notifier.BookingStatusChanged(ctx, ev); err != nil {
		s.log.Warn("booking status notification failed", "booking_id", b.ID, "status", b.Status, "error", err)
	}
}

func (s *Service) visible(ctx context.Context, bookingID, userID int64, isMaster bool) (*domain.Booking, error) {
	b, err := s.bookings.GetVisible(ctx, bookingID, userID, isMaster)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// resolveServices loads ids and fails on the first one that does not exist.
func (s *Service) resolveServices(ctx context.Context, ids []int64, missing string) (map[int64]domain.Service, error) {
	rows, err := s.services.GetServices(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Service, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, invalid(missing, id)
		}
	}
	return byID, nil
}

// workingRanges returns the ranges of every owning master on day's weekday and
// fails when one of them does not work that day.
func (s *Service) workingRanges(ctx context.Context, services map[int64]domain.Service, day time.Time) ([]domain.WorkingTime, error) {
	masters := make([]int64, 0, len(services))
	seen := make(map[int64]bool, len(services))
	for _, svc := range services {
		if !seen[svc.UserID] {
			seen[svc.UserID] = true
			masters = append(masters, svc.UserID)
		}
	}

	rows, err := s.schedule.TimesOnDay(ctx, masters, timeutil.WeekdayName(day))
	if err != nil {
		return nil, err
	}
	working := make(map[int64]bool, len(rows))
	for _, r := range rows {
		working[r.UserID] = true
	}
	for _, m := range masters {
		if !working[m] {
			return nil, invalid("The requested date is not a working day for the master")
		}
	}
	return rows, nil
}

func (s *Service) filter(q MyBookingsQuery) (repository.BookingFilter, error) {
	f := repository.BookingFilter{Status: q.Status}
	if q.Date != "" {
		day, err := s.parseDate(q.Date)
		if err != nil {
			return f, err
		}
		f.Date = timeutil.FormatDate(day)
	}
	if q.Status != "" && !domain.BookingStatus(q.Status).Valid() {
		return f, invalid("Invalid status")
	}
	return f, nil
}

func (s *Service) parseDate(v string) (time.Time, error) {
	d, err := timeutil.ParseDate(v, s.loc)
	if err != nil {
		return time.Time{}, invalid("Invalid date format. Expected YYYY-MM-DD.")
	}
	return d, nil
}

func (s *Service) today() time.Time {
	return timeutil.StartOfDay(s.now().In(s.loc))
}

func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
