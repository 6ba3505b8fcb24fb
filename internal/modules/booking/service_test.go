package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"aura/internal/domain"
	"aura/internal/notification"
	"aura/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) TimesOnDate(ctx context.Context, date string) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingRepository) HasConflict(ctx context.Context, date, clock string, serviceIDs []int64) (bool, error) {
	args := m.Called(ctx, date, clock, serviceIDs)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) GetVisible(ctx context.Context, id, userID int64, asProvider bool) (*domain.Booking, error) {
	args := m.Called(ctx, id, userID, asProvider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepository) ListForProvider(ctx context.Context, masterID int64, f repository.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, masterID, f)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListMadeBy(ctx context.Context, userID int64, f repository.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, f)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetServices(ctx context.Context, ids []int64) ([]domain.Service, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Service), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) TimesOnDay(ctx context.Context, userIDs []int64, day string) ([]domain.WorkingTime, error) {
	args := m.Called(ctx, userIDs, day)
	return args.Get(0).([]domain.WorkingTime), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingStatusChanged(ctx context.Context, ev notification.BookingStatusEvent) error {
	return m.Called(ctx, ev).Error(0)
}

// 2030-01-07 is a Monday.
var fixedNow = time.Date(2030, 1, 7, 9, 30, 0, 0, time.UTC)

type fixture struct {
	bookings *MockBookingRepository
	services *MockServiceRepository
	schedule *MockScheduleRepository
	notifier *MockNotifier
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings: new(MockBookingRepository),
		services: new(MockServiceRepository),
		schedule: new(MockScheduleRepository),
		notifier: new(MockNotifier),
	}
	f.svc = NewService(f.bookings, f.services, f.schedule, f.notifier, nil, nil, time.UTC).
		WithClock(func() time.Time { return fixedNow })
	return f
}

func haircut() domain.Service {
	return domain.Service{ID: 1, Name: "Haircut", Duration: "01:00", Price: 100, UserID: 10}
}

func mondayShift() []domain.WorkingTime {
	return []domain.WorkingTime{{ID: 1, UserID: 10, StartTime: "10:00", EndTime: "18:00"}}
}

func TestService_FreeTimes_MondayShift(t *testing.T) {
	f := newFixture()
	f.services.On("GetServices", mock.Anything, []int64{1}).Return([]domain.Service{haircut()}, nil)
	f.schedule.On("TimesOnDay", mock.Anything, []int64{10}, "Monday").Return(mondayShift(), nil)
	f.bookings.On("TimesOnDate", mock.Anything, "2030-01-14").Return([]string{"11:00", "17:00"}, nil)

	got, err := f.svc.FreeTimes(context.Background(), "2030-01-14", []int64{1})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "12:00", "13:00", "14:00", "15:00", "16:00"}, got)
}

func TestService_FreeTimes_SumsDurations(t *testing.T) {
	f := newFixture()
	nails := domain.Service{ID: 2, Name: "Nails", Duration: "00:30", UserID: 10}
	f.services.On("GetServices", mock.Anything, []int64{1, 2}).Return([]domain.Service{haircut(), nails}, nil)
	f.schedule.On("TimesOnDay", mock.Anything, mock.Anything, "Monday").
		Return([]domain.WorkingTime{{UserID: 10, StartTime: "10:00", EndTime: "14:00"}}, nil)
	f.bookings.On("TimesOnDate", mock.Anything, "2030-01-14").Return([]string{}, nil)

	got, err := f.svc.FreeTimes(context.Background(), "2030-01-14", []int64{1, 2})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:30"}, got)
}

func TestService_FreeTimes_Validation(t *testing.T) {
	cases := []struct {
		name    string
		date    string
		ids     []int64
		setup   func(f *fixture)
		message string
	}{
		{
			name:    "past date",
			date:    "2030-01-06",
			ids:     []int64{1},
			message: "The date cannot be in the past",
		},
		{
			name:    "no services",
			date:    "2030-01-14",
			message: "No service id provided",
		},
		{
			name: "unknown service",
			date: "2030-01-14",
			ids:  []int64{1, 7},
			setup: func(f *fixture) {
				f.services.On("GetServices", mock.Anything, []int64{1, 7}).Return([]domain.Service{haircut()}, nil)
			},
			message: "Service with ID 7 not found",
		},
		{
			name: "master off that day",
			date: "2030-01-15",
			ids:  []int64{1},
			setup: func(f *fixture) {
				f.services.On("GetServices", mock.Anything, []int64{1}).Return([]domain.Service{haircut()}, nil)
				f.schedule.On("TimesOnDay", mock.Anything, []int64{10}, "Tuesday").Return([]domain.WorkingTime{}, nil)
			},
			message: "The requested date is not a working day for the master",
		},
		{
			name: "zero duration",
			date: "2030-01-14",
			ids:  []int64{1},
			setup: func(f *fixture) {
				free := haircut()
				free.Duration = "00:00"
				f.services.On("GetServices", mock.Anything, []int64{1}).Return([]domain.Service{free}, nil)
				f.schedule.On("TimesOnDay", mock.Anything, []int64{10}, "Monday").Return(mondayShift(), nil)
			},
			message: "Total service duration must be greater than zero",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			if tc.setup != nil {
				tc.setup(f)
			}

			_, err := f.svc.FreeTimes(context.Background(), tc.date, tc.ids)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.message, verr.Message)
			f.bookings.AssertNotCalled(t, "TimesOnDate", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateBooking_Success(t *testing.T) {
	f := newFixture()
	f.services.On("GetServices", mock.Anything, []int64{1}).Return([]domain.Service{haircut()}, nil)
	f.schedule.On("TimesOnDay", mock.Anything, []int64{10}, "Monday").Return(mondayShift(), nil)
	f.bookings.On("HasConflict", mock.Anything, "2030-01-14", "09:00", []int64{1}).Return(false, nil)
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	b, err := f.svc.CreateBooking(context.Background(), 5, CreateBookingRequest{
		Date: "2030-01-14", Time: "9:00", ServiceIDs: []int64{1, 1},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, "09:00", b.Time)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, int64(5), b.UserID)
	require.Len(t, b.Services, 1)
	assert.Equal(t, "Haircut", b.Services[0].Name)
}

func TestService_CreateBooking_Conflict(t *testing.T) {
	f := newFixture()
	f.services.On("GetServices", mock.Anything, []int64{1}).Return([]domain.Service{haircut()}, nil)
	f.schedule.On("TimesOnDay", mock.Anything, []int64{10}, "Monday").Return(mondayShift(), nil)
	f.bookings.On("HasConflict", mock.Anything, "2030-01-14", "10:00", []int64{1}).Return(true, nil)

	_, err := f.svc.CreateBooking(context.Background(), 5, CreateBookingRequest{
		Date: "2030-01-14", Time: "10:00", ServiceIDs: []int64{1},
	})

	assert.ErrorIs(t, err, ErrConflict)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		req     CreateBookingRequest
		message string
	}{
		{"no services", CreateBookingRequest{Date: "2030-01-14", Time: "10:00"}, "At least one service must be selected"},
		{"unknown service", CreateBookingRequest{Date: "2030-01-14", Time: "10:00", ServiceIDs: []int64{42}}, "Service with ID 42 does not exist"},
		{"past date", CreateBookingRequest{Date: "2029-12-31", Time: "10:00", ServiceIDs: []int64{1}}, "The date cannot be in the past"},
		{"past time today", CreateBookingRequest{Date: "2030-01-07", Time: "09:00", ServiceIDs: []int64{1}}, "The time cannot be in the past"},
		{"bad time", CreateBookingRequest{Date: "2030-01-14", Time: "25:00", ServiceIDs: []int64{1}}, "Invalid time format. Expected HH:MM."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.services.On("GetServices", mock.Anything, []int64{42}).Return([]domain.Service{}, nil)
			f.services.On("GetServices", mock.Anything, []int64{1}).Return([]domain.Service{haircut()}, nil)
			f.schedule.On("TimesOnDay", mock.Anything, []int64{10}, mock.Anything).Return(mondayShift(), nil)

			_, err := f.svc.CreateBooking(context.Background(), 5, tc.req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.message, verr.Message)
			f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_UpdateStatus_NotifiesCustomer(t *testing.T) {
	f := newFixture()
	customer := &domain.User{ID: 5, Email: "aziz@example.com", FullName: "Aziz"}
	f.bookings.On("GetVisible", mock.Anything, int64(3), int64(10), true).
		Return(&domain.Booking{ID: 3, Date: "2030-01-14", Time: "10:00", UserID: 5, User: customer, Status: domain.BookingPending}, nil)
	f.bookings.On("UpdateStatus", mock.Anything, int64(3), domain.BookingApproved).Return(nil)
	f.notifier.On("BookingStatusChanged", mock.Anything, mock.MatchedBy(func(ev notification.BookingStatusEvent) bool {
		return ev.BookingID == 3 && ev.Status == "approved" && ev.CustomerEmail == "aziz@example.com" && ev.ChangedBy == 10
	})).Return(errors.New("smtp down"))

	b, err := f.svc.UpdateStatus(context.Background(), 10, true, 3, "approved")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, b.Status)
	f.notifier.AssertExpectations(t)
}

func TestService_UpdateStatus_InvalidStatusAndScope(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateStatus(context.Background(), 10, true, 3, "cancelled")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid status", verr.Message)

	f.bookings.On("GetVisible", mock.Anything, int64(3), int64(77), true).Return(nil, repository.ErrNotFound)
	_, err = f.svc.UpdateStatus(context.Background(), 77, true, 3, "rejected")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	f.notifier.AssertNotCalled(t, "BookingStatusChanged", mock.Anything, mock.Anything)
}

func TestService_DeleteBooking(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetVisible", mock.Anything, int64(3), int64(5), false).Return(&domain.Booking{ID: 3}, nil)
	f.bookings.On("Delete", mock.Anything, int64(3)).Return(nil)

	require.NoError(t, f.svc.DeleteBooking(context.Background(), 5, false, 3))
	f.bookings.AssertExpectations(t)
}

func TestService_MyBookings_Customer(t *testing.T) {
	f := newFixture()
	m1 := &domain.User{ID: 10, FullName: "Malika", IsMaster: true}
	m2 := &domain.User{ID: 11, FullName: "Dilnoza", IsMaster: true}
	booking := domain.Booking{
		ID: 1, Date: "2030-01-14", Time: "10:00", Status: domain.BookingPending, UserID: 5,
		Services: []domain.Service{
			{ID: 1, Name: "Haircut", Duration: "01:00", UserID: 10, User: m1},
			{ID: 2, Name: "Nails", Duration: "00:30", UserID: 11, User: m2},
		},
	}
	f.bookings.On("ListMadeBy", mock.Anything, int64(5), repository.BookingFilter{Status: "pending"}).
		Return([]domain.Booking{booking}, nil)

	entries, err := f.svc.MyBookings(context.Background(), 5, false, MyBookingsQuery{Status: "pending"})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Malika", entries[0].User.FullName)
	assert.Equal(t, "Dilnoza", entries[1].User.FullName)
	assert.Len(t, entries[1].Service, 2)
}

func TestService_MyBookings_Master(t *testing.T) {
	f := newFixture()
	customer := &domain.User{ID: 5, FullName: "Aziz"}
	other := &domain.User{ID: 11, FullName: "Dilnoza", IsMaster: true}
	provided := domain.Booking{ID: 1, UserID: 5, User: customer, Services: []domain.Service{{ID: 1, UserID: 10}}}
	made := domain.Booking{ID: 2, UserID: 10, Services: []domain.Service{{ID: 3, UserID: 11, User: other}}}
	f.bookings.On("ListForProvider", mock.Anything, int64(10), repository.BookingFilter{Date: "2030-01-14"}).
		Return([]domain.Booking{provided}, nil)
	f.bookings.On("ListMadeBy", mock.Anything, int64(10), repository.BookingFilter{Date: "2030-01-14"}).
		Return([]domain.Booking{made}, nil)

	entries, err := f.svc.MyBookings(context.Background(), 10, true, MyBookingsQuery{Date: "2030-01-14"})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Aziz", entries[0].User.FullName)
	assert.Equal(t, "Dilnoza", entries[1].User.FullName)
}
