package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"quickshow/internal/entities"
)

// In-memory repositories used by service and handler tests.

type BookingsRepoMock struct {
	mu       sync.Mutex
	Bookings map[uuid.UUID]*entities.Booking

	// Graph objects referenced by GetConfirmation and ListForUser.
	Shows  map[uuid.UUID]entities.Show
	Movies map[string]entities.Movie
	Users  map[string]entities.User
}

func NewBookingsRepoMock() *BookingsRepoMock {
	return &BookingsRepoMock{
		Bookings: map[uuid.UUID]*entities.Booking{},
		Shows:    map[uuid.UUID]entities.Show{},
		Movies:   map[string]entities.Movie{},
		Users:    map[string]entities.User{},
	}
}

func (m *BookingsRepoMock) Create(_ context.Context, booking entities.Booking) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	taken := map[string]struct{}{}
	for _, b := range m.Bookings {
		if b.ShowID != booking.ShowID {
			continue
		}
		for _, seat := range b.BookedSeats {
			taken[seat] = struct{}{}
		}
	}
	for _, seat := range booking.BookedSeats {
		if _, ok := taken[seat]; ok {
			return uuid.Nil, fmt.Errorf("%w: seat %s", entities.ErrSeatsAlreadyBooked, seat)
		}
	}

	booking.ID = uuid.New()
	m.Bookings[booking.ID] = &booking

	return booking.ID, nil
}

func (m *BookingsRepoMock) Get(_ context.Context, id uuid.UUID) (entities.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.Bookings[id]
	if !ok {
		return entities.Booking{}, entities.ErrBookingNotFound
	}
	return *booking, nil
}

func (m *BookingsRepoMock) MarkPaid(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.Bookings[id]
	if !ok {
		return entities.ErrBookingNotFound
	}
	booking.IsPaid = true
	booking.PaymentLink = ""
	return nil
}

func (m *BookingsRepoMock) SetPaymentLink(_ context.Context, id uuid.UUID, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.Bookings[id]
	if !ok {
		return entities.ErrBookingNotFound
	}
	booking.PaymentLink = link
	return nil
}

func (m *BookingsRepoMock) OccupiedSeats(_ context.Context, showID uuid.UUID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var occupied []string
	for _, b := range m.Bookings {
		if b.ShowID == showID {
			occupied = append(occupied, b.BookedSeats...)
		}
	}
	return occupied, nil
}

func (m *BookingsRepoMock) GetConfirmation(_ context.Context, id uuid.UUID) (entities.BookingConfirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.Bookings[id]
	if !ok {
		return entities.BookingConfirmation{}, entities.ErrBookingNotFound
	}

	show := m.Shows[booking.ShowID]
	user, ok := m.Users[booking.UserID]
	if !ok {
		return entities.BookingConfirmation{}, entities.ErrUserNotFound
	}

	return entities.BookingConfirmation{
		Booking: *booking,
		Show:    show,
		Movie:   m.Movies[show.MovieID],
		User:    user,
	}, nil
}

func (m *BookingsRepoMock) ListForUser(_ context.Context, userID string) ([]entities.UserBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []entities.UserBooking
	for _, b := range m.Bookings {
		if b.UserID != userID {
			continue
		}
		show := m.Shows[b.ShowID]
		result = append(result, entities.UserBooking{
			Booking: *b,
			Show:    show,
			Movie:   m.Movies[show.MovieID],
		})
	}
	return result, nil
}

type UsersRepoMock struct {
	mu    sync.Mutex
	Users map[string]entities.User
}

func NewUsersRepoMock() *UsersRepoMock {
	return &UsersRepoMock{Users: map[string]entities.User{}}
}

func (m *UsersRepoMock) Create(_ context.Context, user entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Users[user.ID]; ok {
		return fmt.Errorf("%w: %s", entities.ErrUserAlreadyExists, user.ID)
	}
	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: email %s", entities.ErrUserAlreadyExists, user.Email)
		}
	}
	m.Users[user.ID] = user
	return nil
}

func (m *UsersRepoMock) Update(_ context.Context, user entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Users[user.ID]; !ok {
		return fmt.Errorf("%w: %s", entities.ErrUserNotFound, user.ID)
	}
	m.Users[user.ID] = user
	return nil
}

func (m *UsersRepoMock) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Users, id)
	return nil
}

func (m *UsersRepoMock) Get(_ context.Context, id string) (entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.Users[id]
	if !ok {
		return entities.User{}, entities.ErrUserNotFound
	}
	return user, nil
}

type ShowsRepoMock struct {
	mu    sync.Mutex
	Shows map[uuid.UUID]entities.Show
}

func NewShowsRepoMock() *ShowsRepoMock {
	return &ShowsRepoMock{Shows: map[uuid.UUID]entities.Show{}}
}

func (m *ShowsRepoMock) Create(_ context.Context, show entities.Show) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	show.ID = uuid.New()
	m.Shows[show.ID] = show
	return show.ID, nil
}

func (m *ShowsRepoMock) Get(_ context.Context, id uuid.UUID) (entities.Show, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	show, ok := m.Shows[id]
	if !ok {
		return entities.Show{}, entities.ErrShowNotFound
	}
	return show, nil
}

func (m *ShowsRepoMock) ListUpcoming(_ context.Context) ([]entities.Show, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[string]struct{}{}
	var shows []entities.Show
	for _, show := range m.Shows {
		if _, ok := seen[show.MovieID]; ok {
			continue
		}
		seen[show.MovieID] = struct{}{}
		shows = append(shows, show)
	}
	return shows, nil
}

func (m *ShowsRepoMock) ListForMovie(_ context.Context, movieID string) ([]entities.Show, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var shows []entities.Show
	for _, show := range m.Shows {
		if show.MovieID == movieID {
			shows = append(shows, show)
		}
	}
	return shows, nil
}

type MoviesRepoMock struct {
	mu     sync.Mutex
	Movies map[string]entities.Movie
}

func NewMoviesRepoMock() *MoviesRepoMock {
	return &MoviesRepoMock{Movies: map[string]entities.Movie{}}
}

func (m *MoviesRepoMock) Upsert(_ context.Context, movie entities.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Movies[movie.ID] = movie
	return nil
}

func (m *MoviesRepoMock) Get(_ context.Context, id string) (entities.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	movie, ok := m.Movies[id]
	if !ok {
		return entities.Movie{}, entities.ErrMovieNotFound
	}
	return movie, nil
}

func (m *MoviesRepoMock) List(_ context.Context) ([]entities.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	movies := make([]entities.Movie, 0, len(m.Movies))
	for _, movie := range m.Movies {
		movies = append(movies, movie)
	}
	return movies, nil
}
