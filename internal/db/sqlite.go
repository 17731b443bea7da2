// Package db provides the SQL storage implementation of the booking store.
// The same queries run on SQLite and PostgreSQL; only the driver and the
// placeholder format differ.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/dateutil"
)

// Store implements booking.Store on a SQL database.
type Store struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

var (
	_ booking.Store           = (*Store)(nil)
	_ booking.CustomerRemover = (*Store)(nil)
	_ booking.Seeder          = (*Store)(nil)
)

// New opens a SQLite database at path and runs migrations.
func New(path string) (*Store, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=foreign_keys(1)"
	}
	return open("sqlite", dsn, squirrel.Question)
}

// NewPostgres connects to a PostgreSQL database and runs migrations.
func NewPostgres(dsn string) (*Store, error) {
	return open("postgres", dsn, squirrel.Dollar)
}

func open(driver, dsn string, placeholders squirrel.PlaceholderFormat) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(placeholders),
	}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	return s.db.Close()
}

// FetchResources returns resources ordered by their display position.
func (s *Store) FetchResources(ctx context.Context) ([]booking.ResourceRecord, error) {
	query, args, err := s.sb.Select("id", "display_name", "color_hex").
		From("resources").
		OrderBy("position", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchResources: %v", ErrBuildQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchResources: %v", ErrExecQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var out []booking.ResourceRecord
	for rows.Next() {
		var r booking.ResourceRecord
		if err := rows.Scan(&r.ID, &r.DisplayName, &r.ColorHex); err != nil {
			return nil, fmt.Errorf("%w: FetchResources: %v", ErrScanRow, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchResources: %v", ErrExecQuery, err)
	}
	return out, nil
}

// FetchServices returns all services ordered by name.
func (s *Store) FetchServices(ctx context.Context) ([]booking.ServiceRecord, error) {
	query, args, err := s.sb.Select("id", "name", "price", "duration_minutes").
		From("services").
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchServices: %v", ErrBuildQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchServices: %v", ErrExecQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var out []booking.ServiceRecord
	for rows.Next() {
		var (
			r     booking.ServiceRecord
			price string
		)
		if err := rows.Scan(&r.ID, &r.Name, &price, &r.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: FetchServices: %v", ErrScanRow, err)
		}
		r.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchServices: service %s price %q: %v", ErrScanRow, r.ID, price, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchServices: %v", ErrExecQuery, err)
	}
	return out, nil
}

// FetchBookingsForDate returns the non-cancelled bookings on date's day,
// ordered by start time. Customer and service names are joined in; a
// dangling reference yields empty names rather than dropping the row.
func (s *Store) FetchBookingsForDate(ctx context.Context, date time.Time) ([]booking.BookingRecord, error) {
	query, args, err := s.sb.Select(
		"b.id",
		"b.resource_id",
		"c.first_name",
		"c.last_name",
		"sv.name",
		"b.booking_date",
		"b.start_time",
		"b.duration_minutes",
	).
		From("bookings b").
		LeftJoin("customers c ON c.id = b.customer_id").
		LeftJoin("services sv ON sv.id = b.service_id").
		Where(squirrel.Eq{"b.booking_date": dateutil.FormatDate(date)}).
		Where(squirrel.NotEq{"b.status": string(booking.StatusCancelled)}).
		OrderBy("b.start_time", "b.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchBookingsForDate: %v", ErrBuildQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchBookingsForDate: %v", ErrExecQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var out []booking.BookingRecord
	for rows.Next() {
		var (
			r                   booking.BookingRecord
			first, last, svc    sql.NullString
			bookingDate, startT string
		)
		if err := rows.Scan(&r.ID, &r.ResourceID, &first, &last, &svc, &bookingDate, &startT, &r.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: FetchBookingsForDate: %v", ErrScanRow, err)
		}
		r.Start, err = parseStart(bookingDate, startT)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchBookingsForDate: booking %s: %v", ErrScanRow, r.ID, err)
		}
		r.CustomerFirstName = first.String
		r.CustomerLastName = last.String
		r.ServiceName = svc.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchBookingsForDate: %v", ErrExecQuery, err)
	}
	return out, nil
}

// CreateCustomer inserts a customer and returns its generated id.
func (s *Store) CreateCustomer(ctx context.Context, firstName, lastName string) (string, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return "", fmt.Errorf("customer: %w", booking.ErrEmptyName)
	}

	id := uuid.NewString()
	query, args, err := s.sb.Insert("customers").
		Columns("id", "first_name", "last_name", "created_at").
		Values(id, firstName, strings.TrimSpace(lastName), time.Now().UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: CreateCustomer: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", execError("CreateCustomer", err)
	}
	return id, nil
}

// CreateBooking inserts a booking and returns its generated id.
func (s *Store) CreateBooking(ctx context.Context, b booking.NewBooking) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	date, start := splitStart(b.Start)
	query, args, err := s.sb.Insert("bookings").
		Columns(
			"id",
			"customer_id",
			"resource_id",
			"service_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"price",
			"status",
			"created_at",
		).
		Values(
			id,
			b.CustomerID,
			b.ResourceID,
			b.ServiceID,
			date,
			start,
			b.DurationMinutes,
			b.Price.String(),
			string(b.Status),
			time.Now().UTC().Format(time.RFC3339),
		).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: CreateBooking: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", execError("CreateBooking", err)
	}
	return id, nil
}

// UpdateBookingResourceAndTime moves a booking to another resource and start.
func (s *Store) UpdateBookingResourceAndTime(ctx context.Context, bookingID, resourceID string, start time.Time) error {
	if bookingID == "" {
		return fmt.Errorf("booking: %w", booking.ErrEmptyID)
	}
	if resourceID == "" {
		return fmt.Errorf("resource: %w", booking.ErrEmptyID)
	}
	if start.IsZero() {
		return booking.ErrMissingStart
	}

	date, clock := splitStart(start)
	query, args, err := s.sb.Update("bookings").
		Set("resource_id", resourceID).
		Set("booking_date", date).
		Set("start_time", clock).
		Where(squirrel.Eq{"id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateBookingResourceAndTime: %v", ErrBuildQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("UpdateBookingResourceAndTime", err)
	}
	return requireAffected(res, "booking", bookingID)
}

// DeleteCustomer removes a customer. It fails while bookings still reference it.
func (s *Store) DeleteCustomer(ctx context.Context, customerID string) error {
	query, args, err := s.sb.Delete("customers").
		Where(squirrel.Eq{"id": customerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteCustomer: %v", ErrBuildQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("DeleteCustomer", err)
	}
	return requireAffected(res, "customer", customerID)
}

// UpsertResource inserts or replaces a resource at the given display position.
func (s *Store) UpsertResource(ctx context.Context, r booking.ResourceRecord, position int) error {
	if err := r.Validate(); err != nil {
		return err
	}

	query, args, err := s.sb.Insert("resources").
		Columns("id", "display_name", "color_hex", "position").
		Values(r.ID, r.DisplayName, r.ColorHex, position).
		Suffix("ON CONFLICT (id) DO UPDATE SET display_name = excluded.display_name, color_hex = excluded.color_hex, position = excluded.position").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertResource: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return execError("UpsertResource", err)
	}
	return nil
}

// UpsertService inserts or replaces a service.
func (s *Store) UpsertService(ctx context.Context, r booking.ServiceRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}

	query, args, err := s.sb.Insert("services").
		Columns("id", "name", "price", "duration_minutes").
		Values(r.ID, r.Name, r.Price.String(), r.DurationMinutes).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = excluded.name, price = excluded.price, duration_minutes = excluded.duration_minutes").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertService: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return execError("UpsertService", err)
	}
	return nil
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrExecQuery, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, booking.ErrNotFound)
	}
	return nil
}

// splitStart renders an instant as the stored local date and HH:MM columns.
func splitStart(t time.Time) (date, clock string) {
	t = t.In(time.Local)
	return dateutil.FormatDate(t), booking.ClockOf(t).String()
}

// parseStart is the inverse of splitStart. Dates are parsed in the local zone.
func parseStart(date, clock string) (time.Time, error) {
	if date == "" {
		return time.Time{}, errors.New("empty booking date")
	}
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	c, err := booking.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return c.On(day), nil
}
