package booking

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"context"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/tutorly/booking-engine/internal/conflict"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/pkg/dbmetrics"
	"github.com/tutorly/booking-engine/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var bookingColumns = []string{
	"id", "title", "description", "start_time", "end_time", "type", "status",
	"host_id", "participant_id", "service_id", "recurring_template_id",
	"created_at", "updated_at",
}

// Repository is the Postgres-backed transactional data-access layer
// over bookings and their payments.
type Repository struct {
	db DBExecutor
}

// NewRepository builds a Repository over db (either *sql.DB or a
// metrics-wrapped *dbmetrics.DB).
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts booking and returns it with its generated id and
// timestamps. Must be called inside the caller's transaction so the
// insert participates in the same serializable snapshot as the
// conflict check that preceded it.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var participantID *int64
	if len(b.Participants) > 0 {
		participantID = &b.Participants[0]
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("title", "description", "start_time", "end_time", "type", "status",
			"host_id", "participant_id", "service_id", "recurring_template_id").
		Values(b.Title, b.Description, b.StartTime, b.EndTime, b.Type, b.Status,
			b.HostID, participantID, b.ServiceID, b.RecurringTemplateID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID loads a booking with its participants and attached payment,
// locking the row FOR UPDATE when called inside a transaction so a
// concurrent transition on the same booking serializes behind it.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sb := psqlbuilder.Select(withPrefix("b", bookingColumns)...).
		Columns(
			"p.id", "p.session_id", "p.session_url", "p.payment_intent_id", "p.charge_id", "p.metadata",
		).
		From("bookings b").
		LeftJoin("payments p ON p.booking_id = b.id").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		sb = sb.Suffix("FOR UPDATE OF b")
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBookingWithPayment(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// UpdateStatus transitions booking id to status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Reschedule updates a booking's time window and status in one write,
// used by the Reschedule command after the conflict check passes.
func (r *Repository) Reschedule(ctx context.Context, id int64, startTime, endTime time.Time, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_time", startTime).
		Set("end_time", endTime).
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// UpsertPayment inserts or updates the Payment row owned by
// payment.BookingID, translating a unique-constraint violation on
// (bookingId)/(sessionId)/(paymentIntentId) into ErrDuplicatePayment.
func (r *Repository) UpsertPayment(ctx context.Context, payment *domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	metadata, err := json.Marshal(payment.Metadata)
	if err != nil {
		return fmt.Errorf("%w: UpsertPayment - marshal metadata: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Insert("payments").
		Columns("booking_id", "session_id", "session_url", "payment_intent_id", "charge_id", "metadata").
		Values(payment.BookingID, payment.SessionID, payment.SessionURL, payment.PaymentIntentID, payment.ChargeID, metadata).
		Suffix(`ON CONFLICT (booking_id) DO UPDATE SET
			session_id = EXCLUDED.session_id,
			session_url = EXCLUDED.session_url,
			payment_intent_id = EXCLUDED.payment_intent_id,
			charge_id = EXCLUDED.charge_id,
			metadata = EXCLUDED.metadata
		RETURNING id`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertPayment - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePayment
		}
		return fmt.Errorf("%w: UpsertPayment - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// FindOverlapping implements conflict.Repository: one OR-of-intervals
// query returning every active booking for the host or participant
// that overlaps any of q.Candidates.
func (r *Repository) FindOverlapping(ctx context.Context, q conflict.Query) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(q.Candidates) == 0 {
		return nil, nil
	}

	actorOr := squirrel.Or{squirrel.Eq{"host_id": q.HostID}}
	if q.ParticipantID != nil {
		actorOr = append(actorOr, squirrel.Eq{"participant_id": *q.ParticipantID})
	}

	intervalOr := make(squirrel.Or, 0, len(q.Candidates))
	for _, c := range q.Candidates {
		intervalOr = append(intervalOr, squirrel.And{
			squirrel.Lt{"start_time": c.End},
			squirrel.Gt{"end_time": c.Start},
		})
	}

	sb := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(actorOr).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(intervalOr)

	if dbmetrics.IsInTransaction(ctx) {
		sb = sb.Suffix("FOR UPDATE")
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindBetweenUsers loads, in one query, every booking between tutorID
// and studentID whose status is in the active set, in {COMPLETED,
// SCHEDULED}, or overlaps [candidateStart, candidateEnd), the single
// lookup the create booking command needs for its conflict and
// free-trial checks.
func (r *Repository) FindBetweenUsers(ctx context.Context, tutorID, studentID int64, candidateStart, candidateEnd time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"host_id": tutorID}).
		Where(squirrel.Eq{"participant_id": studentID}).
		Where(squirrel.Or{
			squirrel.Eq{"status": activeStatusStrings()},
			squirrel.Eq{"status": []domain.BookingStatus{domain.StatusCompleted, domain.StatusScheduled}},
			squirrel.And{
				squirrel.Lt{"start_time": candidateEnd},
				squirrel.Gt{"end_time": candidateStart},
			},
		}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBetweenUsers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBetweenUsers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// List returns a filtered, paginated, sorted page of bookings for GET bookings.
func (r *Repository) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	base := psqlbuilder.Select().From("bookings").
		Where(squirrel.Or{
			squirrel.Eq{"host_id": filter.UserID},
			squirrel.Eq{"participant_id": filter.UserID},
		})

	if len(filter.Statuses) > 0 {
		base = base.Where(squirrel.Eq{"status": filter.Statuses})
	}
	if filter.Type != nil {
		base = base.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.StartDate != nil {
		base = base.Where(squirrel.GtOrEq{"start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		base = base.Where(squirrel.LtOrEq{"end_time": *filter.EndDate})
	}
	if filter.Search != "" {
		base = base.Where(squirrel.ILike{"title": "%" + filter.Search + "%"})
	}

	countQuery, countArgs, err := base.Columns("count(*)").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("%w: List - execute count query: %v", ErrExecQuery, err)
	}

	sortCol, secondaryCol := "start_time", "created_at"
	if filter.SortField == SortByCreatedAt {
		sortCol, secondaryCol = "created_at", "start_time"
	}
	direction := "DESC"
	if filter.SortDirection == SortAsc {
		direction = "ASC"
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	} else if limit > 100 {
		limit = 100
	}

	selectQuery, selectArgs, err := base.Columns(bookingColumns...).
		OrderBy(fmt.Sprintf("%s %s, %s %s", sortCol, direction, secondaryCol, direction)).
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, selectQuery, selectArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}

	return &ListResult{Items: items, Total: total}, nil
}

func activeStatusStrings() []domain.BookingStatus {
	return domain.ActiveStatuses
}

func withPrefix(prefix string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = prefix + "." + c
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func scanBookingRow(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.Booking, error) {
	var b domain.Booking
	var description sql.NullString
	var participantID sql.NullInt64
	var recurringTemplateID sql.NullInt64

	err := scanner.Scan(
		&b.ID, &b.Title, &description, &b.StartTime, &b.EndTime, &b.Type, &b.Status,
		&b.HostID, &participantID, &b.ServiceID, &recurringTemplateID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		b.Description = &description.String
	}
	if participantID.Valid {
		b.Participants = []int64{participantID.Int64}
	}
	if recurringTemplateID.Valid {
		b.RecurringTemplateID = &recurringTemplateID.Int64
	}

	return &b, nil
}

func scanBookingWithPayment(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	var description sql.NullString
	var participantID sql.NullInt64
	var recurringTemplateID sql.NullInt64
	var paymentID sql.NullInt64
	var sessionID, sessionURL, paymentIntentID, chargeID sql.NullString
	var metadataRaw []byte

	err := row.Scan(
		&b.ID, &b.Title, &description, &b.StartTime, &b.EndTime, &b.Type, &b.Status,
		&b.HostID, &participantID, &b.ServiceID, &recurringTemplateID,
		&b.CreatedAt, &b.UpdatedAt,
		&paymentID, &sessionID, &sessionURL, &paymentIntentID, &chargeID, &metadataRaw,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		b.Description = &description.String
	}
	if participantID.Valid {
		b.Participants = []int64{participantID.Int64}
	}
	if recurringTemplateID.Valid {
		b.RecurringTemplateID = &recurringTemplateID.Int64
	}

	if paymentID.Valid {
		payment := &domain.Payment{ID: paymentID.Int64, BookingID: b.ID}
		if sessionID.Valid {
			payment.SessionID = &sessionID.String
		}
		if sessionURL.Valid {
			payment.SessionURL = &sessionURL.String
		}
		if paymentIntentID.Valid {
			payment.PaymentIntentID = &paymentIntentID.String
		}
		if chargeID.Valid {
			payment.ChargeID = &chargeID.String
		}
		if len(metadataRaw) > 0 {
			_ = json.Unmarshal(metadataRaw, &payment.Metadata)
		}
		b.Payment = payment
	}

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}
	return bookings, nil
}
