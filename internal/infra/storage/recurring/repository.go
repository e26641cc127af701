// Package recurring is the Postgres-backed data-access layer that owns
// RecurringTemplate rows and their RecurringTimeSlot children, backing
// the recurrence expander's pre-condition queries and the final
// persist step of a recurring booking request.
package recurring

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/pkg/dbmetrics"
	"github.com/tutorly/booking-engine/pkg/psqlbuilder"
	"github.com/tutorly/booking-engine/pkg/types"
)

// Repository persists RecurringTemplate rows and their time slots.
type Repository struct {
	db DBExecutor
}

// NewRepository builds a Repository over db (either *sql.DB or a
// metrics-wrapped *dbmetrics.DB).
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts tpl and its TimeSlots, returning tpl with generated
// ids. Must run inside the caller's transaction alongside the child
// bookings insert so the template and its instances commit atomically.
func (r *Repository) Create(ctx context.Context, tpl *domain.RecurringTemplate) (*domain.RecurringTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("recurring_templates").
		Columns("host_id", "recurrence_pattern", "duration_minutes", "status").
		Values(tpl.HostID, tpl.RecurrencePattern, tpl.DurationMinutes, tpl.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&tpl.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	for i := range tpl.TimeSlots {
		slot := &tpl.TimeSlots[i]
		slot.TemplateID = tpl.ID

		slotQuery, slotArgs, err := psqlbuilder.Insert("recurring_time_slots").
			Columns("template_id", "weekday", "hour", "minute").
			Values(slot.TemplateID, int(slot.Weekday), slot.TimeOfDay.Hour, slot.TimeOfDay.Minute).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build slot insert query: %v", ErrBuildQuery, err)
		}
		if err := executor.QueryRowContext(ctx, slotQuery, slotArgs...).Scan(&slot.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - execute slot insert: %v", ErrExecQuery, err)
		}
	}

	return tpl, nil
}

// FindActiveSlotsForHost returns every {weekday, timeOfDay} window
// belonging to an ACTIVE template for hostID, the set new time slots
// are checked against for RECURRING_TEMPLATE_CONFLICT before expansion
// even runs.
func (r *Repository) FindActiveSlotsForHost(ctx context.Context, hostID int64) ([]ActiveSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("s.template_id", "s.weekday", "s.hour", "s.minute").
		From("recurring_time_slots s").
		Join("recurring_templates t ON t.id = s.template_id").
		Where(squirrel.Eq{"t.host_id": hostID}).
		Where(squirrel.Eq{"t.status": domain.RecurringTemplateActive}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveSlotsForHost - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveSlotsForHost - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]ActiveSlot, 0)
	for rows.Next() {
		var s ActiveSlot
		var weekday, hour, minute int
		if err := rows.Scan(&s.TemplateID, &weekday, &hour, &minute); err != nil {
			return nil, fmt.Errorf("%w: FindActiveSlotsForHost - scan row: %v", ErrScanRow, err)
		}
		s.Weekday = types.Weekday(weekday)
		s.TimeOfDay = types.NewLocalTimeOfDay(hour, minute)
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindActiveSlotsForHost - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByID loads a template by id, without its time slots, mostly for
// completeness of the contract; the expander only needs the slot
// projection above.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RecurringTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "host_id", "recurrence_pattern", "duration_minutes", "status").
		From("recurring_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var tpl domain.RecurringTemplate
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&tpl.ID, &tpl.HostID, &tpl.RecurrencePattern, &tpl.DurationMinutes, &tpl.Status)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return &tpl, nil
}
