package database

import (
	"context"
	"fmt"
	"time"

	"github.com/giftgrug/giftgrug/pkg/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const specialSunColumns = `
	id, user_id, name, recipient_type, occasion_type, date, reminder_days,
	COALESCE(notes, ''), reminder_14_sent, reminder_4_sent, reminder_4_enabled,
	man_remembered, man_remembered_at, created_at, updated_at
`

// SpecialSunRepository provides database operations for important dates
type SpecialSunRepository struct {
	db *DB
}

// NewSpecialSunRepository creates a new special sun repository
func NewSpecialSunRepository(db *DB) *SpecialSunRepository {
	return &SpecialSunRepository{db: db}
}

func scanSpecialSun(row pgx.Row) (*models.SpecialSun, error) {
	var s models.SpecialSun
	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.RecipientType, &s.OccasionType, &s.Date,
		&s.ReminderDays, &s.Notes, &s.Reminder14Sent, &s.Reminder4Sent,
		&s.Reminder4Enabled, &s.ManRemembered, &s.ManRememberedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSpecialSun creates a new special sun record
func (r *SpecialSunRepository) CreateSpecialSun(ctx context.Context, sun *models.SpecialSun) error {
	if sun.ID == "" {
		sun.ID = uuid.New().String()
	}

	query := `
		INSERT INTO special_suns (
			id, user_id, name, recipient_type, occasion_type, date,
			reminder_days, notes, reminder_4_enabled
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		sun.ID, sun.UserID, sun.Name, sun.RecipientType, sun.OccasionType,
		sun.Date, sun.ReminderDays, sun.Notes, sun.Reminder4Enabled,
	).Scan(&sun.CreatedAt, &sun.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create special sun: %w", err)
	}

	return nil
}

// GetSpecialSun retrieves a special sun by ID
func (r *SpecialSunRepository) GetSpecialSun(ctx context.Context, id string) (*models.SpecialSun, error) {
	query := `SELECT ` + specialSunColumns + ` FROM special_suns WHERE id = $1`

	s, err := scanSpecialSun(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("special sun not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get special sun: %w", err)
	}

	return s, nil
}

// ListUserSpecialSuns lists a user's special suns by date
func (r *SpecialSunRepository) ListUserSpecialSuns(ctx context.Context, userID string) ([]*models.SpecialSun, error) {
	query := `
		SELECT ` + specialSunColumns + `
		FROM special_suns
		WHERE user_id = $1
		ORDER BY date ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list special suns: %w", err)
	}
	defer rows.Close()

	var suns []*models.SpecialSun
	for rows.Next() {
		s, err := scanSpecialSun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan special sun: %w", err)
		}
		suns = append(suns, s)
	}

	return suns, rows.Err()
}

// UpdateSpecialSun updates a special sun record
func (r *SpecialSunRepository) UpdateSpecialSun(ctx context.Context, sun *models.SpecialSun) error {
	query := `
		UPDATE special_suns
		SET name = $2, recipient_type = $3, occasion_type = $4, date = $5,
		    reminder_days = $6, notes = NULLIF($7, ''), reminder_4_enabled = $8,
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		sun.ID, sun.Name, sun.RecipientType, sun.OccasionType, sun.Date,
		sun.ReminderDays, sun.Notes, sun.Reminder4Enabled,
	)
	if err != nil {
		return fmt.Errorf("failed to update special sun: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("special sun not found")
	}

	return nil
}

// DeleteSpecialSun removes a special sun record
func (r *SpecialSunRepository) DeleteSpecialSun(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM special_suns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete special sun: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("special sun not found")
	}

	return nil
}

// MarkRemembered marks a special sun as handled by the man
func (r *SpecialSunRepository) MarkRemembered(ctx context.Context, id string) error {
	query := `
		UPDATE special_suns
		SET man_remembered = true, man_remembered_at = now(), updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark remembered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("special sun not found")
	}

	return nil
}

// ListDueReminders returns suns whose date falls exactly leadDays from today
// and whose corresponding reminder flag is still unsent. The 4-day reminder
// is skipped once the man has marked the sun remembered.
func (r *SpecialSunRepository) ListDueReminders(ctx context.Context, today time.Time, leadDays int) ([]*models.SpecialSun, error) {
	target := today.UTC().Truncate(24 * time.Hour).AddDate(0, 0, leadDays)

	var flagClause string
	switch leadDays {
	case models.ReminderLeadLong:
		flagClause = `reminder_14_sent = false`
	case models.ReminderLeadShort:
		flagClause = `reminder_4_sent = false AND reminder_4_enabled = true AND man_remembered = false`
	default:
		return nil, fmt.Errorf("unsupported reminder lead: %d", leadDays)
	}

	query := `
		SELECT ` + specialSunColumns + `
		FROM special_suns
		WHERE date = $1 AND ` + flagClause + `
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, target)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	defer rows.Close()

	var suns []*models.SpecialSun
	for rows.Next() {
		s, err := scanSpecialSun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan special sun: %w", err)
		}
		suns = append(suns, s)
	}

	return suns, rows.Err()
}

// MarkReminderSent flips the sent flag for the given lead time
func (r *SpecialSunRepository) MarkReminderSent(ctx context.Context, id string, leadDays int) error {
	var column string
	switch leadDays {
	case models.ReminderLeadLong:
		column = "reminder_14_sent"
	case models.ReminderLeadShort:
		column = "reminder_4_sent"
	default:
		return fmt.Errorf("unsupported reminder lead: %d", leadDays)
	}

	query := fmt.Sprintf(`UPDATE special_suns SET %s = true, updated_at = now() WHERE id = $1`, column)

	_, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	return nil
}
