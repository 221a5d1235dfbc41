package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidInterval     = errors.New("reserved_from must be strictly before reserved_until")
	ErrEquipmentNotFound   = errors.New("equipment not found")
	ErrMaterialNotFound    = errors.New("material not found")
	ErrAllocationNotFound  = errors.New("allocation not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrDuplicateUsageLog   = errors.New("usage already logged for this equipment, date and work entry")
)

// ConflictError reports an overlapping active reservation. Both the advisory
// pre-check and the storage-level exclusion constraint resolve to this type,
// so callers see one shape regardless of which layer caught the overlap.
type ConflictError struct {
	ReservationID string
	ProjectName   string
	ReservedBy    string
	From          time.Time
	Until         time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("equipment already reserved from %s until %s",
		e.From.Format(time.RFC3339), e.Until.Format(time.RFC3339))
}

// ValidationError names the violated bound so handlers can surface it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// DailyLimitError carries the total that the rejected entry would have
// produced for the equipment/date pair.
type DailyLimitError struct {
	AttemptedHours float64
	LimitHours     float64
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily usage limit exceeded: %.2fh attempted, %.2fh allowed", e.AttemptedHours, e.LimitHours)
}

// Postgres SQLSTATEs for the constraints created in Migrate.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
