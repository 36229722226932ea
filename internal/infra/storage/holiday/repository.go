package holiday

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var holidayColumns = []string{
	"id",
	"holiday_date",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с внеплановыми закрытиями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория закрытий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись о закрытии
func (r *Repository) Create(ctx context.Context, override *domain.HolidayOverride) (*domain.HolidayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holiday_overrides").
		Columns(
			"holiday_date",
			"start_time",
			"end_time",
			"reason",
		).
		Values(
			override.Date,
			override.StartTime,
			override.EndTime,
			override.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time

	return override, nil
}

// ListByDate получает все закрытия на конкретную дату.
// Отсутствие записей - не ошибка: день просто открыт целиком.
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]domain.HolidayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holidayColumns...).
		From("holiday_overrides").
		Where(squirrel.Eq{"holiday_date": date}).
		OrderBy("start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanOverrides(rows)
}

// ListByRange получает закрытия за период. Обе границы опциональны.
func (r *Repository) ListByRange(ctx context.Context, from, to *time.Time) ([]domain.HolidayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(holidayColumns...).
		From("holiday_overrides")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"holiday_date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"holiday_date": *to})
	}

	query, args, err := selectBuilder.
		OrderBy("holiday_date ASC, start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanOverrides(rows)
}

// Delete удаляет закрытие по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holiday_overrides").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHolidayNotFound
	}

	return nil
}

// scanOverrides сканирует результаты запроса в слайс закрытий
func (r *Repository) scanOverrides(rows *sql.Rows) ([]domain.HolidayOverride, error) {
	overrides := make([]domain.HolidayOverride, 0)

	for rows.Next() {
		var override domain.HolidayOverride
		var startTime, endTime, reason sql.NullString
		var createdAt sql.NullTime

		err := rows.Scan(
			&override.ID,
			&override.Date,
			&startTime,
			&endTime,
			&reason,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanOverrides - scan row: %v", ErrScanRow, err)
		}

		if startTime.Valid {
			parsed, err := types.NewTimeStringFromString(startTime.String)
			if err != nil {
				return nil, fmt.Errorf("%w: scanOverrides - start_time: %v", ErrScanRow, err)
			}
			override.StartTime = &parsed
		}
		if endTime.Valid {
			parsed, err := types.NewTimeStringFromString(endTime.String)
			if err != nil {
				return nil, fmt.Errorf("%w: scanOverrides - end_time: %v", ErrScanRow, err)
			}
			override.EndTime = &parsed
		}
		if reason.Valid {
			override.Reason = &reason.String
		}

		override.CreatedAt = createdAt.Time

		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}
