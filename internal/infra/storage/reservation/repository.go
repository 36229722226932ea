package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL unique_violation
const pqUniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"user_id",
	"reservation_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с позициями услуг.
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Позиции вставляются в том же контексте, что и бронирование: при вызове
// внутри транзакции (usecase создания бронирования) вставка атомарна.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"reservation_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
		).
		Values(
			reservation.UserID,
			reservation.Date,
			reservation.StartTime,
			reservation.EndTime,
			reservation.DurationMinutes,
			reservation.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	for i := range reservation.Lines {
		line := &reservation.Lines[i]
		line.ReservationID = reservation.ID

		lineQuery, lineArgs, err := psqlbuilder.Insert("reservation_lines").
			Columns(
				"reservation_id",
				"service_id",
				"service_name",
				"duration_minutes",
				"order_index",
			).
			Values(
				line.ReservationID,
				line.ServiceID,
				line.ServiceName,
				line.DurationMinutes,
				line.OrderIndex,
			).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: Create - build line insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, lineQuery, lineArgs...).Scan(&line.ID); err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("%w: Create - order_index=%d: %v", ErrDuplicateLine, line.OrderIndex, err)
			}
			return nil, fmt.Errorf("%w: Create - execute line insert: %v", ErrExecQuery, err)
		}
	}

	return reservation, nil
}

// GetByID получает бронирование по ID вместе с позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.Date,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.DurationMinutes,
		&reservation.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	lines, err := r.loadLines(ctx, executor, reservation.ID)
	if err != nil {
		return nil, err
	}
	reservation.Lines = lines

	return &reservation, nil
}

// ListWithFilter получает бронирования с гибкой фильтрацией.
// Поддерживает фильтрацию по дате, пользователю, статусу и включению
// неактивных бронирований (отмененных, no-show).
//
// Внутри транзакции выборка на конкретную дату блокирует строки (FOR UPDATE) -
// это путь проверки конфликтов при создании бронирования и восстановлении статуса.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": *filter.Date})
	}

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	if filter.Date != nil {
		// Для конкретной даты сортируем по времени начала
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		// Для истории сортируем по дате и времени (сначала новые)
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	// Блокировка строк для проверки конфликтов внутри транзакции
	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования.
// Интервал и позиции при смене статуса не меняются.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// loadLines загружает позиции бронирования в порядке выполнения
func (r *Repository) loadLines(ctx context.Context, executor DBExecutor, reservationID int64) ([]domain.ReservationLine, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"service_id",
		"service_name",
		"duration_minutes",
		"order_index",
	).
		From("reservation_lines").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("order_index ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadLines - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadLines - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]domain.ReservationLine, 0)
	for rows.Next() {
		var line domain.ReservationLine
		err := rows.Scan(
			&line.ID,
			&line.ReservationID,
			&line.ServiceID,
			&line.ServiceName,
			&line.DurationMinutes,
			&line.OrderIndex,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: loadLines - scan row: %v", ErrScanRow, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadLines - rows error: %v", ErrScanRow, err)
	}

	return lines, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var reservation domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&reservation.ID,
			&reservation.UserID,
			&reservation.Date,
			&reservation.StartTime,
			&reservation.EndTime,
			&reservation.DurationMinutes,
			&reservation.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		reservation.CreatedAt = createdAt.Time
		reservation.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// isUniqueViolation распознает нарушение уникальности PostgreSQL
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}
