package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	"github.com/m04kA/BBQ-RentalService/pkg/dbmetrics"
	"github.com/m04kA/BBQ-RentalService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"user_id",
	"location_id",
	"package_id",
	"customer_name",
	"customer_phone",
	"booking_date",
	"time_slot",
	"status",
	"payment_status",
	"delivery_status",
	"bbq_count",
	"actual_start_time",
	"actual_end_time",
	"cleanup_contribution",
	"cleanup_amount",
	"assigned_bbq_id",
	"affiliate_link_id",
	"commission_paid",
	"notes",
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

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Вместимость слота здесь не проверяется, это задача use case.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"location_id",
			"package_id",
			"customer_name",
			"customer_phone",
			"booking_date",
			"time_slot",
			"status",
			"payment_status",
			"delivery_status",
			"bbq_count",
			"cleanup_contribution",
			"cleanup_amount",
			"affiliate_link_id",
			"notes",
		).
		Values(
			booking.UserID,
			booking.LocationID,
			booking.PackageID,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.Date.Format(domain.DateFormat),
			string(booking.TimeSlot),
			string(booking.Status),
			string(booking.PaymentStatus),
			string(booking.DeliveryStatus),
			booking.BBQCount,
			booking.CleanupContribution,
			nullDecimal(booking.CleanupAmount),
			booking.AffiliateLinkID,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку до конца изменения
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру.
// Отмененные исключаются, если фильтр не просит их явно.
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := listQuery(filter, dbmetrics.IsInTransaction(ctx))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Update сохраняет изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("customer_name", booking.CustomerName).
		Set("customer_phone", booking.CustomerPhone).
		Set("booking_date", booking.Date.Format(domain.DateFormat)).
		Set("time_slot", string(booking.TimeSlot)).
		Set("status", string(booking.Status)).
		Set("payment_status", string(booking.PaymentStatus)).
		Set("delivery_status", string(booking.DeliveryStatus)).
		Set("actual_start_time", booking.ActualStartTime).
		Set("actual_end_time", booking.ActualEndTime).
		Set("assigned_bbq_id", booking.AssignedBBQID).
		Set("commission_paid", booking.CommissionPaid).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в порядке columns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var cleanupAmount decimal.NullDecimal

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.LocationID,
		&booking.PackageID,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.Date,
		&booking.TimeSlot,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.DeliveryStatus,
		&booking.BBQCount,
		&booking.ActualStartTime,
		&booking.ActualEndTime,
		&booking.CleanupContribution,
		&cleanupAmount,
		&booking.AssignedBBQID,
		&booking.AffiliateLinkID,
		&booking.CommissionPaid,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cleanupAmount.Valid {
		booking.CleanupAmount = &cleanupAmount.Decimal
	}
	booking.Date = domain.CalendarDay(booking.Date, booking.Date.Location())

	return &booking, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func bookingStatusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func deliveryStatusStrings(statuses []domain.DeliveryStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// listQuery строит выборку по фильтру; отмененные исключаются, если статусы не заданы явно
func listQuery(filter domain.BookingFilter, inTx bool) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).From("bookings")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.To.Format(domain.DateFormat)})
	}

	// Фильтрация по статусу
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": bookingStatusStrings(filter.Statuses)})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.BookingStatusCancelled)})
	}

	if len(filter.DeliveryStatuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"delivery_status": deliveryStatusStrings(filter.DeliveryStatuses)})
	}

	if filter.Date != nil {
		// Для конкретной даты порядок совпадает с порядком слотов
		selectBuilder = selectBuilder.OrderBy("time_slot ASC", "id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "time_slot DESC", "id DESC")
	}

	// В транзакции создания бронирования блокируем строки дня
	if inTx && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder
}
