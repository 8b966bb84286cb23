package affiliate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	"github.com/m04kA/BBQ-RentalService/pkg/dbmetrics"
	"github.com/m04kA/BBQ-RentalService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var (
	linkColumns = []string{
		"id",
		"user_id",
		"custom_url",
		"commission_rate",
		"is_active",
		"clicks",
		"total_commission",
		"created_at",
	}

	commissionColumns = []string{
		"id",
		"affiliate_link_id",
		"booking_id",
		"amount",
		"status",
		"created_at",
		"processed_at",
	}
)

// Repository репозиторий реферальных ссылок и начислений комиссии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateLink создает ссылку; занятый адрес - ErrURLTaken
func (r *Repository) CreateLink(ctx context.Context, link *domain.AffiliateLink) (*domain.AffiliateLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("affiliate_links").
		Columns("user_id", "custom_url", "commission_rate", "is_active").
		Values(link.UserID, link.CustomURL, link.CommissionRate, link.IsActive).
		Suffix("RETURNING id, clicks, total_commission, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLink - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&link.ID, &link.Clicks, &link.TotalCommission, &link.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrURLTaken
		}
		return nil, fmt.Errorf("%w: CreateLink - execute insert: %v", ErrExecQuery, err)
	}

	return link, nil
}

// GetLinkByID получает ссылку по ID
func (r *Repository) GetLinkByID(ctx context.Context, id int64) (*domain.AffiliateLink, error) {
	return r.getLink(ctx, "GetLinkByID", squirrel.Eq{"id": id})
}

// GetLinkByURL получает ссылку по её адресу
func (r *Repository) GetLinkByURL(ctx context.Context, customURL string) (*domain.AffiliateLink, error) {
	return r.getLink(ctx, "GetLinkByURL", squirrel.Eq{"custom_url": customURL})
}

func (r *Repository) getLink(ctx context.Context, op string, where squirrel.Eq) (*domain.AffiliateLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(linkColumns...).
		From("affiliate_links").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	link, err := scanLink(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan link: %v", ErrScanRow, op, err)
	}

	return link, nil
}

// ListLinks все ссылки, новые первыми
func (r *Repository) ListLinks(ctx context.Context) ([]*domain.AffiliateLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(linkColumns...).
		From("affiliate_links").
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLinks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLinks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	links := make([]*domain.AffiliateLink, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListLinks - scan row: %v", ErrScanRow, err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLinks - rows error: %v", ErrScanRow, err)
	}

	return links, nil
}

// IncrementClicks увеличивает счетчик переходов по ссылке
func (r *Repository) IncrementClicks(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("affiliate_links").
		Set("clicks", squirrel.Expr("clicks + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementClicks - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "IncrementClicks", query, args, ErrLinkNotFound)
}

// AddCommission увеличивает накопленную комиссию по ссылке
func (r *Repository) AddCommission(ctx context.Context, id int64, amount decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("affiliate_links").
		Set("total_commission", squirrel.Expr("total_commission + ?", amount)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddCommission - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "AddCommission", query, args, ErrLinkNotFound)
}

// CreateCommission записывает начисление по бронированию
func (r *Repository) CreateCommission(ctx context.Context, tx *domain.CommissionTransaction) (*domain.CommissionTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("commission_transactions").
		Columns("affiliate_link_id", "booking_id", "amount", "status").
		Values(tx.AffiliateLinkID, tx.BookingID, tx.Amount, string(tx.Status)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCommission - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&tx.ID, &tx.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateCommission - execute insert: %v", ErrExecQuery, err)
	}

	return tx, nil
}

// GetCommission получает начисление; в транзакции строка блокируется
func (r *Repository) GetCommission(ctx context.Context, id int64) (*domain.CommissionTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(commissionColumns...).
		From("commission_transactions").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCommission - build select query: %v", ErrBuildQuery, err)
	}

	tx, err := scanCommission(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCommission - scan: %v", ErrScanRow, err)
	}

	return tx, nil
}

// ListCommissions начисления; status == nil - все
func (r *Repository) ListCommissions(ctx context.Context, status *domain.CommissionStatus) ([]*domain.CommissionTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(commissionColumns...).
		From("commission_transactions").
		OrderBy("id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCommissions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCommissions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make([]*domain.CommissionTransaction, 0)
	for rows.Next() {
		tx, err := scanCommission(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListCommissions - scan row: %v", ErrScanRow, err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCommissions - rows error: %v", ErrScanRow, err)
	}

	return out, nil
}

// MarkProcessed переводит начисление в processed
func (r *Repository) MarkProcessed(ctx context.Context, id int64, processedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("commission_transactions").
		Set("status", string(domain.CommissionProcessed)).
		Set("processed_at", processedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkProcessed - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "MarkProcessed", query, args, ErrCommissionNotFound)
}

func execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notFound error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLink(row rowScanner) (*domain.AffiliateLink, error) {
	var link domain.AffiliateLink
	err := row.Scan(
		&link.ID,
		&link.UserID,
		&link.CustomURL,
		&link.CommissionRate,
		&link.IsActive,
		&link.Clicks,
		&link.TotalCommission,
		&link.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func scanCommission(row rowScanner) (*domain.CommissionTransaction, error) {
	var tx domain.CommissionTransaction
	err := row.Scan(
		&tx.ID,
		&tx.AffiliateLinkID,
		&tx.BookingID,
		&tx.Amount,
		&tx.Status,
		&tx.CreatedAt,
		&tx.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
