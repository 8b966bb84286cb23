package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	affiliateRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/affiliate"
)

// AffiliateRepository ссылки и начисления в памяти
type AffiliateRepository struct {
	s *Store
}

// CreateLink создает ссылку; адрес уникален
func (r *AffiliateRepository) CreateLink(ctx context.Context, link *domain.AffiliateLink) (*domain.AffiliateLink, error) {
	err := r.s.run(ctx, func(st *state) error {
		for _, existing := range st.links {
			if existing.CustomURL == link.CustomURL {
				return affiliateRepo.ErrURLTaken
			}
		}

		st.linkSeq++
		link.ID = st.linkSeq
		link.Clicks = 0
		link.TotalCommission = decimal.Zero
		link.CreatedAt = r.s.now()

		st.links[link.ID] = *link
		return nil
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// GetLinkByID ссылка по id
func (r *AffiliateRepository) GetLinkByID(ctx context.Context, id int64) (*domain.AffiliateLink, error) {
	var out *domain.AffiliateLink
	err := r.s.run(ctx, func(st *state) error {
		l, ok := st.links[id]
		if !ok {
			return affiliateRepo.ErrLinkNotFound
		}
		out = &l
		return nil
	})
	return out, err
}

// GetLinkByURL ссылка по адресу
func (r *AffiliateRepository) GetLinkByURL(ctx context.Context, customURL string) (*domain.AffiliateLink, error) {
	var out *domain.AffiliateLink
	err := r.s.run(ctx, func(st *state) error {
		for _, l := range st.links {
			if l.CustomURL == customURL {
				found := l
				out = &found
				return nil
			}
		}
		return affiliateRepo.ErrLinkNotFound
	})
	return out, err
}

// ListLinks все ссылки, новые первыми
func (r *AffiliateRepository) ListLinks(ctx context.Context) ([]*domain.AffiliateLink, error) {
	out := make([]*domain.AffiliateLink, 0)
	err := r.s.run(ctx, func(st *state) error {
		for _, l := range st.links {
			found := l
			out = append(out, &found)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// IncrementClicks +1 переход
func (r *AffiliateRepository) IncrementClicks(ctx context.Context, id int64) error {
	return r.s.run(ctx, func(st *state) error {
		l, ok := st.links[id]
		if !ok {
			return affiliateRepo.ErrLinkNotFound
		}
		l.Clicks++
		st.links[id] = l
		return nil
	})
}

// AddCommission увеличивает накопленную комиссию ссылки
func (r *AffiliateRepository) AddCommission(ctx context.Context, id int64, amount decimal.Decimal) error {
	return r.s.run(ctx, func(st *state) error {
		l, ok := st.links[id]
		if !ok {
			return affiliateRepo.ErrLinkNotFound
		}
		l.TotalCommission = l.TotalCommission.Add(amount)
		st.links[id] = l
		return nil
	})
}

// CreateCommission записывает начисление
func (r *AffiliateRepository) CreateCommission(ctx context.Context, tx *domain.CommissionTransaction) (*domain.CommissionTransaction, error) {
	err := r.s.run(ctx, func(st *state) error {
		st.commissionSeq++
		tx.ID = st.commissionSeq
		tx.CreatedAt = r.s.now()

		c := *tx
		c.ProcessedAt = copyPtr(tx.ProcessedAt)
		st.commissions[tx.ID] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// GetCommission начисление по id
func (r *AffiliateRepository) GetCommission(ctx context.Context, id int64) (*domain.CommissionTransaction, error) {
	var out *domain.CommissionTransaction
	err := r.s.run(ctx, func(st *state) error {
		c, ok := st.commissions[id]
		if !ok {
			return affiliateRepo.ErrCommissionNotFound
		}
		c.ProcessedAt = copyPtr(c.ProcessedAt)
		out = &c
		return nil
	})
	return out, err
}

// ListCommissions начисления; status == nil - все
func (r *AffiliateRepository) ListCommissions(ctx context.Context, status *domain.CommissionStatus) ([]*domain.CommissionTransaction, error) {
	out := make([]*domain.CommissionTransaction, 0)
	err := r.s.run(ctx, func(st *state) error {
		for _, c := range st.commissions {
			if status != nil && c.Status != *status {
				continue
			}
			found := c
			found.ProcessedAt = copyPtr(c.ProcessedAt)
			out = append(out, &found)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// MarkProcessed переводит начисление в processed
func (r *AffiliateRepository) MarkProcessed(ctx context.Context, id int64, processedAt time.Time) error {
	return r.s.run(ctx, func(st *state) error {
		c, ok := st.commissions[id]
		if !ok {
			return affiliateRepo.ErrCommissionNotFound
		}
		c.Status = domain.CommissionProcessed
		c.ProcessedAt = &processedAt
		st.commissions[id] = c
		return nil
	})
}
