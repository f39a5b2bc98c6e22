package analytics

import (
	"context"
	"database/sql"
	"math"
	"time"
)

type TopSellerDTO struct {
	SellerID      string  `json:"seller_id"`
	SellerName    string  `json:"seller_name"`
	SellerSurname string  `json:"seller_surname"`
	TotalEarned   float64 `json:"total_earned"`
}

type LotDurationDTO struct {
	LotID        string  `json:"lot_id"`
	LotName      string  `json:"lot_name"`
	DurationDays float64 `json:"duration_days"`
}

type PaymentStatDTO struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ActiveLotDTO struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	State            string     `json:"state"`
	MinimumBetAmount float64    `json:"minimum_bet_amount"`
	SellerID         string     `json:"seller_id"`
	CreatedAt        time.Time  `json:"created_at"`
	ActiveTill       *time.Time `json:"active_till,omitempty"`
}

type IAnalyticsService interface {
	TopSellers(ctx context.Context, limit int) ([]TopSellerDTO, error)
	LotDurations(ctx context.Context) ([]LotDurationDTO, error)
	AverageLotDuration(ctx context.Context) (float64, error)
	PaymentStats(ctx context.Context) ([]PaymentStatDTO, error)
	AverageLotPrice(ctx context.Context) (float64, error)
	TopActiveLots(ctx context.Context, n int) ([]ActiveLotDTO, error)
}

type analyticsService struct {
	db *sql.DB
}

func NewAnalyticsService(db *sql.DB) IAnalyticsService {
	return &analyticsService{db: db}
}

// TopSellers ranks sellers by the total amount of their lots' WON bids.
func (svc *analyticsService) TopSellers(ctx context.Context, limit int) ([]TopSellerDTO, error) {
	const q = `SELECT u.id AS seller_id, u.name AS seller_name, u.surname AS seller_surname,
                      SUM(b.amount) AS total_earned
                 FROM lot l
                 JOIN "user" u ON l.seller_id = u.id
                 JOIN bid b ON b.lot_id = l.id
                WHERE b.state = 'WON'
                GROUP BY u.id, u.name, u.surname
                ORDER BY total_earned DESC
                LIMIT $1`

	rows, err := svc.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sellers := make([]TopSellerDTO, 0, limit)
	for rows.Next() {
		var s TopSellerDTO
		if err := rows.Scan(&s.SellerID, &s.SellerName, &s.SellerSurname, &s.TotalEarned); err != nil {
			return nil, err
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

func (svc *analyticsService) LotDurations(ctx context.Context) ([]LotDurationDTO, error) {
	const q = `SELECT id AS lot_id, name AS lot_name,
                      EXTRACT(EPOCH FROM (active_till - created_at)) / 86400 AS duration_days
                 FROM lot
                WHERE active_till IS NOT NULL`

	rows, err := svc.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	durations := make([]LotDurationDTO, 0)
	for rows.Next() {
		var d LotDurationDTO
		if err := rows.Scan(&d.LotID, &d.LotName, &d.DurationDays); err != nil {
			return nil, err
		}
		durations = append(durations, d)
	}
	return durations, rows.Err()
}

// AverageLotDuration returns the mean lifetime in days over lots that have an
// expiry set, or 0 when none do.
func (svc *analyticsService) AverageLotDuration(ctx context.Context) (float64, error) {
	const q = `SELECT EXTRACT(EPOCH FROM (active_till - created_at)) / 86400
                 FROM lot
                WHERE active_till IS NOT NULL`

	rows, err := svc.db.QueryContext(ctx, q)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var sum float64
	var count int
	for rows.Next() {
		var days float64
		if err := rows.Scan(&days); err != nil {
			return 0, err
		}
		sum += days
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

// PaymentStats counts payments per status. Percentages are rounded to two
// decimal places; a store with no payments yields 0% across the board.
func (svc *analyticsService) PaymentStats(ctx context.Context) ([]PaymentStatDTO, error) {
	const q = `SELECT status, COUNT(*) AS count FROM payment GROUP BY status ORDER BY status`

	rows, err := svc.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]PaymentStatDTO, 0)
	total := 0
	for rows.Next() {
		var s PaymentStatDTO
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		total += s.Count
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range stats {
		if total > 0 {
			stats[i].Percentage = round2(float64(stats[i].Count) / float64(total) * 100)
		}
	}
	return stats, nil
}

// AverageLotPrice returns the mean of the current highest bids over lots that
// have at least one bid, or 0 when no lot does.
func (svc *analyticsService) AverageLotPrice(ctx context.Context) (float64, error) {
	const q = `SELECT MAX(amount) FROM bid GROUP BY lot_id`

	rows, err := svc.db.QueryContext(ctx, q)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var sum float64
	var count int
	for rows.Next() {
		var maxBid float64
		if err := rows.Scan(&maxBid); err != nil {
			return 0, err
		}
		sum += maxBid
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

// TopActiveLots returns the n most recently created lots in state ACTIVE.
func (svc *analyticsService) TopActiveLots(ctx context.Context, n int) ([]ActiveLotDTO, error) {
	const q = `SELECT id, name, description, state, minimum_bet_amount,
                      seller_id, created_at, active_till
                 FROM lot
                WHERE state = 'ACTIVE'
                ORDER BY created_at DESC
                LIMIT $1`

	rows, err := svc.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lots := make([]ActiveLotDTO, 0, n)
	for rows.Next() {
		var l ActiveLotDTO
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.State,
			&l.MinimumBetAmount, &l.SellerID, &l.CreatedAt, &l.ActiveTill); err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
