package bid

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BidDTO struct {
	ID        string    `json:"id"`
	LotID     string    `json:"lot_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    float64   `json:"amount"`
	State     string    `json:"state" example:"PENDING"`
	CreatedAt time.Time `json:"created_at"`
}

type LotSummaryDTO struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	State            string  `json:"state"`
	MinimumBetAmount float64 `json:"minimum_bet_amount"`
}

// UserBidDTO is a bid placed by a user with the lot it targets embedded.
type UserBidDTO struct {
	BidID        string        `json:"bid_id"`
	Amount       float64       `json:"amount"`
	State        string        `json:"state"`
	BidCreatedAt time.Time     `json:"bid_created_at"`
	Lot          LotSummaryDTO `json:"lot"`
}

var ErrLotNotFound = errors.New("lot not found")

// BidTooLowError reports a rejected bid together with the floor the caller
// would have to meet.
type BidTooLowError struct {
	Floor float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid amount must be at least %.2f", e.Floor)
}

type IBidService interface {
	PlaceBid(ctx context.Context, lotID, bidderID string, amount float64) (*BidDTO, error)
	ListByLot(ctx context.Context, lotID string) ([]BidDTO, error)
	ListByBidder(ctx context.Context, userID string) ([]UserBidDTO, error)
	MaxBidForLot(ctx context.Context, lotID string) (float64, error)
}

type bidService struct {
	db *sql.DB
}

func NewBidService(db *sql.DB) IBidService {
	return &bidService{db: db}
}

// PlaceBid enforces the floor rule: a new bid must meet or exceed both the
// lot's minimum and the current highest bid. The check and the insert run in
// one serializable transaction so two concurrent bids cannot both read the
// same floor and both commit.
func (svc *bidService) PlaceBid(ctx context.Context, lotID, bidderID string, amount float64) (*BidDTO, error) {
	tx, err := svc.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var minAmount float64
	err = tx.QueryRowContext(ctx,
		`SELECT minimum_bet_amount FROM lot WHERE id = $1`, lotID).Scan(&minAmount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}

	var maxBid float64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(amount), 0) FROM bid WHERE lot_id = $1`, lotID).Scan(&maxBid)
	if err != nil {
		return nil, err
	}

	floor := minAmount
	if maxBid > floor {
		floor = maxBid
	}
	if amount < floor {
		return nil, &BidTooLowError{Floor: floor}
	}

	dto := &BidDTO{LotID: lotID, BidderID: bidderID, Amount: amount}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO bid (id, lot_id, bidder_id, amount)
		      VALUES ($1, $2, $3, $4)
		   RETURNING id, state, created_at`,
		uuid.NewString(), lotID, bidderID, amount,
	).Scan(&dto.ID, &dto.State, &dto.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return dto, nil
}

func (svc *bidService) ListByLot(ctx context.Context, lotID string) ([]BidDTO, error) {
	const q = `SELECT id, lot_id, bidder_id, amount, state, created_at
                 FROM bid WHERE lot_id = $1 ORDER BY created_at ASC`

	rows, err := svc.db.QueryContext(ctx, q, lotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]BidDTO, 0)
	for rows.Next() {
		var b BidDTO
		if err := rows.Scan(&b.ID, &b.LotID, &b.BidderID, &b.Amount, &b.State, &b.CreatedAt); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

func (svc *bidService) ListByBidder(ctx context.Context, userID string) ([]UserBidDTO, error) {
	const q = `SELECT b.id, b.amount, b.state, b.created_at,
                      l.id, l.name, l.state, l.minimum_bet_amount
                 FROM bid b
                 JOIN lot l ON b.lot_id = l.id
                WHERE b.bidder_id = $1
                ORDER BY b.created_at DESC`

	rows, err := svc.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]UserBidDTO, 0)
	for rows.Next() {
		var b UserBidDTO
		if err := rows.Scan(&b.BidID, &b.Amount, &b.State, &b.BidCreatedAt,
			&b.Lot.ID, &b.Lot.Name, &b.Lot.State, &b.Lot.MinimumBetAmount); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

func (svc *bidService) MaxBidForLot(ctx context.Context, lotID string) (float64, error) {
	var maxBid float64
	err := svc.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(amount), 0) FROM bid WHERE lot_id = $1`, lotID).Scan(&maxBid)
	return maxBid, err
}
