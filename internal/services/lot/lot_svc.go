package lot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LotDTO struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	State            string     `json:"state" example:"ACTIVE"`
	MinimumBetAmount float64    `json:"minimum_bet_amount"`
	SellerID         string     `json:"seller_id"`
	CreatedAt        time.Time  `json:"created_at"`
	ActiveTill       *time.Time `json:"active_till,omitempty"`
}

// ListedLotDTO is one row of the filtered listing: the lot, its seller's
// identity and the current highest bid (0 when the lot has no bids).
type ListedLotDTO struct {
	LotDTO
	SellerName    string  `json:"seller_name"`
	SellerSurname string  `json:"seller_surname"`
	SellerEmail   string  `json:"seller_email"`
	MaxBid        float64 `json:"max_bid"`
}

type NewLot struct {
	Name             string
	Description      string
	MinimumBetAmount float64
	SellerID         string
	ActiveTill       *time.Time
}

// LotPatch carries a sparse update: nil fields are left untouched.
type LotPatch struct {
	Name             *string
	Description      *string
	MinimumBetAmount *float64
	ActiveTill       *time.Time
	State            *string
}

var (
	ErrLotNotFound      = errors.New("lot not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

type ILotService interface {
	ListLots(ctx context.Context, f ListFilter) ([]ListedLotDTO, error)
	GetLot(ctx context.Context, id string) (*LotDTO, error)
	CreateLot(ctx context.Context, in NewLot) (*LotDTO, error)
	UpdateLot(ctx context.Context, id string, patch LotPatch) (*LotDTO, error)
	DeleteLot(ctx context.Context, id string) error
}

type lotService struct {
	db *sql.DB
}

func NewLotService(db *sql.DB) ILotService {
	return &lotService{db: db}
}

func (svc *lotService) ListLots(ctx context.Context, f ListFilter) ([]ListedLotDTO, error) {
	query, args := buildListQuery(f)

	rows, err := svc.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]ListedLotDTO, 0)
	for rows.Next() {
		var l ListedLotDTO
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.State,
			&l.MinimumBetAmount, &l.SellerID, &l.CreatedAt, &l.ActiveTill,
			&l.SellerName, &l.SellerSurname, &l.SellerEmail, &l.MaxBid); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (svc *lotService) GetLot(ctx context.Context, id string) (*LotDTO, error) {
	const q = `SELECT id, name, description, state, minimum_bet_amount,
                      seller_id, created_at, active_till
                 FROM lot WHERE id = $1`

	dto := &LotDTO{}
	err := svc.db.QueryRowContext(ctx, q, id).Scan(&dto.ID, &dto.Name,
		&dto.Description, &dto.State, &dto.MinimumBetAmount,
		&dto.SellerID, &dto.CreatedAt, &dto.ActiveTill)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	return dto, nil
}

// CreateLot inserts a new lot. The state is always DRAFT regardless of input.
func (svc *lotService) CreateLot(ctx context.Context, in NewLot) (*LotDTO, error) {
	const q = `INSERT INTO lot (id, name, description, state, seller_id, minimum_bet_amount, active_till)
                    VALUES ($1, $2, $3, 'DRAFT', $4, $5, $6)
                 RETURNING id, name, description, state, minimum_bet_amount, seller_id, created_at, active_till`

	dto := &LotDTO{}
	err := svc.db.QueryRowContext(ctx, q,
		uuid.NewString(), in.Name, in.Description, in.SellerID, in.MinimumBetAmount, in.ActiveTill,
	).Scan(&dto.ID, &dto.Name, &dto.Description, &dto.State,
		&dto.MinimumBetAmount, &dto.SellerID, &dto.CreatedAt, &dto.ActiveTill)
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// UpdateLot applies the non-nil patch fields. Column names are fixed literals,
// never derived from caller input.
func (svc *lotService) UpdateLot(ctx context.Context, id string, patch LotPatch) (*LotDTO, error) {
	var exists bool
	err := svc.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM lot WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrLotNotFound
	}

	var (
		sets     []string
		args     []any
		argIndex = 1
	)
	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.MinimumBetAmount != nil {
		set("minimum_bet_amount", *patch.MinimumBetAmount)
	}
	if patch.ActiveTill != nil {
		set("active_till", *patch.ActiveTill)
	}
	if patch.State != nil {
		set("state", *patch.State)
	}
	if len(sets) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	query := fmt.Sprintf(`UPDATE lot SET %s WHERE id = $%d
	          RETURNING id, name, description, state, minimum_bet_amount, seller_id, created_at, active_till`,
		strings.Join(sets, ", "), argIndex)
	args = append(args, id)

	dto := &LotDTO{}
	err = svc.db.QueryRowContext(ctx, query, args...).Scan(&dto.ID, &dto.Name,
		&dto.Description, &dto.State, &dto.MinimumBetAmount,
		&dto.SellerID, &dto.CreatedAt, &dto.ActiveTill)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (svc *lotService) DeleteLot(ctx context.Context, id string) error {
	res, err := svc.db.ExecContext(ctx, `DELETE FROM lot WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLotNotFound
	}
	return nil
}
