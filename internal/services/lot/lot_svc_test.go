package lot

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (ILotService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewLotService(db), mock
}

var lotColumns = []string{"id", "name", "description", "state", "minimum_bet_amount",
	"seller_id", "created_at", "active_till"}

func TestListLots(t *testing.T) {
	svc, mock := newMock(t)
	now := time.Now().UTC()

	filter := ListFilter{States: []string{"ACTIVE"}, Search: "clock"}
	query, _ := buildListQuery(filter)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "state", "minimum_bet_amount",
		"seller_id", "created_at", "active_till",
		"seller_name", "seller_surname", "seller_email", "max_bid"}).
		AddRow("lot1", "Clock", "Antique clock", "ACTIVE", 50.0, "seller1", now, nil,
			"Jane", "Doe", "jane@example.com", 120.0).
		AddRow("lot2", "Wall clock", "No bids yet", "ACTIVE", 30.0, "seller2", now, now.Add(48*time.Hour),
			"John", "Smith", "john@example.com", 0.0)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("ACTIVE", "%clock%", "%clock%").
		WillReturnRows(rows)

	list, err := svc.ListLots(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.Equal(t, "lot1", list[0].ID)
	require.Equal(t, "jane@example.com", list[0].SellerEmail)
	require.Equal(t, 120.0, list[0].MaxBid)
	require.Nil(t, list[0].ActiveTill)

	require.Equal(t, 0.0, list[1].MaxBid)
	require.NotNil(t, list[1].ActiveTill)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLot(t *testing.T) {
	svc, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, state, minimum_bet_amount,
                      seller_id, created_at, active_till
                 FROM lot WHERE id = $1`)).
		WithArgs("lot1").
		WillReturnRows(sqlmock.NewRows(lotColumns).
			AddRow("lot1", "Clock", "Antique clock", "DRAFT", 50.0, "seller1", now, nil))

	dto, err := svc.GetLot(context.Background(), "lot1")
	require.NoError(t, err)
	require.Equal(t, "Clock", dto.Name)
	require.Equal(t, "DRAFT", dto.State)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLot_NotFound(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectQuery("SELECT id, name, description").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(lotColumns))

	_, err := svc.GetLot(context.Background(), "missing")
	require.ErrorIs(t, err, ErrLotNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLot_ForcesDraftState(t *testing.T) {
	svc, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO lot (id, name, description, state, seller_id, minimum_bet_amount, active_till)
                    VALUES ($1, $2, $3, 'DRAFT', $4, $5, $6)`)).
		WithArgs(sqlmock.AnyArg(), "Clock", "Antique clock", "seller1", 50.0, nil).
		WillReturnRows(sqlmock.NewRows(lotColumns).
			AddRow("lot1", "Clock", "Antique clock", "DRAFT", 50.0, "seller1", now, nil))

	dto, err := svc.CreateLot(context.Background(), NewLot{
		Name:             "Clock",
		Description:      "Antique clock",
		MinimumBetAmount: 50.0,
		SellerID:         "seller1",
	})
	require.NoError(t, err)
	require.Equal(t, "DRAFT", dto.State)
	require.Equal(t, "lot1", dto.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLot_PartialPatch(t *testing.T) {
	svc, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM lot WHERE id = $1)`)).
		WithArgs("lot1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE lot SET name = $1, state = $2 WHERE id = $3`)).
		WithArgs("Renamed", "ACTIVE", "lot1").
		WillReturnRows(sqlmock.NewRows(lotColumns).
			AddRow("lot1", "Renamed", "Antique clock", "ACTIVE", 50.0, "seller1", now, nil))

	name := "Renamed"
	state := "ACTIVE"
	dto, err := svc.UpdateLot(context.Background(), "lot1", LotPatch{Name: &name, State: &state})
	require.NoError(t, err)
	require.Equal(t, "Renamed", dto.Name)
	require.Equal(t, "ACTIVE", dto.State)
	// untouched columns keep their stored values
	require.Equal(t, "Antique clock", dto.Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLot_EmptyPatchWritesNothing(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM lot WHERE id = $1)`)).
		WithArgs("lot1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.UpdateLot(context.Background(), "lot1", LotPatch{})
	require.ErrorIs(t, err, ErrNoFieldsToUpdate)
	// no UPDATE was expected; any write would fail ExpectationsWereMet
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLot_NotFound(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM lot WHERE id = $1)`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	name := "Renamed"
	_, err := svc.UpdateLot(context.Background(), "missing", LotPatch{Name: &name})
	require.ErrorIs(t, err, ErrLotNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLot(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM lot WHERE id = $1`)).
		WithArgs("lot1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.DeleteLot(context.Background(), "lot1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLot_NotFound(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM lot WHERE id = $1`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.DeleteLot(context.Background(), "missing")
	require.ErrorIs(t, err, ErrLotNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
