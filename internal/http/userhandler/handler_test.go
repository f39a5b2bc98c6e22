package userhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auctiondata/internal/services/bid"
	"auctiondata/internal/services/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type userServiceStub struct {
	listFn func(ctx context.Context) ([]user.UserDTO, error)
	getFn  func(ctx context.Context, id string) (*user.UserDTO, error)
}

func (s *userServiceStub) ListUsers(ctx context.Context) ([]user.UserDTO, error) {
	return s.listFn(ctx)
}
func (s *userServiceStub) GetUser(ctx context.Context, id string) (*user.UserDTO, error) {
	return s.getFn(ctx, id)
}

type bidServiceStub struct {
	listByBidderFn func(ctx context.Context, userID string) ([]bid.UserBidDTO, error)
}

func (s *bidServiceStub) PlaceBid(context.Context, string, string, float64) (*bid.BidDTO, error) {
	panic("not used")
}
func (s *bidServiceStub) ListByLot(context.Context, string) ([]bid.BidDTO, error) {
	panic("not used")
}
func (s *bidServiceStub) ListByBidder(ctx context.Context, userID string) ([]bid.UserBidDTO, error) {
	return s.listByBidderFn(ctx, userID)
}
func (s *bidServiceStub) MaxBidForLot(context.Context, string) (float64, error) {
	panic("not used")
}

func newRouter(users user.IUserService, bids bid.IBidService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(users, bids).Register(router)
	return router
}

func TestListUsers(t *testing.T) {
	now := time.Now().UTC()
	users := &userServiceStub{
		listFn: func(context.Context) ([]user.UserDTO, error) {
			return []user.UserDTO{{ID: "user1", Name: "Jane", Surname: "Doe",
				Email: "jane@example.com", CreatedAt: now}}, nil
		},
	}
	router := newRouter(users, &bidServiceStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var out []user.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.Equal(t, "jane@example.com", out[0].Email)
}

func TestGetUser_NotFound(t *testing.T) {
	users := &userServiceStub{
		getFn: func(context.Context, string) (*user.UserDTO, error) {
			return nil, user.ErrUserNotFound
		},
	}
	router := newRouter(users, &bidServiceStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/missing", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, user.ErrUserNotFound.Error(), resp.Error)
}

func TestListUserBids_UnknownUserIs404(t *testing.T) {
	users := &userServiceStub{
		getFn: func(context.Context, string) (*user.UserDTO, error) {
			return nil, user.ErrUserNotFound
		},
	}
	// the bid service must not be reached for an unknown user
	router := newRouter(users, &bidServiceStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/missing/bids", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUserBids(t *testing.T) {
	now := time.Now().UTC()
	users := &userServiceStub{
		getFn: func(_ context.Context, id string) (*user.UserDTO, error) {
			return &user.UserDTO{ID: id, Name: "Jane", CreatedAt: now}, nil
		},
	}
	bids := &bidServiceStub{
		listByBidderFn: func(context.Context, string) ([]bid.UserBidDTO, error) {
			return []bid.UserBidDTO{{
				BidID:        "bid1",
				Amount:       75,
				State:        "WON",
				BidCreatedAt: now,
				Lot:          bid.LotSummaryDTO{ID: "lot1", Name: "Clock", State: "CLOSED", MinimumBetAmount: 50},
			}}, nil
		},
	}
	router := newRouter(users, bids)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/user1/bids", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var out []bid.UserBidDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.Equal(t, "Clock", out[0].Lot.Name)
}
