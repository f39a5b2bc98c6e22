package http_server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"auctiondata/internal/http/analyticshandler"
	"auctiondata/internal/http/bidhandler"
	"auctiondata/internal/http/lothandler"
	"auctiondata/internal/http/userhandler"
	"auctiondata/internal/services/analytics"
	"auctiondata/internal/services/bid"
	"auctiondata/internal/services/lot"
	"auctiondata/internal/services/user"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type httpServer struct {
	listenPort       uint16
	srv              http.Server
	ln               net.Listener
	ctx              context.Context
	lotService       lot.ILotService
	bidService       bid.IBidService
	userService      user.IUserService
	analyticsService analytics.IAnalyticsService
}

func NewHttpServer(ctx context.Context, listenPort uint16,
	lotService lot.ILotService, bidService bid.IBidService,
	userService user.IUserService, analyticsService analytics.IAnalyticsService) *httpServer {
	return &httpServer{
		listenPort:       listenPort,
		ctx:              ctx,
		lotService:       lotService,
		bidService:       bidService,
		userService:      userService,
		analyticsService: analyticsService,
	}
}

func (h *httpServer) Start() error {
	var err error
	listenAddr := fmt.Sprintf(":%d", h.listenPort)
	h.ln, err = net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	routerEngine := gin.New()

	routerEngine.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))
	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	// REST API
	lothandler.New(h.lotService, h.bidService).Register(routerEngine)
	bidhandler.New(h.bidService).Register(routerEngine)
	userhandler.New(h.userService, h.bidService).Register(routerEngine)
	analyticshandler.New(h.analyticsService).Register(routerEngine)

	h.srv = http.Server{
		Handler: routerEngine,
	}

	go func() {
		<-h.ctx.Done()
		_ = h.Dispose()
	}()

	if err := h.srv.Serve(h.ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Dispose gracefully shuts the HTTP server down.
// It waits up to 10 s for in-flight requests to finish.
func (h *httpServer) Dispose() error {
	// The server context is already cancelled by the time Dispose runs,
	// so the drain deadline hangs off a fresh context.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err // e.g. active conns didn't finish in time
	}

	if ctx.Err() == context.DeadlineExceeded {
		zap.L().Error("http_dispose", zap.Error(errors.New("shutdown timed out")))
	}

	return nil
}
