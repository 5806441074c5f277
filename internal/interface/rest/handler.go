package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/zabal-art/zabal-hub/internal/domain"
	"github.com/zabal-art/zabal-hub/internal/interface/rest/middleware"
	"github.com/zabal-art/zabal-hub/internal/interface/rest/presenter"
	"github.com/zabal-art/zabal-hub/internal/service"
	"github.com/zabal-art/zabal-hub/internal/share"
	"github.com/zabal-art/zabal-hub/internal/usecase"
)

type Handler struct {
	votePower    *usecase.VotePowerUsecase
	leaderboard  *usecase.LeaderboardUsecase
	sync         *usecase.SyncUsecase
	notification *usecase.NotificationUsecase
	signal       *service.SignalService
	auth         *middleware.AuthMiddleware
}

func NewHandler(
	votePower *usecase.VotePowerUsecase,
	leaderboard *usecase.LeaderboardUsecase,
	sync *usecase.SyncUsecase,
	notification *usecase.NotificationUsecase,
	signal *service.SignalService,
	auth *middleware.AuthMiddleware,
) *Handler {
	return &Handler{
		votePower:    votePower,
		leaderboard:  leaderboard,
		sync:         sync,
		notification: notification,
		signal:       signal,
		auth:         auth,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/vote-power", h.handleVotePower)
	e.GET("/api/leaderboard", h.handleLeaderboard)
	e.POST("/api/leaderboard", h.handleUpdateConfig)
	e.GET("/api/empire-leaderboard", h.handleEmpireLeaderboard)
	e.POST("/api/sync-empire-builder", h.handleSync)
	e.POST("/api/update-leaderboard-users", h.handleUpdateUsers)
	e.POST("/api/webhook", h.handleWebhook)
	e.POST("/api/send-notification", h.handleSendNotification)
	e.GET("/api/share-message", h.handleShareMessage)
	e.GET("/api/cron/daily-reminder", h.handleDailyReminder, h.auth.RequireCronSecret)
	e.GET("/realtime", h.handleRealtime)
}

type votePowerResponse struct {
	Success bool `json:"success"`
	domain.VotePower
}

func (h *Handler) handleVotePower(c echo.Context) error {
	ctx := c.Request().Context()

	fidStr := c.QueryParam("fid")
	if fidStr == "" {
		return presenter.Error(c, http.StatusBadRequest, "Missing fid parameter")
	}
	fid, err := strconv.ParseInt(fidStr, 10, 64)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid fid parameter")
	}

	vp, err := h.votePower.Compute(ctx, fid)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		slog.ErrorContext(
			ctx, "Vote power calculation failed",
			slog.String("error", err.Error()),
			slog.Int64("fid", fid),
			slog.String("module", "rest"),
		)
		// callers still get a usable floor value
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
			"power": domain.BasePower,
		})
	}

	return presenter.OK(c, votePowerResponse{Success: true, VotePower: vp})
}

func (h *Handler) handleLeaderboard(c echo.Context) error {
	ctx := c.Request().Context()

	if fidStr := c.QueryParam("fid"); fidStr != "" {
		fid, err := strconv.ParseInt(fidStr, 10, 64)
		if err != nil {
			return presenter.Fail(c, http.StatusBadRequest, "Invalid fid parameter")
		}

		rank, err := h.leaderboard.GetUserRank(ctx, fid)
		if err != nil {
			return presenter.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return presenter.OK(c, echo.Map{"success": true, "data": rank})
	}

	limit := domain.DefaultLeaderboardLimit
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return presenter.Fail(c, http.StatusBadRequest, "Invalid limit parameter")
		}
		limit = parsed
	}

	entries, err := h.leaderboard.GetLeaderboard(ctx, limit)
	if err != nil {
		return presenter.Fail(c, http.StatusInternalServerError, err.Error())
	}

	return presenter.OK(c, echo.Map{
		"success": true,
		"data":    entries,
		"total":   len(entries),
	})
}

func (h *Handler) handleUpdateConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var cfg domain.LeaderboardConfig
	if err := c.Bind(&cfg); err != nil {
		return presenter.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	saved, err := h.leaderboard.UpdateConfig(ctx, cfg)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return presenter.Fail(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Fail(c, http.StatusInternalServerError, err.Error())
	}

	return presenter.OK(c, echo.Map{"success": true, "data": saved})
}

func (h *Handler) handleEmpireLeaderboard(c echo.Context) error {
	ctx := c.Request().Context()

	resolved, _, err := h.leaderboard.ResolveTopAddresses(ctx, domain.SyncTopCount)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}

	// consumers expect a bare array, empty included
	if resolved == nil {
		resolved = []domain.RankedAddress{}
	}
	return presenter.OK(c, resolved)
}

func (h *Handler) handleSync(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.sync.Sync(ctx)
	if err != nil {
		return presenter.Fail(c, http.StatusInternalServerError, err.Error())
	}

	if result.Synced == 0 {
		return presenter.OK(c, echo.Map{
			"success": true,
			"message": "No voters to sync",
			"synced":  0,
		})
	}

	return presenter.OK(c, echo.Map{
		"success":         true,
		"message":         fmt.Sprintf("Synced %d voters to Empire Builder", result.Synced),
		"synced":          result.Synced,
		"total":           result.Total,
		"transactionHash": result.TransactionHash,
	})
}

func (h *Handler) handleUpdateUsers(c echo.Context) error {
	ctx := c.Request().Context()

	updated, total, err := h.leaderboard.RefreshProfiles(ctx)
	if err != nil {
		return presenter.Fail(c, http.StatusInternalServerError, err.Error())
	}

	if total == 0 {
		return presenter.OK(c, echo.Map{
			"success": true,
			"message": "All users already have usernames and profile pictures",
			"updated": 0,
		})
	}

	return presenter.OK(c, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Updated %d users", updated),
		"updated": updated,
		"total":   total,
	})
}

func (h *Handler) handleWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	var event usecase.WebhookEvent
	if err := c.Bind(&event); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid request body")
	}

	slog.InfoContext(
		ctx, "Webhook event received",
		slog.String("event", event.Event),
		slog.Int64("fid", event.FID),
		slog.String("module", "rest"),
	)

	if err := h.notification.HandleWebhook(ctx, event); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "Failed to store token")
	}

	return presenter.OK(c, echo.Map{"success": true})
}

type sendNotificationRequest struct {
	Title      string  `json:"title"`
	Body       string  `json:"body"`
	TargetURL  string  `json:"targetUrl"`
	TargetFids []int64 `json:"targetFids"`
}

func (h *Handler) handleSendNotification(c echo.Context) error {
	ctx := c.Request().Context()

	var req sendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid request body")
	}

	err := h.notification.Send(ctx, req.Title, req.Body, req.TargetURL, req.TargetFids)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}

	return presenter.OK(c, echo.Map{
		"success": true,
		"message": "Notification sent via Neynar",
	})
}

func (h *Handler) handleShareMessage(c echo.Context) error {

	seed := time.Now().UnixNano()
	if seedStr := c.QueryParam("seed"); seedStr != "" {
		parsed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "Invalid seed parameter")
		}
		seed = parsed
	}

	opts := share.VoteOptions{
		Streak:      intParam(c, "streak"),
		VotePower:   intParam(c, "power"),
		IsFirstVote: c.QueryParam("first") == "true",
	}

	gen := share.NewGenerator(seed)

	var message string
	scenario := c.QueryParam("scenario")
	switch scenario {
	case "", "vote":
		message = gen.VoteMessage(c.QueryParam("mode"), opts)
	case "weekly-social":
		message = gen.WeeklySocialMessage(c.QueryParam("platform"), opts)
	case "leading":
		message = gen.LeadingMessage(c.QueryParam("mode"), intParam(c, "votes"))
	case "streak":
		message = share.StreakMessage(opts.Streak)
	default:
		return presenter.Error(c, http.StatusBadRequest, "Unknown scenario")
	}

	return presenter.OK(c, echo.Map{"success": true, "message": message})
}

func (h *Handler) handleDailyReminder(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.notification.DailyReminder(ctx); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "Failed to send daily reminder")
	}

	return presenter.OK(c, echo.Map{
		"success": true,
		"message": "Daily reminder sent",
	})
}

func intParam(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx := c.Request().Context()

	output := make(chan domain.Event)
	go h.signal.Realtime(ctx, output)

	quit := make(chan struct{})

	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				return
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
