package usecase

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/zabal-art/zabal-hub/internal/domain"
)

var notificationTracer = otel.Tracer("notification")

// NotificationUsecase stores per-user push tokens delivered by miniapp
// lifecycle webhooks and relays notification sends through the social-graph
// provider's managed service.
type NotificationUsecase struct {
	repo   NotificationRepository
	social SocialGraph
	appURL string
	signal Signal
}

func NewNotificationUsecase(repo NotificationRepository, social SocialGraph, appURL string, signal Signal) *NotificationUsecase {
	return &NotificationUsecase{
		repo:   repo,
		social: social,
		appURL: appURL,
		signal: signal,
	}
}

// WebhookEvent is a miniapp lifecycle event from the host platform.
type WebhookEvent struct {
	Event               string `json:"event"`
	FID                 int64  `json:"fid"`
	NotificationDetails *struct {
		Token string `json:"token"`
		URL   string `json:"url"`
	} `json:"notificationDetails"`
}

// HandleWebhook applies one lifecycle event. Unknown event types are
// acknowledged without effect so the platform does not re-deliver them.
func (uc *NotificationUsecase) HandleWebhook(ctx context.Context, event WebhookEvent) error {
	ctx, span := notificationTracer.Start(ctx, "Notification.HandleWebhook")
	defer span.End()

	switch event.Event {
	case domain.EventMiniappAdded, domain.EventNotificationsEnabled:
		if event.NotificationDetails == nil {
			return nil
		}
		err := uc.repo.UpsertToken(ctx, domain.NotificationToken{
			FID:             event.FID,
			Token:           event.NotificationDetails.Token,
			NotificationURL: event.NotificationDetails.URL,
			Enabled:         true,
		})
		if err != nil {
			span.RecordError(err)
			return errors.Wrap(err, "failed to store notification token")
		}

	case domain.EventMiniappRemoved, domain.EventNotificationsDisabled:
		if err := uc.repo.DisableTokens(ctx, event.FID); err != nil {
			span.RecordError(err)
			return errors.Wrap(err, "failed to disable notification tokens")
		}

	default:
		// acknowledged, ignored
	}

	if uc.signal != nil {
		if err := uc.signal.Publish(ctx, domain.Event{
			Type:      event.Event,
			FID:       event.FID,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			span.RecordError(err)
		}
	}

	return nil
}

// Send relays a notification through the provider. An empty targetFids
// targets every opted-in user.
func (uc *NotificationUsecase) Send(ctx context.Context, title, body, targetURL string, targetFids []int64) error {
	ctx, span := notificationTracer.Start(ctx, "Notification.Send")
	defer span.End()

	if title == "" || body == "" {
		return domain.InvalidInputError{Reason: "missing required fields: title, body"}
	}
	if targetURL == "" {
		targetURL = uc.appURL
	}

	if err := uc.social.SendNotification(ctx, title, body, targetURL, targetFids); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "provider notification send failed")
	}

	if err := uc.repo.LogSend(ctx, title, body, targetURL, targetFids); err != nil {
		// the send already happened; a log failure is not user-visible
		span.RecordError(err)
	}

	return nil
}

// DailyReminder sends the cron-triggered voting reminder to all users.
func (uc *NotificationUsecase) DailyReminder(ctx context.Context) error {
	return uc.Send(ctx,
		"🗳️ Time to Vote!",
		"Cast your vote for today's ZABAL stream direction. Voting closes soon!",
		uc.appURL,
		nil,
	)
}
