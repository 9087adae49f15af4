// Package business implements subscription management
package business

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Conte777/MinaAlerts/config"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/consts"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/deps"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/dto"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/entities"
	suberrors "github.com/Conte777/MinaAlerts/internal/domain/subscription/errors"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/keys"
	pkgerrors "github.com/Conte777/MinaAlerts/pkg/errors"
)

// UseCase implements deps.SubscriptionUseCase
type UseCase struct {
	store        deps.SubscriptionStore
	producer     deps.EventProducer
	metrics      deps.MetricsRecorder
	validate     *validator.Validate
	maxSubs      int
	retryMax     uint64
	retryInitial time.Duration
	logger       zerolog.Logger
}

// NewUseCase creates a new subscription use case
func NewUseCase(
	store deps.SubscriptionStore,
	producer deps.EventProducer,
	metrics deps.MetricsRecorder,
	cfg *config.SubscriptionConfig,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		store:        store,
		producer:     producer,
		metrics:      metrics,
		validate:     validator.New(),
		maxSubs:      cfg.MaxSubs,
		retryMax:     cfg.RetryMax,
		retryInitial: cfg.RetryInitialDelay,
		logger:       logger,
	}
}

var _ deps.SubscriptionUseCase = (*UseCase)(nil)

// MaxSubscriptions returns the per-category quota
func (u *UseCase) MaxSubscriptions() int {
	return u.maxSubs
}

// Subscribe creates a subscription of identity to public key alerts in category
func (u *UseCase) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	if err := u.validateIdentity(req.Identity); err != nil {
		return nil, err
	}

	if err := u.validateKey(req.PublicKey); err != nil {
		return nil, err
	}

	category, ok := entities.ParseCategory(req.Category)
	if !ok {
		return nil, suberrors.ErrUnknownCategory
	}

	var id uint
	err := u.withRetry(ctx, "subscribe", func() error {
		return u.store.Atomic(ctx, req.Identity, func(store deps.SubscriptionStore) error {
			existing, err := store.Find(ctx, category, req.Identity, req.PublicKey)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return suberrors.ErrAlreadySubscribed
			}

			ids, err := store.IDs(ctx, category, req.Identity)
			if err != nil {
				return err
			}
			if len(ids) >= u.maxSubs {
				return suberrors.ErrQuotaExceeded
			}

			id, err = store.Insert(ctx, category, req.Identity, req.PublicKey)
			return err
		})
	})
	if errors.Is(err, suberrors.ErrDuplicateSubscription) {
		err = suberrors.ErrAlreadySubscribed
	}
	if err != nil {
		u.logFailure(err, req.Identity, "subscribe").
			Str("category", string(category)).
			Str("public_key", req.PublicKey).
			Msg("subscribe rejected")
		return nil, err
	}

	u.publish(ctx, consts.EventTypeSubscribed, category, req.Identity, req.PublicKey)

	u.logger.Info().
		Int64("user_id", req.Identity.TelegramID).
		Str("category", string(category)).
		Str("public_key", req.PublicKey).
		Uint("subscription_id", id).
		Msg("subscription created")

	return &dto.SubscribeResponse{
		ID:        id,
		Category:  category,
		PublicKey: req.PublicKey,
	}, nil
}

// Unsubscribe removes either one subscription or, with the single
// argument "all", every subscription of identity in both categories.
func (u *UseCase) Unsubscribe(ctx context.Context, req *dto.UnsubscribeRequest) (*dto.UnsubscribeResponse, error) {
	if err := u.validateIdentity(req.Identity); err != nil {
		return nil, err
	}

	var (
		resp    *dto.UnsubscribeResponse
		removed []entities.Subscription
	)
	err := u.withRetry(ctx, "unsubscribe", func() error {
		resp, removed = nil, nil
		return u.store.Atomic(ctx, req.Identity, func(store deps.SubscriptionStore) error {
			var err error
			resp, removed, err = u.unsubscribe(ctx, store, req)
			return err
		})
	})
	if err != nil {
		u.logFailure(err, req.Identity, "unsubscribe").
			Strs("args", req.Args).
			Msg("unsubscribe rejected")
		return nil, err
	}

	for i := range removed {
		u.publish(ctx, consts.EventTypeUnsubscribed, removed[i].Category, req.Identity, removed[i].PublicKey)
	}

	u.logger.Info().
		Int64("user_id", req.Identity.TelegramID).
		Bool("all", resp.All).
		Int("removed", resp.Removed).
		Msg("subscriptions removed")

	return resp, nil
}

func (u *UseCase) unsubscribe(
	ctx context.Context,
	store deps.SubscriptionStore,
	req *dto.UnsubscribeRequest,
) (*dto.UnsubscribeResponse, []entities.Subscription, error) {
	var all []entities.Subscription
	for _, category := range entities.Categories {
		rows, err := store.List(ctx, category, req.Identity)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, rows...)
	}

	if len(all) == 0 {
		return nil, nil, suberrors.ErrNothingToUnsubscribe
	}

	switch {
	case len(req.Args) == 1 && strings.EqualFold(req.Args[0], consts.ArgumentAll):
		byCategory := make(map[entities.Category][]uint, len(entities.Categories))
		for _, row := range all {
			byCategory[row.Category] = append(byCategory[row.Category], row.ID)
		}
		for _, category := range entities.Categories {
			if err := store.Delete(ctx, category, byCategory[category]); err != nil {
				return nil, nil, err
			}
		}
		return &dto.UnsubscribeResponse{All: true, Removed: len(all)}, all, nil

	case len(req.Args) == 2:
		publicKey := req.Args[1]
		if err := u.validateKey(publicKey); err != nil {
			return nil, nil, err
		}

		category, ok := entities.ParseCategory(req.Args[0])
		if !ok {
			return nil, nil, suberrors.ErrUnknownCategory
		}

		ids, err := store.Find(ctx, category, req.Identity, publicKey)
		if err != nil {
			return nil, nil, err
		}
		if len(ids) == 0 {
			return nil, nil, suberrors.ErrNotSubscribed
		}

		if err := store.Delete(ctx, category, ids); err != nil {
			return nil, nil, err
		}

		removed := []entities.Subscription{{Category: category, PublicKey: publicKey}}
		return &dto.UnsubscribeResponse{
			Category:  category,
			PublicKey: publicKey,
			Removed:   len(ids),
		}, removed, nil

	default:
		return nil, nil, suberrors.ErrMalformedRequest
	}
}

// List returns every live subscription of identity, blocks first
func (u *UseCase) List(ctx context.Context, req *dto.ListRequest) (*dto.ListResponse, error) {
	if err := u.validateIdentity(req.Identity); err != nil {
		return nil, err
	}

	var items []dto.SubscriptionItem
	err := u.withRetry(ctx, "list", func() error {
		items = items[:0]
		for _, category := range entities.Categories {
			rows, err := u.store.List(ctx, category, req.Identity)
			if err != nil {
				return err
			}
			for _, row := range rows {
				items = append(items, dto.SubscriptionItem{
					Category:  category,
					PublicKey: row.PublicKey,
					CreatedAt: row.CreatedAt,
				})
			}
		}
		return nil
	})
	if err != nil {
		u.logFailure(err, req.Identity, "list").Msg("failed to list subscriptions")
		return nil, err
	}

	return &dto.ListResponse{
		Subscriptions:  items,
		MaxPerCategory: u.maxSubs,
	}, nil
}

func (u *UseCase) validateIdentity(identity entities.Identity) error {
	if err := u.validate.Struct(identity); err != nil {
		u.logger.Debug().Err(err).Int64("user_id", identity.TelegramID).Msg("invalid identity")
		return fmt.Errorf("%w: %v", suberrors.ErrMalformedRequest, err)
	}
	return nil
}

func (u *UseCase) validateKey(publicKey string) error {
	if err := keys.Validate(publicKey); err != nil {
		u.logger.Debug().
			Errs("violations", keys.ValidateAll(publicKey)).
			Str("public_key", publicKey).
			Msg("public key rejected")
		return err
	}
	return nil
}

// withRetry runs op, retrying while the store reports it is unavailable.
// Every other error stops the loop immediately.
func (u *UseCase) withRetry(ctx context.Context, operation string, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = u.retryInitial

	attempt := func() error {
		start := time.Now()
		err := op()
		if isStoreError(err) {
			u.metrics.ObserveStoreOperation(operation, time.Since(start), err)
		} else {
			u.metrics.ObserveStoreOperation(operation, time.Since(start), nil)
		}

		if err != nil && !pkgerrors.IsUnavailableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		u.logger.Warn().Err(err).
			Str("operation", operation).
			Dur("retry_in", next).
			Msg("subscription store unavailable, retrying")
	}

	return backoff.RetryNotify(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, u.retryMax), ctx), notify)
}

// isStoreError separates infrastructure failures from domain rejections
// such as quota or validation errors returned inside a transaction.
func isStoreError(err error) bool {
	return errors.Is(err, suberrors.ErrStoreUnavailable) ||
		errors.Is(err, suberrors.ErrQueryFailed) ||
		errors.Is(err, suberrors.ErrDuplicateSubscription) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

func (u *UseCase) publish(ctx context.Context, eventType string, category entities.Category, identity entities.Identity, publicKey string) {
	event := &dto.SubscriptionChangedEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Category:   string(category),
		TelegramID: identity.TelegramID,
		PublicKey:  publicKey,
		Timestamp:  time.Now().Unix(),
	}

	err := u.producer.PublishSubscriptionChanged(ctx, event)
	u.metrics.ObserveEventPublish(eventType, err)
	if err != nil {
		u.logger.Error().Err(err).
			Str("event_id", event.ID).
			Str("event_type", eventType).
			Int64("user_id", identity.TelegramID).
			Msg("failed to publish subscription event")
	}
}

func (u *UseCase) logFailure(err error, identity entities.Identity, command string) *zerolog.Event {
	event := u.logger.Info()
	if isStoreError(err) {
		event = u.logger.Error()
	}
	return event.Err(err).
		Int64("user_id", identity.TelegramID).
		Str("command", command)
}
