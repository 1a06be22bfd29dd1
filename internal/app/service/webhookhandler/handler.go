package webhookhandler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/stockbrief/membership/internal/app/service/entitlement"
	"github.com/stockbrief/membership/internal/app/service/webhooklog"
	"github.com/stockbrief/membership/internal/models"
	"github.com/stockbrief/membership/pkg/config"
	"github.com/stockbrief/membership/pkg/types"
)

// RevenueCatEvent is the subset of the webhook payload we act on.
type RevenueCatEvent struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	AppUserID        string   `json:"app_user_id"`
	ProductID        string   `json:"product_id"`
	EntitlementIDs   []string `json:"entitlement_ids"`
	EventTimestampMs int64    `json:"event_timestamp_ms"`
	ExpirationAtMs   int64    `json:"expiration_at_ms"`
}

type RevenueCatPayload struct {
	APIVersion string          `json:"api_version"`
	Event      RevenueCatEvent `json:"event"`
}

const (
	eventTest            = "TEST"
	eventInitialPurchase = "INITIAL_PURCHASE"
	eventRenewal         = "RENEWAL"
	eventProductChange   = "PRODUCT_CHANGE"
	eventUncancellation  = "UNCANCELLATION"
	eventCancellation    = "CANCELLATION"
	eventExpiration      = "EXPIRATION"
)

type Handler struct {
	cfg    *config.Config
	logSvc *webhooklog.Service
	entSvc *entitlement.Service
	Logger *zap.SugaredLogger
}

func NewHandler(cfg *config.Config, logSvc *webhooklog.Service, entSvc *entitlement.Service, log *zap.SugaredLogger) *Handler {
	return &Handler{cfg: cfg, logSvc: logSvc, entSvc: entSvc, Logger: log}
}

// HandleRevenueCat verifies, records and dispatches one webhook delivery.
func (h *Handler) HandleRevenueCat(c *gin.Context) (resErr error) {
	if secret := h.cfg.RevenueCat.WebhookSecret; secret != "" {
		if c.GetHeader("Authorization") != secret {
			return fmt.Errorf("webhook authorization mismatch")
		}
	}

	var payload RevenueCatPayload
	body, err := c.GetRawData()
	if err != nil {
		return fmt.Errorf("failed to read webhook body: %w", err)
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("failed to parse webhook body: %w", err)
	}
	ev := payload.Event

	var traceID string
	if v, ok := c.Get("traceID"); ok {
		if s, ok2 := v.(string); ok2 {
			traceID = s
		}
	}

	eventTime := time.Now()
	if ev.EventTimestampMs > 0 {
		eventTime = time.UnixMilli(ev.EventTimestampMs)
	}
	userID := func() *string {
		if ev.AppUserID == "" {
			return nil
		}
		return lo.ToPtr(ev.AppUserID)
	}

	h.logSvc.Save(c.Request.Context(), &models.WebhookLog{
		ProviderID: string(types.StoreProviderRevenueCat),
		UserID:     userID(),
		TraceID:    traceID,
		EventID:    ev.ID,
		EventType:  ev.Type,
		EventTime:  eventTime,
		Data:       datatypes.JSON(body),
		Status:     models.WebhookLogStatusReceived,
	})

	defer func() {
		resMap := map[string]any{"event_type": ev.Type}
		if resErr != nil {
			resMap["error"] = resErr.Error()
		}
		resBytes, _ := json.Marshal(resMap)
		status := models.WebhookLogStatusHandled
		if resErr != nil {
			status = models.WebhookLogStatusHandleFailed
		}
		h.logSvc.Save(c.Request.Context(), &models.WebhookLog{
			ProviderID: string(types.StoreProviderRevenueCat),
			UserID:     userID(),
			TraceID:    traceID,
			EventID:    ev.ID,
			EventType:  ev.Type,
			EventTime:  time.Now(),
			Data:       datatypes.JSON(body),
			Result:     func() *datatypes.JSON { j := datatypes.JSON(resBytes); return &j }(),
			Status:     status,
		})
	}()

	resErr = h.dispatch(c, &ev)
	return resErr
}

func (h *Handler) dispatch(c *gin.Context, ev *RevenueCatEvent) error {
	switch ev.Type {
	case eventTest:
		h.Logger.Infow("received test webhook event", "event_id", ev.ID)
		return nil
	case eventInitialPurchase, eventRenewal, eventProductChange, eventUncancellation:
		return h.applyPurchase(c, ev)
	case eventCancellation:
		// Auto-renew turned off; access is kept until the paid period ends.
		h.Logger.Infow("subscription cancelled, keeping access until expiry",
			"user_id", ev.AppUserID, "product_id", ev.ProductID)
		return nil
	case eventExpiration:
		if ev.AppUserID == "" {
			return fmt.Errorf("expiration event without app_user_id")
		}
		return h.entSvc.DeactivateStoreSubscription(c.Request.Context(), ev.AppUserID,
			types.EntitlementChangeReasonWebhook, map[string]any{
				"event_id":   ev.ID,
				"event_type": ev.Type,
				"product_id": ev.ProductID,
			})
	default:
		return fmt.Errorf("unsupported event type: %s", ev.Type)
	}
}

func (h *Handler) applyPurchase(c *gin.Context, ev *RevenueCatEvent) error {
	if ev.AppUserID == "" {
		return fmt.Errorf("%s event without app_user_id", ev.Type)
	}
	var entitlementName string
	if len(ev.EntitlementIDs) > 0 {
		entitlementName = ev.EntitlementIDs[0]
	}
	tier, err := h.entSvc.TierForProduct(ev.ProductID, entitlementName)
	if err != nil {
		return err
	}
	if ev.ExpirationAtMs <= 0 {
		return fmt.Errorf("%s event without expiration_at_ms", ev.Type)
	}
	return h.entSvc.SyncStoreSubscription(c.Request.Context(), &entitlement.StoreSyncRequest{
		UserID:         ev.AppUserID,
		Tier:           tier,
		ProductID:      ev.ProductID,
		ExpirationDate: time.UnixMilli(ev.ExpirationAtMs),
		Reason:         types.EntitlementChangeReasonWebhook,
		Extra: map[string]any{
			"event_id":   ev.ID,
			"event_type": ev.Type,
		},
	})
}
