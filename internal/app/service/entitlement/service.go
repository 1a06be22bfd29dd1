package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stockbrief/membership/internal/models"
	"github.com/stockbrief/membership/internal/platform/apple"
	"github.com/stockbrief/membership/internal/platform/onesignal"
	"github.com/stockbrief/membership/internal/platform/revenuecat"
	"github.com/stockbrief/membership/pkg/config"
	"github.com/stockbrief/membership/pkg/logctx"
	"github.com/stockbrief/membership/pkg/tool"
	"github.com/stockbrief/membership/pkg/types"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUnknownTier      = errors.New("unknown subscription tier")
	ErrUnknownProduct   = errors.New("product not in catalog")
	ErrNoActivePurchase = errors.New("no active purchase in receipt")
)

type Service struct {
	cfg   *config.Config
	db    *gorm.DB
	log   *zap.SugaredLogger
	store *revenuecat.Client
	push  *onesignal.Client
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) (*Service, error) {
	if err := ValidateTierThresholds(); err != nil {
		return nil, fmt.Errorf("invalid tier threshold table: %w", err)
	}
	return &Service{
		cfg:   cfg,
		db:    db,
		log:   log,
		store: revenuecat.NewClient(cfg.RevenueCat.BaseURL, cfg.RevenueCat.APIKey),
		push:  onesignal.NewClient(cfg.OneSignal.BaseURL, cfg.OneSignal.AppID, cfg.OneSignal.APIKey),
	}, nil
}

// ReferralPremiumInfo is the raw referral-premium state echoed on status calls.
type ReferralPremiumInfo struct {
	Days   int        `json:"days"`
	Expiry *time.Time `json:"expiry"`
	Active bool       `json:"active"`
}

// SubscriptionInfo is the raw store-subscription state echoed on status calls.
type SubscriptionInfo struct {
	Tier      types.Tier               `json:"tier"`
	Status    types.SubscriptionStatus `json:"status"`
	Expiry    *time.Time               `json:"expiry"`
	ProductID string                   `json:"product_id"`
	Active    bool                     `json:"active"`
}

// StatusResult is the resolver output plus both raw grant sources.
type StatusResult struct {
	IsPremium bool                     `json:"is_premium"`
	Tier      types.Tier               `json:"tier"`
	ExpiresAt *time.Time               `json:"expires_at"`
	Source    *types.EntitlementSource `json:"source"`

	ReferralPremium ReferralPremiumInfo `json:"referral_premium"`
	Subscription    SubscriptionInfo    `json:"subscription"`
}

// Status resolves the active entitlement for a user at call time.
func (s *Service) Status(ctx context.Context, userID string) (*StatusResult, error) {
	user, err := s.getUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ent := Resolve(user, now)
	return &StatusResult{
		IsPremium: ent.IsPremium,
		Tier:      ent.Tier,
		ExpiresAt: ent.ExpiresAt,
		Source:    ent.Source,
		ReferralPremium: ReferralPremiumInfo{
			Days:   user.ReferralPremiumDays,
			Expiry: user.ReferralPremiumExpiry,
			Active: user.HasActiveReferralPremium(now),
		},
		Subscription: SubscriptionInfo{
			Tier:      user.SubscriptionTier,
			Status:    user.SubscriptionStatus,
			Expiry:    user.SubscriptionExpiry,
			ProductID: user.SubscriptionProductID,
			Active:    user.HasActiveStoreSubscription(now),
		},
	}, nil
}

// StoreSyncRequest carries a store-subscription state overwrite. Reason
// distinguishes the mobile sync call, webhook deliveries, receipt
// verification and server-side refreshes in the audit trail.
type StoreSyncRequest struct {
	UserID         string
	Tier           types.Tier
	ProductID      string
	ExpirationDate time.Time
	Reason         types.EntitlementChangeReason
	Extra          map[string]any
}

// SyncStoreSubscription overwrites the store-subscription fields of a user.
func (s *Service) SyncStoreSubscription(ctx context.Context, req *StoreSyncRequest) error {
	if req == nil || req.UserID == "" {
		return fmt.Errorf("invalid sync request: missing user id")
	}
	if !req.Tier.Known() || req.Tier == types.TierFree {
		return fmt.Errorf("%w: %q", ErrUnknownTier, req.Tier)
	}

	var before, after *models.EntitlementSnapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.getUser(ctx, tx, req.UserID)
		if err != nil {
			return err
		}
		before = models.SnapshotOf(user)

		exp := req.ExpirationDate
		user.SubscriptionTier = req.Tier
		user.SubscriptionStatus = types.SubscriptionStatusActive
		user.SubscriptionExpiry = &exp
		user.SubscriptionProductID = req.ProductID
		if err := tx.WithContext(ctx).Save(user).Error; err != nil {
			return fmt.Errorf("failed to update user subscription: %w", err)
		}
		after = models.SnapshotOf(user)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to sync store subscription: %w", err)
	}

	s.LogChange(ctx, req.UserID, req.Reason, before, after, req.Extra)
	if before.SubscriptionTier != after.SubscriptionTier {
		go s.notifyTierChange(ctx, req.UserID, after.SubscriptionTier)
	}
	return nil
}

// DeactivateStoreSubscription marks the store subscription inactive,
// leaving the expiry in place for the audit trail.
func (s *Service) DeactivateStoreSubscription(ctx context.Context, userID string, reason types.EntitlementChangeReason, extra map[string]any) error {
	var before, after *models.EntitlementSnapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.getUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		before = models.SnapshotOf(user)
		user.SubscriptionStatus = types.SubscriptionStatusInactive
		if err := tx.WithContext(ctx).Save(user).Error; err != nil {
			return fmt.Errorf("failed to deactivate subscription: %w", err)
		}
		after = models.SnapshotOf(user)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to deactivate store subscription: %w", err)
	}

	s.LogChange(ctx, userID, reason, before, after, extra)
	return nil
}

// RefreshFromStore pulls the subscriber from the RevenueCat API and applies
// the current store entitlement, deactivating when none is live.
func (s *Service) RefreshFromStore(ctx context.Context, userID string) error {
	sub, err := s.store.GetSubscriber(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch subscriber: %w", err)
	}

	now := time.Now()
	name, ent := sub.ActiveEntitlement(now)
	if ent == nil {
		return s.DeactivateStoreSubscription(ctx, userID, types.EntitlementChangeReasonStoreSync, nil)
	}

	tier, err := s.TierForProduct(ent.ProductIdentifier, name)
	if err != nil {
		return err
	}
	return s.SyncStoreSubscription(ctx, &StoreSyncRequest{
		UserID:         userID,
		Tier:           tier,
		ProductID:      ent.ProductIdentifier,
		ExpirationDate: *ent.ExpiresDate,
		Reason:         types.EntitlementChangeReasonStoreSync,
		Extra:          map[string]any{"entitlement": name},
	})
}

// VerifyAppleReceipt validates an App Store receipt and applies the latest
// still-active subscription row it contains.
func (s *Service) VerifyAppleReceipt(ctx context.Context, userID, receiptData string) error {
	rows, err := apple.VerifyReceipt(ctx, receiptData, &apple.VerifyReceiptOptions{
		SharedSecret: s.cfg.AppleIAP.SharedSecret,
		Sandbox:      !s.cfg.AppleIAP.IsProd,
	})
	if err != nil {
		return err
	}

	now := time.Now()
	for _, row := range rows {
		exp := row.ExpiresAt()
		if exp == nil || !exp.After(now) {
			continue
		}
		tier, err := s.TierForProduct(row.ProductID, "")
		if err != nil {
			return err
		}
		return s.SyncStoreSubscription(ctx, &StoreSyncRequest{
			UserID:         userID,
			Tier:           tier,
			ProductID:      row.ProductID,
			ExpirationDate: *exp,
			Reason:         types.EntitlementChangeReasonReceiptVerify,
			Extra:          map[string]any{"transaction_id": row.TransactionID},
		})
	}
	return ErrNoActivePurchase
}

// TierForProduct resolves a store product to a tier via the configured
// catalog, falling back to the entitlement identifier when it names a tier.
func (s *Service) TierForProduct(productID, entitlementName string) (types.Tier, error) {
	if p := s.cfg.GetStoreProductByID(productID); p != nil {
		return p.Tier, nil
	}
	if t := types.Tier(entitlementName); t.Known() && t != types.TierFree {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProduct, productID)
}

// ApplyReferralGrant mutates the user's referral-premium fields for a
// qualifying reward and mirrors the earned tier into the subscription
// columns, deliberately leaving the product id untouched so the grant never
// resolves as a store purchase. Returns the merged expiry.
func ApplyReferralGrant(u *models.User, reward Reward, now time.Time) time.Time {
	expiry := MergeExpiry(now, u.ReferralPremiumExpiry, reward.TotalDays)
	u.ReferralPremiumDays = reward.TotalDays
	u.ReferralPremiumExpiry = &expiry
	u.SubscriptionTier = reward.Tier
	u.SubscriptionStatus = types.SubscriptionStatusActive
	u.SubscriptionExpiry = &expiry
	return expiry
}

// LogChange asynchronously appends an entitlement audit record; failures
// are logged but never fail the triggering request.
func (s *Service) LogChange(ctx context.Context, userID string, reason types.EntitlementChangeReason, before, after *models.EntitlementSnapshot, extra map[string]any) {
	go func() {
		entry := &models.EntitlementLog{
			ID:     tool.GenerateUUIDV7(),
			UserID: userID,
			Reason: reason,
			Before: datatypes.NewJSONType(before),
			After:  datatypes.NewJSONType(after),
			Extra:  datatypes.JSONMap(extra),
		}
		if entry.Extra == nil {
			entry.Extra = datatypes.JSONMap{}
		}
		if err := s.db.Save(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save entitlement log: %v", err)
		}
	}()
}

// NotifyReferralReward pushes a reward notification to the referrer.
func (s *Service) NotifyReferralReward(ctx context.Context, userID string, reward Reward) {
	msg := fmt.Sprintf("Your referrals earned you %d days of %s access!", reward.TotalDays, reward.Tier)
	if err := s.push.NotifyUser(ctx, userID, "Referral reward", msg, map[string]any{"tier": string(reward.Tier)}); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("push_notify_failed", "user_id", userID, "err", err)
	}
}

func (s *Service) notifyTierChange(ctx context.Context, userID string, tier types.Tier) {
	msg := fmt.Sprintf("Your membership is now %s.", tier)
	if err := s.push.NotifyUser(ctx, userID, "Membership updated", msg, map[string]any{"tier": string(tier)}); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("push_notify_failed", "user_id", userID, "err", err)
	}
}

func (s *Service) getUser(ctx context.Context, tx *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := tx.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
