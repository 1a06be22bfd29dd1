package referral

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockbrief/membership/internal/app/service/entitlement"
	"github.com/stockbrief/membership/internal/models"
	"github.com/stockbrief/membership/pkg/logctx"
	"github.com/stockbrief/membership/pkg/tool"
	"github.com/stockbrief/membership/pkg/types"
)

var (
	ErrInvalidReferralCode = errors.New("invalid referral code")
	ErrSelfReferral        = errors.New("cannot redeem own referral code")
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	ent *entitlement.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, ent *entitlement.Service) *Service {
	return &Service{db: db, log: log, ent: ent}
}

type InitResult struct {
	ReferralCode  string     `json:"referral_code"`
	PremiumDays   int        `json:"premium_days"`
	PremiumExpiry *time.Time `json:"premium_expiry"`
}

// Init ensures the user has a referral code, generating one on first call
// and returning the existing code afterwards. When redeemCode names another
// user's code, a pending referral edge is recorded once per referred user.
func (s *Service) Init(ctx context.Context, userID, redeemCode string) (*InitResult, error) {
	var result *InitResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.getUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		if user.ReferralCode == "" {
			code := GenerateCode(user.DisplayName, user.Email, user.ID, time.Now())
			// the fnv suffix can collide across users; disambiguate with
			// the uuid tail until the code is free
			for attempt := 0; s.codeTaken(ctx, tx, code); attempt++ {
				if attempt >= 5 {
					return fmt.Errorf("failed to allocate referral code for user %s", user.ID)
				}
				code = GenerateCode(user.DisplayName, user.Email, user.ID+tool.GenerateUUIDV7(), time.Now())
			}
			user.ReferralCode = code
			if err := tx.WithContext(ctx).Save(user).Error; err != nil {
				return fmt.Errorf("failed to persist referral code: %w", err)
			}
		}

		if redeemCode != "" {
			if err := s.redeem(ctx, tx, user, redeemCode); err != nil {
				return err
			}
		}

		result = &InitResult{
			ReferralCode:  user.ReferralCode,
			PremiumDays:   user.ReferralPremiumDays,
			PremiumExpiry: user.ReferralPremiumExpiry,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// redeem records a pending referral edge from the code owner to the user.
// Redeeming is idempotent: a user who already has a referral edge keeps it.
func (s *Service) redeem(ctx context.Context, tx *gorm.DB, user *models.User, code string) error {
	if code == user.ReferralCode {
		return ErrSelfReferral
	}

	var referrer models.User
	if err := tx.WithContext(ctx).Where("referral_code = ?", code).First(&referrer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidReferralCode
		}
		return fmt.Errorf("failed to look up referrer: %w", err)
	}

	var existing int64
	if err := tx.WithContext(ctx).Model(&models.Referral{}).
		Where("referred_user_id = ?", user.ID).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to check existing referral: %w", err)
	}
	if existing > 0 {
		return nil
	}

	edge := &models.Referral{
		ID:             tool.GenerateUUIDV7(),
		ReferrerUserID: referrer.ID,
		ReferredUserID: user.ID,
		ReferralCode:   code,
		Status:         types.ReferralStatusPending,
	}
	if err := tx.WithContext(ctx).Create(edge).Error; err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

type CompleteResult struct {
	ReferrerID         string `json:"referrer_id"`
	CompletedReferrals int    `json:"completed_referrals"`
	TotalDaysEarned    int    `json:"total_days_earned"`
}

// Complete promotes the referrer's pending referrals to completed (all of
// them, or only the named referred user), recounts the qualifying
// referrals and applies the reward: merge the premium expiry, mirror the
// earned tier and mark the completed referrals rewarded: one transaction.
// A count below the lowest threshold performs no writes beyond the
// promotion, leaving the referrals completed but not yet rewarded.
func (s *Service) Complete(ctx context.Context, code, referredUserID string) (*CompleteResult, error) {
	var (
		result        *CompleteResult
		reward        entitlement.Reward
		before, after *models.EntitlementSnapshot
		referrerID    string
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var referrer models.User
		if err := tx.WithContext(ctx).Where("referral_code = ?", code).First(&referrer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidReferralCode
			}
			return fmt.Errorf("failed to look up referrer: %w", err)
		}
		referrerID = referrer.ID

		promote := tx.WithContext(ctx).Model(&models.Referral{}).
			Where("referrer_user_id = ? AND status = ?", referrer.ID, types.ReferralStatusPending)
		if referredUserID != "" {
			promote = promote.Where("referred_user_id = ?", referredUserID)
		}
		if err := promote.Update("status", types.ReferralStatusCompleted).Error; err != nil {
			return fmt.Errorf("failed to promote pending referrals: %w", err)
		}

		var count int64
		if err := tx.WithContext(ctx).Model(&models.Referral{}).
			Where("referrer_user_id = ? AND status IN ?", referrer.ID,
				[]types.ReferralStatus{types.ReferralStatusCompleted, types.ReferralStatusRewarded}).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count referrals: %w", err)
		}

		reward = entitlement.CalculateReward(int(count))
		result = &CompleteResult{
			ReferrerID:         referrer.ID,
			CompletedReferrals: int(count),
			TotalDaysEarned:    reward.TotalDays,
		}
		if reward.TotalDays == 0 {
			return nil
		}

		now := time.Now()
		before = models.SnapshotOf(&referrer)
		entitlement.ApplyReferralGrant(&referrer, reward, now)
		if err := tx.WithContext(ctx).Save(&referrer).Error; err != nil {
			return fmt.Errorf("failed to apply referral grant: %w", err)
		}
		after = models.SnapshotOf(&referrer)

		if err := tx.WithContext(ctx).Model(&models.Referral{}).
			Where("referrer_user_id = ? AND status = ?", referrer.ID, types.ReferralStatusCompleted).
			Updates(map[string]any{
				"status":      types.ReferralStatusRewarded,
				"reward_days": reward.TotalDays,
				"rewarded_at": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to mark referrals rewarded: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reward.TotalDays > 0 {
		logctx.FromCtx(ctx, s.log).Infow("referral_reward_applied",
			"referrer_id", referrerID, "completed", result.CompletedReferrals,
			"days", reward.TotalDays, "tier", reward.Tier)
		s.ent.LogChange(ctx, referrerID, types.EntitlementChangeReasonReferralReward, before, after,
			map[string]any{"completed_referrals": result.CompletedReferrals})
		go s.ent.NotifyReferralReward(ctx, referrerID, reward)
	}
	return result, nil
}

// GrantPremiumDays is the manual operator grant: a fixed day count of
// gold-level referral premium, merged like a referral reward.
func (s *Service) GrantPremiumDays(ctx context.Context, userID string, days int, operatorID string) error {
	if days <= 0 {
		return fmt.Errorf("invalid day count: %d", days)
	}

	var before, after *models.EntitlementSnapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.getUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		before = models.SnapshotOf(user)
		entitlement.ApplyReferralGrant(user, entitlement.Reward{TotalDays: days, Tier: types.TierGold}, time.Now())
		if err := tx.WithContext(ctx).Save(user).Error; err != nil {
			return fmt.Errorf("failed to apply manual grant: %w", err)
		}
		after = models.SnapshotOf(user)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to grant premium days: %w", err)
	}

	s.ent.LogChange(ctx, userID, types.EntitlementChangeReasonAdminGrant, before, after,
		map[string]any{"operator_id": operatorID, "days": days})
	return nil
}

// Scan referral request/response, used by admin list pages.
type ScanReferralsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanReferralsResponse struct {
	Items []*models.Referral `json:"items"`
	Total int64              `json:"total"`
}

// ScanReferrals implements paginated admin listing with filters.
func (s *Service) ScanReferrals(ctx context.Context, req *ScanReferralsRequest) (*ScanReferralsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Referral{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{types.FiltersAnd{Filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count referrals: %w", err)
	}

	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}

	var rows []*models.Referral
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	return &ScanReferralsResponse{Items: rows, Total: total}, nil
}

func (s *Service) codeTaken(ctx context.Context, tx *gorm.DB, code string) bool {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
		return true
	}
	return count > 0
}

func (s *Service) getUser(ctx context.Context, tx *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := tx.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
