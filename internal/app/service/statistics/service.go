package statistics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockbrief/membership/internal/models"
	"github.com/stockbrief/membership/pkg/tool"
	"github.com/stockbrief/membership/pkg/types"
)

type StatisticType string

const (
	// Live counts over the user table
	StatisticTypeTotalActiveSubscriptionCount StatisticType = "total_active_subscription_count"
	StatisticTypeTotalReferralPremiumCount    StatisticType = "total_referral_premium_count"

	// Referral funnel
	StatisticTypeDailyNewReferralCount      StatisticType = "daily_new_referral_count"
	StatisticTypeDailyRewardedReferralCount StatisticType = "daily_rewarded_referral_count"
	StatisticTypeDailyGrantedPremiumDays    StatisticType = "daily_granted_premium_days"

	// Pre-computed daily snapshots
	StatisticTypeDailyActiveSubscriptionCount StatisticType = "daily_active_subscription_count"
	StatisticTypeDailyReferralPremiumCount    StatisticType = "daily_referral_premium_count"
)

type MembershipStatisticFilterType string

const (
	MembershipStatisticFilterTypeTier MembershipStatisticFilterType = "tier"
)

var filterTypes = []MembershipStatisticFilterType{
	MembershipStatisticFilterTypeTier,
}

var validFilters = map[MembershipStatisticFilterType][]StatisticType{
	MembershipStatisticFilterTypeTier: {
		StatisticTypeTotalActiveSubscriptionCount,
		StatisticTypeDailyActiveSubscriptionCount,
	},
}

type MembershipStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type MembershipStatisticRequest struct {
	Filters   []*types.CommonFilter          `json:"filters"`
	DataItems []*MembershipStatisticDataItem `json:"data_items"`
}

// GetFilters returns the subset of filters that apply to the given statistic.
func (f *MembershipStatisticRequest) GetFilters(statisticType StatisticType) *MembershipStatisticRequest {
	if f == nil || len(f.Filters) == 0 {
		return f
	}
	var result MembershipStatisticRequest
	for _, filter := range f.Filters {
		if statisticTypes, ok := validFilters[MembershipStatisticFilterType(filter.Field)]; ok {
			if lo.Contains(statisticTypes, statisticType) {
				result.Filters = append(result.Filters, filter)
			}
		} else {
			result.Filters = append(result.Filters, filter)
		}
	}
	return &result
}

// Build composes a WHERE clause from the filters. The logical tier filter is
// rewritten onto a concrete column with tierFilterAs before building.
func (f *MembershipStatisticRequest) Build(builder clause.Builder) {
	if len(f.Filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	for i, filter := range f.Filters {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		filter.Build(builder)
	}
}

type MembershipStatisticResponseDataItem struct {
	Date  string `json:"date"`
	Label string `json:"label,omitempty"`
	Value int64  `json:"value"`
}

type MembershipStatisticResponse struct {
	DataItems map[StatisticType][]MembershipStatisticResponseDataItem `json:"data_items"`
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// ComputeDailySnapshot materializes the statistics for one calendar date.
// Re-running for the same date overwrites the previous values.
func (s *Service) ComputeDailySnapshot(ctx context.Context, snapshotDate time.Time) error {
	date := snapshotDate.Format(time.DateOnly)
	now := time.Now()

	var rows []*models.MembershipDailySnapshot

	var byTier []struct {
		Tier  string
		Count int64
	}
	err := s.db.WithContext(ctx).Table((models.User{}).TableName()).
		Select("subscription_tier as tier, count(*) as count").
		Where("subscription_status = ?", types.SubscriptionStatusActive).
		Where("subscription_expiry > ?", now).
		Group("subscription_tier").
		Find(&byTier).Error
	if err != nil {
		return fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	for _, row := range byTier {
		rows = append(rows, &models.MembershipDailySnapshot{
			SnapshotDate: date,
			Type:         string(StatisticTypeDailyActiveSubscriptionCount),
			Label:        row.Tier,
			Value:        row.Count,
		})
	}

	var referralPremiumCount int64
	err = s.db.WithContext(ctx).Model(&models.User{}).
		Where("referral_premium_expiry > ?", now).
		Count(&referralPremiumCount).Error
	if err != nil {
		return fmt.Errorf("failed to count referral premium users: %w", err)
	}
	rows = append(rows, &models.MembershipDailySnapshot{
		SnapshotDate: date,
		Type:         string(StatisticTypeDailyReferralPremiumCount),
		Value:        referralPremiumCount,
	})

	for _, row := range rows {
		row.ID = tool.GenerateUUIDV7()
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_date"}, {Name: "type"}, {Name: "label"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rows).Error
}

func (s *Service) getTotalActiveSubscriptionCount(ctx context.Context, request *MembershipStatisticRequest) ([]MembershipStatisticResponseDataItem, error) {
	var results []MembershipStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.User{}).TableName()).
		Select("subscription_tier as label, count(*) as value").
		Where("subscription_status = ?", types.SubscriptionStatusActive).
		Where("subscription_expiry > ?", time.Now()).
		Where(clause.Where{Exprs: []clause.Expression{tierFilterAs(request.GetFilters(StatisticTypeTotalActiveSubscriptionCount), "subscription_tier")}}).
		Group("subscription_tier").
		Order("label")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getTotalReferralPremiumCount(ctx context.Context, _ *MembershipStatisticRequest) ([]MembershipStatisticResponseDataItem, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("referral_premium_expiry > ?", time.Now()).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	return []MembershipStatisticResponseDataItem{{Value: count}}, nil
}

func (s *Service) getDailyNewReferralCount(ctx context.Context, request *MembershipStatisticRequest) ([]MembershipStatisticResponseDataItem, error) {
	var results []MembershipStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.Referral{}).TableName()).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, count(*) as value").
		Where(clause.Where{Exprs: []clause.Expression{request.GetFilters(StatisticTypeDailyNewReferralCount)}}).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyRewardedReferralCount(ctx context.Context, _ *MembershipStatisticRequest) ([]MembershipStatisticResponseDataItem, error) {
	var results []MembershipStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.Referral{}).TableName()).
		Select("TO_CHAR(rewarded_at, 'YYYY-MM-DD') as date, count(*) as value").
		Where("rewarded_at IS NOT NULL").
		Group("TO_CHAR(rewarded_at, 'YYYY-MM-DD')").
		Order("date")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyGrantedPremiumDays(ctx context.Context, _ *MembershipStatisticRequest) ([]MembershipStatisticResponseDataItem, error) {
	var results []MembershipStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.Referral{}).TableName()).
		Select("TO_CHAR(rewarded_at, 'YYYY-MM-DD') as date, COALESCE(SUM(reward_days), 0) as value").
		Where("rewarded_at IS NOT NULL").
		Group("TO_CHAR(rewarded_at, 'YYYY-MM-DD')").
		Order("date")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailySnapshotSeries(ctx context.Context, request *MembershipStatisticRequest, statisticType StatisticType) ([]MembershipStatisticResponseDataItem, error) {
	var results []MembershipStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.MembershipDailySnapshot{}).TableName()).
		Select("snapshot_date as date, label, value").
		Where("type = ?", string(statisticType)).
		Where(clause.Where{Exprs: []clause.Expression{tierFilterAs(request.GetFilters(statisticType), "label")}}).
		Order("date")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getMembershipStatistic(ctx context.Context, request *MembershipStatisticRequest, dataItem *MembershipStatisticDataItem) ([]MembershipStatisticResponseDataItem, error) {
	switch dataItem.ID {
	case StatisticTypeTotalActiveSubscriptionCount:
		return s.getTotalActiveSubscriptionCount(ctx, request)
	case StatisticTypeTotalReferralPremiumCount:
		return s.getTotalReferralPremiumCount(ctx, request)
	case StatisticTypeDailyNewReferralCount:
		return s.getDailyNewReferralCount(ctx, request)
	case StatisticTypeDailyRewardedReferralCount:
		return s.getDailyRewardedReferralCount(ctx, request)
	case StatisticTypeDailyGrantedPremiumDays:
		return s.getDailyGrantedPremiumDays(ctx, request)
	case StatisticTypeDailyActiveSubscriptionCount, StatisticTypeDailyReferralPremiumCount:
		return s.getDailySnapshotSeries(ctx, request, dataItem.ID)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", dataItem.ID)
	}
}

// GetMembershipStatistic evaluates the requested data items concurrently.
func (s *Service) GetMembershipStatistic(ctx context.Context, request *MembershipStatisticRequest) (*MembershipStatisticResponse, error) {
	var wg sync.WaitGroup
	errChan := make(chan error, len(request.DataItems))
	resChan := make(chan *lo.Entry[StatisticType, []MembershipStatisticResponseDataItem], len(request.DataItems))

	for _, item := range request.DataItems {
		wg.Add(1)
		go func(di *MembershipStatisticDataItem) {
			defer wg.Done()
			for _, filter := range request.Filters {
				ft := MembershipStatisticFilterType(filter.Field)
				if lo.Contains(filterTypes, ft) && !lo.Contains(validFilters[ft], di.ID) {
					resChan <- &lo.Entry[StatisticType, []MembershipStatisticResponseDataItem]{Key: di.ID, Value: nil}
					return
				}
			}
			res, err := s.getMembershipStatistic(ctx, request, di)
			if err != nil {
				errChan <- err
				return
			}
			resChan <- &lo.Entry[StatisticType, []MembershipStatisticResponseDataItem]{Key: di.ID, Value: res}
		}(item)
	}

	go func() { wg.Wait(); close(errChan); close(resChan) }()

	results := make(map[StatisticType][]MembershipStatisticResponseDataItem)
	for i := 0; i < len(request.DataItems); i++ {
		select {
		case err := <-errChan:
			if err != nil {
				return nil, err
			}
		case entry := <-resChan:
			results[entry.Key] = entry.Value
		}
	}
	return &MembershipStatisticResponse{DataItems: results}, nil
}

// tierFilterAs rewrites the logical tier filter onto a concrete column.
func tierFilterAs(request *MembershipStatisticRequest, column string) clause.Expression {
	if request == nil {
		return &MembershipStatisticRequest{}
	}
	rewritten := &MembershipStatisticRequest{}
	for _, filter := range request.Filters {
		if filter.Field == string(MembershipStatisticFilterTypeTier) {
			rewritten.Filters = append(rewritten.Filters, &types.CommonFilter{
				Field:    column,
				Operator: filter.Operator,
				Values:   filter.Values,
			})
			continue
		}
		rewritten.Filters = append(rewritten.Filters, filter)
	}
	return rewritten
}
