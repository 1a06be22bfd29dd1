package statistics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockbrief/membership/pkg/types"
)

func TestGetFilters_DropsInapplicableTierFilter(t *testing.T) {
	req := &MembershipStatisticRequest{
		Filters: []*types.CommonFilter{
			{Field: "tier", Operator: types.CommonFilterOperatorEq, Values: []any{"gold"}},
			{Field: "created_at", Operator: types.CommonFilterOperatorGte, Values: []any{"2026-01-01"}},
		},
	}

	applicable := req.GetFilters(StatisticTypeDailyActiveSubscriptionCount)
	require.Len(t, applicable.Filters, 2)

	inapplicable := req.GetFilters(StatisticTypeDailyNewReferralCount)
	require.Len(t, inapplicable.Filters, 1)
	require.Equal(t, "created_at", inapplicable.Filters[0].Field)
}

func TestGetFilters_NilAndEmptyPassThrough(t *testing.T) {
	var nilReq *MembershipStatisticRequest
	require.Nil(t, nilReq.GetFilters(StatisticTypeDailyNewReferralCount))

	empty := &MembershipStatisticRequest{}
	require.Same(t, empty, empty.GetFilters(StatisticTypeDailyNewReferralCount))
}

func TestTierFilterRewrite(t *testing.T) {
	req := &MembershipStatisticRequest{
		Filters: []*types.CommonFilter{
			{Field: "tier", Operator: types.CommonFilterOperatorEq, Values: []any{"gold"}},
		},
	}

	expr := tierFilterAs(req, "subscription_tier")
	rewritten, ok := expr.(*MembershipStatisticRequest)
	require.True(t, ok)
	require.Len(t, rewritten.Filters, 1)
	require.Equal(t, "subscription_tier", rewritten.Filters[0].Field)
	require.Equal(t, types.CommonFilterOperatorEq, rewritten.Filters[0].Operator)
}
