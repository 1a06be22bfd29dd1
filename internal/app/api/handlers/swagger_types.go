package handlers

import (
	"github.com/stockbrief/membership/internal/app/service/referral"
	"github.com/stockbrief/membership/internal/app/service/statistics"
	"github.com/stockbrief/membership/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespListReferrals wraps ScanReferralsResponse in the standard envelope.
type RespListReferrals struct {
	Code    response.APIResponseCode       `json:"code"`
	Message string                         `json:"message"`
	Data    referral.ScanReferralsResponse `json:"data"`
}

// RespMembershipStatistic wraps MembershipStatisticResponse in the standard envelope.
type RespMembershipStatistic struct {
	Code    response.APIResponseCode               `json:"code"`
	Message string                                 `json:"message"`
	Data    statistics.MembershipStatisticResponse `json:"data"`
}
