package apple

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/awa/go-iap/appstore"
)

type VerifyReceiptOptions struct {
	SharedSecret string
	Sandbox      bool
}

// ReceiptInfo is the subset of a verified in-app purchase row the
// membership service cares about.
type ReceiptInfo struct {
	ProductID             string `json:"product_id"`
	TransactionID         string `json:"transaction_id"`
	OriginalTransactionID string `json:"original_transaction_id"`
	ExpiresDateMs         string `json:"expires_date_ms"`
	PurchaseDateMs        string `json:"purchase_date_ms"`
}

// ExpiresAt decodes the millisecond expiry carried on subscription rows.
// Non-subscription rows have no expiry and return nil.
func (r *ReceiptInfo) ExpiresAt() *time.Time {
	if r == nil || r.ExpiresDateMs == "" {
		return nil
	}
	ms, err := strconv.ParseInt(r.ExpiresDateMs, 10, 64)
	if err != nil {
		return nil
	}
	t := time.UnixMilli(ms)
	return &t
}

type receipt struct {
	LatestReceiptInfo []*ReceiptInfo `json:"latest_receipt_info"`
}

// VerifyReceipt validates a base64 receipt against the App Store verify
// endpoint and returns the purchase rows, newest expiry first.
func VerifyReceipt(ctx context.Context, receiptData string, opts *VerifyReceiptOptions) ([]*ReceiptInfo, error) {
	if opts == nil {
		return nil, errors.New("opts is nil")
	}
	if receiptData == "" {
		return nil, errors.New("receipt data is empty")
	}

	client := appstore.New()
	if opts.Sandbox {
		client.ProductionURL = client.SandboxURL
	}

	var result receipt
	err := client.Verify(ctx, appstore.IAPRequest{
		ReceiptData:            receiptData,
		Password:               opts.SharedSecret,
		ExcludeOldTransactions: true,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to verify receipt: %w", err)
	}

	rows := result.LatestReceiptInfo
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ExpiresDateMs > rows[j].ExpiresDateMs
	})
	return rows, nil
}
