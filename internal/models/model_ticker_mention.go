package models

import "time"

// TickerMention is one ticker symbol occurrence in user content. Rows are
// ingested by the content backend and aggregated by the trending service.
type TickerMention struct {
	ID          string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Symbol      string    `gorm:"column:symbol;type:varchar(16);not null;index:idx_symbol_mentioned_at,priority:1" json:"symbol"`
	UserID      string    `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	PostID      string    `gorm:"column:post_id;type:uuid;not null" json:"post_id"`
	MentionedAt time.Time `gorm:"column:mentioned_at;not null;index:idx_symbol_mentioned_at,priority:2" json:"mentioned_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (TickerMention) TableName() string { return "ticker_mention" }
