package models

import "time"

// MembershipDailySnapshot is one daily statistic value for analytics.
// Label partitions a statistic type further (for example by tier).
type MembershipDailySnapshot struct {
	ID           string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SnapshotDate string    `gorm:"column:snapshot_date;type:varchar(16);not null;uniqueIndex:idx_snapshot_date_type_label,priority:1" json:"snapshot_date"`
	Type         string    `gorm:"column:type;type:varchar(64);not null;uniqueIndex:idx_snapshot_date_type_label,priority:2" json:"type"`
	Label        string    `gorm:"column:label;type:varchar(64);not null;default:'';uniqueIndex:idx_snapshot_date_type_label,priority:3" json:"label"`
	Value        int64     `gorm:"column:value;type:bigint;not null" json:"value"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MembershipDailySnapshot) TableName() string {
	return "membership_daily_snapshot"
}
