package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `json:"user_id"`
	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity    string `gorm:"size:50" json:"entity"`
	EntityID  *uint  `json:"entity_id"`
	Metadata  string `gorm:"type:text" json:"metadata"`
	RequestID string `gorm:"size:64" json:"request_id"`

	CreatedAt time.Time `json:"created_at"`
}
