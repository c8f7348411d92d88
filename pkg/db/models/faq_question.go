package models

import "time"

// FaqQuestion is a single question and answer pair inside a FAQ.
type FaqQuestion struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	FaqID     uint64    `gorm:"column:faq_id;not null;index:faq_questions_faq_id_idx"`
	Question  string    `gorm:"column:question;type:text;not null"`
	Answer    string    `gorm:"column:answer;type:text;not null"`
	Order     int       `gorm:"column:order;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
