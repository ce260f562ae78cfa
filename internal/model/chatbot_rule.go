package model

import "time"

// ChatbotRule maps a set of keywords to a canned response.
// Rules with a lower Priority are tried first.
type ChatbotRule struct {
	ID        int64     `gorm:"primaryKey" bson:"-" json:"id"`
	Priority  int       `gorm:"not null;default:0;index" bson:"priority" json:"priority" yaml:"priority"`
	Keywords  []string  `gorm:"serializer:json;not null" bson:"keywords" json:"keywords" yaml:"keywords"`
	Response  string    `gorm:"type:text;not null" bson:"response" json:"response" yaml:"response"`
	CreatedAt time.Time `gorm:"not null" bson:"created_at" json:"createdAt" yaml:"-"`
}

func (ChatbotRule) TableName() string { return CollectionChatbotRules }
