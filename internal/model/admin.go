package model

import "time"

// Admin is a site administrator. Admins are provisioned out of band and are
// never updated or deleted through the site.
type Admin struct {
	ID           int64     `gorm:"primaryKey" bson:"-" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:128;not null" bson:"username" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null" bson:"password" json:"-"`
	CreatedAt    time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
}

// TableName keeps the relational table aligned with the document collection name.
func (Admin) TableName() string { return CollectionAdmins }
