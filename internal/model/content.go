package model

import "time"

// Faculty is a member of the teaching staff listed on the faculty page.
type Faculty struct {
	ID          int64     `gorm:"primaryKey" bson:"-" json:"id"`
	Name        string    `gorm:"size:256;not null" bson:"name" json:"name"`
	Designation string    `gorm:"size:256;not null" bson:"designation" json:"designation"`
	Department  string    `gorm:"size:256;not null" bson:"department" json:"department"`
	Email       string    `gorm:"size:256;not null" bson:"email" json:"email"`
	CreatedAt   time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
}

func (Faculty) TableName() string { return CollectionFaculty }

// Event is an announced campus event. Date is free text as entered by the admin.
type Event struct {
	ID          int64     `gorm:"primaryKey" bson:"-" json:"id"`
	Title       string    `gorm:"size:256;not null" bson:"title" json:"title"`
	Date        string    `gorm:"size:64;not null" bson:"date" json:"date"`
	Description string    `gorm:"type:text;not null" bson:"description" json:"description"`
	CreatedAt   time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
}

func (Event) TableName() string { return CollectionEvents }

// Article is a news article. Content is Markdown.
type Article struct {
	ID        int64     `gorm:"primaryKey" bson:"-" json:"id"`
	Title     string    `gorm:"size:256;not null" bson:"title" json:"title"`
	Content   string    `gorm:"type:text;not null" bson:"content" json:"content"`
	Author    string    `gorm:"size:256;not null" bson:"author" json:"author"`
	Date      string    `gorm:"size:64;not null" bson:"date" json:"date"`
	CreatedAt time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
}

func (Article) TableName() string { return CollectionArticles }
