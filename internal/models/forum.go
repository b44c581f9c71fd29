package models

import (
	"time"
)

type Topic struct {
	ID                 uint    `json:"id" gorm:"primaryKey"`
	Title              string  `json:"title" gorm:"not null;size:255"`
	Description        *string `json:"description"`
	UserID             uint    `json:"user_id" gorm:"not null;index"`
	ProfessionalAreaID uint    `json:"professional_area_id" gorm:"not null;index"`

	User             User             `json:"-" gorm:"foreignKey:UserID"`
	ProfessionalArea ProfessionalArea `json:"-" gorm:"foreignKey:ProfessionalAreaID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Topic) TableName() string {
	return "topics"
}

type ForumPost struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Content string `json:"content" gorm:"not null"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	TopicID uint   `json:"topic_id" gorm:"not null;index;constraint:OnDelete:CASCADE"`

	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Topic Topic `json:"-" gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// PostReaction holds at most one row per (user, post); the unique index is
// the backstop for the upsert in the reaction repository.
type PostReaction struct {
	ID          uint         `json:"-" gorm:"primaryKey"`
	UserID      uint         `json:"user_id" gorm:"not null;uniqueIndex:idx_user_post"`
	ForumPostID uint         `json:"forum_post_id" gorm:"not null;uniqueIndex:idx_user_post;constraint:OnDelete:CASCADE"`
	Type        ReactionType `json:"type" gorm:"not null;size:10"`

	User      User      `json:"-" gorm:"foreignKey:UserID"`
	ForumPost ForumPost `json:"-" gorm:"foreignKey:ForumPostID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PostReaction) TableName() string {
	return "post_reactions"
}

// ReactionCounts is the aggregate returned for a post's reaction listing.
type ReactionCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}
