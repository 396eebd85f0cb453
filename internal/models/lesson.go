package models

import "time"

// Visibility видимость урока.
type Visibility string

const (
	// VisibilityPublic урок попадает в публичную ленту.
	VisibilityPublic Visibility = "Public"
	// VisibilityPrivate урок виден только автору.
	VisibilityPrivate Visibility = "Private"
)

// Lesson урок, опубликованный пользователем.
type Lesson struct {
	ID            string     `json:"_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category,omitempty"`
	EmotionalTone string     `json:"emotionalTone,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Image         string     `json:"image,omitempty"`
	AccessLevel   Tier       `json:"accessLevel"`
	Visibility    Visibility `json:"visibility"`
	OwnerEmail    string     `json:"creatorEmail"`
	OwnerName     string     `json:"creatorName,omitempty"`
	OwnerImage    string     `json:"creatorPhoto,omitempty"`
	ViewsCount    int64      `json:"viewsCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// LessonDraft тело запроса на создание урока.
type LessonDraft struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Description   string   `json:"description" validate:"required"`
	Category      string   `json:"category,omitempty"`
	EmotionalTone string   `json:"emotionalTone,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Image         string   `json:"image,omitempty"`
	AccessLevel   Tier     `json:"accessLevel,omitempty" validate:"omitempty,oneof=Free Premium"`
	Visibility    string   `json:"visibility,omitempty" validate:"omitempty,oneof=Public Private"`
	OwnerName     string   `json:"creatorName,omitempty"`
	OwnerImage    string   `json:"creatorPhoto,omitempty"`
}

// LessonPatch тело запроса на изменение урока. Поля об авторе и роль принимаются,
// только чтобы их можно было явно отбросить до слияния.
type LessonPatch struct {
	Title         *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string   `json:"description,omitempty"`
	Category      *string   `json:"category,omitempty"`
	EmotionalTone *string   `json:"emotionalTone,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Image         *string   `json:"image,omitempty"`
	AccessLevel   *Tier     `json:"accessLevel,omitempty" validate:"omitempty,oneof=Free Premium"`
	Visibility    *string   `json:"visibility,omitempty" validate:"omitempty,oneof=Public Private"`

	OwnerEmail *string `json:"creatorEmail,omitempty"`
	OwnerName  *string `json:"creatorName,omitempty"`
	Role       *string `json:"role,omitempty"`
}

// Apply переносит заданные поля патча в урок.
func (p LessonPatch) Apply(l *Lesson) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.EmotionalTone != nil {
		l.EmotionalTone = *p.EmotionalTone
	}
	if p.Tags != nil {
		l.Tags = *p.Tags
	}
	if p.Image != nil {
		l.Image = *p.Image
	}
	if p.AccessLevel != nil {
		l.AccessLevel = *p.AccessLevel
	}
	if p.Visibility != nil {
		l.Visibility = Visibility(*p.Visibility)
	}
	if p.OwnerEmail != nil {
		l.OwnerEmail = *p.OwnerEmail
	}
	if p.OwnerName != nil {
		l.OwnerName = *p.OwnerName
	}
}

// LessonFilter параметры выборки уроков.
type LessonFilter struct {
	Visibility Visibility // Пустое значение — без фильтра
	OwnerEmail string     // Пустое значение — без фильтра
	Limit      int
	Offset     int
}
