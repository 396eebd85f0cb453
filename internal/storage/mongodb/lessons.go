package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/storage"
)

type lessonDoc struct {
	ID            string    `bson:"_id"`
	Title         string    `bson:"title"`
	Description   string    `bson:"description"`
	Category      string    `bson:"category"`
	EmotionalTone string    `bson:"emotionalTone"`
	Tags          []string  `bson:"tags"`
	Image         string    `bson:"image"`
	AccessLevel   string    `bson:"accessLevel"`
	Visibility    string    `bson:"visibility"`
	OwnerEmail    string    `bson:"creatorEmail"`
	OwnerName     string    `bson:"creatorName"`
	OwnerImage    string    `bson:"creatorPhoto"`
	ViewsCount    int64     `bson:"viewsCount"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

func toLessonDoc(l models.Lesson) lessonDoc {
	return lessonDoc{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Category:      l.Category,
		EmotionalTone: l.EmotionalTone,
		Tags:          l.Tags,
		Image:         l.Image,
		AccessLevel:   string(l.AccessLevel),
		Visibility:    string(l.Visibility),
		OwnerEmail:    l.OwnerEmail,
		OwnerName:     l.OwnerName,
		OwnerImage:    l.OwnerImage,
		ViewsCount:    l.ViewsCount,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func (d lessonDoc) toModel() *models.Lesson {
	return &models.Lesson{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Category:      d.Category,
		EmotionalTone: d.EmotionalTone,
		Tags:          d.Tags,
		Image:         d.Image,
		AccessLevel:   models.Tier(d.AccessLevel),
		Visibility:    models.Visibility(d.Visibility),
		OwnerEmail:    d.OwnerEmail,
		OwnerName:     d.OwnerName,
		OwnerImage:    d.OwnerImage,
		ViewsCount:    d.ViewsCount,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// CreateLesson сохраняет новый урок и возвращает его ID.
func (s *Storage) CreateLesson(ctx context.Context, lesson models.Lesson) (string, error) {
	const op = "storage.CreateLesson"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	doc := toLessonDoc(lesson)
	doc.ViewsCount = 0
	doc.UpdatedAt = doc.CreatedAt
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if _, err := s.db.Collection(colLessons).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return doc.ID, nil
}

// GetLesson возвращает урок по ID или storage.ErrNotFound.
func (s *Storage) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	const op = "storage.GetLesson"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var doc lessonDoc
	if err := s.db.Collection(colLessons).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toModel(), nil
}

// UpdateLesson перезаписывает изменяемые поля урока. Автор и счетчик просмотров не трогаются.
func (s *Storage) UpdateLesson(ctx context.Context, lesson models.Lesson) error {
	const op = "storage.UpdateLesson"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags := lesson.Tags
	if tags == nil {
		tags = []string{}
	}
	update := bson.M{"$set": bson.M{
		"title":         lesson.Title,
		"description":   lesson.Description,
		"category":      lesson.Category,
		"emotionalTone": lesson.EmotionalTone,
		"tags":          tags,
		"image":         lesson.Image,
		"accessLevel":   string(lesson.AccessLevel),
		"visibility":    string(lesson.Visibility),
		"updatedAt":     lesson.UpdatedAt,
	}}
	res, err := s.db.Collection(colLessons).UpdateOne(ctx, bson.M{"_id": lesson.ID}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// DeleteLesson удаляет урок и возвращает количество удаленных записей.
func (s *Storage) DeleteLesson(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.Collection(colLessons).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.DeletedCount, nil
}

// IncrementLessonViews атомарно увеличивает счетчик просмотров урока.
func (s *Storage) IncrementLessonViews(ctx context.Context, id string) error {
	const op = "storage.IncrementLessonViews"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.db.Collection(colLessons).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$inc": bson.M{"viewsCount": 1}}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListLessons возвращает уроки по фильтру, новые первыми.
func (s *Storage) ListLessons(ctx context.Context, filter models.LessonFilter) ([]*models.Lesson, error) {
	const op = "storage.ListLessons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := bson.M{}
	if filter.Visibility != "" {
		query["visibility"] = string(filter.Visibility)
	}
	if filter.OwnerEmail != "" {
		query["creatorEmail"] = filter.OwnerEmail
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cur, err := s.db.Collection(colLessons).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var docs []lessonDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.Lesson, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.toModel())
	}
	return result, nil
}
