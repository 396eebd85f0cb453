package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/storage"
)

const lessonColumns = `id, title, description, category, emotional_tone, tags, image,
			      access_level, visibility, owner_email, owner_name, owner_image,
			      views_count, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanLesson(row scanner) (*models.Lesson, error) {
	var l models.Lesson
	var tags []byte
	if err := row.Scan(&l.ID, &l.Title, &l.Description, &l.Category, &l.EmotionalTone,
		&tags, &l.Image, &l.AccessLevel, &l.Visibility, &l.OwnerEmail, &l.OwnerName,
		&l.OwnerImage, &l.ViewsCount, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &l.Tags); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateLesson сохраняет новый урок и возвращает его ID.
func (s *Storage) CreateLesson(ctx context.Context, lesson models.Lesson) (string, error) {
	const op = "storage.CreateLesson"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := encodeTags(lesson.Tags)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO lessons (id, title, description, category, emotional_tone, tags, image,
			      access_level, visibility, owner_email, owner_name, owner_image,
			      views_count, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10, $11, $12, 0, $13, $13)
			  RETURNING id`
	var newID string
	if err := s.DB.QueryRowContext(ctx, query,
		lesson.ID, lesson.Title, lesson.Description, lesson.Category, lesson.EmotionalTone,
		tags, lesson.Image, lesson.AccessLevel, lesson.Visibility, lesson.OwnerEmail,
		lesson.OwnerName, lesson.OwnerImage, lesson.CreatedAt).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetLesson возвращает урок по ID или storage.ErrNotFound.
func (s *Storage) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	const op = "storage.GetLesson"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + lessonColumns + `
			  FROM lessons
			  WHERE id = $1`
	l, err := scanLesson(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// UpdateLesson перезаписывает изменяемые поля урока. Автор и счетчик просмотров не трогаются.
func (s *Storage) UpdateLesson(ctx context.Context, lesson models.Lesson) error {
	const op = "storage.UpdateLesson"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := encodeTags(lesson.Tags)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `UPDATE lessons
			  SET title = $1, description = $2, category = $3, emotional_tone = $4,
			      tags = $5::jsonb, image = $6, access_level = $7, visibility = $8, updated_at = $9
			  WHERE id = $10`
	res, err := s.DB.ExecContext(ctx, query,
		lesson.Title, lesson.Description, lesson.Category, lesson.EmotionalTone, tags,
		lesson.Image, lesson.AccessLevel, lesson.Visibility, lesson.UpdatedAt, lesson.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
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

	res, err := s.DB.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}

// IncrementLessonViews атомарно увеличивает счетчик просмотров урока.
func (s *Storage) IncrementLessonViews(ctx context.Context, id string) error {
	const op = "storage.IncrementLessonViews"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx,
		`UPDATE lessons SET views_count = views_count + 1 WHERE id = $1`, id); err != nil {
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

	var (
		conds []string
		args  []any
	)
	if filter.Visibility != "" {
		args = append(args, filter.Visibility)
		conds = append(conds, fmt.Sprintf("visibility = $%d", len(args)))
	}
	if filter.OwnerEmail != "" {
		args = append(args, filter.OwnerEmail)
		conds = append(conds, fmt.Sprintf("owner_email = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + lessonColumns + ` FROM lessons`)
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := s.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
