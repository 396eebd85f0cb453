package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/storage"
)

// GetUserByEmail возвращает пользователя по email или storage.ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, image, role, created_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name,
		&u.Image, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// InsertUserIfAbsent сохраняет нового пользователя и возвращает его ID.
// Если email уже занят, запись не меняется и возвращается storage.ErrUserExists.
func (s *Storage) InsertUserIfAbsent(ctx context.Context, user models.User) (string, error) {
	const op = "storage.InsertUserIfAbsent"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, name, image, role, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (email) DO NOTHING
			  RETURNING uid`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.Image, user.Role, user.CreatedAt).Scan(&newID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// SetUserTier устанавливает уровень доступа пользователя. Если пользователя еще нет,
// он создается с этим уровнем. Возвращает true, если сохраненное значение изменилось.
func (s *Storage) SetUserTier(ctx context.Context, email string, tier models.Tier) (bool, error) {
	const op = "storage.SetUserTier"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, role)
			  VALUES ($1, $2)
			  ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
			  WHERE users.role <> EXCLUDED.role
			  RETURNING uid`
	var uid string
	if err := s.DB.QueryRowContext(ctx, query, email, tier).Scan(&uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}
