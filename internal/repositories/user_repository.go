package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vurel/storefront/internal/models"
	"github.com/vurel/storefront/internal/utils"
)

var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users(first_name, last_name, email, phone, password, is_admin, created_at)
		VALUES($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`

	return r.DB.QueryRowContext(dbCtx, query, user.FirstName, user.LastName, user.Email, user.Phone, user.Password, user.IsAdmin).Scan(&user.ID, &user.CreatedAt)

}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}
	query := `SELECT id, first_name, last_name, email, phone, password, is_admin, created_at
			  FROM users
			  WHERE email = $1`

	err := r.DB.QueryRowContext(dbCtx, query, email).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone, &user.Password, &user.IsAdmin, &user.CreatedAt)

	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return user, nil

}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `
	SELECT id, first_name, last_name, email, phone, is_admin, created_at
	FROM users
	WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone, &user.IsAdmin, &user.CreatedAt)

	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err

	}

	return user, nil

}
