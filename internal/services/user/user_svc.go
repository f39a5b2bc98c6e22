package user

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type UserDTO struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Surname      string     `json:"surname"`
	Email        string     `json:"email"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	BirthdayDate *time.Time `json:"birthday_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

var ErrUserNotFound = errors.New("user not found")

// Users are managed elsewhere; this service only reads them.
type IUserService interface {
	ListUsers(ctx context.Context) ([]UserDTO, error)
	GetUser(ctx context.Context, id string) (*UserDTO, error)
}

type userService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) IUserService {
	return &userService{db: db}
}

func (svc *userService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	const q = `SELECT id, name, surname, email, phone_number, birthday_date, created_at
                 FROM "user" ORDER BY created_at DESC`

	rows, err := svc.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]UserDTO, 0)
	for rows.Next() {
		var u UserDTO
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.Email,
			&u.PhoneNumber, &u.BirthdayDate, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (svc *userService) GetUser(ctx context.Context, id string) (*UserDTO, error) {
	const q = `SELECT id, name, surname, email, phone_number, birthday_date, created_at
                 FROM "user" WHERE id = $1`

	dto := &UserDTO{}
	err := svc.db.QueryRowContext(ctx, q, id).Scan(&dto.ID, &dto.Name, &dto.Surname,
		&dto.Email, &dto.PhoneNumber, &dto.BirthdayDate, &dto.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto, nil
}
