package pgrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

const userColumns = `id, created_at, updated_at, username, encrypted_password, steam_id, points, role,
	is_active, is_banned`

type UserRepository struct {
	conn uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

// CreateUser returns domain.ErrDuplicateKey when the username or steam id is taken.
func (u *UserRepository) CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error) {
	role := user.Role
	if role == "" {
		role = domain.UserRoleUser
	}
	row := u.conn.QueryRow(ctx,
		`INSERT INTO users (username, encrypted_password, steam_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		user.Username, user.Password, user.SteamID, string(role),
	)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user")
	}
	return dbUser, nil
}

func (u *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by username %s", username)
	}
	return dbUser, nil
}

func (u *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return dbUser, nil
}

// AddPoints applies delta in a single conditional statement so that concurrent debits for the
// same user are serialized by the row lock and can never overdraw the balance.
func (u *UserRepository) AddPoints(ctx context.Context, userID int64, delta int64) (int64, error) {
	var balance int64
	err := u.conn.QueryRow(ctx,
		`UPDATE users SET points = points + $1, updated_at = NOW()
		WHERE id = $2 AND points + $1 >= 0
		RETURNING points`,
		delta, userID,
	).Scan(&balance)

	if errors.Is(err, pgx.ErrNoRows) {
		if _, findErr := u.FindByID(ctx, userID); findErr != nil {
			return 0, findErr
		}
		return 0, domain.ErrInsufficientFunds
	}
	if err != nil {
		return 0, convertErr(err, "adding %d points to user %d", delta, userID)
	}
	return balance, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var role string
	if err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Username,
		&user.EncryptedPassword,
		&user.SteamID,
		&user.Points,
		&role,
		&user.IsActive,
		&user.IsBanned,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	user.Role = domain.UserRole(role)
	return &user, nil
}
