package store

import (
	"context"

	"nexthire/internal/database"
	"nexthire/internal/model"
)

const userColumns = `id, name, email, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

// GetUserByEmail email 需已正規化為小寫
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}

// UpdateUserName 只允許修改名稱；email 建立後不可變
func UpdateUserName(ctx context.Context, db database.DB, userID int, name string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users SET name = $1
		 WHERE id = $2
		 RETURNING `+userColumns,
		name,
		userID,
	))
	if err != nil {
		return nil, wrap("UpdateUserName", err)
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID int, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return wrap("UpdateUserPassword", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("UpdateUserPassword", ErrNotFound)
	}
	return nil
}
