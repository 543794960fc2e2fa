package service

import (
	"context"
	"errors"
	"strings"

	"nexthire/internal/database"
	"nexthire/internal/model"
	"nexthire/internal/store"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// 帳號不存在與密碼錯誤回傳相同錯誤，避免列舉使用者
var errInvalidCredentials = &Error{Kind: KindAuth, Message: "invalid email or password"}

type Auth struct {
	db     database.DB
	tokens *Tokens
	log    *zap.Logger
}

func NewAuth(db database.DB, tokens *Tokens, log *zap.Logger) *Auth {
	return &Auth{db: db, tokens: tokens, log: log}
}

// LoginResult 登入成功回傳的 token 與使用者
type LoginResult struct {
	Token string
	User  *model.User
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup 建立帳號；email 轉為小寫後必須唯一
func (a *Auth) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, validationError("name, email and password are required")
	}
	if validate.Var(name, "max=100") != nil {
		return nil, validationError("name must be at most 100 characters")
	}
	if validate.Var(email, "email,max=120") != nil {
		return nil, validationError("invalid email format")
	}

	_, err := getUserByEmail(ctx, a.db, email)
	switch {
	case err == nil:
		return nil, &Error{Kind: KindConflict, Message: "email already registered"}
	case !errors.Is(err, store.ErrNotFound):
		return nil, storageError(err)
	}

	hash, err := hashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, validationError("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, internalError(err)
	}

	u, err := createUser(ctx, a.db, &model.User{Name: name, Email: email, PasswordHash: hash})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, &Error{Kind: KindConflict, Message: "email already registered", Err: err}
	}
	if err != nil {
		return nil, storageError(err)
	}
	a.log.Info("user signed up", zap.Int("user_id", u.ID))
	return u, nil
}

// Login 驗證帳密並簽發 token
func (a *Auth) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError("email and password are required")
	}

	u, err := getUserByEmail(ctx, a.db, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, storageError(err)
	}
	if ComparePassword(u.PasswordHash, password) != nil {
		return nil, errInvalidCredentials
	}

	token, err := a.tokens.Issue(u)
	if err != nil {
		return nil, internalError(err)
	}
	return &LoginResult{Token: token, User: u}, nil
}

func (a *Auth) CurrentUser(ctx context.Context, userID int) (*model.User, error) {
	u, err := getUserByID(ctx, a.db, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("user not found", err)
	}
	if err != nil {
		return nil, storageError(err)
	}
	return u, nil
}

// UpdateProfile name 為 nil 時不做任何修改
func (a *Auth) UpdateProfile(ctx context.Context, userID int, name *string) (*model.User, error) {
	if name == nil {
		return a.CurrentUser(ctx, userID)
	}
	n := strings.TrimSpace(*name)
	if n == "" {
		return nil, validationError("name cannot be empty")
	}
	if validate.Var(n, "max=100") != nil {
		return nil, validationError("name must be at most 100 characters")
	}

	u, err := updateUserName(ctx, a.db, userID, n)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("user not found", err)
	}
	if err != nil {
		return nil, storageError(err)
	}
	return u, nil
}

func (a *Auth) ChangePassword(ctx context.Context, userID int, current, next string) error {
	if current == "" || next == "" {
		return validationError("current and new password are required")
	}
	u, err := a.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if ComparePassword(u.PasswordHash, current) != nil {
		return &Error{Kind: KindAuth, Message: "current password is incorrect"}
	}

	hash, err := hashPassword(next)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return validationError("password must be at most 72 bytes")
	}
	if err != nil {
		return internalError(err)
	}
	err = updateUserPassword(ctx, a.db, userID, hash)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("user not found", err)
	}
	if err != nil {
		return storageError(err)
	}
	return nil
}

// Logout 撤銷目前的 token
func (a *Auth) Logout(ctx context.Context, claims *Claims) error {
	return a.tokens.Revoke(ctx, claims)
}

// Verify 供 middleware 使用
func (a *Auth) Verify(ctx context.Context, token string) (*Claims, error) {
	return a.tokens.Verify(ctx, token)
}
