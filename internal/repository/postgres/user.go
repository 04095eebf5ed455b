package postgres

import (
	"context"
	"time"

	"github.com/brokerx/engine/internal/ledger"
	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/brokerx/engine/internal/security"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// userDocument is the JSONB row shape for the "users" table. models.User
// tags PasswordHash json:"-" so it is never echoed in an API response, but
// that means it would also never survive a JSONStore round trip through
// encoding/json: userDocument's own PasswordHash field (not embedded)
// shadows the embedded one at JSON-marshal time and carries the hash into
// and out of storage without ever widening the domain model's API shape.
type userDocument struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func toUserDocument(u models.User) userDocument {
	return userDocument{User: u, PasswordHash: u.PasswordHash}
}

func (d userDocument) toModel() models.User {
	u := d.User
	u.PasswordHash = d.PasswordHash
	return u
}

type userRepository struct {
	store *JSONStore[userDocument]
}

// NewUserRepository returns a Postgres-JSONB-backed UserRepository over the
// "users" table.
func NewUserRepository(ctx context.Context, db *sqlx.DB) (interfaces.UserRepository, error) {
	store, err := NewJSONStore[userDocument](ctx, db, "users")
	if err != nil {
		return nil, err
	}
	return &userRepository{store: store}, nil
}

func (r *userRepository) getUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	doc, err := r.store.Get(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	user := doc.toModel()
	return &user, nil
}

func (r *userRepository) putUser(ctx context.Context, user models.User) error {
	return r.store.Update(ctx, user.ID, toUserDocument(user))
}

func (r *userRepository) CreateUser(ctx context.Context, email, password, givenName, familyName string) (*models.User, error) {
	if existing, err := r.GetUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ledger.ErrUserAlreadyExists
	}
	if len(password) < ledger.MinPasswordLength {
		return nil, ledger.ErrWeakPassword
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, interfaces.NewStoreError("hash password", err)
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		GivenName:    givenName,
		FamilyName:   familyName,
		Balance:      decimal.Zero,
		IsVerified:   false,
		Holdings:     map[string]models.Holding{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.store.Insert(ctx, user.ID, toUserDocument(user)); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ledger.ErrUserNotFound
	}
	if !user.IsVerified {
		return nil, ledger.ErrNotVerified
	}
	if !ledger.VerifyPassword(user, password) {
		return nil, ledger.ErrInvalidPassword
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := r.store.FindByField(ctx, "email", email)
	if err != nil || doc == nil {
		return nil, err
	}
	user := doc.toModel()
	return &user, nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getUser(ctx, id)
}

func (r *userRepository) Insert(ctx context.Context, id uuid.UUID, user models.User) error {
	return r.store.Insert(ctx, id, toUserDocument(user))
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, user models.User) error {
	return r.store.Update(ctx, id, toUserDocument(user))
}

func (r *userRepository) Remove(ctx context.Context, id uuid.UUID) error {
	return r.store.Remove(ctx, id)
}

func (r *userRepository) FindByField(ctx context.Context, field, value string) (*models.User, error) {
	doc, err := r.store.FindByField(ctx, field, value)
	if err != nil || doc == nil {
		return nil, err
	}
	user := doc.toModel()
	return &user, nil
}

func (r *userRepository) FindAllByField(ctx context.Context, field, value string) ([]interfaces.Identified[models.User], error) {
	rows, err := r.store.FindAllByField(ctx, field, value)
	if err != nil {
		return nil, err
	}
	out := make([]interfaces.Identified[models.User], len(rows))
	for i, row := range rows {
		out[i] = interfaces.Identified[models.User]{ID: row.ID, Item: row.Item.toModel()}
	}
	return out, nil
}

func (r *userRepository) Len(ctx context.Context) (int, error) {
	return r.store.Len(ctx)
}

func (r *userRepository) IsEmpty(ctx context.Context) (bool, error) {
	return r.store.IsEmpty(ctx)
}

func (r *userRepository) VerifyUserEmail(ctx context.Context, userID uuid.UUID) error {
	user, err := r.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ledger.ErrUserNotFound
	}
	user.IsVerified = true
	user.UpdatedAt = time.Now()
	return r.putUser(ctx, *user)
}

func (r *userRepository) DepositToUser(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error) {
	user, err := r.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ledger.ErrUserNotFound
	}
	ledger.Deposit(user, amount)
	user.UpdatedAt = time.Now()
	if err := r.putUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) WithdrawFromUser(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error) {
	user, err := r.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ledger.ErrUserNotFound
	}
	if err := ledger.Withdraw(user, amount); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now()
	if err := r.putUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) UpdateUserHolding(ctx context.Context, userID uuid.UUID, symbol string, delta int64, price decimal.Decimal) (*models.User, error) {
	user, err := r.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ledger.ErrUserNotFound
	}
	ledger.UpdateHolding(user, symbol, delta, price)
	user.UpdatedAt = time.Now()
	if err := r.putUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}
