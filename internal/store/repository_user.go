package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"moneykeeper/internal/logger"
	"moneykeeper/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The new row id comes from a RETURNING clause on PostgreSQL and from
// LastInsertId on SQLite; the canonical row is then re-read so the caller
// always receives the database representation of the account.
//
// Error handling:
//   - unique constraint violation on username or email → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	returningID := r.db.driver == DriverPostgres
	query, args, err := buildCreateUserQuery(r.db.builder, user, returningID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to create query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var userID int64
	if returningID {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&userID)
	} else {
		var result sql.Result
		result, err = r.db.ExecContext(ctx, query, args...)
		if err == nil {
			userID, err = result.LastInsertId()
		}
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: insert failed")

		if isUniqueViolation(err) {
			return models.User{}, ErrUserAlreadyExists
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return r.FindUserByID(ctx, userID)
}

// FindUserByUsername retrieves the user record matching the given username.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByUsernameQuery(r.db.builder, username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("failed to create query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanUser(ctx, query, args)
}

// FindUserByID retrieves the user record matching the given internal id.
//
// Error handling mirrors [userRepository.FindUserByUsername].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByIDQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("failed to create query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanUser(ctx, query, args)
}

func (r *userRepository) scanUser(ctx context.Context, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&foundUser.UserID, &foundUser.Username, &foundUser.Email, &foundUser.PasswordHash, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.scanUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}
