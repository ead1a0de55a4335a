package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// UserRepository defines persistence access for registry accounts.
// Lookups by login and email are case-insensitive and exclude soft-deleted
// rows.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	SearchByName(ctx context.Context, name string) ([]*domain.User, error)
	SoftDelete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `
        id, login, email, name, phone, role, password_hash,
        address_street, address_number, address_complement,
        address_city, address_state, address_zip_code,
        created_at, updated_at, deleted_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (login, email, name, phone, role, password_hash,
            address_street, address_number, address_complement,
            address_city, address_state, address_zip_code)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`

	street, number, complement, city, state, zip := addressColumns(user.Address)
	return r.pool.QueryRow(ctx, query,
		user.Login,
		user.Email,
		user.Name,
		user.Phone,
		user.Role,
		user.PasswordHash,
		street, number, complement, city, state, zip,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET email=$1, name=$2, phone=$3,
            address_street=$4, address_number=$5, address_complement=$6,
            address_city=$7, address_state=$8, address_zip_code=$9,
            updated_at=NOW()
        WHERE id=$10 AND deleted_at IS NULL`

	street, number, complement, city, state, zip := addressColumns(user.Address)
	cmd, err := r.pool.Exec(ctx, query,
		user.Email,
		user.Name,
		user.Phone,
		street, number, complement, city, state, zip,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
        UPDATE users SET password_hash=$1, updated_at=NOW()
        WHERE id=$2 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE id=$1 AND deleted_at IS NULL`

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE LOWER(login)=LOWER($1) AND deleted_at IS NULL`

	return scanUser(r.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE LOWER(email)=LOWER($1) AND deleted_at IS NULL`

	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE deleted_at IS NULL
        ORDER BY created_at ASC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepository) SearchByName(ctx context.Context, name string) ([]*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE name ILIKE '%' || $1 || '%' AND deleted_at IS NULL
        ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE users SET deleted_at=NOW(), updated_at=NOW()
        WHERE id=$1 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) CountActive(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func addressColumns(addr *domain.Address) (street, number, complement, city, state, zip *string) {
	if addr == nil {
		return nil, nil, nil, nil, nil, nil
	}
	return &addr.Street, &addr.Number, &addr.Complement, &addr.City, &addr.State, &addr.ZipCode
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var roleValue string
	var street, number, complement, city, state, zip *string
	if err := row.Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.Name,
		&user.Phone,
		&roleValue,
		&user.PasswordHash,
		&street, &number, &complement, &city, &state, &zip,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	); err != nil {
		return nil, err
	}
	user.Role = domain.ParseRole(roleValue)
	user.Address = assembleAddress(street, number, complement, city, state, zip)
	return &user, nil
}

func scanUsers(rows pgx.Rows) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func assembleAddress(street, number, complement, city, state, zip *string) *domain.Address {
	if street == nil && number == nil && complement == nil && city == nil && state == nil && zip == nil {
		return nil
	}
	addr := &domain.Address{}
	if street != nil {
		addr.Street = *street
	}
	if number != nil {
		addr.Number = *number
	}
	if complement != nil {
		addr.Complement = *complement
	}
	if city != nil {
		addr.City = *city
	}
	if state != nil {
		addr.State = *state
	}
	if zip != nil {
		addr.ZipCode = *zip
	}
	return addr
}
