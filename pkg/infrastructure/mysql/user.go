package mysql

import (
	"context"
	"database/sql"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

// MySQL error 1062: duplicate entry for a unique key.
const mysqlDuplicateEntry = 1062

var _ model.UserRepository = &userRepository{}

type userRepository struct {
	ext sqlx.ExtContext
}

type userRow struct {
	ID             uuid.UUID  `db:"id"`
	FirstName      string     `db:"first_name"`
	LastName       string     `db:"last_name"`
	Email          string     `db:"email"`
	HashedPassword string     `db:"hashed_password"`
	Role           model.Role `db:"role"`
	Phone          string     `db:"phone"`
	Address        string     `db:"address"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (r userRow) toModel() model.User {
	return model.User(r)
}

func newUserRow(u *model.User) userRow {
	return userRow(*u)
}

const userColumns = `id, first_name, last_name, email, hashed_password, role, phone, address, created_at, updated_at`

func (r *userRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	const query = `
		INSERT INTO users (id, first_name, last_name, email, hashed_password, role, phone, address, created_at, updated_at)
		VALUES (:id, :first_name, :last_name, :email, :hashed_password, :role, :phone, :address, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, r.ext, query, newUserRow(user))

	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return model.ErrEmailTaken
	}
	return errors.Wrap(err, "insert user")
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	const query = `
		UPDATE users
		SET first_name = :first_name, last_name = :last_name, phone = :phone,
		    address = :address, role = :role, updated_at = :updated_at
		WHERE id = :id`
	_, err := sqlx.NamedExecContext(ctx, r.ext, query, newUserRow(user))
	return errors.Wrap(err, "update user")
}

func (r *userRepository) Find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *userRepository) findBy(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.ext, &row, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select user")
	}
	user := row.toModel()
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	err := sqlx.SelectContext(ctx, r.ext, &rows,
		`SELECT `+userColumns+` FROM users ORDER BY last_name, first_name`)
	if err != nil {
		return nil, errors.Wrap(err, "select users")
	}

	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.ext.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	if affected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
