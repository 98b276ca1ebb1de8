package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/monitio/pkg/pg"
)

// DB is the subset of *pgxpool.Pool used by PostgresStorage. pgx.Tx and
// *pgx.Conn satisfy it too.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStorage stores notifications in the monits table created by Migrations.
type PostgresStorage struct {
	db DB
}

func NewPostgresStorage(db DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const monitColumns = `id, owner, type, title, message, url, data, read, read_at, created_at, expires_at`

const notExpired = `(expires_at IS NULL OR expires_at > now())`

func (s *PostgresStorage) Create(ctx context.Context, notif Notification) error {
	if err := notif.Validate(); err != nil {
		return err
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now().UTC()
	}
	if notif.Type == "" {
		notif.Type = TypeInfo
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO monits (`+monitColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		notif.ID, notif.Owner, string(notif.Type), notif.Title, notif.Message, notif.URL,
		notif.Data, notif.Read, notif.ReadAt, notif.CreatedAt, notif.ExpiresAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, owner, id string) (*Notification, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+monitColumns+` FROM monits WHERE owner = $1 AND id = $2`, owner, id)

	notif, err := scanNotification(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotificationNotFound
		}
		return nil, errors.Join(ErrStorage, err)
	}
	return &notif, nil
}

func (s *PostgresStorage) List(ctx context.Context, owner string, opts ListOptions) ([]Notification, error) {
	var q strings.Builder
	args := []any{owner}

	q.WriteString(`SELECT ` + monitColumns + ` FROM monits WHERE owner = $1 AND ` + notExpired)
	if opts.OnlyUnread {
		q.WriteString(` AND NOT read`)
	}
	if len(opts.Types) > 0 {
		types := make([]string, len(opts.Types))
		for i, t := range opts.Types {
			types[i] = string(t)
		}
		args = append(args, types)
		fmt.Fprintf(&q, ` AND type = ANY($%d)`, len(args))
	}
	if opts.Since != nil {
		args = append(args, *opts.Since)
		fmt.Fprintf(&q, ` AND created_at >= $%d`, len(args))
	}
	q.WriteString(` ORDER BY created_at DESC, id DESC`)
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&q, ` LIMIT $%d`, len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		fmt.Fprintf(&q, ` OFFSET $%d`, len(args))
	}

	rows, err := s.db.Query(ctx, q.String(), args...)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}

	notifs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Notification, error) {
		return scanNotification(row)
	})
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return notifs, nil
}

func (s *PostgresStorage) CountUnread(ctx context.Context, owner string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT count(*) FROM monits WHERE owner = $1 AND NOT read AND `+notExpired, owner,
	).Scan(&count)
	if err != nil {
		return 0, errors.Join(ErrStorage, err)
	}
	return count, nil
}

func (s *PostgresStorage) MarkRead(ctx context.Context, owner, id string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE monits SET read = TRUE, read_at = COALESCE(read_at, $3) WHERE owner = $1 AND id = $2`,
		owner, id, time.Now().UTC(),
	)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *PostgresStorage) MarkAllRead(ctx context.Context, owner string) (int, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE monits SET read = TRUE, read_at = $2 WHERE owner = $1 AND NOT read`,
		owner, time.Now().UTC(),
	)
	if err != nil {
		return 0, errors.Join(ErrStorage, err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStorage) Delete(ctx context.Context, owner, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM monits WHERE owner = $1 AND id = $2`, owner, id)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *PostgresStorage) DeleteAll(ctx context.Context, owner string) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM monits WHERE owner = $1`, owner)
	if err != nil {
		return 0, errors.Join(ErrStorage, err)
	}
	return int(tag.RowsAffected()), nil
}

func scanNotification(row pgx.Row) (Notification, error) {
	var (
		n   Notification
		typ string
	)
	err := row.Scan(&n.ID, &n.Owner, &typ, &n.Title, &n.Message, &n.URL,
		&n.Data, &n.Read, &n.ReadAt, &n.CreatedAt, &n.ExpiresAt)
	if err != nil {
		return Notification{}, err
	}
	n.Type = Type(typ)
	return n, nil
}
