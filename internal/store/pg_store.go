package store

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const itemsTable = "items"

var itemColumns = []string{"id", "name", "quantity"}

// DBTX is the subset of pgxpool.Pool used by PgStore.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PgStore implements ItemStore using PostgreSQL as the data store.
type PgStore struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPgStore creates a new instance of ItemStore on top of a PostgreSQL connection pool.
func NewPgStore(db DBTX) *PgStore {
	return &PgStore{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListAll retrieves all items ordered by ID.
func (p *PgStore) ListAll(ctx context.Context) ([]Item, error) {
	query, args, err := p.sb.Select(itemColumns...).From(itemsTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}
	items := make([]Item, 0)
	if err := pgxscan.Select(ctx, p.db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// FindByID retrieves an item by its ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (Item, bool, error) {
	query, args, err := p.sb.Select(itemColumns...).From(itemsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return Item{}, false, fmt.Errorf("failed to build find query: %w", err)
	}
	return p.getOne(ctx, "find", id, query, args)
}

// Insert adds a new item and returns the stored row.
func (p *PgStore) Insert(ctx context.Context, name string, quantity int32) (Item, error) {
	query, args, err := p.sb.Insert(itemsTable).
		Columns("name", "quantity").
		Values(name, quantity).
		Suffix(returningItem()).
		ToSql()
	if err != nil {
		return Item{}, fmt.Errorf("failed to build insert query: %w", err)
	}
	var item Item
	if err := pgxscan.Get(ctx, p.db, &item, query, args...); err != nil {
		return Item{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return item, nil
}

// Update overwrites name and quantity in a single statement.
func (p *PgStore) Update(ctx context.Context, id int64, name string, quantity int32) (Item, bool, error) {
	query, args, err := p.sb.Update(itemsTable).
		Set("name", name).
		Set("quantity", quantity).
		Where(squirrel.Eq{"id": id}).
		Suffix(returningItem()).
		ToSql()
	if err != nil {
		return Item{}, false, fmt.Errorf("failed to build update query: %w", err)
	}
	return p.getOne(ctx, "update", id, query, args)
}

// Exists reports whether an item with the given ID is stored.
func (p *PgStore) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := p.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From(itemsTable).
		Where(squirrel.Eq{"id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}
	var exists bool
	if err := p.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check item with ID %d: %w", id, err)
	}
	return exists, nil
}

// Delete removes an item by its ID. No rows affected is not an error.
func (p *PgStore) Delete(ctx context.Context, id int64) error {
	query, args, err := p.sb.Delete(itemsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}
	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete item with ID %d: %w", id, err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// getOne scans a single row into an Item, translating "no rows" into absence.
func (p *PgStore) getOne(ctx context.Context, op string, id int64, query string, args []any) (Item, bool, error) {
	var item Item
	if err := pgxscan.Get(ctx, p.db, &item, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return Item{}, false, nil
		}
		return Item{}, false, fmt.Errorf("failed to %s item with ID %d: %w", op, id, err)
	}
	return item, true, nil
}

func returningItem() string {
	return "RETURNING id, name, quantity"
}
