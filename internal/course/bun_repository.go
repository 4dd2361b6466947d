package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

type courseRow struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Title string `bun:"title,notnull"`
}

func (row *courseRow) course() Course {
	return Course{ID: NumericID(row.ID), Title: row.Title}
}

// BunModels lists the tables the relational backend needs.
func BunModels() []interface{} {
	return []interface{}{(*courseRow)(nil)}
}

type BunRepository struct {
	db *bun.DB
}

var _ Repository = (*BunRepository)(nil)

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) List(ctx context.Context, titleFilter string) ([]Course, error) {
	var rows []courseRow
	q := r.db.NewSelect().Model(&rows).OrderExpr("c.id ASC")
	if titleFilter != "" {
		q = q.Where("strpos(c.title, ?) > 0", titleFilter)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("selecting courses: %w", err)
	}

	courses := make([]Course, 0, len(rows))
	for i := range rows {
		courses = append(courses, rows[i].course())
	}
	return courses, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id string) (*Course, error) {
	n, ok := ParseNumericID(id)
	if !ok {
		return nil, nil
	}

	row := new(courseRow)
	if err := r.db.NewSelect().Model(row).Where("c.id = ?", n).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("selecting course %d: %w", n, err)
	}

	c := row.course()
	return &c, nil
}

func (r *BunRepository) Create(ctx context.Context, title string) (*Course, error) {
	row := &courseRow{Title: title}
	if _, err := r.db.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		return nil, fmt.Errorf("inserting course: %w", err)
	}

	c := row.course()
	return &c, nil
}

func (r *BunRepository) Update(ctx context.Context, id, title string) (bool, error) {
	n, ok := ParseNumericID(id)
	if !ok {
		return false, nil
	}

	row := &courseRow{ID: n, Title: title}
	result, err := r.db.NewUpdate().
		Model(row).
		Column("title").
		WherePK().
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("updating course %d: %w", n, err)
	}
	return affectedOne(result)
}

func (r *BunRepository) Delete(ctx context.Context, id string) (bool, error) {
	n, ok := ParseNumericID(id)
	if !ok {
		return false, nil
	}

	row := &courseRow{ID: n}
	result, err := r.db.NewDelete().Model(row).WherePK().Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("deleting course %d: %w", n, err)
	}
	return affectedOne(result)
}

func (r *BunRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.NewTruncateTable().Model((*courseRow)(nil)).Exec(ctx); err != nil {
		return fmt.Errorf("truncating courses: %w", err)
	}
	return nil
}

func (r *BunRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func affectedOne(result sql.Result) (bool, error) {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
