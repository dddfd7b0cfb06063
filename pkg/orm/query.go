// Package orm is a thin chainable wrapper around GORM plus the helpers the
// repositories share: pagination, a Redis read-through cache, transactions,
// and a pessimistic row lock that degrades gracefully on SQLite.
package orm

import (
	"time"

	"github.com/tanakrit/pawmart/pkg/cache"
	"github.com/tanakrit/pawmart/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type Query struct {
	db *gorm.DB
}

// DB returns a Query rooted at the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Gorm exposes the underlying *gorm.DB for operations the wrapper does not
// cover (migrations, raw clauses).
func Gorm() *gorm.DB {
	return database.DB
}

// Transaction runs fn inside a database transaction. A returned error rolls
// everything back; nil commits.
func Transaction(fn func(tx *gorm.DB) error) error {
	return database.DB.Transaction(fn)
}

// LockForUpdate adds a SELECT ... FOR UPDATE clause so concurrent writers to
// the same row serialise inside their transactions. SQLite has no row locks
// but serialises writing transactions itself, so the clause is skipped there.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Gorm unwraps the query for clauses the wrapper does not cover.
func (q *Query) Gorm() *gorm.DB {
	return q.db
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Preload(assoc string) *Query {
	return &Query{db: q.db.Preload(assoc)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(n *int64) error {
	return q.db.Count(n).Error
}

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

func (q *Query) Delete(value interface{}) error {
	return q.db.Delete(value).Error
}

// GetWithPagination fills dest with one page and returns the page metadata.
// page and limit are normalised to sane values (page ≥ 1, 1 ≤ limit ≤ 100).
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// Cache answers dest from Redis when the key is fresh, otherwise runs the
// query and stores the result for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.db.Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl) //nolint:errcheck
	return nil
}
