// resource.go
//
// glucodb, a diabetes education data service with a glucose risk classifier
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of glucodb.
// glucodb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// glucodb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with glucodb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"

	"github.com/localnerve/glucodb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// Limits for list endpoints that accept a limit query parameter
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Schema describes one resource type: how a create payload becomes a record,
// how a partial payload is validated and applied, and how records are scoped and ordered.
//
// T is the persisted model, C the create payload, U the partial update payload.
type Schema[T any, C any, U any] struct {
	// Name is used in error messages, e.g. "Glucose record"
	Name string

	// Build validates a create payload and returns a fully populated record,
	// derived fields included. It must not touch the store.
	Build func(in C) (T, error)

	// Check validates a partial payload before the store is read.
	Check func(in U) error

	// Apply copies the present fields of a checked payload onto rec and recomputes
	// any derived field whose inputs changed.
	Apply func(rec *T, in U)

	// OwnerColumn names the column holding the owning user id; empty for shared resources.
	OwnerColumn string

	// SetOwner stamps the caller's id on a new record when OwnerColumn is set.
	SetOwner func(rec *T, owner string)

	// ScopeReads restricts reads to the owner as well as mutations.
	ScopeReads bool

	// Order is the default list ordering, e.g. "time desc".
	Order string

	// Preload lists associations loaded with every read.
	Preload []string
}

// ListQuery narrows a List call
type ListQuery struct {
	Owner   string
	Filters map[string]interface{}
	Order   string
	Limit   int
}

// Resource performs the four record operations for one Schema against the store.
// Every mutation runs in its own transaction and is rolled back as a whole on failure.
type Resource[T any, C any, U any] struct {
	DB     *gorm.DB
	Schema Schema[T, C, U]
}

// NewResource binds a schema to a database
func NewResource[T any, C any, U any](db *gorm.DB, schema Schema[T, C, U]) *Resource[T, C, U] {
	return &Resource[T, C, U]{DB: db, Schema: schema}
}

// Create validates the payload and persists a new record owned by owner
func (r *Resource[T, C, U]) Create(ctx context.Context, owner string, in C) (*T, error) {
	rec, err := r.Schema.Build(in)
	if err != nil {
		return nil, err
	}
	if r.Schema.OwnerColumn != "" && r.Schema.SetOwner != nil {
		r.Schema.SetOwner(&rec, owner)
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", r.Schema.Name)
	}

	return &rec, nil
}

// Get loads one record by id
func (r *Resource[T, C, U]) Get(ctx context.Context, owner string, id uint64) (*T, error) {
	var rec T
	if err := r.find(r.DB.WithContext(ctx), owner, id, r.Schema.ScopeReads, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns the records matching q, in q.Order or the schema's default order
func (r *Resource[T, C, U]) List(ctx context.Context, q ListQuery) ([]T, error) {
	tx := r.DB.WithContext(ctx).
		Clauses(hints.Comment("select", "list "+r.Schema.Name)).
		Model(new(T))

	if r.Schema.ScopeReads && r.Schema.OwnerColumn != "" {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: r.Schema.OwnerColumn}, Value: q.Owner})
	}
	for column, value := range q.Filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}

	order := q.Order
	if order == "" {
		order = r.Schema.Order
	}
	if order == "" {
		order = "id asc"
	}
	tx = tx.Order(order)

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	for _, assoc := range r.Schema.Preload {
		tx = tx.Preload(assoc)
	}

	records := make([]T, 0)
	if err := tx.Find(&records).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", r.Schema.Name)
	}
	return records, nil
}

// Update applies a partial payload to an existing record
func (r *Resource[T, C, U]) Update(ctx context.Context, owner string, id uint64, in U) (*T, error) {
	if r.Schema.Check != nil {
		if err := r.Schema.Check(in); err != nil {
			return nil, err
		}
	}

	var rec T
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.find(tx, owner, id, true, &rec); err != nil {
			return err
		}

		r.Schema.Apply(&rec, in)

		if err := tx.Omit(clause.Associations).Save(&rec).Error; err != nil {
			return errors.Wrapf(err, "failed to update %s", r.Schema.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// Delete removes a record. A second delete of the same id reports not found.
func (r *Resource[T, C, U]) Delete(ctx context.Context, owner string, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec T
		if err := r.find(tx, owner, id, true, &rec); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Delete(&rec).Error; err != nil {
			return errors.Wrapf(err, "failed to delete %s", r.Schema.Name)
		}
		return nil
	})
}

// find loads id into rec, applying the owner filter when scoped
func (r *Resource[T, C, U]) find(tx *gorm.DB, owner string, id uint64, scoped bool, rec *T) error {
	q := tx.Clauses(hints.Comment("select", "find "+r.Schema.Name))
	if scoped && r.Schema.OwnerColumn != "" {
		q = q.Where(clause.Eq{Column: clause.Column{Name: r.Schema.OwnerColumn}, Value: owner})
	}
	for _, assoc := range r.Schema.Preload {
		q = q.Preload(assoc)
	}

	err := q.First(rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(types.ErrNotFound, "%s %d", r.Schema.Name, id)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to load %s %d", r.Schema.Name, id)
	}
	return nil
}

// ClampLimit returns value, or def when value is not positive, capped at max
func ClampLimit(value, def, max int) int {
	if value <= 0 {
		value = def
	}
	if value > max {
		value = max
	}
	return value
}
