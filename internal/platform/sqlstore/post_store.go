package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/redact"
	"github.com/phrazzld/blog-api/internal/store"
)

const postColumns = "id, title, content, created_at, updated_at"

// postQueries holds the statements of PostStore, rebound for one dialect.
type postQueries struct {
	insertReturning string
	insert          string
	selectByID      string
	update          string
	deleteByID      string
	count           string
	selectPage      string
}

func newPostQueries(d Dialect) postQueries {
	return postQueries{
		insertReturning: d.Rebind(
			"INSERT INTO posts (title, content, created_at) VALUES (?, ?, ?) RETURNING id",
		),
		insert: d.Rebind("INSERT INTO posts (title, content, created_at) VALUES (?, ?, ?)"),
		selectByID: d.Rebind(
			"SELECT " + postColumns + " FROM posts WHERE id = ?",
		),
		update:     d.Rebind("UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ?"),
		deleteByID: d.Rebind("DELETE FROM posts WHERE id = ?"),
		count:      "SELECT COUNT(*) FROM posts",
		selectPage: d.Rebind(
			"SELECT " + postColumns + " FROM posts ORDER BY id ASC LIMIT ? OFFSET ?",
		),
	}
}

// PostStore implements store.PostStore on a *sql.DB.
type PostStore struct {
	db      *sql.DB
	dialect Dialect
	queries postQueries
	now     func() time.Time
	logger  *slog.Logger
}

// Ensure PostStore implements store.PostStore interface
var _ store.PostStore = (*PostStore)(nil)

// NewPostStore creates a new SQL implementation of store.PostStore.
// If logger is nil, a default logger will be used.
func NewPostStore(db *sql.DB, dialect Dialect, logger *slog.Logger) *PostStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostStore{
		db:      db,
		dialect: dialect,
		queries: newPostQueries(dialect),
		now:     time.Now,
		logger: logger.With(
			slog.String("component", "post_store"),
			slog.String("dialect", dialect.Name()),
		),
	}
}

// WithClock replaces the time source; used by tests.
func (s *PostStore) WithClock(now func() time.Time) *PostStore {
	s.now = now
	return s
}

// timestamp returns the current time at the precision every backend keeps.
func (s *PostStore) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// Create implements store.PostStore.Create
func (s *PostStore) Create(ctx context.Context, title, content string) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePost(title, content); err != nil {
		log.Warn("post validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	post := &domain.Post{
		Title:     title,
		Content:   content,
		CreatedAt: s.timestamp(),
	}

	id, err := s.insert(ctx, post)
	if err != nil {
		err = s.dialect.MapError(err)
		log.Error("failed to insert post", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("post", "create", "failed to insert post", err)
	}
	post.ID = id

	log.Info("post created successfully", slog.Int64("post_id", post.ID))
	return post, nil
}

func (s *PostStore) insert(ctx context.Context, post *domain.Post) (int64, error) {
	if s.dialect.SupportsReturning() {
		var id int64
		err := s.db.QueryRowContext(ctx, s.queries.insertReturning,
			post.Title, post.Content, post.CreatedAt).Scan(&id)
		return id, err
	}

	result, err := s.db.ExecContext(ctx, s.queries.insert, post.Title, post.Content, post.CreatedAt)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated id: %w", err)
	}
	return id, nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.getByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			log.Debug("post not found", slog.Int64("post_id", id))
			return nil, err
		}
		log.Error("failed to get post",
			slog.String("error", redact.Error(err)),
			slog.Int64("post_id", id))
		return nil, store.NewStoreError("post", "get", "failed to get post", err)
	}
	return post, nil
}

func (s *PostStore) getByID(ctx context.Context, q store.DBTX, id int64) (*domain.Post, error) {
	post, err := scanPost(q.QueryRowContext(ctx, s.queries.selectByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		return nil, s.dialect.MapError(err)
	}
	return post, nil
}

// Update implements store.PostStore.Update
//
// The existing row is read and rewritten inside one transaction, so the
// not-found check and the write see the same record.
func (s *PostStore) Update(ctx context.Context, id int64, title, content string) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePost(title, content); err != nil {
		log.Warn("post validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, err
	}

	var updated *domain.Post
	err := store.RunInTransaction(ctx, s.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		post, err := s.getByID(ctx, tx, id)
		if err != nil {
			return err
		}

		post.Touch(title, content, s.timestamp())

		result, err := tx.ExecContext(ctx, s.queries.update,
			post.Title, post.Content, *post.UpdatedAt, post.ID)
		if err != nil {
			return s.dialect.MapError(err)
		}
		if err := checkRowsAffected(result, store.ErrPostNotFound); err != nil {
			return err
		}

		updated = post
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			log.Debug("post not found for update", slog.Int64("post_id", id))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to update post",
			slog.String("error", redact.Error(err)),
			slog.Int64("post_id", id))
		return nil, store.NewStoreError("post", "update", "failed to update post", err)
	}

	log.Info("post updated successfully", slog.Int64("post_id", id))
	return updated, nil
}

// Delete implements store.PostStore.Delete
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, s.queries.deleteByID, id)
	if err != nil {
		err = s.dialect.MapError(err)
		log.Error("failed to delete post",
			slog.String("error", redact.Error(err)),
			slog.Int64("post_id", id))
		return store.NewStoreError("post", "delete", "failed to delete post", err)
	}

	if err := checkRowsAffected(result, store.ErrPostNotFound); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			log.Debug("post not found for delete", slog.Int64("post_id", id))
			return err
		}
		return store.NewStoreError("post", "delete", "failed to delete post", err)
	}

	log.Info("post deleted successfully", slog.Int64("post_id", id))
	return nil
}

// ListPage implements store.PostStore.ListPage
//
// The count and the page query run in one transaction so the totals describe
// the same snapshot as the items.
func (s *PostStore) ListPage(ctx context.Context, page, pageSize int) (*store.PostPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page, pageSize = store.NormalizePage(page, pageSize)

	var (
		total int64
		items []*domain.Post
	)
	err := store.RunInTransaction(ctx, s.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, s.queries.count).Scan(&total); err != nil {
			return s.dialect.MapError(err)
		}
		offset, ok := store.PageOffset(page, pageSize, total)
		if !ok {
			return nil
		}

		rows, err := tx.QueryContext(ctx, s.queries.selectPage, pageSize, offset)
		if err != nil {
			return s.dialect.MapError(err)
		}
		defer func() {
			if closeErr := rows.Close(); closeErr != nil {
				log.Error("failed to close rows", slog.String("error", closeErr.Error()))
			}
		}()

		for rows.Next() {
			post, err := scanPost(rows)
			if err != nil {
				return err
			}
			items = append(items, post)
		}
		return rows.Err()
	})
	if err != nil {
		log.Error("failed to list posts",
			slog.String("error", redact.Error(err)),
			slog.Int("page", page),
			slog.Int("page_size", pageSize))
		return nil, store.NewStoreError("post", "list", "failed to list posts", err)
	}

	log.Debug("listed posts",
		slog.Int("page", page),
		slog.Int("page_size", pageSize),
		slog.Int("count", len(items)),
		slog.Int64("total", total))
	return store.NewPostPage(items, total, page, pageSize), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var (
		post      domain.Post
		updatedAt sql.NullTime
	)
	if err := row.Scan(&post.ID, &post.Title, &post.Content, &post.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}

	post.CreatedAt = post.CreatedAt.UTC()
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		post.UpdatedAt = &t
	}
	return &post, nil
}
