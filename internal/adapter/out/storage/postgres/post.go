package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrBuildingQuery = errors.New("error building sql-query")
)

type PostStorage struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPostStorage(pool *pgxpool.Pool, getter *trmpgx.CtxGetter) *PostStorage {
	return &PostStorage{
		pool:   pool,
		getter: getter,
	}
}

func postColumns() []string {
	return []string{
		tableinfo.PostIDColumn,
		tableinfo.PostTitleColumn,
		tableinfo.PostBodyColumn,
		tableinfo.PostUserIDColumn,
		tableinfo.PostCreatedAtColumn,
		tableinfo.PostUpdatedAtColumn,
	}
}

func scanPost(row pgx.Row, out *model.Post) error {
	return row.Scan(
		&out.ID,
		&out.Title,
		&out.Body,
		&out.UserID,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
}

func (s *PostStorage) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	var out model.Post

	query, args, err := sq.
		Insert(tableinfo.PostsTableName).
		Columns(
			tableinfo.PostTitleColumn,
			tableinfo.PostBodyColumn,
			tableinfo.PostUserIDColumn,
		).
		Values(post.Title, post.Body, post.UserID).
		Suffix("RETURNING " + joinColumns(postColumns())).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	if err := scanPost(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, fmt.Errorf("exec error creating post: %w", err)
	}
	return out, nil
}

func (s *PostStorage) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	var out model.Post

	query, args, err := sq.
		Select(postColumns()...).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	if err := scanPost(tr.QueryRow(ctx, query, args...), &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("exec select post by id: %w", err)
	}
	return out, nil
}

func (s *PostStorage) GetPostOwnerID(ctx context.Context, postID int64) (int64, error) {
	query, args, err := sq.
		Select(tableinfo.PostUserIDColumn).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)

	var ownerID int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, service.ErrNotFound
		}
		return 0, fmt.Errorf("exec select owner_id: %w", err)
	}
	return ownerID, nil
}

func (s *PostStorage) UpdatePost(ctx context.Context, postID int64, title, body string, ownerID int64) (model.Post, error) {
	var out model.Post

	query, args, err := sq.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostTitleColumn, title).
		Set(tableinfo.PostBodyColumn, body).
		Set(tableinfo.PostUserIDColumn, ownerID).
		Set(tableinfo.PostUpdatedAtColumn, sq.Expr("NOW()")).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		Suffix("RETURNING " + joinColumns(postColumns())).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	if err := scanPost(tr.QueryRow(ctx, query, args...), &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("exec update post: %w", err)
	}
	return out, nil
}

func (s *PostStorage) DeletePost(ctx context.Context, postID int64) error {
	query, args, err := sq.
		Delete(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		Suffix(fmt.Sprintf("RETURNING %s", tableinfo.PostIDColumn)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)

	var dummy int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&dummy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.ErrNotFound
		}
		return fmt.Errorf("exec delete post: %w", err)
	}
	return nil
}

func (s *PostStorage) GetPostsByUser(ctx context.Context, userID int64) ([]model.Post, error) {
	query, args, err := listByUserBuilder(userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)

	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec error selecting posts: %w", err)
	}
	defer rows.Close()

	var out []model.Post
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *PostStorage) GetPostsWithAuthors(ctx context.Context) ([]model.PostWithAuthor, error) {
	query, args, err := listWithAuthorsBuilder().ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)

	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec error selecting posts with authors: %w", err)
	}
	defer rows.Close()

	var out []model.PostWithAuthor
	for rows.Next() {
		var (
			p           model.PostWithAuthor
			name, email *string
		)
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Body,
			&p.UserID,
			&p.CreatedAt,
			&p.UpdatedAt,
			&name,
			&email,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		// a post outlives its owner; the author columns go NULL then
		if name != nil {
			p.AuthorName = *name
		}
		if email != nil {
			p.AuthorEmail = *email
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func listByUserBuilder(userID int64) sq.SelectBuilder {
	return sq.
		Select(postColumns()...).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostUserIDColumn: userID}).
		OrderBy(
			tableinfo.PostCreatedAtColumn+" DESC",
			tableinfo.PostIDColumn+" DESC",
		).
		PlaceholderFormat(sq.Dollar)
}

func listWithAuthorsBuilder() sq.SelectBuilder {
	return sq.
		Select(
			"p."+tableinfo.PostIDColumn,
			"p."+tableinfo.PostTitleColumn,
			"p."+tableinfo.PostBodyColumn,
			"p."+tableinfo.PostUserIDColumn,
			"p."+tableinfo.PostCreatedAtColumn,
			"p."+tableinfo.PostUpdatedAtColumn,
			"u."+tableinfo.UserNameColumn,
			"u."+tableinfo.UserEmailColumn,
		).
		From(tableinfo.PostsTableName+" p").
		LeftJoin(fmt.Sprintf("%s u ON u.%s = p.%s",
			tableinfo.UsersTableName,
			tableinfo.UserIDColumn,
			tableinfo.PostUserIDColumn,
		)).
		OrderBy(
			"p."+tableinfo.PostCreatedAtColumn+" DESC",
			"p."+tableinfo.PostIDColumn+" DESC",
		).
		PlaceholderFormat(sq.Dollar)
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
