package inmemory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"microblog/internal/model"
	"microblog/internal/service"
)

// PostStorage keeps posts in process memory. It backs tests and the
// STORAGE_TYPE=inmemory mode.
type PostStorage struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.Post
	users  map[int64]model.User
}

func NewPostStorage() *PostStorage {
	return &PostStorage{
		byID:  make(map[int64]model.Post),
		users: make(map[int64]model.User),
	}
}

// SeedUser registers an identity for the dashboard join. In postgres mode
// the users table plays this role.
func (s *PostStorage) SeedUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *PostStorage) CreatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	in.ID = s.nextID
	now := time.Now()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = now
	}
	in.UpdatedAt = in.CreatedAt
	s.byID[in.ID] = in
	return in, nil
}

func (s *PostStorage) GetPostByID(_ context.Context, postID int64) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if post, ok := s.byID[postID]; ok {
		return post, nil
	}
	return model.Post{}, service.ErrNotFound
}

func (s *PostStorage) GetPostOwnerID(_ context.Context, postID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[postID]
	if !ok {
		return 0, service.ErrNotFound
	}
	return p.UserID, nil
}

func (s *PostStorage) UpdatePost(_ context.Context, postID int64, title, body string, ownerID int64) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[postID]
	if !ok {
		return model.Post{}, service.ErrNotFound
	}
	p.Title = title
	p.Body = body
	p.UserID = ownerID
	p.UpdatedAt = time.Now()
	s.byID[postID] = p
	return p, nil
}

func (s *PostStorage) DeletePost(_ context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[postID]; !ok {
		return service.ErrNotFound
	}
	delete(s.byID, postID)
	return nil
}

func (s *PostStorage) GetPostsByUser(_ context.Context, userID int64) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Post
	for _, p := range s.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *PostStorage) GetPostsWithAuthors(_ context.Context) ([]model.PostWithAuthor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]model.Post, 0, len(s.byID))
	for _, p := range s.byID {
		posts = append(posts, p)
	}
	sortNewestFirst(posts)

	out := make([]model.PostWithAuthor, 0, len(posts))
	for _, p := range posts {
		u := s.users[p.UserID]
		out = append(out, model.PostWithAuthor{
			Post:        p,
			AuthorName:  u.Name,
			AuthorEmail: u.Email,
		})
	}
	return out, nil
}

// sortNewestFirst orders by created_at descending, ID descending as the
// tie-break, matching the postgres ordering.
func sortNewestFirst(posts []model.Post) {
	slices.SortFunc(posts, func(a, b model.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
