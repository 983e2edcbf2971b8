package service

import (
	"context"
	"fmt"

	"microblog/internal/model"
	"microblog/internal/validate"
)

//go:generate mockgen -source=posts.go -destination=./post_storage_mock.go -package=service microblog/internal/service PostStorage
type PostStorage interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	GetPostOwnerID(ctx context.Context, postID int64) (int64, error)
	UpdatePost(ctx context.Context, postID int64, title, body string, ownerID int64) (model.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	GetPostsByUser(ctx context.Context, userID int64) ([]model.Post, error)
	GetPostsWithAuthors(ctx context.Context) ([]model.PostWithAuthor, error)
}

type PostService struct {
	postStorage PostStorage
	validator   *validate.PostValidator
	policy      PostPolicy
}

func NewPostService(postStorage PostStorage, validator *validate.PostValidator) *PostService {
	return &PostService{
		postStorage: postStorage,
		validator:   validator,
	}
}

// Create validates the input, then persists a new post owned by the
// requester. Nothing is written when validation fails.
func (s *PostService) Create(ctx context.Context, requester model.User, in validate.PostInput) (model.Post, error) {
	if !s.policy.CanCreate(requester) {
		return model.Post{}, fmt.Errorf("%w: not authenticated", ErrForbidden)
	}
	if err := s.validator.Validate(in); err != nil {
		return model.Post{}, err
	}
	return s.postStorage.CreatePost(ctx, model.Post{
		Title:  in.Title,
		Body:   in.Body,
		UserID: requester.ID,
	})
}

// Update loads the target, checks ownership, re-validates, then overwrites
// title and body. The owner is re-pinned to the original creator; the
// payload can never reassign it. Last write wins on concurrent updates.
func (s *PostService) Update(ctx context.Context, requester model.User, postID int64, in validate.PostInput) (model.Post, error) {
	if postID <= 0 {
		return model.Post{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	ownerID, err := s.postStorage.GetPostOwnerID(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}
	if !s.policy.CanMutate(requester, ownerID) {
		return model.Post{}, fmt.Errorf("%w: not the post owner", ErrForbidden)
	}
	if err := s.validator.Validate(in); err != nil {
		return model.Post{}, err
	}
	return s.postStorage.UpdatePost(ctx, postID, in.Title, in.Body, ownerID)
}

// Delete loads the target, checks ownership, then removes the record
// permanently. Deleting an already-deleted post reports ErrNotFound.
func (s *PostService) Delete(ctx context.Context, requester model.User, postID int64) error {
	if postID <= 0 {
		return fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	ownerID, err := s.postStorage.GetPostOwnerID(ctx, postID)
	if err != nil {
		return err
	}
	if !s.policy.CanMutate(requester, ownerID) {
		return fmt.Errorf("%w: not the post owner", ErrForbidden)
	}
	return s.postStorage.DeletePost(ctx, postID)
}

// ListOwn returns the requester's posts, newest first.
func (s *PostService) ListOwn(ctx context.Context, requester model.User) ([]model.Post, error) {
	if !s.policy.CanList(requester) {
		return nil, fmt.Errorf("%w: not authenticated", ErrForbidden)
	}
	return s.postStorage.GetPostsByUser(ctx, requester.ID)
}

// ListAll returns every post joined with its owner's identity, newest
// first. This feeds the dashboard and is open to any authenticated user.
func (s *PostService) ListAll(ctx context.Context, requester model.User) ([]model.PostWithAuthor, error) {
	if !s.policy.CanList(requester) {
		return nil, fmt.Errorf("%w: not authenticated", ErrForbidden)
	}
	return s.postStorage.GetPostsWithAuthors(ctx)
}
