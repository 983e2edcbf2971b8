package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"microblog/internal/model"
	"microblog/internal/validate"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(m *MockPostStorage) *PostService {
	return NewPostService(m, validate.NewPostValidator(validate.DefaultClean))
}

func TestPostService_Create(t *testing.T) {
	t.Parallel()

	now := time.Now()
	alice := model.User{ID: 1, Name: "Alice"}

	tests := []struct {
		name      string
		requester model.User
		in        validate.PostInput
		setup     func(m *MockPostStorage)
		wantErr   error
		wantField string
		wantCode  validate.Code
	}{
		{
			name:      "unauthenticated requester",
			requester: model.User{},
			in:        validate.PostInput{Title: "Hello", Body: "World"},
			setup:     func(_ *MockPostStorage) {},
			wantErr:   ErrForbidden,
		},
		{
			name:      "title too long, storage untouched",
			requester: alice,
			in:        validate.PostInput{Title: strings.Repeat("a", 26), Body: "World"},
			setup:     func(_ *MockPostStorage) {},
			wantField: "title",
			wantCode:  validate.CodeTooLong,
		},
		{
			name:      "body too long, storage untouched",
			requester: alice,
			in:        validate.PostInput{Title: "Hello", Body: strings.Repeat("b", 256)},
			setup:     func(_ *MockPostStorage) {},
			wantField: "body",
			wantCode:  validate.CodeTooLong,
		},
		{
			name:      "unclean body, storage untouched",
			requester: alice,
			in:        validate.PostInput{Title: "Hello", Body: "utter bullshit"},
			setup:     func(_ *MockPostStorage) {},
			wantField: "body",
			wantCode:  validate.CodeUnacceptableContent,
		},
		{
			name:      "storage error",
			requester: alice,
			in:        validate.PostInput{Title: "Hello", Body: "World"},
			setup: func(m *MockPostStorage) {
				m.EXPECT().
					CreatePost(gomock.Any(), model.Post{Title: "Hello", Body: "World", UserID: 1}).
					Return(model.Post{}, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
		{
			name:      "success pins owner to requester",
			requester: alice,
			in:        validate.PostInput{Title: "Hello", Body: "World"},
			setup: func(m *MockPostStorage) {
				m.EXPECT().
					CreatePost(gomock.Any(), model.Post{Title: "Hello", Body: "World", UserID: 1}).
					Return(model.Post{ID: 10, Title: "Hello", Body: "World", UserID: 1, CreatedAt: now}, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			m := NewMockPostStorage(ctrl)
			tt.setup(m)

			got, err := newTestService(m).Create(context.Background(), tt.requester, tt.in)

			if tt.wantField != "" {
				var ferrs validate.Errors
				require.ErrorAs(t, err, &ferrs)
				require.Equal(t, tt.wantCode, ferrs[tt.wantField][0].Code)
				return
			}
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrForbidden) {
					require.ErrorIs(t, err, ErrForbidden)
				}
				return
			}

			require.NoError(t, err)
			require.Equal(t, int64(10), got.ID)
			require.Equal(t, int64(1), got.UserID)
		})
	}
}

func TestPostService_Update(t *testing.T) {
	t.Parallel()

	alice := model.User{ID: 1}
	bob := model.User{ID: 2}

	tests := []struct {
		name      string
		requester model.User
		postID    int64
		in        validate.PostInput
		setup     func(m *MockPostStorage)
		wantErr   error
	}{
		{
			name:      "invalid id",
			requester: alice,
			postID:    0,
			in:        validate.PostInput{Title: "t", Body: "b"},
			setup:     func(_ *MockPostStorage) {},
			wantErr:   ErrInvalidRequest,
		},
		{
			name:      "post absent",
			requester: alice,
			postID:    7,
			in:        validate.PostInput{Title: "t", Body: "b"},
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostOwnerID(gomock.Any(), int64(7)).Return(int64(0), ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:      "non-owner forbidden, no write",
			requester: bob,
			postID:    7,
			in:        validate.PostInput{Title: "t", Body: "b"},
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostOwnerID(gomock.Any(), int64(7)).Return(int64(1), nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:      "invalid payload after authz, no write",
			requester: alice,
			postID:    7,
			in:        validate.PostInput{Title: strings.Repeat("a", 26), Body: "b"},
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostOwnerID(gomock.Any(), int64(7)).Return(int64(1), nil)
			},
			wantErr: validate.Errors{},
		},
		{
			name:      "success re-pins owner",
			requester: alice,
			postID:    7,
			in:        validate.PostInput{Title: "new title", Body: "new body"},
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostOwnerID(gomock.Any(), int64(7)).Return(int64(1), nil)
				m.EXPECT().
					UpdatePost(gomock.Any(), int64(7), "new title", "new body", int64(1)).
					Return(model.Post{ID: 7, Title: "new title", Body: "new body", UserID: 1}, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			m := NewMockPostStorage(ctrl)
			tt.setup(m)

			got, err := newTestService(m).Update(context.Background(), tt.requester, tt.postID, tt.in)

			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				require.Equal(t, int64(1), got.UserID)
			case validate.Errors:
				var ferrs validate.Errors
				require.ErrorAs(t, err, &ferrs)
			default:
				require.ErrorIs(t, err, want)
			}
		})
	}
}

func TestPostService_Delete(t *testing.T) {
	t.Parallel()

	alice := model.User{ID: 1}
	bob := model.User{ID: 2}

	tests := []struct {
		name      string
		requester model.User
		postID    int64
		setup     func(m *MockPostStorage)
		wantErr   error
	}{
		{
			name:      "invalid id",
			requester: alice,
			postID:    -1,
			setup:     func(_ *MockPostStorage) {},
			wantErr:   ErrInvalidRequest,
		},
		{
			name:      "post absent",
			requester: alice,
			postID:    7,
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostOwnerID(gomock.Any(), int64(7)).Return(int64(0), ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:      "non-owner forbidden",
			requester: bob,
			postID:    7,
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostOwnerID(gomock.Any(), int64(7)).Return(int64(1), nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:      "success",
			requester: alice,
			postID:    7,
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostOwnerID(gomock.Any(), int64(7)).Return(int64(1), nil)
				m.EXPECT().DeletePost(gomock.Any(), int64(7)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			m := NewMockPostStorage(ctrl)
			tt.setup(m)

			err := newTestService(m).Delete(context.Background(), tt.requester, tt.postID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPostService_ListOwn(t *testing.T) {
	t.Parallel()

	alice := model.User{ID: 1}

	ctrl := gomock.NewController(t)
	m := NewMockPostStorage(ctrl)

	want := []model.Post{{ID: 2, UserID: 1}, {ID: 1, UserID: 1}}
	m.EXPECT().GetPostsByUser(gomock.Any(), int64(1)).Return(want, nil)

	got, err := newTestService(m).ListOwn(context.Background(), alice)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = newTestService(NewMockPostStorage(ctrl)).ListOwn(context.Background(), model.User{})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestPostService_ListAll(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	m := NewMockPostStorage(ctrl)

	want := []model.PostWithAuthor{
		{Post: model.Post{ID: 3, UserID: 2}, AuthorName: "Bob"},
		{Post: model.Post{ID: 1, UserID: 1}, AuthorName: "Alice"},
	}
	m.EXPECT().GetPostsWithAuthors(gomock.Any()).Return(want, nil)

	got, err := newTestService(m).ListAll(context.Background(), model.User{ID: 1})
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = newTestService(NewMockPostStorage(ctrl)).ListAll(context.Background(), model.User{})
	require.ErrorIs(t, err, ErrForbidden)
}
