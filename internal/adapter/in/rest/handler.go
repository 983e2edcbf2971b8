package rest

import (
	"context"
	"net/http"
	"strconv"

	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/validate"
)

type PostService interface {
	Create(ctx context.Context, requester model.User, in validate.PostInput) (model.Post, error)
	Update(ctx context.Context, requester model.User, postID int64, in validate.PostInput) (model.Post, error)
	Delete(ctx context.Context, requester model.User, postID int64) error
	ListOwn(ctx context.Context, requester model.User) ([]model.Post, error)
	ListAll(ctx context.Context, requester model.User) ([]model.PostWithAuthor, error)
}

type Handler struct {
	posts PostService
}

func NewHandler(posts PostService) *Handler {
	return &Handler{posts: posts}
}

// Routes wires the resource endpoints behind the auth middleware. Method
// and path matching come from the mux patterns; every handler still
// re-checks that an identity made it into the context.
func (h *Handler) Routes(auth Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /posts", auth(http.HandlerFunc(h.ListPosts)))
	mux.Handle("POST /posts", auth(http.HandlerFunc(h.CreatePost)))
	mux.Handle("PUT /posts/{id}", auth(http.HandlerFunc(h.UpdatePost)))
	mux.Handle("PATCH /posts/{id}", auth(http.HandlerFunc(h.UpdatePost)))
	mux.Handle("DELETE /posts/{id}", auth(http.HandlerFunc(h.DeletePost)))
	mux.Handle("GET /dashboard", auth(http.HandlerFunc(h.Dashboard)))
	mux.HandleFunc("GET /healthz", h.Healthz)

	return mux
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	requester, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	posts, err := h.posts.ListOwn(r.Context(), requester)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostList(posts))
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	requester, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	posts, err := h.posts.ListAll(r.Context(), requester)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardList(posts))
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	requester, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	in, err := decodePostInput(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), requester, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	requester, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	postID, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	in, err := decodePostInput(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	post, err := h.posts.Update(r.Context(), requester, postID, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	requester, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	postID, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if err := h.posts.Delete(r.Context(), requester, postID); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidRequest
	}
	return id, nil
}
