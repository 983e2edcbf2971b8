package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/validate"
	"microblog/pkg/logger"

	"go.uber.org/zap"
)

type postResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type authorResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type dashboardPostResponse struct {
	postResponse
	Author authorResponse `json:"author"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors validate.Errors `json:"errors"`
}

func toPostResponse(p model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostList(posts []model.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func toDashboardList(posts []model.PostWithAuthor) []dashboardPostResponse {
	out := make([]dashboardPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, dashboardPostResponse{
			postResponse: toPostResponse(p.Post),
			Author: authorResponse{
				Name:  p.AuthorName,
				Email: p.AuthorEmail,
			},
		})
	}
	return out
}

// decodePostInput reads the title/body payload. A wrong JSON type for a
// known field becomes an InvalidType field error instead of a bare 400, so
// clients see it in the same shape as other validation failures.
func decodePostInput(r *http.Request) (validate.PostInput, error) {
	var in validate.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			ferrs := validate.Errors{}
			ferrs.Add(typeErr.Field, validate.CodeInvalidType,
				fmt.Sprintf("%s must be a string", typeErr.Field))
			return in, ferrs
		}
		return in, fmt.Errorf("%w: malformed request body", service.ErrInvalidRequest)
	}
	return in, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var ferrs validate.Errors
	switch {
	case errors.As(err, &ferrs):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: ferrs})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "post not found"})
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, service.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
	default:
		logger.FromContext(ctx).Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
