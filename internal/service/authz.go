package service

import "microblog/internal/model"

// PostPolicy decides which requester may perform which post operation.
// Every service method consults it explicitly; there is no ambient gating
// beyond transport authentication.
type PostPolicy struct{}

// CanCreate allows any authenticated user to create posts.
func (PostPolicy) CanCreate(u model.User) bool {
	return u.ID > 0
}

// CanList allows any authenticated user to list, both own-scoped and the
// cross-user dashboard.
func (PostPolicy) CanList(u model.User) bool {
	return u.ID > 0
}

// CanMutate allows updates and deletes only to the post's owner.
func (PostPolicy) CanMutate(u model.User, ownerID int64) bool {
	return u.ID > 0 && u.ID == ownerID
}
