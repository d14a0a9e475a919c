package auth

import "inkwell/internal/models"

// CanModify reports whether the requester may edit or delete the given
// post: the post's author and the administrator may, everyone else and
// anonymous requesters may not. Both the edit and the delete paths must go
// through this single predicate.
func CanModify(requester Identity, post *models.Post) bool {
	if post == nil || !requester.IsAuthenticated() {
		return false
	}
	return requester.UserID() == post.AuthorID || requester.UserID() == AdminUserID
}
