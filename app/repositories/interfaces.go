package repositories

import "bramble/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Delete(id int) error
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	Create(group *models.Group) error
	GetByID(id int) (*models.Group, error)
	GetBySlug(slug string) (*models.Group, error)
	List() ([]*models.Group, error)
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	ListAll() ([]*models.Post, error)
	ListByGroup(groupID int) ([]*models.Post, error)
	ListByAuthor(authorID int) ([]*models.Post, error)
	ListByAuthors(authorIDs []int) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
}

// FollowRepository defines the interface for follow-edge data access.
// Edge uniqueness is enforced by the storage layer: the edge lives under a
// single key derived from the ordered (follower, followed) pair, so a
// duplicate insert fails inside one atomic transaction.
type FollowRepository interface {
	Create(follow *models.Follow) error
	Delete(followerID, followedID int) error
	Exists(followerID, followedID int) (bool, error)
	ListFollowing(followerID int) ([]int, error)
	DeleteEdgesInvolving(userID int) error
}
