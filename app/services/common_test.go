package services

import (
	"testing"
	"time"

	"bramble/app/cache"
	"bramble/app/models"
	"bramble/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t *testing.T

	userRepo    *repositories.BadgerUserRepository
	groupRepo   *repositories.BadgerGroupRepository
	postRepo    *repositories.BadgerPostRepository
	commentRepo *repositories.BadgerCommentRepository
	followRepo  *repositories.BadgerFollowRepository
	pageCache   *cache.PageCache

	feeds    *FeedService
	follows  *FollowService
	posts    *PostService
	comments *CommentService
	users    *UserService

	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		t:           t,
		userRepo:    repositories.NewBadgerUserRepository(db),
		groupRepo:   repositories.NewBadgerGroupRepository(db),
		postRepo:    repositories.NewBadgerPostRepository(db),
		commentRepo: repositories.NewBadgerCommentRepository(db),
		followRepo:  repositories.NewBadgerFollowRepository(db),
		pageCache:   cache.NewPageCache(db, time.Minute),
		clock:       time.Now().Add(-24 * time.Hour),
	}

	f.feeds = NewFeedService(f.postRepo, f.groupRepo, f.userRepo, f.followRepo, f.pageCache, 10)
	f.follows = NewFollowService(f.userRepo, f.followRepo)
	f.posts = NewPostService(f.postRepo, f.groupRepo, f.commentRepo)
	f.comments = NewCommentService(f.commentRepo, f.postRepo)
	f.users = NewUserService(f.userRepo, f.postRepo, f.followRepo)

	return f
}

func (f *fixture) createUser(username string) *models.User {
	user := &models.User{Username: username}
	user.BeforeCreate()
	require.NoError(f.t, f.userRepo.Create(user))
	return user
}

func (f *fixture) createGroup(title, slug string) *models.Group {
	group := &models.Group{Title: title, Slug: slug}
	require.NoError(f.t, f.groupRepo.Create(group))
	return group
}

// createPost stores a post with a strictly increasing timestamp so feed
// ordering is deterministic.
func (f *fixture) createPost(authorID, groupID int, text string) *models.Post {
	f.clock = f.clock.Add(time.Minute)
	post := &models.Post{
		AuthorID:  authorID,
		GroupID:   groupID,
		Text:      text,
		CreatedAt: f.clock,
	}
	require.NoError(f.t, f.postRepo.Create(post))
	return post
}
