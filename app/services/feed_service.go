package services

import (
	"fmt"
	"time"

	"bramble/app/cache"
	"bramble/app/models"
	"bramble/app/monitoring"
	"bramble/app/pagination"
	"bramble/app/repositories"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// PostView is a post decorated with the names a reader sees instead of raw
// foreign keys.
type PostView struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Group     string    `json:"group,omitempty"` // group slug, empty when none
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedPage is one rendered page of a feed.
type FeedPage = pagination.Page[PostView]

// AuthorFeed is the author-scoped feed plus the viewer-relative follow flag.
type AuthorFeed struct {
	Author    string   `json:"author"`
	Following bool     `json:"following"`
	Page      FeedPage `json:"page"`
}

// GroupFeed is the group-scoped feed together with the group itself.
type GroupFeed struct {
	Group *models.Group `json:"group"`
	Page  FeedPage      `json:"page"`
}

// FeedService assembles the list views: global feed, group feed, author
// feed and the personalized follow feed. It holds no state of its own; all
// data comes from the repositories, with a short-TTL cache in front of the
// global feed only.
type FeedService struct {
	postRepo   repositories.PostRepository
	groupRepo  repositories.GroupRepository
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	pageCache  *cache.PageCache
	pageSize   int
}

// NewFeedService creates a new FeedService. A nil pageCache disables
// global-feed caching. A non-positive pageSize falls back to the default.
func NewFeedService(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	pageCache *cache.PageCache,
	pageSize int,
) *FeedService {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		pageCache:  pageCache,
		pageSize:   pageSize,
	}
}

// GlobalFeed returns the requested page of all posts, newest first. The
// cache is consulted first; within the TTL the page may lag behind writes,
// which is the documented trade-off for read throughput.
func (s *FeedService) GlobalFeed(page int) (FeedPage, error) {
	if s.pageCache != nil {
		var cached FeedPage
		hit, err := s.pageCache.Get(page, &cached)
		if err != nil {
			log.Warnf("feed cache lookup failed: %v", err)
		} else if hit {
			monitoring.FeedCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
		monitoring.FeedCacheLookups.WithLabelValues("miss").Inc()
	}

	posts, err := s.postRepo.ListAll()
	if err != nil {
		return FeedPage{}, fmt.Errorf("failed to list posts: %w", err)
	}

	result, err := s.renderPage(posts, page)
	if err != nil {
		return FeedPage{}, err
	}

	if s.pageCache != nil {
		if err := s.pageCache.Set(page, result); err != nil {
			log.Warnf("feed cache fill failed: %v", err)
		}
	}
	return result, nil
}

// GroupFeed returns the requested page of a group's posts. Fails with
// repositories.ErrNotFound when no group has the slug.
func (s *FeedService) GroupFeed(slug string, page int) (GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(slug)
	if err != nil {
		return GroupFeed{}, err
	}

	posts, err := s.postRepo.ListByGroup(group.ID)
	if err != nil {
		return GroupFeed{}, fmt.Errorf("failed to list group posts: %w", err)
	}

	result, err := s.renderPage(posts, page)
	if err != nil {
		return GroupFeed{}, err
	}
	return GroupFeed{Group: group, Page: result}, nil
}

// AuthorFeed returns the requested page of a user's posts together with
// whether the viewer follows them. The flag is false for an unauthenticated
// viewer (viewerID <= 0) and for the author looking at their own profile.
// Fails with repositories.ErrNotFound when no such user exists.
func (s *FeedService) AuthorFeed(username string, viewerID, page int) (AuthorFeed, error) {
	author, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return AuthorFeed{}, err
	}

	posts, err := s.postRepo.ListByAuthor(author.ID)
	if err != nil {
		return AuthorFeed{}, fmt.Errorf("failed to list author posts: %w", err)
	}

	following := false
	if viewerID > 0 && viewerID != author.ID {
		following, err = s.followRepo.Exists(viewerID, author.ID)
		if err != nil {
			return AuthorFeed{}, fmt.Errorf("failed to check follow edge: %w", err)
		}
	}

	result, err := s.renderPage(posts, page)
	if err != nil {
		return AuthorFeed{}, err
	}
	return AuthorFeed{Author: author.Username, Following: following, Page: result}, nil
}

// FollowFeed returns the requested page of posts by authors the viewer
// follows. An unauthenticated viewer or one following nobody gets an empty
// page, not an error.
func (s *FeedService) FollowFeed(viewerID, page int) (FeedPage, error) {
	if viewerID <= 0 {
		return s.renderPage(nil, page)
	}

	authorIDs, err := s.followRepo.ListFollowing(viewerID)
	if err != nil {
		return FeedPage{}, fmt.Errorf("failed to list followed authors: %w", err)
	}

	posts, err := s.postRepo.ListByAuthors(authorIDs)
	if err != nil {
		return FeedPage{}, fmt.Errorf("failed to list follow feed posts: %w", err)
	}
	return s.renderPage(posts, page)
}

// ClearCache drops all cached global-feed pages. Exposed for tests and
// administration.
func (s *FeedService) ClearCache() error {
	if s.pageCache == nil {
		return nil
	}
	return s.pageCache.Clear()
}

// renderPage paginates posts and resolves author usernames and group slugs
// for the selected page only.
func (s *FeedService) renderPage(posts []*models.Post, page int) (FeedPage, error) {
	paged := pagination.Paginate(posts, s.pageSize, page)

	usernames, err := s.resolveUsernames(paged.Items)
	if err != nil {
		return FeedPage{}, err
	}
	slugs, err := s.resolveGroupSlugs(paged.Items)
	if err != nil {
		return FeedPage{}, err
	}

	views := lo.Map(paged.Items, func(p *models.Post, _ int) PostView {
		return PostView{
			ID:        p.ID,
			Author:    usernames[p.AuthorID],
			Group:     slugs[p.GroupID],
			Text:      p.Text,
			Image:     p.Image,
			CreatedAt: p.CreatedAt,
		}
	})

	return FeedPage{
		Items:      views,
		Number:     paged.Number,
		TotalPages: paged.TotalPages,
		HasPrev:    paged.HasPrev,
		HasNext:    paged.HasNext,
	}, nil
}

func (s *FeedService) resolveUsernames(posts []*models.Post) (map[int]string, error) {
	ids := lo.Uniq(lo.Map(posts, func(p *models.Post, _ int) int { return p.AuthorID }))
	names := make(map[int]string, len(ids))
	for _, id := range ids {
		user, err := s.userRepo.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve author %d: %w", id, err)
		}
		names[id] = user.Username
	}
	return names, nil
}

func (s *FeedService) resolveGroupSlugs(posts []*models.Post) (map[int]string, error) {
	ids := lo.Uniq(lo.Map(posts, func(p *models.Post, _ int) int { return p.GroupID }))
	slugs := map[int]string{0: ""}
	for _, id := range ids {
		if id == 0 {
			continue
		}
		group, err := s.groupRepo.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve group %d: %w", id, err)
		}
		slugs[id] = group.Slug
	}
	return slugs, nil
}
