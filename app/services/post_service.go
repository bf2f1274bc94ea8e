package services

import (
	"fmt"

	"bramble/app/models"
	"bramble/app/repositories"
)

// PostInput carries the author-editable fields of a post. GroupSlug is
// optional; an empty slug leaves the post ungrouped.
type PostInput struct {
	Text      string `json:"text"`
	GroupSlug string `json:"group,omitempty"`
	Image     string `json:"image,omitempty"`
}

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	groupRepo   repositories.GroupRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	commentRepo repositories.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost creates a new post authored by the viewer. Fails with
// repositories.ErrNotFound when the group slug names no group.
func (s *PostService) CreatePost(authorID int, input PostInput) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Text:     input.Text,
		Image:    input.Image,
	}

	if input.GroupSlug != "" {
		group, err := s.groupRepo.GetBySlug(input.GroupSlug)
		if err != nil {
			return nil, err
		}
		post.SetGroup(group)
	}

	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %v", err)
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost retrieves a post with its comments
func (s *PostService) GetPost(id int) (*models.Post, []*models.Comment, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get comments: %v", err)
	}
	return post, comments, nil
}

// EditPost updates the text, group and image of an existing post. Only the
// author may edit; the author itself and the creation time never change.
func (s *PostService) EditPost(viewerID, postID int, input PostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != viewerID {
		return nil, ErrNotAuthor
	}

	post.Text = input.Text
	post.Image = input.Image
	post.SetGroup(nil)
	if input.GroupSlug != "" {
		group, err := s.groupRepo.GetBySlug(input.GroupSlug)
		if err != nil {
			return nil, err
		}
		post.SetGroup(group)
	}

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %v", err)
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}
