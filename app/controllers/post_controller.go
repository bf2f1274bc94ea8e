package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bramble/app/middleware"
	"bramble/app/models"
	"bramble/app/repositories"
	"bramble/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for single posts: detail view,
// creation and editing.
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// postDetailResponse is the typed payload of the post detail view.
type postDetailResponse struct {
	Post     *models.Post      `json:"post"`
	Comments []*models.Comment `json:"comments"`
}

// Show handles displaying a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, comments, err := pc.postService.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, postDetailResponse{Post: post, Comments: comments})
}

// Create handles creating a new post authored by the current viewer.
// Routed behind RequireAuth.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.ViewerFrom(r.Context())

	var input services.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.CreatePost(viewer.ID, input)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, "Group not found", http.StatusNotFound)
		return
	}
	if err != nil && strings.Contains(err.Error(), "invalid post") {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		sendError(w, "Failed to create post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Edit handles updating a post's text, group and image. Only the author
// may edit; anyone else is redirected to the detail view. Routed behind
// RequireAuth.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	viewer, _ := middleware.ViewerFrom(r.Context())

	var input services.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.EditPost(viewer.ID, id, input)
	if errors.Is(err, services.ErrNotAuthor) {
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", id), http.StatusFound)
		return
	}
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil && strings.Contains(err.Error(), "invalid post") {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		sendError(w, "Failed to update post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, post)
}
