package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bramble/app/middleware"
	"bramble/app/repositories"
	"bramble/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index handles listing all comments on a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := cc.commentService.ListPostComments(postID)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, "Failed to fetch comments: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create handles appending a comment by the current viewer to a post.
// Routed behind RequireAuth.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	viewer, _ := middleware.ViewerFrom(r.Context())

	var input struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.AddComment(viewer.ID, postID, input.Text)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil && strings.Contains(err.Error(), "invalid comment") {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		sendError(w, "Failed to create comment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}
