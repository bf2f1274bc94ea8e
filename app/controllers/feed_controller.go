package controllers

import (
	"errors"
	"net/http"

	"bramble/app/middleware"
	"bramble/app/pagination"
	"bramble/app/repositories"
	"bramble/app/services"

	"github.com/gorilla/mux"
)

// FeedController handles the read-only list views: global feed, group
// feed, author feed and the personal follow feed.
type FeedController struct {
	feedService *services.FeedService
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService *services.FeedService) *FeedController {
	return &FeedController{feedService: feedService}
}

// Index handles the global feed
func (fc *FeedController) Index(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParsePage(r.URL.Query().Get("page"))

	feed, err := fc.feedService.GlobalFeed(page)
	if err != nil {
		sendError(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, feed)
}

// Group handles the feed of a single group, addressed by slug
func (fc *FeedController) Group(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	page := pagination.ParsePage(r.URL.Query().Get("page"))

	feed, err := fc.feedService.GroupFeed(slug, page)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, "Group not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, "Failed to fetch group posts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, feed)
}

// Profile handles the feed of a single author, addressed by username. The
// response carries whether the current viewer follows the author.
func (fc *FeedController) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	page := pagination.ParsePage(r.URL.Query().Get("page"))

	viewerID := 0
	if viewer, ok := middleware.ViewerFrom(r.Context()); ok {
		viewerID = viewer.ID
	}

	feed, err := fc.feedService.AuthorFeed(username, viewerID, page)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, "Failed to fetch author posts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, feed)
}

// FollowIndex handles the personal feed of posts by followed authors.
// Routed behind RequireAuth, so an authenticated viewer is always present.
func (fc *FeedController) FollowIndex(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParsePage(r.URL.Query().Get("page"))

	viewer, _ := middleware.ViewerFrom(r.Context())
	feed, err := fc.feedService.FollowFeed(viewer.ID, page)
	if err != nil {
		sendError(w, "Failed to fetch follow feed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, feed)
}
