package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"bramble/app/middleware"
	"bramble/app/repositories"
	"bramble/app/services"

	"github.com/gorilla/mux"
)

// ProfileController handles the follow/unfollow mutations on an author's
// profile. Both are idempotent: self-follow, duplicate follow and absent
// unfollow are silent no-ops followed by the same redirect.
type ProfileController struct {
	followService *services.FollowService
}

// NewProfileController creates a new ProfileController
func NewProfileController(followService *services.FollowService) *ProfileController {
	return &ProfileController{followService: followService}
}

// Follow handles creating a follow edge from the viewer to the named
// author. Routed behind RequireAuth.
func (pc *ProfileController) Follow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	viewer, _ := middleware.ViewerFrom(r.Context())

	err := pc.followService.Follow(viewer.ID, username)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, "Failed to follow: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/profile/%s", username), http.StatusFound)
}

// Unfollow handles removing the follow edge from the viewer to the named
// author. Routed behind RequireAuth.
func (pc *ProfileController) Unfollow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	viewer, _ := middleware.ViewerFrom(r.Context())

	err := pc.followService.Unfollow(viewer.ID, username)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, "Failed to unfollow: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/profile/%s", username), http.StatusFound)
}
