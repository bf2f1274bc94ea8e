package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFollowValidation(t *testing.T) {
	t.Run("valid edge", func(t *testing.T) {
		follow := &Follow{FollowerID: 1, FollowedID: 2, CreatedAt: time.Now()}
		assert.NoError(t, follow.Validate())
	})

	t.Run("self follow", func(t *testing.T) {
		follow := &Follow{FollowerID: 1, FollowedID: 1, CreatedAt: time.Now()}
		assert.Error(t, follow.Validate())
	})

	t.Run("missing follower", func(t *testing.T) {
		follow := &Follow{FollowedID: 2, CreatedAt: time.Now()}
		assert.Error(t, follow.Validate())
	})
}
