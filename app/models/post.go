package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
}

// SetGroup assigns the post to a group, clearing the assignment when the
// group is nil.
func (p *Post) SetGroup(group *Group) {
	if group == nil {
		p.GroupID = 0
		return
	}
	p.GroupID = group.ID
}
