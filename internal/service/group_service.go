package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"microblog/internal/forms"
	"microblog/internal/model"
	"microblog/internal/repository/mysql"
)

type GroupService struct {
	groups *mysql.GroupRepository
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{groups: &mysql.GroupRepository{DB: db}}
}

// Create makes a new group. A colliding slug surfaces as a field error,
// not a storage error.
func (s *GroupService) Create(ctx context.Context, f *forms.GroupForm) (*model.Group, forms.Errors, error) {
	errs := f.Validate()
	if !errs.Ok() {
		return nil, errs, nil
	}
	group := &model.Group{
		Title:       f.Title,
		Slug:        f.Slug,
		Description: f.Description,
	}
	if err := s.groups.Create(group); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			errs.Add("slug", "this slug is already in use")
			return nil, errs, nil
		}
		return nil, nil, err
	}
	return group, nil, nil
}

func (s *GroupService) List(ctx context.Context) ([]model.Group, error) {
	return s.groups.List()
}
