package service

import (
	"context"

	"gorm.io/gorm"

	"microblog/internal/model"
	"microblog/internal/repository/mysql"
)

type CommentService struct {
	posts    *mysql.PostRepository
	comments *mysql.CommentRepository
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		posts:    &mysql.PostRepository{DB: db},
		comments: &mysql.CommentRepository{DB: db},
	}
}

// Add persists a comment bound to the post and the current user.
func (s *CommentService) Add(ctx context.Context, postID, authorID uint64, text string) (*model.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, notFound(err)
	}
	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
