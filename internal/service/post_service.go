package service

import (
	"context"
	"errors"
	"io"

	"gorm.io/gorm"

	"microblog/internal/forms"
	"microblog/internal/model"
	"microblog/internal/pkg"
	"microblog/internal/repository/mysql"
)

// ImageUpload is an uploaded image before it reaches the blob store.
type ImageUpload struct {
	Reader      io.Reader
	ContentType string
}

type PostService struct {
	posts    *mysql.PostRepository
	groups   *mysql.GroupRepository
	users    *mysql.UserRepository
	comments *mysql.CommentRepository
	blobs    *pkg.BlobStore
	cache    FeedInvalidator
	events   EventSender
}

func NewPostService(db *gorm.DB, blobs *pkg.BlobStore, cache FeedInvalidator, events EventSender) *PostService {
	return &PostService{
		posts:    &mysql.PostRepository{DB: db},
		groups:   &mysql.GroupRepository{DB: db},
		users:    &mysql.UserRepository{DB: db},
		comments: &mysql.CommentRepository{DB: db},
		blobs:    blobs,
		cache:    cache,
		events:   events,
	}
}

// Create persists a valid submission with the current user as author.
// Field errors come back in the Errors map; nothing is stored when it is
// non-empty.
func (s *PostService) Create(ctx context.Context, authorID uint64, f *forms.PostForm, image *ImageUpload) (*model.Post, forms.Errors, error) {
	errs := f.Validate()
	groupID, err := s.resolveGroup(f, errs)
	if err != nil {
		return nil, nil, err
	}
	name, contentType, err := s.saveImage(image, errs)
	if err != nil {
		return nil, nil, err
	}
	if !errs.Ok() {
		return nil, errs, nil
	}

	post := &model.Post{
		Text:      f.Text,
		AuthorID:  authorID,
		GroupID:   groupID,
		Image:     name,
		ImageType: contentType,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, nil, err
	}

	author, err := s.users.FindByID(authorID)
	if err != nil {
		return nil, nil, err
	}
	post.Author = *author

	s.invalidate(ctx)
	s.publish(ctx, "post_created", post)
	return post, nil, nil
}

// Edit updates text, group and image in place. Only the author may proceed;
// everyone else gets ErrNotAuthor. ID, author and creation time never
// change.
func (s *PostService) Edit(ctx context.Context, postID, userID uint64, f *forms.PostForm, image *ImageUpload) (*model.Post, forms.Errors, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	if post.AuthorID != userID {
		return nil, nil, ErrNotAuthor
	}

	errs := f.Validate()
	groupID, err := s.resolveGroup(f, errs)
	if err != nil {
		return nil, nil, err
	}
	name, contentType, err := s.saveImage(image, errs)
	if err != nil {
		return nil, nil, err
	}
	if !errs.Ok() {
		return post, errs, nil
	}

	// No new upload keeps the current image.
	if name == "" {
		name, contentType = post.Image, post.ImageType
	}
	if err := s.posts.Update(ctx, post.ID, f.Text, groupID, name, contentType); err != nil {
		return nil, nil, err
	}

	post, err = s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "post_updated", post)
	return post, nil, nil
}

func (s *PostService) Delete(ctx context.Context, postID, userID uint64) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return notFound(err)
	}
	if post.AuthorID != userID {
		return ErrNotAuthor
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.publish(ctx, "post_deleted", post)
	return nil
}

// Detail loads a post with its comments, newest first.
func (s *PostService) Detail(ctx context.Context, postID uint64) (*model.Post, []model.Comment, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

func (s *PostService) resolveGroup(f *forms.PostForm, errs forms.Errors) (*uint64, error) {
	groupID := f.GroupID()
	if groupID == nil {
		return nil, nil
	}
	if _, err := s.groups.FindByID(*groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errs.Add("group", "select a valid group")
			return nil, nil
		}
		return nil, err
	}
	return groupID, nil
}

func (s *PostService) saveImage(image *ImageUpload, errs forms.Errors) (name, contentType string, err error) {
	if image == nil {
		return "", "", nil
	}
	name, err = s.blobs.Save(image.Reader, image.ContentType)
	if errors.Is(err, pkg.ErrUnsupportedImage) {
		errs.Add("image", "upload a jpeg, png or gif image")
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	return name, image.ContentType, nil
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Clear(ctx)
	}
}

func (s *PostService) publish(ctx context.Context, kind string, post *model.Post) {
	if s.events == nil {
		return
	}
	_ = s.events(ctx, pkg.MakeKeyFromID(post.ID), eventPayload(kind, map[string]any{
		"post_id":   post.ID,
		"author_id": post.AuthorID,
	}))
}
