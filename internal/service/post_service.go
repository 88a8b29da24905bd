package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"go.uber.org/zap"
)

// Ограничения формы объявления
const (
	PostTitleMinLength = 5
	PostTitleMaxLength = 120
	PostMaxImages      = 10
)

// PostService объявления о сдаче комнат
type PostService struct {
	api    *api.Client
	logger *zap.Logger
}

func NewPostService(client *api.Client, logger *zap.Logger) *PostService {
	return &PostService{
		api:    client,
		logger: logger,
	}
}

// List все объявления
func (s *PostService) List(ctx context.Context) ([]*model.Post, error) {
	return s.api.ListPosts(ctx)
}

// Mine объявления владельца
func (s *PostService) Mine(ctx context.Context, role model.Role) ([]*model.Post, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}
	return s.api.MyPosts(ctx)
}

// Get объявление по id
func (s *PostService) Get(ctx context.Context, id model.ID) (*model.Post, error) {
	return s.api.GetPost(ctx, id)
}

// Create публикует объявление по комнате владельца
func (s *PostService) Create(ctx context.Context, role model.Role, in api.PostInput, images []api.Image) (*model.Post, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}
	if in.Status == "" {
		in.Status = model.PostStatusAvailable
	}
	if err := ValidatePost(in, images); err != nil {
		return nil, err
	}

	post, err := s.api.CreatePost(ctx, in, images)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info("Post created",
		zap.String("post_id", post.Key().String()),
		zap.Int("images", len(images)))

	return post, nil
}

// ChangeStatus меняет статус объявления
func (s *PostService) ChangeStatus(ctx context.Context, role model.Role, id model.ID, status model.PostStatus) (*model.Post, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}
	if !validPostStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidPost, status)
	}

	post, err := s.api.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	in := api.InputFromPost(post)
	in.Status = status

	updated, err := s.api.UpdatePost(ctx, id, in, nil)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

// Edit меняет поля объявления, статус и фото остаются прежними
func (s *PostService) Edit(ctx context.Context, role model.Role, id model.ID, edit func(*api.PostInput)) (*model.Post, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}

	post, err := s.api.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	in := api.InputFromPost(post)
	edit(&in)
	if err := validatePostFields(in); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdatePost(ctx, id, in, nil)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.logger.Info("Post updated", zap.String("post_id", id.String()))
	return updated, nil
}

// Delete удаляет объявление
func (s *PostService) Delete(ctx context.Context, role model.Role, id model.ID) error {
	if role != model.RoleOwner {
		return ErrOwnerOnly
	}
	if err := s.api.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.logger.Info("Post deleted", zap.String("post_id", id.String()))
	return nil
}

// SendMessage студент пишет владельцу по объявлению
func (s *PostService) SendMessage(ctx context.Context, postID model.ID) error {
	if err := s.api.SendMessage(ctx, postID); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// ValidatePost проверяет форму объявления
func ValidatePost(in api.PostInput, images []api.Image) error {
	if err := validatePostFields(in); err != nil {
		return err
	}
	if in.RoomID.IsZero() {
		return fmt.Errorf("%w: room is required", ErrInvalidPost)
	}
	if len(images) > PostMaxImages {
		return fmt.Errorf("%w: too many images", ErrInvalidPost)
	}
	return nil
}

// validatePostFields проверяет поля, которые владелец может менять после публикации
func validatePostFields(in api.PostInput) error {
	title := []rune(strings.TrimSpace(in.Title))
	if len(title) < PostTitleMinLength || len(title) > PostTitleMaxLength {
		return fmt.Errorf("%w: title length", ErrInvalidPost)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidPost)
	}
	if in.SecurityDeposit < 0 {
		return fmt.Errorf("%w: deposit must not be negative", ErrInvalidPost)
	}
	if !validPostStatus(in.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPost, in.Status)
	}
	return nil
}

func validPostStatus(status model.PostStatus) bool {
	for _, s := range model.PostStatuses {
		if s == status {
			return true
		}
	}
	return false
}
