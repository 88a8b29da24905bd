package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/Freeeeeet/rental_bot/internal/model"
)

// PostInput метаданные объявления для создания и обновления
type PostInput struct {
	PostID           model.ID         `json:"postId,omitempty"`
	Title            string           `json:"title"`
	Price            float64          `json:"price"`
	Status           model.PostStatus `json:"status"`
	RoomID           model.ID         `json:"roomId,omitempty"`
	MinimumLeaseTerm string           `json:"minimumLeaseTerm"`
	MaximumLeaseTerm string           `json:"maximumLeaseTerm"`
	SecurityDeposit  float64          `json:"securityDeposit"`
	ImagesToDelete   []string         `json:"imagesToDelete,omitempty"`
}

// InputFromPost заполняет метаданные из существующего объявления
func InputFromPost(p *model.Post) PostInput {
	return PostInput{
		PostID:           p.Key(),
		Title:            p.Title,
		Price:            p.Price,
		Status:           p.Status,
		MinimumLeaseTerm: p.MinimumLeaseTerm,
		MaximumLeaseTerm: p.MaximumLeaseTerm,
		SecurityDeposit:  p.SecurityDeposit,
	}
}

// Image файл изображения для объявления
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

func postPath(id model.ID) string {
	return "/post/" + url.PathEscape(id.String())
}

// ListPosts все объявления
func (c *Client) ListPosts(ctx context.Context) ([]*model.Post, error) {
	var out []*model.Post
	if err := c.do(ctx, request{method: http.MethodGet, path: "/post"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyPosts объявления текущего владельца
func (c *Client) MyPosts(ctx context.Context) ([]*model.Post, error) {
	var out []*model.Post
	if err := c.do(ctx, request{method: http.MethodGet, path: "/post/my-posts"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPost объявление по id
func (c *Client) GetPost(ctx context.Context, id model.ID) (*model.Post, error) {
	var out model.Post
	if err := c.do(ctx, request{method: http.MethodGet, path: postPath(id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePost публикует объявление: часть postData в JSON и файлы images
func (c *Client) CreatePost(ctx context.Context, in PostInput, images []Image) (*model.Post, error) {
	body, contentType, err := encodePostForm(in, "images", images)
	if err != nil {
		return nil, err
	}

	var out model.Post
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/post/",
		raw:         body,
		contentType: contentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost обновляет объявление, новые файлы уходят частью newImages
func (c *Client) UpdatePost(ctx context.Context, id model.ID, in PostInput, newImages []Image) (*model.Post, error) {
	body, contentType, err := encodePostForm(in, "newImages", newImages)
	if err != nil {
		return nil, err
	}

	var out model.Post
	err = c.do(ctx, request{
		method:      http.MethodPut,
		path:        postPath(id),
		raw:         body,
		contentType: contentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost удаляет объявление
func (c *Client) DeletePost(ctx context.Context, id model.ID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: postPath(id)}, nil)
}

// encodePostForm собирает multipart тело объявления
func encodePostForm(in PostInput, imageField string, images []Image) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	meta, err := json.Marshal(in)
	if err != nil {
		return nil, "", fmt.Errorf("encode post data: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="postData"; filename="blob"`)
	header.Set("Content-Type", "application/json")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create post data part: %w", err)
	}
	if _, err := part.Write(meta); err != nil {
		return nil, "", fmt.Errorf("write post data part: %w", err)
	}

	for _, img := range images {
		contentType := img.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, imageField, img.Name))
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
