package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"slices"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

var errPhotoTooLarge = errors.New("photo is too large")

// HandlePhoto принимает фото для нового объявления
func (h *Handlers) HandlePhoto(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || len(update.Message.Photo) == 0 {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if h.stateManager.GetState(telegramID) != state.StateNewPostImages {
		h.sendMessage(ctx, b, chatID, "🤔 No esperaba una foto. Usa /help para ver los comandos.", nil)
		return
	}

	raw, _ := h.stateManager.GetData(telegramID, state.KeyImages)
	images, _ := raw.([]api.Image)
	if len(images) >= service.PostMaxImages {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Máximo %d fotos por anuncio.", service.PostMaxImages))
		return
	}

	// Последний размер в списке самый большой
	photo := update.Message.Photo[len(update.Message.Photo)-1]
	if photo.FileSize > photoMaxBytes {
		h.sendError(ctx, b, chatID, "❌ La foto es demasiado grande.")
		return
	}

	img, err := h.downloadPhoto(ctx, b, photo.FileID)
	if err != nil {
		h.logger.Error("Failed to download photo",
			zap.Int64("telegram_id", telegramID),
			zap.String("file_id", photo.FileID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ No se pudo recibir la foto, inténtalo de nuevo.")
		return
	}

	images = append(slices.Clip(images), img)
	h.stateManager.SetData(telegramID, state.KeyImages, images)

	text, kb := common.BuildImagesPrompt(len(images))
	h.sendMessage(ctx, b, chatID, text, kb)
}

// downloadPhoto скачивает файл через Bot API
func (h *Handlers) downloadPhoto(ctx context.Context, b *bot.Bot, fileID string) (api.Image, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return api.Image{}, fmt.Errorf("get file: %w", err)
	}

	link := b.FileDownloadLink(file)

	var data []byte
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		data, err = h.fetch(ctx, link)
		if err != nil && !errors.Is(err, errPhotoTooLarge) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return api.Image{}, err
	}

	name := path.Base(file.FilePath)
	if name == "." || name == "/" {
		name = fileID + ".jpg"
	}

	return api.Image{
		Name:        name,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

func (h *Handlers) fetch(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, photoMaxBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > photoMaxBytes {
		return nil, errPhotoTooLarge
	}
	return data, nil
}
