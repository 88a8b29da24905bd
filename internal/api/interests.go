package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
)

// chosenSlotLayout ISO-8601 в UTC с миллисекундами
const chosenSlotLayout = "2006-01-02T15:04:05.000Z"

// AvailabilityRequest тело запроса с окном доступности
type AvailabilityRequest struct {
	AvailabilityStartDate string `json:"availabilityStartDate"`
	AvailabilityEndDate   string `json:"availabilityEndDate"`
	AvailabilityStartTime string `json:"availabilityStartTime"`
	AvailabilityEndTime   string `json:"availabilityEndTime"`
	SlotDurationMinutes   int    `json:"slotDurationMinutes"`
	Message               string `json:"message"`
}

// NewAvailabilityRequest переводит предложение в формат бэкенда
func NewAvailabilityRequest(p scheduling.Proposal) AvailabilityRequest {
	return AvailabilityRequest{
		AvailabilityStartDate: p.StartDate.Format(scheduling.DateLayout),
		AvailabilityEndDate:   p.EndDate.Format(scheduling.DateLayout),
		AvailabilityStartTime: p.StartTime.String(),
		AvailabilityEndTime:   p.EndTime.String(),
		SlotDurationMinutes:   p.DurationMinutes,
		Message:               p.Message,
	}
}

type confirmRequest struct {
	ChosenSlot string `json:"chosenSlot"`
}

type createInterestRequest struct {
	PostID model.ID `json:"postId"`
}

func interestPath(id model.ID, suffix string) string {
	return "/interests/" + url.PathEscape(id.String()) + suffix
}

// ProposeAvailability владелец предлагает окно доступности
func (c *Client) ProposeAvailability(ctx context.Context, id model.ID, p scheduling.Proposal) (*model.InterestRequest, error) {
	var out model.InterestRequest
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   interestPath(id, "/availability"),
		body:   NewAvailabilityRequest(p),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmAppointment студент подтверждает выбранный слот
func (c *Client) ConfirmAppointment(ctx context.Context, id model.ID, slot time.Time) (*model.InterestRequest, error) {
	var out model.InterestRequest
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   interestPath(id, "/appointment/confirm"),
		body:   confirmRequest{ChosenSlot: slot.UTC().Format(chosenSlotLayout)},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInterest загружает заявку по id
func (c *Client) GetInterest(ctx context.Context, id model.ID) (*model.InterestRequest, error) {
	var out model.InterestRequest
	if err := c.do(ctx, request{method: http.MethodGet, path: interestPath(id, "")}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReceivedInterests заявки, полученные владельцем
func (c *Client) ReceivedInterests(ctx context.Context) ([]*model.InterestRequest, error) {
	var out []*model.InterestRequest
	if err := c.do(ctx, request{method: http.MethodGet, path: "/interests/received"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyInterests заявки, отправленные студентом
func (c *Client) MyInterests(ctx context.Context) ([]*model.InterestRequest, error) {
	var out []*model.InterestRequest
	if err := c.do(ctx, request{method: http.MethodGet, path: "/interests/mine"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AcceptedInterests принятые заявки владельца, по которым ещё нет платежа
func (c *Client) AcceptedInterests(ctx context.Context) ([]*model.InterestRequest, error) {
	var out []*model.InterestRequest
	if err := c.do(ctx, request{method: http.MethodGet, path: "/interests/owner/accepted"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateInterest студент откликается на объявление
func (c *Client) CreateInterest(ctx context.Context, postID model.ID) (*model.InterestRequest, error) {
	var out model.InterestRequest
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/interests",
		body:   createInterestRequest{PostID: postID},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
