package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wa-feedback-be/internal/dto"
	"wa-feedback-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubChatService struct {
	lastRequest *dto.ReplyRequest
	response    *dto.ReplyResponse
	err         error
}

func (s *stubChatService) ReplyUser(ctx context.Context, request *dto.ReplyRequest) (*dto.ReplyResponse, error) {
	s.lastRequest = request
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func newTestApp(chat *stubChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewReplyController(chat, testSecret).RegisterRoutes(api)
	return app
}

func postReply(t *testing.T, app *fiber.App, secret, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/reply/v1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Intelligence-Api-Secret", secret)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestReply_Success(t *testing.T) {
	chat := &stubChatService{response: &dto.ReplyResponse{
		SessionId: uuid.New(),
		MessageId: uuid.New(),
		Status:    dto.ReplyStatusSent,
	}}
	app := newTestApp(chat)

	resp := postReply(t, app, testSecret, `{"sender_id": "14155550100", "message": "Hello"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Message string            `json:"message"`
		Data    dto.ReplyResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, dto.ReplyStatusSent, body.Data.Status)
	assert.Equal(t, chat.response.SessionId, body.Data.SessionId)

	require.NotNil(t, chat.lastRequest)
	assert.Equal(t, "14155550100", chat.lastRequest.SenderId)
}

func TestReply_MediaItemsArePassedThrough(t *testing.T) {
	chat := &stubChatService{response: &dto.ReplyResponse{Status: dto.ReplyStatusSent}}
	app := newTestApp(chat)

	resp := postReply(t, app, testSecret,
		`{"sender_id": "1", "message": "photo", "media_items": [{"message_sid": "MM1", "media_sid": "ME1"}]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, chat.lastRequest.MediaItems, 1)
	assert.Equal(t, "MM1", chat.lastRequest.MediaItems[0].MessageSid)
}

func TestReply_RejectsMissingOrWrongSecret(t *testing.T) {
	app := newTestApp(&stubChatService{})

	resp := postReply(t, app, "", `{"sender_id": "1", "message": "hi"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postReply(t, app, "wrong", `{"sender_id": "1", "message": "hi"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestReply_RejectsInvalidBody(t *testing.T) {
	chat := &stubChatService{}
	app := newTestApp(chat)

	resp := postReply(t, app, testSecret, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postReply(t, app, testSecret, `{"message": "no sender"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Validation failures never reach the service
	assert.Nil(t, chat.lastRequest)
}

func TestReply_TooManyMediaItems(t *testing.T) {
	app := newTestApp(&stubChatService{})

	items := make([]string, 6)
	for i := range items {
		items[i] = `{"message_sid": "MM1", "media_sid": "ME1"}`
	}
	body := `{"sender_id": "1", "message": "hi", "media_items": [` + strings.Join(items, ",") + `]}`

	resp := postReply(t, app, testSecret, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
