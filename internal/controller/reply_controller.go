package controller

import (
	"wa-feedback-be/internal/dto"
	"wa-feedback-be/internal/pkg/serverutils"
	"wa-feedback-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReplyController interface {
	RegisterRoutes(r fiber.Router)
	Reply(ctx *fiber.Ctx) error
}

type replyController struct {
	chatService service.IChatService
	apiSecret   string
}

func NewReplyController(chatService service.IChatService, apiSecret string) IReplyController {
	return &replyController{
		chatService: chatService,
		apiSecret:   apiSecret,
	}
}

func (c *replyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reply/v1")
	h.Use(serverutils.ApiSecretMiddleware(c.apiSecret))
	h.Post("", c.Reply)
}

func (c *replyController) Reply(ctx *fiber.Ctx) error {
	var req dto.ReplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.ReplyUser(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Reply sent successfully.", res))
}
