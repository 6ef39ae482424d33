package controllers

import (
	"entrelaunch/middleware"
	"entrelaunch/models"
	"entrelaunch/services/payment"
	"entrelaunch/validators"
	courseValidator "entrelaunch/validators/course"

	"github.com/gofiber/fiber/v2"
)

// AdminRecordPayment stores a gateway-confirmed payment for a user.
func (h *Handler) AdminRecordPayment(c *fiber.Ctx) error {
	req := validators.Get[courseValidator.PaymentRecordRequest](c, courseValidator.PaymentRecordKey)
	res := h.payments.RecordPayment(c.UserContext(), payment.PaymentCreate{
		UserID:     req.UserID,
		CourseID:   req.CourseID,
		Amount:     req.Amount,
		GatewayRef: req.GatewayRef,
	})
	return middleware.Respond(c, fiber.StatusCreated, res)
}

func (h *Handler) GetUserPayments(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	return middleware.Respond(c, fiber.StatusOK, h.payments.ListUserPayments(c.UserContext(), userID))
}

func (h *Handler) AdminListRefunds(c *fiber.Ctx) error {
	q := validators.Get[courseValidator.RefundListRequest](c, courseValidator.RefundListKey)
	return middleware.Respond(c, fiber.StatusOK, h.refunds.ListRefunds(c.UserContext(), models.RefundStatus(q.Status)))
}

func (h *Handler) AdminResolveRefund(c *fiber.Ctx) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	req := validators.Get[courseValidator.RefundResolveRequest](c, courseValidator.RefundResolveKey)
	return middleware.Respond(c, fiber.StatusOK, h.refunds.ResolveRefund(c.UserContext(), validators.ID(c, "id"), *req.Approve, adminID))
}
