package inquiries

import (
	"strconv"

	"carmarket-backend/internal/domain"
	"carmarket-backend/internal/middleware"
	"carmarket-backend/internal/pkg/response"
	"carmarket-backend/internal/policies"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

func parseID(c *fiber.Ctx, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// List GET /api/inquiries?status=&car=
func (h *Handlers) List(c *fiber.Ctx) error {
	f := Filter{Status: domain.InquiryStatus(c.Query("status"))}
	if n, err := strconv.ParseUint(c.Query("car"), 10, 32); err == nil {
		f.CarID = uint(n)
	}
	inqs, err := h.Service.List(c.Context(), middleware.GetActor(c), f)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Inquiries fetched successfully", inqs, fiber.Map{"count": len(inqs)})
}

// Create POST /api/inquiries
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateInquiryInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if in.CarID == 0 {
		return response.Error(c, "car_id is required", fiber.StatusBadRequest, nil)
	}
	inq, err := h.Service.Create(c.Context(), middleware.GetActor(c), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Inquiry sent successfully", inq, nil)
}

// Get GET /api/inquiries/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid inquiry id", fiber.StatusBadRequest, nil)
	}
	inq, err := h.Service.Get(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Inquiry fetched successfully", inq, nil)
}

// updateRequest mirrors the full change surface so a message field in the
// body is seen and rejected rather than silently dropped.
type updateRequest struct {
	Message *string               `json:"message"`
	Status  *domain.InquiryStatus `json:"status"`
}

// Update PATCH /api/inquiries/:id — status only, seller of record or admin.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid inquiry id", fiber.StatusBadRequest, nil)
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	inq, err := h.Service.Update(c.Context(), middleware.GetActor(c), id, policies.InquiryChanges{
		Message: req.Message,
		Status:  req.Status,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Inquiry updated successfully", inq, nil)
}

// Delete DELETE /api/inquiries/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid inquiry id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Inquiry deleted successfully", nil, nil)
}
