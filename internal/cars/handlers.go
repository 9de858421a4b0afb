package cars

import (
	"strconv"

	"carmarket-backend/internal/domain"
	"carmarket-backend/internal/middleware"
	"carmarket-backend/internal/pkg/response"

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

func filterFromQuery(c *fiber.Ctx) Filter {
	f := Filter{
		FuelType:     domain.FuelType(c.Query("fuel_type")),
		Transmission: domain.Transmission(c.Query("transmission")),
		Condition:    domain.Condition(c.Query("condition")),
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering"),
	}
	if n, err := strconv.ParseUint(c.Query("brand"), 10, 32); err == nil {
		f.BrandID = uint(n)
	}
	if n, err := strconv.ParseUint(c.Query("model"), 10, 32); err == nil {
		f.ModelID = uint(n)
	}
	if n, err := strconv.Atoi(c.Query("year")); err == nil {
		f.Year = n
	}
	if n, err := strconv.Atoi(c.Query("min_year")); err == nil {
		f.MinYear = n
	}
	if n, err := strconv.Atoi(c.Query("max_year")); err == nil {
		f.MaxYear = n
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		f.MaxPrice = v
	}
	return f
}

// List GET /api/cars — scoped to the actor, then filtered.
func (h *Handlers) List(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	cars, err := h.Service.List(c.Context(), actor, filterFromQuery(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Cars fetched successfully", cars, fiber.Map{"count": len(cars)})
}

// Compare GET /api/cars/compare?ids=1,2,3 — approved subset of the
// requested ids, for any actor.
func (h *Handlers) Compare(c *fiber.Ctx) error {
	cars, err := h.Service.Compare(c.Context(), c.Query("ids"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Cars fetched for comparison", cars, nil)
}

// Get GET /api/cars/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid car id", fiber.StatusBadRequest, nil)
	}
	car, err := h.Service.Get(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Car fetched successfully", car, nil)
}

// Create POST /api/cars — sellers only; seller_id and is_approved forced.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateCarInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	car, err := h.Service.Create(c.Context(), middleware.GetActor(c), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Car listed successfully", car, nil)
}

// Update PUT /api/cars/:id — owner or admin.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid car id", fiber.StatusBadRequest, nil)
	}
	var in UpdateCarInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	car, err := h.Service.Update(c.Context(), middleware.GetActor(c), id, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Car updated successfully", car, nil)
}

// Delete DELETE /api/cars/:id — owner or admin.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid car id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Car deleted successfully", nil, nil)
}

// Approve POST /api/cars/:id/approve — admin moderation flip.
func (h *Handlers) Approve(c *fiber.Ctx) error {
	return h.setApproval(c, true, "Car approved successfully")
}

// Reject POST /api/cars/:id/reject — admin moderation flip.
func (h *Handlers) Reject(c *fiber.Ctx) error {
	return h.setApproval(c, false, "Car rejected successfully")
}

func (h *Handlers) setApproval(c *fiber.Ctx, approved bool, message string) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid car id", fiber.StatusBadRequest, nil)
	}
	car, err := h.Service.SetApproval(c.Context(), middleware.GetActor(c), id, approved)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, message, car, nil)
}

type addImageRequest struct {
	URL string `json:"url"`
}

// AddImage POST /api/cars/:id/images — owner or admin; URL record only.
func (h *Handlers) AddImage(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid car id", fiber.StatusBadRequest, nil)
	}
	var req addImageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	img, err := h.Service.AddImage(c.Context(), middleware.GetActor(c), id, req.URL)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Image added successfully", img, nil)
}

// RemoveImage DELETE /api/cars/:id/images/:imageID
func (h *Handlers) RemoveImage(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid car id", fiber.StatusBadRequest, nil)
	}
	imageID, ok := parseID(c, "imageID")
	if !ok {
		return response.Error(c, "Invalid image id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.RemoveImage(c.Context(), middleware.GetActor(c), id, imageID); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Image removed successfully", nil, nil)
}
