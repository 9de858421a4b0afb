package catalog

import (
	"strconv"

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

// ListBrands GET /api/cars/brands?search=
func (h *Handlers) ListBrands(c *fiber.Ctx) error {
	brands, err := h.Service.ListBrands(c.Context(), c.Query("search"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Brands fetched successfully", brands, nil)
}

// GetBrand GET /api/cars/brands/:id
func (h *Handlers) GetBrand(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid brand id", fiber.StatusBadRequest, nil)
	}
	brand, err := h.Service.GetBrand(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Brand fetched successfully", brand, nil)
}

type nameRequest struct {
	Name string `json:"name"`
}

// CreateBrand POST /api/cars/brands (admin)
func (h *Handlers) CreateBrand(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	brand, err := h.Service.CreateBrand(c.Context(), middleware.GetActor(c), req.Name)
	if err != nil {
		switch err {
		case ErrBrandNameRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrBrandNameTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.FromError(c, err)
		}
	}
	return response.SuccessCreated(c, "Brand created successfully", brand, nil)
}

// UpdateBrand PUT /api/cars/brands/:id (admin)
func (h *Handlers) UpdateBrand(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid brand id", fiber.StatusBadRequest, nil)
	}
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	brand, err := h.Service.UpdateBrand(c.Context(), middleware.GetActor(c), id, req.Name)
	if err != nil {
		switch err {
		case ErrBrandNameRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrBrandNameTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.FromError(c, err)
		}
	}
	return response.Success(c, "Brand updated successfully", brand, nil)
}

// DeleteBrand DELETE /api/cars/brands/:id (admin; restricted while listings reference it)
func (h *Handlers) DeleteBrand(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid brand id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteBrand(c.Context(), middleware.GetActor(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Brand deleted successfully", nil, nil)
}

// ListModels GET /api/cars/models?brand=&search=
func (h *Handlers) ListModels(c *fiber.Ctx) error {
	var brandID uint
	if raw := c.Query("brand"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.Error(c, "Invalid brand id", fiber.StatusBadRequest, nil)
		}
		brandID = uint(n)
	}
	models, err := h.Service.ListModels(c.Context(), brandID, c.Query("search"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Models fetched successfully", models, nil)
}

// GetModel GET /api/cars/models/:id
func (h *Handlers) GetModel(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid model id", fiber.StatusBadRequest, nil)
	}
	model, err := h.Service.GetModel(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Model fetched successfully", model, nil)
}

type modelRequest struct {
	BrandID uint   `json:"brand_id"`
	Name    string `json:"name"`
}

// CreateModel POST /api/cars/models (admin)
func (h *Handlers) CreateModel(c *fiber.Ctx) error {
	var req modelRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	model, err := h.Service.CreateModel(c.Context(), middleware.GetActor(c), req.BrandID, req.Name)
	if err != nil {
		switch err {
		case ErrModelNameRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrModelNameTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.FromError(c, err)
		}
	}
	return response.SuccessCreated(c, "Model created successfully", model, nil)
}

// UpdateModel PUT /api/cars/models/:id (admin; rename only)
func (h *Handlers) UpdateModel(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid model id", fiber.StatusBadRequest, nil)
	}
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	model, err := h.Service.UpdateModel(c.Context(), middleware.GetActor(c), id, req.Name)
	if err != nil {
		switch err {
		case ErrModelNameRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrModelNameTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.FromError(c, err)
		}
	}
	return response.Success(c, "Model updated successfully", model, nil)
}

// DeleteModel DELETE /api/cars/models/:id (admin; restricted while listings reference it)
func (h *Handlers) DeleteModel(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid model id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteModel(c.Context(), middleware.GetActor(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Model deleted successfully", nil, nil)
}
