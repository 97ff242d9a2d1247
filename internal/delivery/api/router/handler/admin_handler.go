package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC    usecase.AdminUsecase
	CatalogUC  usecase.CatalogUsecase
	DonationUC usecase.DonationUsecase
	Logger     *slog.Logger
}

// AdminHandler serves the admin console. Every route is mounted behind the elevated gate.
type AdminHandler struct {
	adminUC    usecase.AdminUsecase
	catalogUC  usecase.CatalogUsecase
	donationUC usecase.DonationUsecase
	logger     *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC:    params.AdminUC,
		catalogUC:  params.CatalogUC,
		donationUC: params.DonationUC,
		logger:     params.Logger,
	}
}

type CreateProductRequest struct {
	Name        string     `json:"name"`
	Price       float64    `json:"price" validate:"min=0"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Category    *uuid.UUID `json:"category"`
}

type UpdateProductRequest struct {
	Name            *string    `json:"name" validate:"omitempty,min=1"`
	Price           *float64   `json:"price" validate:"omitempty,min=0"`
	OriginalPrice   *float64   `json:"originalPrice" validate:"omitempty,min=0"`
	Description     *string    `json:"description"`
	FullDescription *string    `json:"fullDescription"`
	Image           *string    `json:"image"`
	EcoTag          *string    `json:"ecoTag"`
	Category        *uuid.UUID `json:"category"`
	InStock         *bool      `json:"inStock"`
	Features        *[]string  `json:"features"`
}

type UpdateDonationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListUsers returns every identity.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminUC.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.NewUsers(users))
}

// DeleteUser removes a standard user and their donations.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	actor := deliverycontext.MustGetIdentity(c)
	if err := h.adminUC.DeleteUser(c.Request().Context(), actor.ID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.MessageResponse{Message: "User removed"})
}

// Stats returns the dashboard counters.
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminUC.Stats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.NewStats(stats))
}

// ListProducts returns every product.
func (h *AdminHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogUC.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.NewProducts(products))
}

// GetProduct returns one product.
func (h *AdminHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.NewProduct(product))
}

// CreateProduct creates a sample product owned by the caller. Every body field is optional.
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	actor := deliverycontext.MustGetIdentity(c)

	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), actor.ID, &usecase.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  req.Category,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, response.NewProduct(product))
}

// UpdateProduct applies a partial update.
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), id, &usecase.UpdateProductInput{
		Name:            req.Name,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Image:           req.Image,
		EcoTag:          req.EcoTag,
		CategoryID:      req.Category,
		InStock:         req.InStock,
		Features:        req.Features,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.NewProduct(product))
}

// DeleteProduct removes a product.
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.MessageResponse{Message: "Product removed"})
}

// ListDonations returns every donation with its owner populated.
func (h *AdminHandler) ListDonations(c echo.Context) error {
	donations, err := h.donationUC.ListAllDonations(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.NewDonations(donations))
}

// UpdateDonationStatus approves or disapproves a donation.
func (h *AdminHandler) UpdateDonationStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateDonationStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor := deliverycontext.MustGetIdentity(c)
	donation, err := h.donationUC.UpdateStatus(c.Request().Context(), actor.ID, id, entity.DonationStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.NewDonation(donation))
}
