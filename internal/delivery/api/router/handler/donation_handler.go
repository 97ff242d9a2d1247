package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DonationHandlerParams holds dependencies for DonationHandler, injected by Fx.
type DonationHandlerParams struct {
	fx.In

	DonationUC usecase.DonationUsecase
	Logger     *slog.Logger
}

// DonationHandler serves donation requests of the authenticated user.
type DonationHandler struct {
	donationUC usecase.DonationUsecase
	logger     *slog.Logger
}

// NewDonationHandler is the constructor for DonationHandler.
func NewDonationHandler(params DonationHandlerParams) *DonationHandler {
	return &DonationHandler{
		donationUC: params.DonationUC,
		logger:     params.Logger,
	}
}

type CreateDonationRequest struct {
	ItemName        string `json:"itemName" validate:"required"`
	ItemDescription string `json:"itemDescription" validate:"required"`
}

// CreateDonation records a donation offer for the caller.
func (h *DonationHandler) CreateDonation(c echo.Context) error {
	identity := deliverycontext.MustGetIdentity(c)

	var req CreateDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	donation, err := h.donationUC.CreateDonation(c.Request().Context(), identity.ID, &usecase.CreateDonationInput{
		ItemName:        req.ItemName,
		ItemDescription: req.ItemDescription,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, response.NewDonation(donation))
}

// MyDonations lists the caller's donations, newest first.
func (h *DonationHandler) MyDonations(c echo.Context) error {
	identity := deliverycontext.MustGetIdentity(c)

	donations, err := h.donationUC.ListMyDonations(c.Request().Context(), identity.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.NewDonations(donations))
}
