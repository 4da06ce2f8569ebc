package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stagecrew/crew-scheduler/internal/core/ports"
)

// WorkerHandler provisions worker accounts.
type WorkerHandler struct {
	provisioning ports.ProvisioningService
}

func NewWorkerHandler(provisioning ports.ProvisioningService) *WorkerHandler {
	return &WorkerHandler{provisioning: provisioning}
}

// Create handles POST /workers. A worker whose e-mail already has an identity
// is reactivated instead of duplicated.
//
// @Summary      Create or reactivate a worker
// @Tags         workers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWorkerRequest  true  "Worker details"
// @Success      201   {object}  workerResponse  "created"
// @Success      200   {object}  workerResponse  "reactivated"
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /workers [post]
func (h *WorkerHandler) Create(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req createWorkerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.provisioning.Provision(c.Request().Context(), ports.ProvisionInput{
		Email: req.Email,
		Attributes: ports.WorkerAttributes{
			FullName: req.FullName,
			Phone:    req.Phone,
			Role:     req.Role,
			PayRate:  req.PayRate,
			SMSOptIn: req.SMSOptIn,
		},
		Password:    req.Password,
		SendInvite:  req.SendInvite,
		RedirectURL: req.RedirectURL,
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.WasReactivated {
		status = http.StatusOK
	}
	return c.JSON(status, workerResponse{
		Profile:     res.Profile,
		InviteSent:  res.CredentialIssued,
		Reactivated: res.WasReactivated,
	})
}
