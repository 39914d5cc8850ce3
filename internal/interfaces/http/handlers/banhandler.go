package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	banapp "warden/internal/application/ban"
	"warden/internal/interfaces/dto"
	"warden/internal/shared/biztime"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

type BanHandler struct {
	bans   BanService
	now    biztime.Clock
	logger logger.Interface
}

func NewBanHandler(bans BanService, logger logger.Interface) *BanHandler {
	return &BanHandler{
		bans:   bans,
		now:    biztime.NowUTC,
		logger: logger,
	}
}

func (h *BanHandler) Create(c *gin.Context) {
	var req dto.CreateBanRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	b, err := h.bans.Create(c.Request.Context(), banapp.CreateCommand{
		BanID:       req.BanID,
		LicenseKey:  req.LicenseKey,
		PlayerID:    req.PlayerID,
		Reason:      req.Reason,
		Duration:    req.Duration,
		ExpiresAt:   req.ExpiresAt,
		BannedBy:    req.BannedBy,
		EvidenceURL: req.EvidenceURL,
		CreatedAt:   req.CreatedAt,
		Identifiers: req.Identifiers,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToBanResponse(b, h.now()), "Ban recorded")
}

func (h *BanHandler) List(c *gin.Context) {
	key, err := utils.RequiredParam(c, "license")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	bans, err := h.bans.List(c.Request.Context(), key)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToBanResponses(bans, h.now()))
}

func (h *BanHandler) Check(c *gin.Context) {
	var req dto.CheckBanRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	identifiers, err := banapp.ParseIdentifiers(req.Identifiers)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.bans.Check(c.Request.Context(), req.LicenseKey, identifiers)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.CheckBanResponse{
		Banned: result.Banned,
		Ban:    dto.ToBanResponse(result.Ban, h.now()),
	})
}

func (h *BanHandler) Evidence(c *gin.Context) {
	var req dto.EvidenceRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	url, err := h.bans.AttachEvidence(c.Request.Context(), req.LicenseKey, req.BanID, req.Image)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Evidence attached", gin.H{"evidence_url": url})
}

// Unban lifts a ban for a dashboard token of the owning tenant.
func (h *BanHandler) Unban(c *gin.Context) {
	banID, err := utils.RequiredParam(c, "banId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	b, err := h.bans.Lift(c.Request.Context(), banID, utils.RequestToken(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ban lifted", dto.ToBanResponse(b, h.now()))
}

// LegacyUnban lifts a ban without any token.
//
// Deprecated: kept for old dashboards; use Unban.
func (h *BanHandler) LegacyUnban(c *gin.Context) {
	banID, err := utils.RequiredParam(c, "banId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	b, err := h.bans.LiftUnchecked(c.Request.Context(), banID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Deprecation", "true")
	utils.SuccessResponse(c, http.StatusOK, "Ban lifted", dto.ToBanResponse(b, h.now()))
}
