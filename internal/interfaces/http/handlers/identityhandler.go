package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"banking/internal/application/user/dto"
	"banking/internal/shared/constants"
	"banking/internal/shared/logger"
	"banking/internal/shared/utils"
)

// IdentityHandler exposes the stateless email, CPF and password checks
type IdentityHandler struct {
	service identityService
	logger  logger.Interface
}

func NewIdentityHandler(service identityService, logger logger.Interface) *IdentityHandler {
	return &IdentityHandler{service: service, logger: logger}
}

// Validate handles POST /validate. The body may be JSON or YAML and the report is
// rendered as YAML when the client asks for it in Accept.
func (h *IdentityHandler) Validate(c *gin.Context) {
	var req dto.ValidateRequest
	if err := c.ShouldBindWith(&req, bodyBinding(c)); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	report, err := h.service.ValidateIdentity(req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if wantsYAML(c) {
		c.YAML(http.StatusOK, report)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", report)
}

func bodyBinding(c *gin.Context) binding.Binding {
	if isYAMLMediaType(c.ContentType()) {
		return binding.YAML
	}
	return binding.JSON
}

func wantsYAML(c *gin.Context) bool {
	for _, accepted := range strings.Split(c.GetHeader("Accept"), ",") {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(accepted), ";")
		if isYAMLMediaType(mediaType) {
			return true
		}
	}
	return false
}

func isYAMLMediaType(mediaType string) bool {
	return mediaType == constants.ContentTypeYAML || mediaType == binding.MIMEYAML
}
