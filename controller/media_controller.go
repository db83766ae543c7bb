// controller/media_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mg_errors "github.com/campusweb/mediagate/errors"
	logger "github.com/campusweb/mediagate/logging"
	"github.com/campusweb/mediagate/middleware"
	"github.com/campusweb/mediagate/service"
)

// Cache-control for public vs authorized content. Authorized responses must
// never land in shared caches.
const (
	cacheControlPublic     = "public, max-age=300"
	cacheControlAuthorized = "private, max-age=0"
)

type MediaController struct {
	accessService service.IAccessService
	assetService  service.IAssetService
	shibLoginURL  string
}

func NewMediaController(accessService service.IAccessService, assetService service.IAssetService, shibLoginURL string) *MediaController {
	return &MediaController{
		accessService: accessService,
		assetService:  assetService,
		shibLoginURL:  shibLoginURL,
	}
}

func (mc *MediaController) RegisterRoutes(r gin.IRouter) {
	r.GET("/*path", mc.ServeMedia)
}

// ServeMedia authorizes the request, then serves the original or derived
// object. Denials split into 401 (no identity evidence) and 403 (identity
// present, policy denies); missing assets are a 404 regardless of cause.
func (mc *MediaController) ServeMedia(c *gin.Context) {
	reqCtx := middleware.FromContext(c)

	decision := mc.accessService.Authorize(c.Request.Context(), reqCtx)
	if !decision.Allowed {
		if !reqCtx.HasIdentity() {
			c.Data(http.StatusUnauthorized, "text/html; charset=utf-8",
				[]byte(loginRedirectPage(mc.shibLoginURL, c.Request.URL.String())))
			return
		}
		c.Data(http.StatusForbidden, "text/html; charset=utf-8", []byte(forbiddenPage))
		return
	}

	obj, err := mc.assetService.GetOrCreate(c.Request.Context(), reqCtx, decision.Site)
	if err != nil {
		if !errors.Is(err, mg_errors.ErrObjectNotFound) {
			logger.Error("Failed to serve media object",
				zap.String("path", reqCtx.Path),
				zap.Error(err))
		}
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
		return
	}

	cacheControl := cacheControlAuthorized
	if decision.Public {
		cacheControl = cacheControlPublic
	}
	c.Header("Cache-Control", cacheControl)

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, obj.Body)
}
