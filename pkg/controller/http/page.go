package http

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/docfront/pkg/domain/interfaces"
	"github.com/m-mizutani/docfront/pkg/domain/model"
	"github.com/m-mizutani/docfront/pkg/utils/errs"
	"github.com/m-mizutani/docfront/pkg/utils/logging"
)

// devReleaseParam overrides the release flag for preview requests
const devReleaseParam = "is_devrelease"

// errRenderFailed is the client-facing error for render failures. Details stay
// in the logs and Sentry.
var errRenderFailed = goerr.New("failed to render page")

// PageHandler serves the rendered landing page
type PageHandler struct {
	pageUC       interfaces.PageUseCase
	page         model.PageContext
	cacheControl string
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(pageUC interfaces.PageUseCase, page model.PageContext, cacheControl string) *PageHandler {
	return &PageHandler{
		pageUC:       pageUC,
		page:         page,
		cacheControl: cacheControl,
	}
}

// Handle renders the landing page for each request
func (h *PageHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.From(ctx)

	// Copy so that overrides never leak into other requests
	page := h.page
	if raw, ok := r.URL.Query()[devReleaseParam]; ok && len(raw) > 0 {
		isDev, err := model.ParseReleaseFlag(raw[0])
		if err != nil {
			logger.Warn("Invalid release flag", "value", raw[0])
			writeError(w, err, http.StatusBadRequest)
			return
		}
		page.IsDevRelease = isDev
	}

	body, err := h.pageUC.Render(ctx, &page)
	if err != nil {
		errs.Handle(ctx, "Failed to render landing page", err)
		writeError(w, errRenderFailed, http.StatusInternalServerError)
		return
	}

	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", h.cacheControl)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Error("Failed to write page response", "error", err)
	}
}

// etagMatches reports whether an If-None-Match header value matches etag.
// The header may be "*" or a comma separated list of strong or weak
// (W/-prefixed) tags; If-None-Match uses weak comparison.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
