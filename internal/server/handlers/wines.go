package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/cellarlens/cellarlens/internal/server/response"
	"github.com/cellarlens/cellarlens/pkg/logging"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// maxUploadBytes bounds the request body. Phone photos re-encoded as base64
// comfortably fit in 20 MiB.
const maxUploadBytes = 20 << 20

// captureRequest is the POST /api/v1/wines/capture request body.
type captureRequest struct {
	Img struct {
		Base64 string `json:"base64"`
		Ext    string `json:"ext"`
	} `json:"img"`
}

// HandleCapture handles POST /api/v1/wines/capture. It accepts a base64
// photo of wine bottles and responds with the reconciled, ranked wine list.
func (h *Handlers) HandleCapture(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		response.BadRequest(w, "Failed to read request body", "")
		return
	}
	if len(body) > maxUploadBytes {
		response.BadRequest(w, "Request body too large", "Uploads are limited to 20 MiB")
		return
	}

	var req captureRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body", err.Error())
		return
	}
	if req.Img.Base64 == "" {
		response.BadRequest(w, "Missing image", "img.base64 is required")
		return
	}
	if !wines.ValidExt(req.Img.Ext) {
		response.BadRequest(w, "Unsupported image format", "img.ext must be jpeg or png")
		return
	}

	result, err := h.uploader.UploadUserImage(r.Context(), wines.Image{
		Base64: req.Img.Base64,
		Ext:    req.Img.Ext,
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Upload reconciliation failed")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, result)
}
