package handlers

import (
	"net/http"
	"strconv"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/repo"
	"simaset/internal/service"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// AssetHandler — учёт активов и выдача QR-меток.
type AssetHandler struct {
	Service *service.AssetService
	Logger  *zap.SugaredLogger
}

func NewAssetHandler(s *service.AssetService, logger *zap.SugaredLogger) *AssetHandler {
	return &AssetHandler{Service: s, Logger: logger}
}

func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.AssetFilter{
		Search:   q.Get("search"),
		Kind:     model.AssetKind(q.Get("kind")),
		Status:   model.AssetStatus(q.Get("status")),
		PoldaID:  q.Get("poldaId"),
		PolresID: q.Get("polresId"),
	}
	assets, pg, err := h.Service.List(r.Context(), caller(r), f, pageFromQuery(r))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assets": assets, "pagination": pg})
}

func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.Service.Get(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"asset": asset})
}

// QR отдаёт PNG с QR-кодом метки актива. ?size= задаёт сторону в пикселях.
func (h *AssetHandler) QR(w http.ResponseWriter, r *http.Request) {
	asset, err := h.Service.Get(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	payload := "simaset://asset/" + asset.ID
	if asset.QRData != nil && *asset.QRData != "" {
		payload = *asset.QRData
	}
	size := 256
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && s >= 64 && s <= 1024 {
		size = s
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		writeError(w, h.Logger, errs.Internal(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// AssetRequest — тело создания/частичного обновления актива.
type AssetRequest struct {
	Name            *string `json:"name,omitempty"`
	CategoryID      *string `json:"categoryId,omitempty"`
	Kind            *string `json:"kind,omitempty"`
	Status          *string `json:"status,omitempty"`
	InventoryNumber *string `json:"inventoryNumber,omitempty"`
	Year            *int    `json:"year,omitempty"`
	Source          *string `json:"source,omitempty"`
	PoldaID         *string `json:"poldaId,omitempty"`
	PolresID        *string `json:"polresId,omitempty"`
	AssignedTo      *string `json:"assignedTo,omitempty"`
	QRData          *string `json:"qrData,omitempty"`
}

func (r AssetRequest) input() service.AssetInput {
	in := service.AssetInput{
		Name:            r.Name,
		CategoryID:      r.CategoryID,
		InventoryNumber: r.InventoryNumber,
		Year:            r.Year,
		Source:          r.Source,
		PoldaID:         r.PoldaID,
		PolresID:        r.PolresID,
		AssignedTo:      r.AssignedTo,
		QRData:          r.QRData,
	}
	if r.Kind != nil {
		kind := model.AssetKind(*r.Kind)
		in.Kind = &kind
	}
	if r.Status != nil {
		status := model.AssetStatus(*r.Status)
		in.Status = &status
	}
	return in
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AssetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	asset, err := h.Service.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"asset": asset})
}

func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req AssetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	asset, err := h.Service.Update(r.Context(), caller(r), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"asset": asset})
}

func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Asset berhasil dihapus"})
}
