package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/devtrails/bootcamp-directory/internal/application/services"
	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/policy"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
)

// maxMultipartMemory bounds how much of a photo upload is buffered in memory;
// the rest spills to temp files.
const maxMultipartMemory = 10 << 20

// BootcampService is the application surface the handler drives.
type BootcampService interface {
	Create(ctx context.Context, actor policy.Actor, input services.BootcampInput) (*entities.Bootcamp, error)
	GetByID(ctx context.Context, id string) (*entities.Bootcamp, error)
	List(ctx context.Context, filter repositories.BootcampFilter) ([]*entities.Bootcamp, error)
	Update(ctx context.Context, actor policy.Actor, id string, patch services.BootcampPatch) (*entities.Bootcamp, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
	FindWithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]*entities.Bootcamp, error)
	UploadPhoto(ctx context.Context, actor policy.Actor, id string, upload *services.Upload) (string, error)
}

// BootcampHandler handles bootcamp-related HTTP requests
type BootcampHandler struct {
	service BootcampService
}

// NewBootcampHandler creates a new bootcamp handler
func NewBootcampHandler(service BootcampService) *BootcampHandler {
	return &BootcampHandler{service: service}
}

// ListBootcamps handles GET /api/v1/bootcamps
func (h *BootcampHandler) ListBootcamps(w http.ResponseWriter, r *http.Request) {
	filter := repositories.BootcampFilter{
		Career: r.URL.Query().Get("career"),
		Limit:  25,
		Offset: 0,
	}

	if housing := r.URL.Query().Get("housing"); housing != "" {
		value := housing == "true"
		filter.Housing = &value
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 1 {
		filter.Offset = (page - 1) * filter.Limit
	}

	bootcamps, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithList(w, http.StatusOK, bootcamps, len(bootcamps))
}

// GetBootcamp handles GET /api/v1/bootcamps/{id}
func (h *BootcampHandler) GetBootcamp(w http.ResponseWriter, r *http.Request) {
	bootcamp, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, bootcamp)
}

// CreateBootcamp handles POST /api/v1/bootcamps
func (h *BootcampHandler) CreateBootcamp(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var input services.BootcampInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bootcamp, err := h.service.Create(r.Context(), actor, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithData(w, http.StatusCreated, bootcamp)
}

// UpdateBootcamp handles PUT /api/v1/bootcamps/{id}
func (h *BootcampHandler) UpdateBootcamp(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var patch services.BootcampPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bootcamp, err := h.service.Update(r.Context(), actor, r.PathValue("id"), patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, bootcamp)
}

// DeleteBootcamp handles DELETE /api/v1/bootcamps/{id}
func (h *BootcampHandler) DeleteBootcamp(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{})
}

// GetBootcampsInRadius handles GET /api/v1/bootcamps/radius/{zipcode}/{distance}
func (h *BootcampHandler) GetBootcampsInRadius(w http.ResponseWriter, r *http.Request) {
	zipcode := r.PathValue("zipcode")
	distance, err := strconv.ParseFloat(r.PathValue("distance"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "distance must be a number of miles")
		return
	}

	bootcamps, err := h.service.FindWithinRadius(r.Context(), zipcode, distance)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithList(w, http.StatusOK, bootcamps, len(bootcamps))
}

// UploadBootcampPhoto handles PUT /api/v1/bootcamps/{id}/photo. The photo is
// sent as a multipart form under the "file" field.
func (h *BootcampHandler) UploadBootcampPhoto(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	upload := &services.Upload{}
	if err := r.ParseMultipartForm(maxMultipartMemory); err == nil {
		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			upload = &services.Upload{
				Filename:  header.Filename,
				MediaType: header.Header.Get("Content-Type"),
				Size:      header.Size,
				Content:   file,
			}
		}
	}

	name, err := h.service.UploadPhoto(r.Context(), actor, r.PathValue("id"), upload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]string{"photo": name})
}
