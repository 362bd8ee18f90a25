package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrails/bootcamp-directory/internal/api/handlers"
	"github.com/devtrails/bootcamp-directory/internal/api/middleware"
	"github.com/devtrails/bootcamp-directory/internal/application/services"
	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/policy"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

type stubBootcampService struct {
	bootcamp  *entities.Bootcamp
	bootcamps []*entities.Bootcamp
	photo     string
	err       error

	lastActor  policy.Actor
	lastUpload *services.Upload
}

func (s *stubBootcampService) Create(ctx context.Context, actor policy.Actor, input services.BootcampInput) (*entities.Bootcamp, error) {
	s.lastActor = actor
	return s.bootcamp, s.err
}

func (s *stubBootcampService) GetByID(ctx context.Context, id string) (*entities.Bootcamp, error) {
	return s.bootcamp, s.err
}

func (s *stubBootcampService) List(ctx context.Context, filter repositories.BootcampFilter) ([]*entities.Bootcamp, error) {
	return s.bootcamps, s.err
}

func (s *stubBootcampService) Update(ctx context.Context, actor policy.Actor, id string, patch services.BootcampPatch) (*entities.Bootcamp, error) {
	s.lastActor = actor
	return s.bootcamp, s.err
}

func (s *stubBootcampService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	s.lastActor = actor
	return s.err
}

func (s *stubBootcampService) FindWithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]*entities.Bootcamp, error) {
	return s.bootcamps, s.err
}

func (s *stubBootcampService) UploadPhoto(ctx context.Context, actor policy.Actor, id string, upload *services.Upload) (string, error) {
	s.lastActor = actor
	s.lastUpload = upload
	return s.photo, s.err
}

func asActor(req *http.Request, actor policy.Actor) *http.Request {
	return req.WithContext(middleware.WithActor(req.Context(), actor))
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope
}

func TestBootcampHandler_GetBootcamp(t *testing.T) {
	service := &stubBootcampService{bootcamp: &entities.Bootcamp{ID: "bc1", Name: "Devworks"}}
	handler := handlers.NewBootcampHandler(service)

	req := httptest.NewRequest("GET", "/api/v1/bootcamps/bc1", nil)
	req.SetPathValue("id", "bc1")
	w := httptest.NewRecorder()

	handler.GetBootcamp(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w.Body)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Devworks", envelope["data"].(map[string]interface{})["name"])
}

func TestBootcampHandler_GetBootcamp_NotFound(t *testing.T) {
	service := &stubBootcampService{err: apperrors.NewNotFoundError("bootcamp with id ghost not found")}
	handler := handlers.NewBootcampHandler(service)

	req := httptest.NewRequest("GET", "/api/v1/bootcamps/ghost", nil)
	req.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()

	handler.GetBootcamp(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeEnvelope(t, w.Body)
	assert.Equal(t, false, envelope["success"])
	assert.Contains(t, envelope["error"], "not found")
}

func TestBootcampHandler_CreateBootcamp_RequiresActor(t *testing.T) {
	service := &stubBootcampService{}
	handler := handlers.NewBootcampHandler(service)

	req := httptest.NewRequest("POST", "/api/v1/bootcamps", strings.NewReader(`{"name":"Devworks"}`))
	w := httptest.NewRecorder()

	handler.CreateBootcamp(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBootcampHandler_CreateBootcamp(t *testing.T) {
	service := &stubBootcampService{bootcamp: &entities.Bootcamp{ID: "bc1", Name: "Devworks"}}
	handler := handlers.NewBootcampHandler(service)

	req := httptest.NewRequest("POST", "/api/v1/bootcamps", strings.NewReader(`{"name":"Devworks","description":"d","address":"233 Bay State Rd"}`))
	req = asActor(req, policy.Actor{ID: "u1", Role: entities.RoleUser})
	w := httptest.NewRecorder()

	handler.CreateBootcamp(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u1", service.lastActor.ID)
}

func TestBootcampHandler_CreateBootcamp_DuplicateOwner(t *testing.T) {
	service := &stubBootcampService{err: apperrors.NewConflictError("the user with id u1 has already published a bootcamp")}
	handler := handlers.NewBootcampHandler(service)

	req := httptest.NewRequest("POST", "/api/v1/bootcamps", strings.NewReader(`{"name":"Second"}`))
	req = asActor(req, policy.Actor{ID: "u1", Role: entities.RoleUser})
	w := httptest.NewRecorder()

	handler.CreateBootcamp(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBootcampHandler_UpdateBootcamp_Forbidden(t *testing.T) {
	service := &stubBootcampService{err: apperrors.NewForbiddenError("user u2 is not authorized to update this bootcamp")}
	handler := handlers.NewBootcampHandler(service)

	req := httptest.NewRequest("PUT", "/api/v1/bootcamps/bc1", strings.NewReader(`{"name":"Taken over"}`))
	req.SetPathValue("id", "bc1")
	req = asActor(req, policy.Actor{ID: "u2", Role: entities.RoleUser})
	w := httptest.NewRecorder()

	handler.UpdateBootcamp(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBootcampHandler_GetBootcampsInRadius(t *testing.T) {
	service := &stubBootcampService{bootcamps: []*entities.Bootcamp{{ID: "bc1"}, {ID: "bc2"}}}
	handler := handlers.NewBootcampHandler(service)

	req := httptest.NewRequest("GET", "/api/v1/bootcamps/radius/33125/10", nil)
	req.SetPathValue("zipcode", "33125")
	req.SetPathValue("distance", "10")
	w := httptest.NewRecorder()

	handler.GetBootcampsInRadius(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w.Body)
	assert.Equal(t, float64(2), envelope["count"])
}

func TestBootcampHandler_GetBootcampsInRadius_BadDistance(t *testing.T) {
	service := &stubBootcampService{}
	handler := handlers.NewBootcampHandler(service)

	req := httptest.NewRequest("GET", "/api/v1/bootcamps/radius/33125/far", nil)
	req.SetPathValue("zipcode", "33125")
	req.SetPathValue("distance", "far")
	w := httptest.NewRecorder()

	handler.GetBootcampsInRadius(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartUpload(t *testing.T, field, filename, mediaType, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", mediaType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestBootcampHandler_UploadBootcampPhoto(t *testing.T) {
	service := &stubBootcampService{photo: "photo_bc1.png"}
	handler := handlers.NewBootcampHandler(service)

	body, contentType := multipartUpload(t, "file", "shot.png", "image/png", "fakeimagebytes")
	req := httptest.NewRequest("PUT", "/api/v1/bootcamps/bc1/photo", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", "bc1")
	req = asActor(req, policy.Actor{ID: "u1", Role: entities.RoleUser})
	w := httptest.NewRecorder()

	handler.UploadBootcampPhoto(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, service.lastUpload)
	assert.Equal(t, "shot.png", service.lastUpload.Filename)
	assert.Equal(t, "image/png", service.lastUpload.MediaType)
	assert.Equal(t, int64(len("fakeimagebytes")), service.lastUpload.Size)

	envelope := decodeEnvelope(t, w.Body)
	assert.Equal(t, "photo_bc1.png", envelope["data"].(map[string]interface{})["photo"])
}

func TestBootcampHandler_UploadBootcampPhoto_MissingFile(t *testing.T) {
	service := &stubBootcampService{err: apperrors.NewValidationError("please upload a file")}
	handler := handlers.NewBootcampHandler(service)

	req := httptest.NewRequest("PUT", "/api/v1/bootcamps/bc1/photo", nil)
	req.SetPathValue("id", "bc1")
	req = asActor(req, policy.Actor{ID: "u1", Role: entities.RoleUser})
	w := httptest.NewRecorder()

	handler.UploadBootcampPhoto(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, service.lastUpload)
	assert.Nil(t, service.lastUpload.Content, "no multipart file means an empty upload reaches validation")
}
