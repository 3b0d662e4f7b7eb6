package transport

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"elegance-storefront/internal/domain"
	"elegance-storefront/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startDraft(t *testing.T, api testAPI) string {
	t.Helper()

	w := api.do(t, http.MethodPost, "/api/drafts", nil, "")
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody[DraftResponse](t, w)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func setValue(t *testing.T, api testAPI, path, value string) DraftResponse {
	t.Helper()

	w := api.doJSON(t, http.MethodPut, path, map[string]string{"value": value})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody[DraftResponse](t, w)
}

func uploadImages(t *testing.T, api testAPI, id string, files ...upload) *DraftResponse {
	t.Helper()

	body, contentType := multipartBody(t, "images", files...)
	w := api.do(t, http.MethodPost, "/api/drafts/"+id+"/images", body, contentType)
	if w.Code != http.StatusOK {
		return nil
	}
	resp := decodeBody[DraftResponse](t, w)
	return &resp
}

func TestDraftHandler_StartReturnsEmptyDraft(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/drafts", nil, "")
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody[DraftResponse](t, w)
	assert.Equal(t, []string{""}, resp.Draft.TopNotes)
	assert.Equal(t, []string{""}, resp.Draft.MiddleNotes)
	assert.Equal(t, []string{""}, resp.Draft.BaseNotes)
	assert.Empty(t, resp.Draft.Images)

	w = api.do(t, http.MethodGet, "/api/drafts/"+resp.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, resp, decodeBody[DraftResponse](t, w))
}

func TestDraftHandler_SetField(t *testing.T) {
	api := newTestAPI(t)
	id := startDraft(t, api)

	resp := setValue(t, api, "/api/drafts/"+id+"/fields/name", "Amber Veil")
	assert.Equal(t, "Amber Veil", resp.Draft.Name)

	resp = setValue(t, api, "/api/drafts/"+id+"/fields/name", "")
	assert.Empty(t, resp.Draft.Name, "an empty value clears the field")

	w := api.doJSON(t, http.MethodPut, "/api/drafts/"+id+"/fields/colour", map[string]string{"value": "red"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.doJSON(t, http.MethodPut, "/api/drafts/"+id+"/fields/name", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody[middleware.ErrorResponse](t, w).Error.Details, "validation_errors")

	w = api.do(t, http.MethodPut, "/api/drafts/"+id+"/fields/name", strings.NewReader("{"), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.doJSON(t, http.MethodPut, "/api/drafts/unknown/fields/name", map[string]string{"value": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDraftHandler_Notes(t *testing.T) {
	api := newTestAPI(t)
	id := startDraft(t, api)
	base := "/api/drafts/" + id + "/notes/"

	w := api.do(t, http.MethodPost, base+"topNotes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"", ""}, decodeBody[DraftResponse](t, w).Draft.TopNotes)

	resp := setValue(t, api, base+"topNotes/1", "Bergamot")
	assert.Equal(t, []string{"", "Bergamot"}, resp.Draft.TopNotes)

	resp = setValue(t, api, base+"topNotes/7", "Ignored")
	assert.Equal(t, []string{"", "Bergamot"}, resp.Draft.TopNotes, "out of range writes are ignored")

	w = api.do(t, http.MethodDelete, base+"topNotes/0", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Bergamot"}, decodeBody[DraftResponse](t, w).Draft.TopNotes)

	w = api.do(t, http.MethodDelete, base+"topNotes/0", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Bergamot"}, decodeBody[DraftResponse](t, w).Draft.TopNotes, "last entry is kept")

	w = api.do(t, http.MethodPost, base+"heartNotes", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodDelete, base+"topNotes/first", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftHandler_Images(t *testing.T) {
	api := newTestAPI(t)
	id := startDraft(t, api)

	files := make([]upload, 0, 3)
	for i := 0; i < 3; i++ {
		files = append(files, upload{name: fmt.Sprintf("first-%d.png", i), content: pngHeader})
	}
	resp := uploadImages(t, api, id, files...)
	require.NotNil(t, resp)
	require.Len(t, resp.Draft.Images, 3)
	assert.Equal(t, domain.Image{Filename: "first-0.png", ContentType: "image/png", Size: int64(len(pngHeader))}, resp.Draft.Images[0])

	for i := range files {
		files[i].name = fmt.Sprintf("second-%d.png", i)
	}
	resp = uploadImages(t, api, id, files...)
	require.NotNil(t, resp)
	require.Len(t, resp.Draft.Images, 5)
	assert.Equal(t, "second-1.png", resp.Draft.Images[4].Filename, "newest past the cap are dropped")

	w := api.do(t, http.MethodDelete, "/api/drafts/"+id+"/images/0", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	images := decodeBody[DraftResponse](t, w).Draft.Images
	require.Len(t, images, 4)
	assert.Equal(t, "first-1.png", images[0].Filename)
}

func TestDraftHandler_ImagesRejectsNonImages(t *testing.T) {
	api := newTestAPI(t)
	id := startDraft(t, api)

	body, contentType := multipartBody(t, "images",
		upload{name: "bottle.png", content: pngHeader},
		upload{name: "notes.png", content: []byte("definitely not an image")},
	)
	w := api.do(t, http.MethodPost, "/api/drafts/"+id+"/images", body, contentType)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "notes.png", decodeBody[middleware.ErrorResponse](t, w).Error.Details["filename"])

	body, contentType = multipartBody(t, "attachments", upload{name: "bottle.png", content: pngHeader})
	w = api.do(t, http.MethodPost, "/api/drafts/"+id+"/images", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code, "files must use the images field")

	w = api.do(t, http.MethodPost, "/api/drafts/"+id+"/images", strings.NewReader("{}"), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/drafts/"+id, nil, "")
	assert.Empty(t, decodeBody[DraftResponse](t, w).Draft.Images, "rejected uploads attach nothing")
}

func TestDraftHandler_ImagesTooLarge(t *testing.T) {
	api := newTestAPI(t)
	id := startDraft(t, api)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2<<20)...)
	body, contentType := multipartBody(t, "images", upload{name: "huge.png", content: big})

	w := api.do(t, http.MethodPost, "/api/drafts/"+id+"/images", body, contentType)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestDraftHandler_SubmitFlow(t *testing.T) {
	api := newTestAPI(t)
	id := startDraft(t, api)
	submit := "/api/drafts/" + id + "/submit"

	w := api.do(t, http.MethodPost, submit, nil, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	envelope := decodeBody[middleware.ErrorResponse](t, w)
	assert.Equal(t, "name", envelope.Error.Details["field"])
	note, ok := envelope.Error.Details["notification"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Missing Information", note["title"])
	assert.Equal(t, domain.VariantDestructive, note["variant"])

	for field, value := range map[string]string{
		"name":        "Amber Veil",
		"brand":       "ÉLÉGANCE",
		"price":       "175",
		"description": "Warm amber over soft musk",
	} {
		setValue(t, api, "/api/drafts/"+id+"/fields/"+field, value)
	}

	w = api.do(t, http.MethodPost, submit, nil, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	envelope = decodeBody[middleware.ErrorResponse](t, w)
	assert.Equal(t, "Please upload at least one product image.", envelope.Error.Message)
	assert.NotContains(t, envelope.Error.Details, "field")

	require.NotNil(t, uploadImages(t, api, id, upload{name: "bottle.png", content: pngHeader}))

	w = api.do(t, http.MethodPost, submit, nil, "")
	require.Equal(t, http.StatusCreated, w.Code)

	type submitted struct {
		Snapshot     domain.DraftProduct `json:"snapshot"`
		Notification domain.Notification `json:"notification"`
	}
	accepted := decodeBody[submitted](t, w)
	assert.Equal(t, "Amber Veil", accepted.Snapshot.Name)
	assert.Len(t, accepted.Snapshot.Images, 1)
	assert.Equal(t, "Product Added!", accepted.Notification.Title)

	w = api.do(t, http.MethodGet, "/api/drafts/"+id, nil, "")
	reset := decodeBody[DraftResponse](t, w).Draft
	assert.Empty(t, reset.Name)
	assert.Empty(t, reset.Images)
	assert.Equal(t, []string{""}, reset.TopNotes)
}

func TestDraftHandler_Abandon(t *testing.T) {
	api := newTestAPI(t)
	id := startDraft(t, api)

	w := api.do(t, http.MethodDelete, "/api/drafts/"+id, nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodGet, "/api/drafts/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodDelete, "/api/drafts/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
