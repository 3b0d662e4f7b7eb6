package transport

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"elegance-storefront/internal/domain"
	"elegance-storefront/internal/draft"
	"elegance-storefront/internal/middleware"
	"elegance-storefront/internal/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// imagesFormField is the multipart field carrying uploaded files
const imagesFormField = "images"

// ValueRequest sets a scalar field or a note entry. An empty value clears it.
type ValueRequest struct {
	Value *string `json:"value" validate:"required"`
}

// DraftResponse carries the current state of a draft session
type DraftResponse struct {
	ID    string              `json:"id"`
	Draft domain.DraftProduct `json:"draft"`
}

// SubmitResponse is returned for an accepted draft
type SubmitResponse struct {
	Snapshot     draft.Snapshot      `json:"snapshot"`
	Notification domain.Notification `json:"notification"`
}

// DraftHandler handles HTTP requests for the add-product form
type DraftHandler struct {
	draftService   service.DraftService
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewDraftHandler creates a new DraftHandler. Upload requests larger than
// maxUploadBytes are rejected.
func NewDraftHandler(draftService service.DraftService, logger *zap.Logger, maxUploadBytes int64) *DraftHandler {
	return &DraftHandler{
		draftService:   draftService,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes registers all draft routes
func (h *DraftHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/drafts", func(r chi.Router) {
		r.Post("/", h.Start)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Abandon)
			r.Put("/fields/{field}", h.SetField)
			r.Post("/notes/{list}", h.AddNote)
			r.Put("/notes/{list}/{index}", h.SetNote)
			r.Delete("/notes/{list}/{index}", h.RemoveNote)
			r.Post("/images", h.AddImages)
			r.Delete("/images/{index}", h.RemoveImage)
			r.Post("/submit", h.Submit)
		})
	})
}

// Start opens a new draft session
func (h *DraftHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, d, err := h.draftService.Start(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Debug("Draft session started", zap.String("draft_id", id))
	middleware.RespondWithJSON(w, http.StatusCreated, DraftResponse{ID: id, Draft: d})
}

// Get returns the draft of a session
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respondWithDraft(w, id)(h.draftService.Get(r.Context(), id))
}

// Abandon discards a session
func (h *DraftHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.draftService.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetField overwrites one scalar field
func (h *DraftHandler) SetField(w http.ResponseWriter, r *http.Request) {
	value, ok := h.decodeValue(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	field := domain.Field(chi.URLParam(r, "field"))
	h.respondWithDraft(w, id)(h.draftService.SetField(r.Context(), id, field, value))
}

// AddNote appends a blank entry to a note list
func (h *DraftHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	list := domain.NoteList(chi.URLParam(r, "list"))
	h.respondWithDraft(w, id)(h.draftService.AddNote(r.Context(), id, list))
}

// SetNote overwrites one note entry
func (h *DraftHandler) SetNote(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	value, ok := h.decodeValue(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	list := domain.NoteList(chi.URLParam(r, "list"))
	h.respondWithDraft(w, id)(h.draftService.SetNote(r.Context(), id, list, index, value))
}

// RemoveNote deletes one note entry
func (h *DraftHandler) RemoveNote(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	list := domain.NoteList(chi.URLParam(r, "list"))
	h.respondWithDraft(w, id)(h.draftService.RemoveNote(r.Context(), id, list, index))
}

// AddImages attaches the uploaded files. Every part must be an image; only
// the file metadata is kept.
func (h *DraftHandler) AddImages(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		h.respondTooLarge(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondTooLarge(w)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File[imagesFormField]
	if len(files) == 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "no images provided")
		return
	}

	images := make([]domain.Image, 0, len(files))
	for _, fh := range files {
		img, err := sniffImage(fh)
		if err != nil {
			h.logger.Debug("Rejected upload", zap.String("filename", fh.Filename), zap.Error(err))
			middleware.RespondWithErrorDetails(w, http.StatusBadRequest, "only image files can be attached",
				map[string]interface{}{"filename": fh.Filename})
			return
		}
		images = append(images, img)
	}

	id := chi.URLParam(r, "id")
	h.respondWithDraft(w, id)(h.draftService.AddImages(r.Context(), id, images))
}

// RemoveImage detaches one image
func (h *DraftHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	h.respondWithDraft(w, id)(h.draftService.RemoveImage(r.Context(), id, index))
}

// Submit validates the draft and, when it is complete, resets the session
func (h *DraftHandler) Submit(w http.ResponseWriter, r *http.Request) {
	snap, note, err := h.draftService.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, draft.ErrMissingRequiredField) || errors.Is(err, draft.ErrNoImagesAttached) {
			details := map[string]interface{}{"notification": note}

			var fieldErr *draft.FieldError
			if errors.As(err, &fieldErr) {
				details["field"] = fieldErr.Field
			}

			middleware.RespondWithErrorDetails(w, http.StatusUnprocessableEntity, note.Description, details)
			return
		}
		h.handleError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, SubmitResponse{Snapshot: snap, Notification: note})
}

func (h *DraftHandler) respondTooLarge(w http.ResponseWriter) {
	middleware.RespondWithError(w, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("upload exceeds %d bytes", h.maxUploadBytes))
}

// respondWithDraft writes the result of a draft operation
func (h *DraftHandler) respondWithDraft(w http.ResponseWriter, id string) func(domain.DraftProduct, error) {
	return func(d domain.DraftProduct, err error) {
		if err != nil {
			h.handleError(w, err)
			return
		}
		middleware.RespondWithJSON(w, http.StatusOK, DraftResponse{ID: id, Draft: d})
	}
}

func (h *DraftHandler) decodeValue(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req ValueRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Draft value validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return "", false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	return *req.Value, true
}

func (h *DraftHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, draft.ErrSessionNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "draft not found")
	case errors.Is(err, draft.ErrUnknownField):
		middleware.RespondWithError(w, http.StatusBadRequest, "unknown field")
	case errors.Is(err, draft.ErrUnknownNoteList):
		middleware.RespondWithError(w, http.StatusBadRequest, "unknown note list")
	default:
		h.logger.Error("Draft request failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// indexParam parses the {index} URL parameter. Negative values are passed
// on and treated as out of range.
func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "index must be an integer")
		return 0, false
	}
	return index, true
}

// sniffImage detects the content type of an upload from its bytes. The
// client supplied Content-Type header is ignored.
func sniffImage(fh *multipart.FileHeader) (domain.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Image{}, err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return domain.Image{}, err
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return domain.Image{}, fmt.Errorf("unsupported content type %s", mtype.String())
	}

	return domain.Image{
		Filename:    fh.Filename,
		ContentType: mtype.String(),
		Size:        fh.Size,
	}, nil
}
