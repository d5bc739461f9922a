package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/rs/zerolog/log"

	"style-outfits/internal/application/services"
	"style-outfits/internal/application/usecases"
	"style-outfits/internal/domain/errs"
)

const (
	msgBusy           = "The service is busy right now. Please try again in a moment."
	msgOutfitFailed   = "Could not generate an outfit. Please try again."
	msgAnalysisFailed = "Could not analyze the item. Please try again."
	msgTooLarge       = "The upload is too large."
	msgInternal       = "Something went wrong."
	msgBadBody        = "Could not read the request body."
)

type OutfitExecutor interface {
	Execute(ctx context.Context, input usecases.OutfitInput) (*usecases.OutfitOutput, error)
}

type AnalysisExecutor interface {
	Execute(ctx context.Context, input usecases.AnalysisInput) (*usecases.AnalysisOutput, error)
}

type OutfitHandler struct {
	outfitUseCase    OutfitExecutor
	analysisUseCase  AnalysisExecutor
	parameterService *services.ParameterService
	maxUploadBytes   int64
}

func NewOutfitHandler(
	outfitUseCase OutfitExecutor,
	analysisUseCase AnalysisExecutor,
	parameterService *services.ParameterService,
	maxUploadBytes int64,
) *OutfitHandler {
	return &OutfitHandler{
		outfitUseCase:    outfitUseCase,
		analysisUseCase:  analysisUseCase,
		parameterService: parameterService,
		maxUploadBytes:   maxUploadBytes,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type analyzeJSONRequest struct {
	PhotoDataURI string `json:"photoDataUri"`
}

func (h *OutfitHandler) HandleGenerateOutfit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	var input usecases.OutfitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.sendBodyError(w, err)
		return
	}

	safety, err := h.parameterService.ParseSafetyOverrides(r)
	if err != nil {
		h.sendFailure(w, r, err, msgOutfitFailed)
		return
	}
	input.Safety = safety

	output, err := h.outfitUseCase.Execute(r.Context(), input)
	if err != nil {
		h.sendFailure(w, r, err, msgOutfitFailed)
		return
	}

	if output.MannequinFallback {
		log.Ctx(r.Context()).Info().Str("stage", string(output.Stage)).Msg("Returning outfit with placeholder mannequin")
	}

	h.sendJSON(w, http.StatusOK, output)
}

// HandleAnalyzeItem accepts either a multipart upload in the "image" field or a JSON body
// with a photoDataUri.
func (h *OutfitHandler) HandleAnalyzeItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	var input usecases.AnalysisInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			h.sendBodyError(w, err)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.sendError(w, errorResponse{Error: "Please choose an image file.", Field: "image"}, http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.sendBodyError(w, err)
			return
		}

		input.ImageData = data
		input.MimeType = header.Header.Get("Content-Type")
	} else {
		var body analyzeJSONRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.sendBodyError(w, err)
			return
		}
		input.PhotoDataURI = body.PhotoDataURI
	}

	safety, err := h.parameterService.ParseSafetyOverrides(r)
	if err != nil {
		h.sendFailure(w, r, err, msgAnalysisFailed)
		return
	}
	input.Safety = safety

	output, err := h.analysisUseCase.Execute(r.Context(), input)
	if err != nil {
		h.sendFailure(w, r, err, msgAnalysisFailed)
		return
	}

	h.sendJSON(w, http.StatusOK, output)
}

func (h *OutfitHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// sendFailure maps the error taxonomy onto HTTP statuses. Provider details are logged,
// never returned to the client.
func (h *OutfitHandler) sendFailure(w http.ResponseWriter, r *http.Request, err error, generic string) {
	logger := log.Ctx(r.Context())

	var validationErr *errs.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Info().Err(err).Msg("Rejected invalid request")
		h.sendError(w, errorResponse{Error: validationErr.Error(), Field: validationErr.Field}, http.StatusBadRequest)
	case errs.IsQuota(err):
		logger.Warn().Err(err).Msg("Provider quota exhausted")
		h.sendError(w, errorResponse{Error: msgBusy}, http.StatusTooManyRequests)
	case errs.IsGenerationFailure(err):
		logger.Error().Err(err).Msg("Generation failed")
		h.sendError(w, errorResponse{Error: generic}, http.StatusBadGateway)
	default:
		logger.Error().Err(err).Msg("Unexpected error")
		h.sendError(w, errorResponse{Error: msgInternal}, http.StatusInternalServerError)
	}
}

func (h *OutfitHandler) sendBodyError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.sendError(w, errorResponse{Error: msgTooLarge}, http.StatusRequestEntityTooLarge)
		return
	}
	h.sendError(w, errorResponse{Error: msgBadBody}, http.StatusBadRequest)
}

func (h *OutfitHandler) sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *OutfitHandler) sendError(w http.ResponseWriter, body errorResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
