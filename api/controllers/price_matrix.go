package controllers

import (
	"net/http"

	"github.com/angelmondragon/ratewise-backend/api/responses"
	"github.com/angelmondragon/ratewise-backend/api/validators"
	"github.com/angelmondragon/ratewise-backend/internal/ratematrix"
	pkgerrors "github.com/angelmondragon/ratewise-backend/pkg/errors"
	"github.com/angelmondragon/ratewise-backend/pkg/logger"
)

// HotelPriceMatrix computes the matrix for a stored hotel configuration.
func HotelPriceMatrix(svc ratematrix.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "price matrix service unavailable"))
			return
		}

		hotelID, err := validators.ParseUUIDParam(r, "hotelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req priceMatrixRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		matrix, err := svc.Calculate(r.Context(), hotelID, req.toRequest())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, matrix)
	}
}

// PreviewPriceMatrix computes a what-if matrix over a posted snapshot without touching storage.
func PreviewPriceMatrix(svc ratematrix.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "price matrix service unavailable"))
			return
		}

		var req previewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		matrix, err := svc.Preview(r.Context(), req.toSnapshot(), req.toRequest())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, matrix)
	}
}
