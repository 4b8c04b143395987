package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/offerte-app/offerte-backend/api/responses"
	"github.com/offerte-app/offerte-backend/api/validators"
	"github.com/offerte-app/offerte-backend/internal/offers"
	"github.com/offerte-app/offerte-backend/internal/supermarkets"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
	"github.com/offerte-app/offerte-backend/pkg/logger"
)

// OffersBySupermarket returns a supermarket's active offers.
func OffersBySupermarket(svc *offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		supermarketID, err := uuidParam(r, "supermarketID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activeOnly := r.URL.Query().Get("include_expired") != "true"
		result, err := svc.List(r.Context(), supermarketID, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"data": map[string]any{
				"supermarket": supermarkets.ToResponse(result.Supermarket),
				"offers":      result.Offers,
				"meta": map[string]any{
					"offer_count": len(result.Offers),
					"timestamp":   result.Timestamp,
				},
			},
		})
	}
}

// GenerateOffers replaces a supermarket's active offers with a random batch.
func GenerateOffers(svc *offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		actorID, actorRole, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supermarketID, err := uuidParam(r, "supermarketID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// The body is optional; an empty one means "use the defaults".
		var req offers.GenerateRequest
		if decodeErr := validators.DecodeJSONBody(r, &req); decodeErr != nil && !isEmptyBody(decodeErr) {
			responses.WriteError(r.Context(), logg, w, decodeErr)
			return
		}

		result, err := svc.Generate(r.Context(), supermarketID, actorID, actorRole, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"message":        "offers generated",
			"supermarket_id": result.SupermarketID,
			"offer_count":    result.Created,
		})
	}
}

func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}
