package controllers

import (
	"net/http"

	"github.com/offerte-app/offerte-backend/api/responses"
	"github.com/offerte-app/offerte-backend/internal/dashboard"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
	"github.com/offerte-app/offerte-backend/pkg/logger"
)

// Dashboard serves the role-shaped aggregate view.
func Dashboard(svc *dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		actorID, actorRole, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := svc.Build(r.Context(), actorID, actorRole)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"data":   payload,
		})
	}
}
