package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/develevate/backend/auth"
	"github.com/develevate/backend/srvcerror"
	"github.com/develevate/backend/subm"
)

func parseUuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, srvcerror.New(
			"invalid_uuid",
			"invalid identifier in request path",
		).SetDebug(err).SetHttpStatusCode(http.StatusBadRequest)
	}
	return id, nil
}

func decodeJsonBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return srvcerror.New(
			"invalid_request_body",
			"request body is not valid json",
		).SetDebug(err).SetHttpStatusCode(http.StatusBadRequest)
	}
	return nil
}

// requireAuth rejects anonymous requests. The jwt middleware lets them
// through so that public reads work without a token.
func requireAuth(r *http.Request) (*auth.JwtClaims, uuid.UUID, error) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		return nil, uuid.Nil, subm.ErrUnauthenticated()
	}
	userUuid, err := uuid.Parse(claims.UUID)
	if err != nil {
		return nil, uuid.Nil, subm.ErrUnauthenticated()
	}
	return claims, userUuid, nil
}
