package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"coinwatch-api/internal/logic"
	"coinwatch-api/internal/types"
	"coinwatch-api/pkg/datastore"
)

func writeError(ctx context.Context, w http.ResponseWriter, code int, msg string) {
	httpx.WriteJsonCtx(ctx, w, code, types.ErrorResp{Error: msg})
}

// writeLogicError maps logic errors onto the API's status codes. Anything not
// caused by the caller is reported as a 500 with the underlying message.
func writeLogicError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, logic.ErrNameRequired):
		writeError(ctx, w, http.StatusBadRequest, "Coin name is required")
	case errors.Is(err, datastore.ErrInvalidIdentifier):
		writeError(ctx, w, http.StatusBadRequest, "Invalid coin name")
	default:
		writeError(ctx, w, http.StatusInternalServerError, err.Error())
	}
}
