package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"coinwatch-api/internal/logic"
	"coinwatch-api/internal/svc"
)

func CoinsLatestHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewCoinsLatestLogic(r.Context(), svcCtx)
		resp, err := l.CoinsLatest()
		if err != nil {
			writeLogicError(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
