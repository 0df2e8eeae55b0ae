package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"coinwatch-api/internal/logic"
	"coinwatch-api/internal/svc"
	"coinwatch-api/internal/types"
)

func CoinHistoryHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CoinHistoryReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, http.StatusBadRequest, err.Error())
			return
		}

		l := logic.NewCoinHistoryLogic(r.Context(), svcCtx)
		resp, err := l.CoinHistory(&req)
		if err != nil {
			writeLogicError(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
