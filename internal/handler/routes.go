// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"coinwatch-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.Auth},
			[]rest.Route{
				{
					Method:  http.MethodGet,
					Path:    "/coinsLatest",
					Handler: CoinsLatestHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/coinHistory",
					Handler: CoinHistoryHandler(serverCtx),
				},
			}...,
		),
	)
}
