package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"coinwatch-api/internal/svc"
	"coinwatch-api/internal/types"
)

type CoinsLatestLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCoinsLatestLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CoinsLatestLogic {
	return &CoinsLatestLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CoinsLatest serves the cached snapshot as-is, stale or empty included.
func (l *CoinsLatestLogic) CoinsLatest() (*types.CoinsLatestResp, error) {
	snap := l.svcCtx.State.Get()
	return &types.CoinsLatestResp{
		Data:      snap.Data,
		Timestamp: snap.Timestamp,
	}, nil
}
