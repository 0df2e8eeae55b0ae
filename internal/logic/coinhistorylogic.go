package logic

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"coinwatch-api/internal/svc"
	"coinwatch-api/internal/types"
)

// ErrNameRequired is returned when the request carries no coin name.
var ErrNameRequired = errors.New("coin name is required")

type CoinHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCoinHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CoinHistoryLogic {
	return &CoinHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CoinHistory returns the data store's answer for the coin's history table,
// newest rows first.
func (l *CoinHistoryLogic) CoinHistory(req *types.CoinHistoryReq) (json.RawMessage, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	res, err := l.svcCtx.History.Query(l.ctx, name)
	if err != nil {
		l.Errorf("coin history name=%s: %v", name, err)
		return nil, err
	}
	return res, nil
}
