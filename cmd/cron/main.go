package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"coinwatch-api/internal/cli"
	"coinwatch-api/internal/config"
	"coinwatch-api/pkg/datastore"
	"coinwatch-api/pkg/pricesource"
)

const (
	priceInterval   = 2 * time.Minute  // Price API probe interval
	storeInterval   = 10 * time.Minute // Data store probe interval
	apiTimeout      = 5 * time.Second  // Timeout for individual API calls
	shutdownTimeout = 10 * time.Second // Grace period for shutdown
)

var monitoredCodes = []string{"BTC", "ETH", "SOL"}

var configFile = flag.String("f", "etc/coinwatch.yaml", "the config file")

func main() {
	flag.Parse()
	logx.Info("[main] Starting cron monitor...")

	// The data store probe needs the full app config; the price probe only
	// needs etc/pricesource.yaml.
	var store datastore.Executor
	var source pricesource.Source
	var request pricesource.ListRequest

	appCfg, err := config.Load(*configFile)
	if err != nil {
		logx.Errorf("[main] Failed to load app config, data store probe disabled: %v", err)
		client, psCfg := config.MustBuildPriceSource()
		source, request = client, psCfg.Request()
	} else {
		for _, line := range cli.ConfigSummaryLines(appCfg) {
			logx.Infof("  - %s", line)
		}
		source = appCfg.PriceSource.Value.BuildClient()
		request = appCfg.PriceSource.Value.Request()
		store = datastore.NewClient(appCfg.DataStore.URL, appCfg.AuthKey,
			datastore.WithTimeout(appCfg.DataStore.Timeout))
	}
	// a short list is enough to check the endpoint and the monitored codes
	request.Limit = 10

	logx.Infof("  - Monitored codes: %v", monitoredCodes)
	logx.Infof("  - Monitoring intervals: price=%s, store=%s", priceInterval, storeInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		runEvery(ctx, "price", priceInterval, func(ctx context.Context) {
			probePriceSource(ctx, source, request)
		})
	}()

	if store != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runEvery(ctx, "store", storeInterval, func(ctx context.Context) {
				probeDataStore(ctx, store)
			})
		}()
	}

	logx.Info("[main] Cron monitor started. Press Ctrl+C to stop.")

	<-ctx.Done()
	logx.Info("[main] Shutdown signal received, stopping tasks...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logx.Info("[main] All tasks stopped cleanly")
	case <-shutdownCtx.Done():
		logx.Info("[main] Shutdown timeout exceeded, forcing exit")
	}
	logx.Info("[main] Cron monitor stopped")
}

// runEvery runs probe once immediately, then on every tick until ctx ends.
func runEvery(ctx context.Context, name string, every time.Duration, probe func(context.Context)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	probe(ctx)
	for {
		select {
		case <-ctx.Done():
			logx.Infof("[%s] Stopping monitor", name)
			return
		case <-ticker.C:
			probe(ctx)
		}
	}
}

// probePriceSource lists the top coins and checks the monitored codes.
func probePriceSource(parentCtx context.Context, source pricesource.Source, req pricesource.ListRequest) {
	if parentCtx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parentCtx, apiTimeout)
	defer cancel()

	start := time.Now()
	coins, err := source.ListCoins(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		logx.Errorf("[price.list] [ERROR] %v, took %dms", err, elapsed.Milliseconds())
		return
	}
	logx.Infof("[price.list] [OK] %d coins in %s, took %dms", len(coins), req.Currency, elapsed.Milliseconds())

	byCode := make(map[string]pricesource.Coin, len(coins))
	for _, c := range coins {
		byCode[c.Code] = c
	}
	for _, code := range monitoredCodes {
		c, ok := byCode[code]
		switch {
		case !ok:
			logx.Infof("[price.%s] [WARN] not in top %d", code, req.Limit)
		case c.Rate <= 0:
			logx.Infof("[price.%s] [WARN] invalid rate=%f", code, c.Rate)
		default:
			logx.Infof("[price.%s] [OK] rank=%d rate=%.2f cap=%.0f", code, c.Rank, c.Rate, c.Cap)
		}
	}
}

// probeDataStore runs a no-op statement against the data store.
func probeDataStore(parentCtx context.Context, store datastore.Executor) {
	if parentCtx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parentCtx, apiTimeout)
	defer cancel()

	start := time.Now()
	res, err := store.Exec(ctx, "SELECT 1;")
	elapsed := time.Since(start)
	if err != nil {
		logx.Errorf("[store.ping] [ERROR] %v, took %dms", err, elapsed.Milliseconds())
		return
	}
	logx.Infof("[store.ping] [OK] %s, took %dms", string(res), elapsed.Milliseconds())
}
