package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopFront/config"
	"ShopFront/internal/admin"
	"ShopFront/internal/cart"
	"ShopFront/internal/catalog"
	"ShopFront/internal/kv"
	"ShopFront/internal/storefront"
	"ShopFront/pkg/kit"
)

func main() {
	// Catalog files carry prices as plain JSON numbers; keep them that way
	// on the wire.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal("open kv store", zap.Error(err))
	}

	engine := catalog.NewEngine(cfg.PageSize)
	loadCatalog(engine, cfg.CatalogSource, log)

	cartStore := cart.NewStore(store, cart.DefaultKey, log)
	adminStore := admin.NewStore(store, admin.DefaultKey, log)

	catSrv := &catalog.Server{Engine: engine, Log: log}
	cartSrv := &cart.Server{
		Store:  cartStore,
		Lookup: catalogLookup(engine),
		Log:    log,
	}
	adminSrv := &admin.Server{Store: adminStore, Log: log}

	h := storefront.NewHandler(catSrv, cartSrv, adminSrv, storefront.Deps{
		Log:              log,
		Service:          service,
		Registry:         prometheus.NewRegistry(),
		MetricsEnabled:   cfg.Metrics.Enabled,
		MetricsToken:     cfg.Metrics.Token,
		RateLimit:        cfg.RateLimit.Limit,
		RateLimitWindowS: cfg.RateLimit.WindowSeconds,
		KV:               store,
	})

	if err := kit.RunHTTPServer(cfg.HTTPServerAddr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(cfg config.Config) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return kv.NewMemStore(), nil
	case "file":
		return kv.NewFileStore(cfg.Storage.FilePath), nil
	case "postgres":
		return kv.OpenPostgres(cfg.Storage.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// loadCatalog performs the one-shot catalog read. A failed read degrades to
// an empty listing; it is logged, not retried.
func loadCatalog(engine *catalog.Engine, source string, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := catalog.NewLoader().Load(ctx, source)
	if err != nil {
		log.Error("catalog load failed, starting with empty catalog",
			zap.Error(err), zap.String("source", source))
		return
	}

	engine.SetCatalog(products)
	log.Info("catalog loaded", zap.Int("products", len(products)))
}

func catalogLookup(engine *catalog.Engine) cart.LookupFunc {
	return func(id string) (cart.ProductInfo, bool) {
		p, ok := engine.Get(catalog.ID(id))
		if !ok {
			return cart.ProductInfo{}, false
		}
		return cart.ProductInfo{
			ID:    string(p.ID),
			Title: p.Title,
			Price: p.Price,
			Img:   p.Img,
		}, true
	}
}
