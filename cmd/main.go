package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pricescout/api"
	"pricescout/cache"
	"pricescout/config"
	"pricescout/history"
	"pricescout/relevance"
	"pricescout/scraper"
	"pricescout/search"
)

func main() {
	// =========
	// Profiling
	// =========
	go func() {
		http.ListenAndServe(":6060", nil)
	}()

	// =========
	// Config
	// =========
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	srcCfg, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		log.Fatalf("Failed to load sources config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Source adapters
	// =========
	sources, err := buildSources(cfg, srcCfg, logger)
	if err != nil {
		log.Fatalf("Failed to build sources: %v", err)
	}

	// =========
	// Aggregation
	// =========
	router, err := search.NewRouter(srcCfg.Categories, sources)
	if err != nil {
		log.Fatalf("Failed to build category router: %v", err)
	}
	aggregator := search.NewAggregator(router, relevance.NewKeywordScorer(), logger)

	// =========
	// Result cache
	// =========
	var store cache.Store
	switch cfg.CacheBackend {
	case "redis":
		store = cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.CacheTTL)
	default:
		store = cache.NewMemory(cfg.CacheTTL)
	}

	// =========
	// Price history
	// =========
	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}
	defer hist.Close()

	// =========
	// HTTP
	// =========
	server := api.NewServer(cfg.AppPort, aggregator, store, hist, logger)
	log.Fatal(server.Start())
}

func buildSources(cfg *config.Config, srcCfg *config.Sources, logger *zap.Logger) ([]search.Source, error) {
	var sources []search.Source
	for name, sc := range srcCfg.Sources {
		if !sc.Enabled {
			continue
		}

		switch name {
		case "amazon":
			sources = append(sources, scraper.NewAmazon(logger, sc.BaseURL, sc.Timeout()))
		case "flipkart":
			client, err := scraper.NewHTTPClient(cfg.ProxyURL, sc.Timeout())
			if err != nil {
				return nil, err
			}
			sources = append(sources, scraper.NewFlipkart(logger, sc.BaseURL, sc.Timeout(), client.Transport))
		case "swiggy", "blinkit", "zepto":
			client, err := scraper.NewHTTPClient(cfg.ProxyURL, sc.Timeout())
			if err != nil {
				return nil, err
			}
			switch name {
			case "swiggy":
				sources = append(sources, scraper.NewSwiggy(logger, client, sc.BaseURL, sc.Timeout()))
			case "blinkit":
				sources = append(sources, scraper.NewBlinkit(logger, client, sc.BaseURL, sc.Timeout()))
			case "zepto":
				sources = append(sources, scraper.NewZepto(logger, client, sc.BaseURL, sc.Timeout()))
			}
		default:
			logger.Warn("ignoring unknown source in config", zap.String("source", name))
		}
	}
	return sources, nil
}
