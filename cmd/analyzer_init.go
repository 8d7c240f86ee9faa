package main

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/placelift/place-audit/internal/cache"
	"github.com/placelift/place-audit/internal/pipeline"
	"github.com/placelift/place-audit/pkg/bizsearch"
	"github.com/placelift/place-audit/pkg/browser"
	"github.com/placelift/place-audit/pkg/keywordvol"
)

// initAnalyzer builds the analyzer and its clients from loaded config.
// The local search and volume clients are optional; requests that need
// an absent one fail individually.
func initAnalyzer() (*pipeline.Analyzer, error) {
	browserOpts := []browser.Option{
		browser.WithTimeout(time.Duration(cfg.Browser.TimeoutSecs) * time.Second),
	}
	if cfg.Browser.ChromePath != "" {
		browserOpts = append(browserOpts, browser.WithChromePath(cfg.Browser.ChromePath))
	}
	if cfg.Browser.UserAgent != "" {
		browserOpts = append(browserOpts, browser.WithUserAgent(cfg.Browser.UserAgent))
	}
	if cfg.Browser.RatePerSec > 0 {
		browserOpts = append(browserOpts, browser.WithLimiter(rate.Limit(cfg.Browser.RatePerSec), 1))
	}
	client := browser.NewClient(browserOpts...)

	var search bizsearch.Client
	if s, err := bizsearch.NewClient(cfg.BizSearch.ClientID, cfg.BizSearch.ClientSecret,
		bizsearch.WithBaseURL(cfg.BizSearch.BaseURL)); err == nil {
		search = s
	} else {
		zap.L().Warn("local search disabled", zap.Error(err))
	}

	var volumes keywordvol.Client = keywordvol.Null{}
	if cfg.KeywordVol.Key != "" {
		volStore := cache.New[string](cfg.Cache.VolCapacity, time.Duration(cfg.Cache.VolTTLHours)*time.Hour)
		volumes = keywordvol.NewClient(cfg.KeywordVol.Key, cfg.KeywordVol.BaseURL, volStore)
	}

	docs := cache.New[*browser.Document](cfg.Cache.DocCapacity, time.Duration(cfg.Cache.DocTTLMinutes)*time.Minute)

	return pipeline.NewAnalyzer(client, search, volumes, docs, cfg.Analyze), nil
}
