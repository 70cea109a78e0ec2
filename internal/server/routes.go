package server

import (
	"keywordjourney/internal/brand"
	"keywordjourney/internal/handlers"
	"keywordjourney/internal/handlers/api"
	"keywordjourney/internal/insights"
	"keywordjourney/internal/journey"
	"keywordjourney/internal/metrics"
	"keywordjourney/internal/report"
	"keywordjourney/internal/searchad"
)

// Dependencies are the services the routes are wired to. Classifier is nil
// when no OpenAI key is configured.
type Dependencies struct {
	Classifier *journey.Classifier
	Dummy      *journey.DummyClassifier
	Recorder   *metrics.Recorder
	Stats      *searchad.Service
	Insights   *insights.Generator
	Brands     *brand.Analyzer
	Reports    *report.Renderer
	Probes     map[string]handlers.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(d Dependencies) {
	// Nil pointers must not become non-nil interfaces.
	var classifier api.Classifier
	if d.Classifier != nil {
		classifier = d.Classifier
	}
	var recorder api.OutcomeRecorder
	if d.Recorder != nil {
		recorder = d.Recorder
	}

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(s.Cfg)
	reportHandler := handlers.NewReportHandler(d.Reports)
	probeHandler := handlers.NewProbeHandler(d.Probes)
	journeyHandler := api.NewJourneyHandler(classifier, d.Dummy, recorder, s.Cfg.DefaultModel, s.Log)
	keywordHandler := api.NewKeywordHandler(d.Stats)
	insightHandler := api.NewInsightHandler(d.Insights, s.Log)
	brandHandler := api.NewBrandHandler(d.Brands)

	// Probes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	// Pages
	s.App.Get("/", pageHandler.Index)
	s.App.Get("/brand-analysis", pageHandler.BrandAnalysis)
	s.App.Get("/settings", pageHandler.Settings)
	s.App.Get("/history", pageHandler.History)
	s.App.Post("/report", reportHandler.Download)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Post("/keywords", keywordHandler.Search)
	apiGroup.Post("/analyze-journey", journeyHandler.Analyze)
	apiGroup.Post("/generate-insights", insightHandler.Generate)
	apiGroup.Post("/brands", brandHandler.Compare)
}
