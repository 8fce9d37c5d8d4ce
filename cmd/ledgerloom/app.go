package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ledgerloom/ledgerloom/internal/categorize"
	"github.com/ledgerloom/ledgerloom/internal/extract"
	"github.com/ledgerloom/ledgerloom/internal/importer"
	"github.com/ledgerloom/ledgerloom/internal/llm"
	"github.com/ledgerloom/ledgerloom/internal/model"
	"github.com/ledgerloom/ledgerloom/internal/storage"
)

// staticLifecycle satisfies the model lifecycle for an externally managed
// inference engine: the configured model is assumed installed and ready,
// and loading is the engine's own concern.
type staticLifecycle struct {
	modelName string
}

func (l staticLifecycle) SelectedModel() (model.InstalledModel, error) {
	return model.InstalledModel{
		Config: model.ModelConfig{ID: l.modelName, Name: l.modelName},
		Status: model.ModelStatusReady,
	}, nil
}

func (l staticLifecycle) Load(_ context.Context, _ model.InstalledModel) error {
	return nil
}

// app bundles the wired collaborators the commands share.
type app struct {
	store     *storage.Store
	processor *importer.Processor
	factory   *llm.Factory
	cascade   *categorize.Cascade
	ai        *categorize.AICategorizer
}

func newApp() (*app, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "ledgerloom", "ledger.db")
	}

	store, err := storage.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if budget := viper.GetFloat64("ai.monthly_budget_cents"); budget > 0 {
		store.SetMonthlyBudgetCents(budget)
	}

	var lifecycle llm.ModelLifecycle
	if viper.GetString("local.base_url") != "" && viper.GetString("local.model") != "" {
		lifecycle = staticLifecycle{modelName: viper.GetString("local.model")}
	}

	factory, err := llm.NewFactory(llm.Config{
		OpenAIAPIKey:       viper.GetString("openai.api_key"),
		OpenAICheapModel:   viper.GetString("openai.cheap_model"),
		OpenAIQualityModel: viper.GetString("openai.quality_model"),
		AnthropicAPIKey:    viper.GetString("anthropic.api_key"),
		AnthropicModel:     viper.GetString("anthropic.model"),
		LocalBaseURL:       viper.GetString("local.base_url"),
		RequestsPerMinute:  viper.GetInt("ai.requests_per_minute"),
	}, lifecycle)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to configure providers: %w", err)
	}

	cascade, ai, err := buildCascade(store, factory)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &app{
		store:     store,
		processor: importer.NewProcessor(slog.Default(), store, extract.NewExtractor(slog.Default())),
		factory:   factory,
		cascade:   cascade,
		ai:        ai,
	}, nil
}

func buildCascade(store *storage.Store, factory *llm.Factory) (*categorize.Cascade, *categorize.AICategorizer, error) {
	logger := slog.Default()

	database, err := categorize.NewMerchantDatabaseTier(categorize.DefaultMerchantPatterns())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build merchant database: %w", err)
	}
	rules, err := categorize.NewRuleTier()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build rule tier: %w", err)
	}
	enrichment, err := categorize.NewEnrichmentTier(factory, store, database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build enrichment tier: %w", err)
	}

	tiers := []categorize.Tier{
		categorize.NewLearnedTier(store, logger),
		database,
		categorize.NewHistoryTier(store),
		rules,
		enrichment,
	}

	cascade := categorize.NewCascade(tiers, logger)
	ai := categorize.NewAICategorizer(factory, store, store, logger)
	return cascade, ai, nil
}

func (a *app) close() {
	a.factory.Close()
	if err := a.store.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}
