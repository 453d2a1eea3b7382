package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eccentric-easel/easel/internal/config"
	"github.com/eccentric-easel/easel/internal/images"
	"github.com/eccentric-easel/easel/internal/models"
	"github.com/eccentric-easel/easel/internal/review"
)

// Generator produces item text from a photo
type Generator interface {
	GenerateName(ctx context.Context, image images.Encoded, prompt string, maxTokens int) (string, error)
	GenerateDescription(ctx context.Context, image images.Encoded, prompt string, maxTokens int) (string, error)
}

// Uploader publishes an approved draft
type Uploader interface {
	Upload(ctx context.Context, draft models.Draft, locationID string) (models.ItemRecord, error)
}

// Settings is the configuration snapshot a pipeline runs with
type Settings struct {
	Prompts              config.Prompts
	LocationID           string
	NameMaxTokens        int
	DescriptionMaxTokens int
}

// SettingsFrom resolves the location and token limits from a loaded config
func SettingsFrom(cfg *config.Config, locationOverride string) (Settings, error) {
	locationID, err := cfg.ResolveLocation(locationOverride)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Prompts:              cfg.Prompts,
		LocationID:           locationID,
		NameMaxTokens:        cfg.NameMaxTokens,
		DescriptionMaxTokens: cfg.DescriptionMaxTokens,
	}, nil
}

// Input is one photo to onboard
type Input struct {
	ImagePath string
	// PriceCents is the price in minor units
	PriceCents int64
	// Name skips name generation when set
	Name string
}

// Outcome of a run. The zero value is Failed.
type Outcome int

const (
	Failed Outcome = iota
	Created
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Cancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// Result of a single run. Record is complete only when Outcome is Created;
// a failed upload carries the ids obtained before the failure.
type Result struct {
	Outcome Outcome
	Draft   models.Draft
	Record  models.ItemRecord
}

// Pipeline runs photo -> generated text -> review -> upload
type Pipeline struct {
	generator Generator
	reviewer  review.Reviewer
	uploader  Uploader
	settings  Settings
}

// New returns new Pipeline
func New(generator Generator, reviewer review.Reviewer, uploader Uploader, settings Settings) *Pipeline {
	return &Pipeline{
		generator: generator,
		reviewer:  reviewer,
		uploader:  uploader,
		settings:  settings,
	}
}

// Run processes one photo. Nothing is uploaded unless both texts were
// generated and the reviewer did not reject the draft. A rejection is not an
// error.
func (p *Pipeline) Run(ctx context.Context, in Input) (Result, error) {
	if in.PriceCents < 0 {
		return Result{}, models.Errorf(models.ValidationError, "validate input", "price must not be negative")
	}

	slog.Info("Processing image", "path", in.ImagePath, "price_cents", in.PriceCents)
	image, err := images.Load(in.ImagePath)
	if err != nil {
		return Result{}, err
	}

	draft := models.Draft{
		Name:       strings.TrimSpace(in.Name),
		PriceCents: in.PriceCents,
		ImagePath:  in.ImagePath,
	}

	if draft.Name == "" {
		draft.Name, err = p.generator.GenerateName(ctx, image, p.settings.Prompts.Name, p.settings.NameMaxTokens)
		if err != nil {
			return Result{}, err
		}
		slog.Info("Generated name", "name", draft.Name)
	}

	draft.Description, err = p.generator.GenerateDescription(ctx, image, p.settings.Prompts.Description, p.settings.DescriptionMaxTokens)
	if err != nil {
		return Result{}, err
	}
	slog.Info("Generated description", "length", len(draft.Description))

	decision, err := p.reviewer.Review(ctx, draft)
	if err != nil {
		return Result{}, fmt.Errorf("failed to review draft: %w", err)
	}
	slog.Info("Review finished", "decision", decision.Kind)

	if !decision.Proceed() {
		slog.Info("Item not posted", "name", draft.Name)
		return Result{Outcome: Cancelled, Draft: draft}, nil
	}

	if decision.Draft.PriceCents < 0 {
		return Result{Draft: decision.Draft}, models.Errorf(models.ValidationError, "validate draft", "price must not be negative")
	}

	record, err := p.uploader.Upload(ctx, decision.Draft, p.settings.LocationID)
	if err != nil {
		return Result{Outcome: Failed, Draft: decision.Draft, Record: record}, err
	}

	slog.Info("Item posted", "name", decision.Draft.Name, "item_id", record.ItemID)
	return Result{Outcome: Created, Draft: decision.Draft, Record: record}, nil
}
