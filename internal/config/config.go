package config

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	ierr "github.com/novacrm/seedforge/internal/errors"
	"github.com/novacrm/seedforge/internal/types"
	"github.com/spf13/viper"
)

// dateLayout is the calendar-date form used in config files and CSV output.
const dateLayout = "2006-01-02"

type Configuration struct {
	Seed             int64                  `mapstructure:"seed"`
	OutputDir        string                 `mapstructure:"output_dir" validate:"required"`
	AccountCount     int                    `mapstructure:"account_count" validate:"required,gt=0"`
	DateRange        DateRangeConfig        `mapstructure:"date_range" validate:"required"`
	PlanTiers        map[string]TierConfig  `mapstructure:"plan_tiers" validate:"required,min=1,dive"`
	Addons           map[string]AddonConfig `mapstructure:"addons" validate:"dive"`
	Industries       []string               `mapstructure:"industries" validate:"required,min=1"`
	Regions          []string               `mapstructure:"regions" validate:"required,min=1"`
	RegionWeights    []float64              `mapstructure:"region_weights"`
	AccountOwners    []string               `mapstructure:"account_owners" validate:"required,min=1"`
	EventNames       []string               `mapstructure:"event_names" validate:"required,min=1"`
	TicketCategories []string               `mapstructure:"ticket_categories" validate:"required,min=1"`
	TicketPriorities []string               `mapstructure:"ticket_priorities" validate:"required,min=1"`
	SLATargets       map[string]int         `mapstructure:"sla_targets" validate:"required,min=1"`
	UsageEventCap    int                    `mapstructure:"usage_event_cap" validate:"required,gt=0"`
	Logging          LoggingConfig          `mapstructure:"logging"`
}

type DateRangeConfig struct {
	Start time.Time `mapstructure:"start" validate:"required"`
	End   time.Time `mapstructure:"end" validate:"required"`
}

type TierConfig struct {
	MRR    int64   `mapstructure:"mrr" validate:"gte=0"`
	Weight float64 `mapstructure:"weight" validate:"gt=0"`
}

type AddonConfig struct {
	MRR    int64   `mapstructure:"mrr" validate:"gte=0"`
	Chance float64 `mapstructure:"chance" validate:"gt=0,lte=1"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/seedforge")

	v.SetEnvPrefix("SEEDFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Missing config file is fine, defaults carry a full working setup.
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	config := GetDefaultConfig()
	if err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(dateLayout),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// GetDefaultConfig returns the stock NovaCRM dataset configuration. It is a
// complete, valid setup so the tool runs with no config file at all.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Seed:         42,
		OutputDir:    "seeds",
		AccountCount: 150,
		DateRange: DateRangeConfig{
			Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		PlanTiers: map[string]TierConfig{
			types.PlanTierStarter.String():    {MRR: 49, Weight: 0.45},
			types.PlanTierGrowth.String():     {MRR: 149, Weight: 0.35},
			types.PlanTierEnterprise.String(): {MRR: 499, Weight: 0.20},
		},
		Addons: map[string]AddonConfig{
			"api_access":         {MRR: 29, Chance: 0.25},
			"advanced_analytics": {MRR: 79, Chance: 0.15},
			"priority_support":   {MRR: 59, Chance: 0.20},
		},
		Industries: []string{
			"technology", "healthcare", "finance", "manufacturing",
			"retail", "education", "media", "logistics",
			"real_estate", "professional_services",
		},
		Regions:       []string{"north_america", "europe", "apac", "latam"},
		RegionWeights: []float64{0.40, 0.30, 0.20, 0.10},
		AccountOwners: []string{
			"Sarah Chen", "Marcus Johnson", "Emily Rodriguez",
			"David Kim", "Rachel Thompson", "James O'Brien",
		},
		EventNames: []string{
			"dashboard_viewed", "report_created", "contact_added",
			"email_sent", "deal_updated", "api_call", "export_generated",
			"workflow_created", "integration_configured", "user_invited",
			"search_performed", "filter_applied", "note_added",
			"task_completed", "meeting_logged",
		},
		TicketCategories: []string{
			"bug", "feature_request", "billing", "onboarding", "how_to", "performance",
		},
		TicketPriorities: []string{"p1", "p2", "p3", "p4"},
		SLATargets: map[string]int{
			"p1": 4, "p2": 12, "p3": 48, "p4": 120,
		},
		UsageEventCap: 15000,
		Logging: LoggingConfig{
			Level: types.LogLevelInfo,
		},
	}
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if !c.DateRange.Start.Before(c.DateRange.End) {
		return ierr.NewError("invalid date range").
			WithHint("date_range.start must be before date_range.end").
			WithReportableDetails(map[string]any{
				"start": c.DateRange.Start.Format(dateLayout),
				"end":   c.DateRange.End.Format(dateLayout),
			}).
			Mark(ierr.ErrValidation)
	}

	for name := range c.PlanTiers {
		if err := types.PlanTier(name).Validate(); err != nil {
			return err
		}
	}

	for _, p := range c.TicketPriorities {
		if err := types.TicketPriority(p).Validate(); err != nil {
			return err
		}
		if _, ok := c.SLATargets[p]; !ok {
			return ierr.NewError("missing sla target").
				WithHintf("sla_targets must define hours for priority %q", p).
				Mark(ierr.ErrValidation)
		}
	}

	if len(c.RegionWeights) > 0 && len(c.RegionWeights) != len(c.Regions) {
		return ierr.NewError("region weight mismatch").
			WithHint("region_weights must align one-to-one with regions").
			WithReportableDetails(map[string]any{
				"regions": len(c.Regions),
				"weights": len(c.RegionWeights),
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// TierNames returns configured tier names in sorted order. Weighted draws
// iterate this slice, so run output stays reproducible across processes.
func (c Configuration) TierNames() []string {
	names := make([]string, 0, len(c.PlanTiers))
	for name := range c.PlanTiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddonNames returns configured add-on names in sorted order, for the same
// reproducibility reason as TierNames.
func (c Configuration) AddonNames() []string {
	names := make([]string, 0, len(c.Addons))
	for name := range c.Addons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
