package generator

import (
	"math/rand"
	"sort"
	"time"

	"github.com/novacrm/seedforge/internal/config"
	"github.com/novacrm/seedforge/internal/domain/account"
	"github.com/novacrm/seedforge/internal/domain/events"
	"github.com/novacrm/seedforge/internal/logger"
	"github.com/novacrm/seedforge/internal/types"
)

const (
	// minSampleDays floors the intermittent-engagement sampling so even
	// short-lived accounts show some activity.
	minSampleDays = 20

	// churnDecayFactor is the maximum usage intensity lost by the effective
	// end date of a churned account.
	churnDecayFactor = 0.8
)

// hourWeights is the bimodal workday distribution for event hours: quiet
// overnight, peaks mid-morning and mid-afternoon.
var hourWeights = []float64{
	1, 1, 1, 1, 1, 2, 3, 5, 8, 10, 10, 9,
	8, 9, 10, 10, 8, 6, 4, 3, 2, 1, 1, 1,
}

// Per-tier weights over the stock 15-name event vocabulary. Enterprise
// skews toward advanced-feature events (api_call, workflow_created);
// starter stays on the basics. A custom vocabulary of a different length
// falls back to uniform weights.
var tierEventWeights = map[types.PlanTier][]float64{
	types.PlanTierEnterprise: {8, 6, 7, 5, 7, 10, 5, 4, 3, 3, 6, 5, 4, 5, 4},
	types.PlanTierGrowth:     {10, 7, 8, 6, 6, 4, 4, 3, 2, 2, 7, 6, 5, 5, 3},
	types.PlanTierStarter:    {12, 5, 10, 4, 5, 1, 2, 1, 1, 1, 8, 7, 3, 4, 2},
}

var eventHours = func() []int {
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return hours
}()

// UsageEventSampler produces a chronologically bounded activity stream per
// account and then enforces the global volume cap. Days are sampled, not
// exhaustive: roughly a quarter of the account's lifetime, floored at
// minSampleDays, to mimic intermittent engagement.
type UsageEventSampler struct {
	cfg *config.Configuration
	rng *rand.Rand
	log *logger.Logger
}

func NewUsageEventSampler(cfg *config.Configuration, rng *rand.Rand, log *logger.Logger) *UsageEventSampler {
	return &UsageEventSampler{cfg: cfg, rng: rng, log: log}
}

func (g *UsageEventSampler) Generate(accounts []*account.Account) []*events.UsageEvent {
	var evts []*events.UsageEvent
	seq := 0
	for _, acct := range accounts {
		evts = append(evts, g.sampleAccount(acct, &seq)...)
	}

	if len(evts) > g.cfg.UsageEventCap {
		evts = g.applyCap(evts)
	}
	return evts
}

func (g *UsageEventSampler) sampleAccount(acct *account.Account, seq *int) []*events.UsageEvent {
	baseline, userCount := g.tierBaseline(acct.PlanTier)

	userIDs := make([]string, userCount)
	for u := range userIDs {
		userIDs[u] = types.FormatUserID(acct.ID, u+1)
	}

	effectiveEnd := g.effectiveEnd(acct)
	totalDays := daysBetween(acct.SignupDate, effectiveEnd)
	if totalDays <= 0 {
		return nil
	}

	eventWeights := g.eventWeights(acct.PlanTier)

	var evts []*events.UsageEvent
	for _, offset := range g.sampleDayOffsets(totalDays) {
		day := acct.SignupDate.AddDate(0, 0, offset)
		daily := g.dailyCount(acct, baseline, offset, totalDays)

		for e := 0; e < daily; e++ {
			*seq++
			hour := WeightedChoice(g.rng, eventHours, hourWeights)
			ts := time.Date(day.Year(), day.Month(), day.Day(),
				hour, g.rng.Intn(60), g.rng.Intn(60), 0, time.UTC)

			evts = append(evts, &events.UsageEvent{
				ID:        types.FormatEventID(*seq),
				AccountID: acct.ID,
				UserID:    Choice(g.rng, userIDs),
				EventName: WeightedChoice(g.rng, g.cfg.EventNames, eventWeights),
				Timestamp: ts,
			})
		}
	}
	return evts
}

// effectiveEnd is where the account's activity data stops: the dataset end
// for healthy accounts, a random point within the lifetime for churned ones.
func (g *UsageEventSampler) effectiveEnd(acct *account.Account) time.Time {
	if !acct.IsChurned() {
		return g.cfg.DateRange.End
	}
	end := acct.SignupDate.AddDate(0, 0, intBetween(g.rng, 60, 500))
	if end.After(g.cfg.DateRange.End) {
		return g.cfg.DateRange.End
	}
	return end
}

// sampleDayOffsets picks a sorted subset of day offsets in [0, totalDays).
func (g *UsageEventSampler) sampleDayOffsets(totalDays int) []int {
	n := totalDays / 4
	if n < minSampleDays {
		n = minSampleDays
	}
	if n > totalDays {
		n = totalDays
	}

	offsets := g.rng.Perm(totalDays)[:n]
	sort.Ints(offsets)
	return offsets
}

// dailyCount derives how many events fire on a sampled day. Churned
// accounts decay linearly toward the effective end; healthy accounts
// jitter symmetrically around their baseline.
func (g *UsageEventSampler) dailyCount(acct *account.Account, baseline, offset, totalDays int) int {
	if acct.IsChurned() {
		progress := float64(offset) / float64(totalDays)
		decayed := int(float64(baseline) * (1 - progress*churnDecayFactor))
		if decayed < 1 {
			return 1
		}
		return decayed
	}

	jittered := baseline + intBetween(g.rng, -3, 3)
	if jittered < 1 {
		return 1
	}
	return jittered
}

func (g *UsageEventSampler) tierBaseline(tier types.PlanTier) (eventsPerDay, users int) {
	switch tier {
	case types.PlanTierEnterprise:
		return intBetween(g.rng, 8, 25), intBetween(g.rng, 3, 10)
	case types.PlanTierGrowth:
		return intBetween(g.rng, 4, 15), intBetween(g.rng, 2, 5)
	default:
		return intBetween(g.rng, 1, 8), intBetween(g.rng, 1, 3)
	}
}

func (g *UsageEventSampler) eventWeights(tier types.PlanTier) []float64 {
	weights, ok := tierEventWeights[tier]
	if !ok || len(weights) != len(g.cfg.EventNames) {
		return uniformWeights(len(g.cfg.EventNames))
	}
	return weights
}

// applyCap downsamples to exactly the configured ceiling in two explicit
// phases: a uniform random subset selection, then a full re-sort, because
// selection does not preserve input order.
func (g *UsageEventSampler) applyCap(evts []*events.UsageEvent) []*events.UsageEvent {
	g.log.Infow("usage event cap exceeded, downsampling",
		"generated", len(evts),
		"cap", g.cfg.UsageEventCap)

	events.SortByTimestamp(evts)

	picks := g.rng.Perm(len(evts))[:g.cfg.UsageEventCap]
	survivors := make([]*events.UsageEvent, 0, g.cfg.UsageEventCap)
	for _, idx := range picks {
		survivors = append(survivors, evts[idx])
	}

	events.SortByTimestamp(survivors)
	return survivors
}
