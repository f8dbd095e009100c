package engine

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"issueflow/internal/github"
	"issueflow/internal/tracker"
)

type GeneratorConfig struct {
	Scenario     string
	Distribution string // "uniform" or "weibull"
	Count        int
	Now          time.Time
	Seed         int64
}

var (
	labelPool   = []string{"bug", "feature", "docs", "performance", "urgent"}
	creatorPool = []string{"alice", "bob", "carol", "dave"}
)

// Generate produces a synthetic issue population: one arrival per day ending
// at Now, with scenario-controlled time-to-close. Issues whose sampled
// duration has not elapsed yet remain open; a fraction of those never got
// picked up and stay unassigned.
func Generate(cfg GeneratorConfig) []tracker.Issue {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	tArrival := cfg.Now.AddDate(0, 0, -cfg.Count)

	var issues []tracker.Issue
	for i := 0; i < cfg.Count; i++ {
		created := tArrival.Add(time.Duration(i*24) * time.Hour).UTC()

		k, lambda := 2.5, 9.5
		switch cfg.Scenario {
		case "chaos":
			k = 0.8
			if cfg.Distribution == "weibull" {
				lambda = 12.0
			}
		case "drift":
			ratio := float64(i) / float64(cfg.Count)
			k = 2.5 - (1.7 * ratio)
			lambda = 9.5 + (2.5 * ratio)
		}

		var totalDuration float64
		if cfg.Distribution == "weibull" {
			totalDuration = weibullSample(rng, k, lambda)
		} else {
			// Uniform baseline: 6-11 days
			totalDuration = 6.0 + rng.Float64()*5.0
			if cfg.Scenario == "chaos" && rng.Float64() < 0.2 {
				totalDuration += 10 + rng.Float64()*15
			}
			if cfg.Scenario == "drift" && i > cfg.Count/2 {
				totalDuration *= 2.0
			}
		}

		creator := creatorPool[rng.Intn(len(creatorPool))]
		issue := tracker.Issue{
			Number:  i + 1,
			Creator: creator,
			Title:   fmt.Sprintf("Synthetic issue %d", i+1),
			URL:     fmt.Sprintf("https://example.com/issues/%d", i+1),
			State:   tracker.StateOpen,
			Created: &created,
			Updated: &created,
		}

		// 0-2 labels per issue
		for _, label := range labelPool {
			if rng.Float64() < 0.3 {
				issue.Labels = append(issue.Labels, label)
			}
			if len(issue.Labels) == 2 {
				break
			}
		}

		// ~80% of issues get picked up within the first 20% of their lifetime
		assigned := rng.Float64() < 0.8
		if assigned {
			tAssigned := created.Add(time.Duration(totalDuration*0.2*24) * time.Hour)
			if tAssigned.Before(cfg.Now) {
				assignee := creatorPool[rng.Intn(len(creatorPool))]
				issue.Assignees = []string{assignee}
				issue.Events = append(issue.Events, tracker.Event{
					Type:   "assigned",
					Date:   &tAssigned,
					Author: assignee,
				})
			}
		}

		tClosed := created.Add(time.Duration(totalDuration*24) * time.Hour)
		if assigned && tClosed.Before(cfg.Now) {
			issue.State = tracker.StateClosed
			issue.Updated = &tClosed
			issue.Events = append(issue.Events, tracker.Event{
				Type:   "closed",
				Date:   &tClosed,
				Author: creatorPool[rng.Intn(len(creatorPool))],
			})
		}

		issues = append(issues, issue)
	}

	return issues
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// Save writes the generated population as a snapshot file compatible with the
// analyze commands.
func Save(path string, issues []tracker.Issue) error {
	return github.SnapshotStore{}.Save(path, issues)
}
