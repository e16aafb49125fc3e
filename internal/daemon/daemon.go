package daemon

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/salmancert/atomic/internal/api"
	"github.com/salmancert/atomic/internal/app/habit"
	"github.com/salmancert/atomic/internal/domain"
	"github.com/salmancert/atomic/internal/health"
	"github.com/salmancert/atomic/internal/infra/sqlite"
)

// Daemon is the atomic runtime. It hosts the engine and plays the external
// collaborator roles the engine expects: the periodic background tick, the
// daily check-in scheduler, and the notification journal.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Engine *habit.Engine
	Server *api.Server
	Health *health.Checker

	cancel context.CancelFunc
}

// New creates and initializes a Daemon from the on-disk configuration.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dir := cfg.Storage.Dir
	if dir == "" {
		dir = atomicHome()
	}

	db, err := sqlite.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	policy := domain.NotificationPolicy{
		MaxPerDay:  cfg.Notifications.MaxPerDay,
		QuietStart: cfg.Notifications.QuietStart,
		QuietEnd:   cfg.Notifications.QuietEnd,
	}
	notifier := newJournalNotifier(db, policy)

	evaluator := habit.NewTriggerEvaluatorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
	engine := habit.NewEngine(notifier, evaluator)
	if err := applyConfig(engine, cfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply profile: %w", err)
	}

	srv := api.NewServer(engine, db)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	checker := health.NewChecker(db, dir)
	srv.SetHealth(checker)

	return &Daemon{
		Config: cfg,
		DB:     db,
		Engine: engine,
		Server: srv,
		Health: checker,
	}, nil
}

// applyConfig seeds the engine through the explicit setup calls. Each call
// is a total overwrite of its field.
func applyConfig(engine *habit.Engine, cfg Config) error {
	apps := make([]domain.AppID, 0, len(cfg.Profile.TargetApps))
	for _, a := range cfg.Profile.TargetApps {
		apps = append(apps, domain.AppID(a))
	}
	engine.SetTargetApps(apps)

	for app, minutes := range cfg.Profile.Limits {
		if err := engine.SetLimit(domain.AppID(app), minutes); err != nil {
			return fmt.Errorf("limit for %s: %w", app, err)
		}
	}

	engine.SetReplacementActivities(cfg.Profile.ReplacementActivities)
	engine.SetImplementationIntentions(cfg.Profile.ImplementationIntentions)
	engine.SetTriggers(cfg.TriggerSet())
	engine.SetInterventionCatalog(cfg.InterventionCatalog())
	engine.SetRewardCatalog(cfg.RewardCatalog())
	engine.SetMilestones(cfg.MilestoneTable())
	return nil
}

// Serve runs the daemon until the context is cancelled or a signal arrives.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	defer cancel()

	go d.Health.Run(ctx)
	go d.tickLoop(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: d.Server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] listening on %s", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	case <-ctx.Done():
	}

	log.Printf("[daemon] shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return d.DB.Close()
}

// Stop cancels a running Serve.
func (d *Daemon) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
}

// tickLoop is the periodic background tick. Every wall-clock minute it runs
// the time-trigger check once, and runs the daily check-in when the
// configured check-in time comes around.
func (d *Daemon) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(20 * time.Second)
	defer ticker.Stop()

	var lastMinute string
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			minute := now.Format("15:04")
			if minute == lastMinute {
				continue
			}
			lastMinute = minute

			if _, err := d.Engine.Tick(now); err != nil {
				log.Printf("[daemon] tick: %v", err)
			}

			if minute == d.Config.Checkin.At {
				d.runCheckin(domain.DayOf(now))
			}
		}
	}
}

// runCheckin drives the daily evaluation once per calendar day. The engine
// itself does not guard against repeat evaluation — that scheduling
// discipline lives here, backed by the journal.
func (d *Daemon) runCheckin(day domain.Day) {
	last, err := d.DB.GetState("last_checkin_day")
	if err != nil {
		log.Printf("[daemon] checkin state: %v", err)
		return
	}
	if last == string(day) {
		return // already evaluated today
	}

	result, err := d.Engine.CheckIn(day)
	if err != nil {
		log.Printf("[daemon] checkin: %v", err)
		return
	}

	d.JournalResult(result)
	if err := d.DB.SetState("last_checkin_day", string(day)); err != nil {
		log.Printf("[daemon] checkin state: %v", err)
	}
	log.Printf("[daemon] checkin %s: %d points, %d milestones, %d rewards",
		day, result.PointsEarned, len(result.Milestones), len(result.Rewards))
}

// JournalResult writes a daily result's milestone and reward events to the
// journal.
func (d *Daemon) JournalResult(result domain.DailyResult) {
	now := time.Now()
	for _, hit := range result.Milestones {
		event := sqlite.Event{
			ID:        uuid.NewString(),
			Kind:      sqlite.EventMilestone,
			App:       string(hit.App),
			Label:     hit.Label,
			Day:       string(result.Day),
			CreatedAt: now,
		}
		if err := d.DB.InsertEvent(event); err != nil {
			log.Printf("[daemon] journal milestone: %v", err)
		}
	}
	for _, reward := range result.Rewards {
		event := sqlite.Event{
			ID:        uuid.NewString(),
			Kind:      sqlite.EventReward,
			Label:     reward,
			Day:       string(result.Day),
			CreatedAt: now,
		}
		if err := d.DB.InsertEvent(event); err != nil {
			log.Printf("[daemon] journal reward: %v", err)
		}
	}
}
