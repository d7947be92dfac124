package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"discoBot/internal/app/events"
	"discoBot/internal/app/presence"
	"discoBot/internal/domain"
	"discoBot/internal/infrastructure/config"
	"discoBot/internal/infrastructure/logger"
	"discoBot/internal/infrastructure/platform/sportsapi"
	discordadapter "discoBot/internal/interface/adapters/discord"
	ws "discoBot/internal/interface/api/ws"
	"discoBot/internal/interface/outs"
	"discoBot/internal/usecase/commands"
	"discoBot/internal/usecase/handle_message"
	"discoBot/internal/usecase/moderation"
	"discoBot/internal/usecase/products"
)

type Options struct {
	EnvFile    string
	ConfigPath string
}

type Runtime struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	cfg        *config.Config
	logger     *zap.Logger
	bus        *events.Bus
	registry   *prometheus.Registry
	moderation *moderation.Service
	scheduler  *moderation.Scheduler
	discord    *discordadapter.Adapter
	wsServer   *ws.Server
	dispatcher func(context.Context, domain.Message) error

	stopOnce sync.Once
}

// Start loads configuration, wires every component and launches the
// long-running goroutines. Call Wait or Stop afterwards.
func Start(ctx context.Context, opts Options) (*Runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(config.Options{EnvFile: opts.EnvFile, ConfigPath: opts.ConfigPath})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	discord, err := discordadapter.NewAdapter(discordadapter.Config{Token: cfg.DiscordToken}, log)
	if err != nil {
		return nil, err
	}
	guild := discord.Guild()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	bus := events.NewBus(log)

	modSvc := moderation.NewService(cfg.ModerationSettings(), guild, log)
	modSvc.SetMetrics(moderation.NewMetrics(registry))
	modSvc.RegisterHook(func(_ context.Context, rec domain.ViolationRecord) {
		bus.Publish(events.TopicModerationViolation, events.NewViolationDTO(rec))
	})

	catalog := products.NewCatalog(cfg.Bot.Products)
	scheduler := moderation.NewScheduler()

	sports := sportsapi.NewClient(sportsapi.Config{
		BaseURL:           cfg.Bot.Sports.BaseURL,
		APIKey:            cfg.APIFootballKey,
		LeagueID:          cfg.Bot.Sports.LeagueID,
		Season:            cfg.Bot.Sports.Season,
		RequestsPerMinute: cfg.Bot.Sports.RequestsPerMinute,
		RetryMax:          2,
	}, log)
	if cfg.APIFootballKey == "" {
		log.Warn("API_FOOTBALL_KEY not set, sports commands will fail")
	}

	wsServer := ws.NewServer(ws.Config{
		Addr:    cfg.WSAddr,
		Metrics: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:  log,
	})

	multiOut := outs.NewMultiSender()
	multiOut.Register(domain.PlatformDiscord, discord)
	multiOut.Register(domain.PlatformConsole, wsServer)

	router := commands.NewRouter(cfg.Prefix, log)
	calc := registerCommands(router, commandDeps{
		prefix:     cfg.Prefix,
		moderation: modSvc,
		catalog:    catalog,
		history:    guild,
		poster:     guild,
		scheduler:  scheduler,
		sports:     sports,
		season:     cfg.Bot.Sports.Season,
		timezone:   cfg.Bot.Sports.Timezone,
		logger:     log,
	})

	uc := handle_message.NewInteractor(multiOut, router, log)
	uc.SetFilter(modSvc)
	uc.SetShortcut(calc)

	dispatch := func(ctx context.Context, msg domain.Message) error {
		bus.Publish(events.TopicChatMessage, events.NewChatMessageDTO(msg))
		if err := uc.Handle(ctx, msg); err != nil {
			bus.Publish(events.TopicAppError, events.NewAppErrorDTO(string(msg.Platform), err))
			return err
		}
		return nil
	}
	discord.SetHandler(dispatch)
	wsServer.SetHandler(dispatch)

	rotator := presence.NewRotator(guild, cfg.Bot.Activities, cfg.Bot.ActivityInterval, log)
	rotator.OnChange(func(activity string) {
		bus.Publish(events.TopicPresence, events.PresenceDTO{
			Activity:  activity,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})

	runtimeCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(runtimeCtx)

	run := &Runtime{
		ctx:        groupCtx,
		cancel:     cancel,
		group:      group,
		cfg:        cfg,
		logger:     log,
		bus:        bus,
		registry:   registry,
		moderation: modSvc,
		scheduler:  scheduler,
		discord:    discord,
		wsServer:   wsServer,
		dispatcher: dispatch,
	}

	group.Go(func() error {
		return ignoreCanceled(discord.Start(groupCtx))
	})
	group.Go(func() error {
		return wsServer.Start(groupCtx)
	})
	group.Go(func() error {
		return rotator.Run(groupCtx)
	})
	group.Go(func() error {
		forwardEvents(groupCtx, bus, wsServer, log)
		return nil
	})

	log.Info("bot started",
		zap.String("prefix", cfg.Prefix),
		zap.Bool("moderation", modSvc.Enabled()),
		zap.Int("banned_terms", modSvc.Terms().Len()),
	)
	return run, nil
}

// Wait blocks until a component fails or the context is cancelled.
func (r *Runtime) Wait() error {
	if r == nil {
		return nil
	}
	return r.group.Wait()
}

// Stop cancels every component, waits for them and cancels pending notice
// deletions.
func (r *Runtime) Stop() error {
	if r == nil {
		return nil
	}
	var err error
	r.stopOnce.Do(func() {
		r.cancel()
		err = r.group.Wait()
		r.moderation.Close()
		r.scheduler.Close()
		r.bus.Close()
		r.logger.Info("bot stopped")
		_ = r.logger.Sync()
	})
	return err
}

// Done is closed when the parent context is cancelled or a component fails.
func (r *Runtime) Done() <-chan struct{} {
	return r.ctx.Done()
}

func (r *Runtime) Bus() *events.Bus {
	if r == nil {
		return nil
	}
	return r.bus
}

func (r *Runtime) Config() *config.Config {
	if r == nil {
		return nil
	}
	return r.cfg
}

func (r *Runtime) Moderation() *moderation.Service {
	if r == nil {
		return nil
	}
	return r.moderation
}

func (r *Runtime) DispatchMessage(ctx context.Context, msg domain.Message) error {
	if r == nil || r.dispatcher == nil {
		return fmt.Errorf("dispatcher unavailable")
	}
	if ctx == nil {
		ctx = r.ctx
	}
	return r.dispatcher(ctx, msg)
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
