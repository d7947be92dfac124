package runtime

import (
	"time"

	"go.uber.org/zap"

	"discoBot/internal/domain"
	"discoBot/internal/usecase/commands"
	"discoBot/internal/usecase/moderation"
	"discoBot/internal/usecase/products"
)

type commandDeps struct {
	prefix     string
	moderation *moderation.Service
	catalog    *products.Catalog
	history    domain.MessageHistory
	poster     commands.TransientPoster
	scheduler  *moderation.Scheduler
	sports     domain.SportsDataService
	season     int
	timezone   string
	logger     *zap.Logger
}

// registerCommands installs the builtin command set and returns the
// calculator so it can also serve the unprefixed shortcut.
func registerCommands(router *commands.Router, d commandDeps) *commands.CalculateCommand {
	calc := commands.NewCalculateCommand(d.prefix, d.catalog)

	router.Register(commands.NewPingCommand())
	router.Register(commands.NewHelpCommand(d.prefix, d.catalog))
	router.Register(calc)
	router.Register(commands.NewPurgeCommand(d.history, d.poster, d.scheduler, d.logger))

	router.Register(commands.NewAddBanCommand(d.prefix, d.moderation))
	router.Register(commands.NewRemoveBanCommand(d.prefix, d.moderation))
	router.Register(commands.NewListBanCommand(d.moderation))
	router.Register(commands.NewClearWarningsCommand(d.prefix, d.moderation))

	opts := commands.SportsOptions{Prefix: d.prefix, Season: d.season}
	if d.timezone != "" {
		if loc, err := time.LoadLocation(d.timezone); err == nil {
			opts.Location = loc
		} else if d.logger != nil {
			d.logger.Warn("unknown sports timezone, using Europe/London", zap.String("timezone", d.timezone), zap.Error(err))
		}
	}
	for _, cmd := range commands.NewSportsCommands(d.sports, d.poster, opts, d.logger) {
		router.Register(cmd)
	}

	return calc
}
