package main

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"syscall"

	"focus-campus-bot/internal/config"
	"focus-campus-bot/internal/extractor"
	"focus-campus-bot/internal/fsm"
	"focus-campus-bot/internal/handlers"
	"focus-campus-bot/internal/logger"
	"focus-campus-bot/internal/messages"
	"focus-campus-bot/internal/scheduler"
	"focus-campus-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load() // TELEGRAM_BOT_TOKEN и остальное, если есть .env

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err)
	}
	log := logger.New(cfg.LogLevel)

	db, err := storage.Open(ctx, cfg.DBPath, log)
	if err != nil {
		log.Fatal("failed to open storage", "path", cfg.DBPath, "error", err)
	}
	defer db.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal("failed to create bot", "error", err)
	}
	bot.Debug = cfg.TelegramDebug
	log.Info("authorized", "account", bot.Self.UserName)

	clock := clockwork.NewRealClock()
	sender := messages.NewTelegram(bot)

	h := handlers.New(handlers.Deps{
		Sender:   sender,
		Users:    db.Users,
		Tasks:    db.Tasks,
		Sessions: db.Sessions,
		States:   fsm.NewStore(),
		Pending:  extractor.NewPending(clock, cfg.Deadlines.CandidateTTL),
		Clock:    clock,
		Log:      log,
		Window:   cfg.Deadlines.Window,
	})
	// pending focus timers are dropped on exit
	defer h.Stop()

	reminder := scheduler.NewReminder(scheduler.Deps{
		Users:     db.Users,
		Tasks:     db.Tasks,
		Marks:     db.Reminders,
		Sender:    sender,
		Clock:     clock,
		Log:       log,
		Lookahead: cfg.Reminder.Lookahead,
	})
	sched, err := scheduler.Start(reminder, cfg.Reminder.Interval, log)
	if err != nil {
		log.Fatal("failed to start scheduler", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	// ---------- updates ----------
	g.Go(func() error {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		return listen(gctx, bot.GetUpdatesChan(u), h.HandleMessage)
	})

	// ---------- shutdown ----------
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		bot.StopReceivingUpdates()
		if err := sched.Shutdown(); err != nil {
			log.Error("failed to stop scheduler", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("bot stopped", "error", err)
	}
}

// listen feeds updates to handle until ctx is done. A channel closed
// during shutdown is not an error.
func listen(ctx context.Context, updates tgbotapi.UpdatesChannel, handle func(context.Context, handlers.Inbound)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("updates channel closed")
			}
			if upd.Message == nil {
				continue
			}
			handle(ctx, inbound(upd.Message))
		}
	}
}

func inbound(m *tgbotapi.Message) handlers.Inbound {
	in := handlers.Inbound{UserID: m.Chat.ID, Text: m.Text}
	if m.IsCommand() {
		in.Command = strings.ToLower(m.Command())
	}
	return in
}
