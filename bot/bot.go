package bot

import (
	"sync"
	"sync/atomic"

	"gacha-helper/model"
	"gacha-helper/reminder"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

type Bot struct {
	Session            *discordgo.Session
	DB                 *sqlx.DB
	Scheduler          *reminder.Scheduler
	RegisteredCommands []*discordgo.ApplicationCommand
	config             atomic.Value // *model.Config
	done               chan struct{}
	wg                 sync.WaitGroup
}

func New(cfg *model.Config, db *sqlx.DB) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	b := &Bot{
		Session: dg,
		DB:      db,
		done:    make(chan struct{}),
	}
	b.config.Store(cfg)
	b.Scheduler = reminder.NewScheduler(db, dg, cfg.Reminder, cfg.LogWebhookURL)
	return b, nil
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetDB() *sqlx.DB {
	return b.DB
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetScheduler() *reminder.Scheduler {
	return b.Scheduler
}

func (b *Bot) Close() {
	close(b.done)
	b.Scheduler.Stop()
	b.wg.Wait()
	b.Session.Close()
}
