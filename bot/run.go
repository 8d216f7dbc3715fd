package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gacha-helper/commands"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
)

// ephemeralStateMaxAge bounds how long consumed snooze payloads and
// abandoned panel states linger before the sweep reclaims them.
const ephemeralStateMaxAge = 24 * time.Hour

func (b *Bot) Run() {
	if err := b.Session.Open(); err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	b.registerCommands()

	b.Scheduler.Start()

	b.wg.Add(1)
	go b.startStateCleanup()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	utils.LogInfo(b.GetConfig().LogWebhookURL, "System", "Startup", "Bot has started successfully.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}

func (b *Bot) registerCommands() {
	cfg := b.GetConfig()
	cmds := commands.GenerateCommands()
	b.RegisteredCommands = make([]*discordgo.ApplicationCommand, 0, len(cmds))

	guildIDs := cfg.GuildIDs
	if len(guildIDs) == 0 {
		guildIDs = []string{""} // global registration
	}
	for _, guildID := range guildIDs {
		registered, err := b.Session.ApplicationCommandBulkOverwrite(cfg.AppID, guildID, cmds)
		if err != nil {
			log.Printf("Cannot register commands for guild %q: %v", guildID, err)
			continue
		}
		b.RegisteredCommands = append(b.RegisteredCommands, registered...)
	}
	log.Printf("Registered %d commands", len(b.RegisteredCommands))
}

func (b *Bot) startStateCleanup() {
	defer b.wg.Done()
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := database.CleanupEphemeralStates(b.DB, ephemeralStateMaxAge)
			if err != nil {
				log.Printf("Ephemeral state cleanup failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Swept %d ephemeral state rows", n)
			}
		case <-b.done:
			return
		}
	}
}
