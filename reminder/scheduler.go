package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"gacha-helper/model"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	"golang.org/x/time/rate"
)

// RouteKey is the custom-id route owned by the reminder feature.
const RouteKey = "remind"

// Messenger is the slice of discordgo.Session the scheduler needs for
// delivery. Kept narrow so tests can substitute a fake.
type Messenger interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type deliveryResult int

const (
	deliverOK deliveryResult = iota
	deliverRetry
	deliverSkip
)

// Scheduler polls the reminders table and delivers due notifications.
// One instance runs per process; overlapping poll cycles are prevented
// by an in-flight flag, and Wake forces an immediate re-poll.
type Scheduler struct {
	db      *sqlx.DB
	session Messenger
	cfg     model.ReminderConfig
	webhook string

	done     chan struct{}
	wake     chan struct{}
	wg       sync.WaitGroup
	inFlight atomic.Bool
	limiter  *rate.Limiter

	// now is swapped out by tests.
	now func() time.Time
}

// NewScheduler creates a reminder scheduler. Zero config fields fall
// back to the defaults described in the field comments of ReminderConfig.
func NewScheduler(db *sqlx.DB, session Messenger, cfg model.ReminderConfig, webhookURL string) *Scheduler {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.DrainDelayMs <= 0 {
		cfg.DrainDelayMs = 1500
	}
	if cfg.RetryDelayMs <= 0 {
		cfg.RetryDelayMs = 5000
	}
	if cfg.DefaultDelaySec <= 0 {
		cfg.DefaultDelaySec = 60
	}
	if cfg.MinDelaySec <= 0 {
		cfg.MinDelaySec = 2
	}
	if cfg.MaxDelaySec <= 0 {
		cfg.MaxDelaySec = 300
	}
	return &Scheduler{
		db:      db,
		session: session,
		cfg:     cfg,
		webhook: webhookURL,
		done:    make(chan struct{}),
		wake:    make(chan struct{}, 1),
		limiter: rate.NewLimiter(rate.Every(300*time.Millisecond), 5),
		now:     time.Now,
	}
}

// Start launches the poll loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop terminates the poll loop and waits for an in-flight cycle.
func (s *Scheduler) Stop() {
	close(s.done)
	s.wg.Wait()
}

// Wake forces an immediate poll so a freshly snoozed or created reminder
// is picked up without waiting for the armed timer.
func (s *Scheduler) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()
	delay := s.defaultDelay()
	for {
		select {
		case <-time.After(delay):
			delay = s.poll()
		case <-s.wake:
			delay = s.poll()
		case <-s.done:
			return
		}
	}
}

// poll runs one cycle and returns the delay until the next one. Every
// due row it touches is either deleted (delivered) or pushed to a
// strictly later due time; the loop never dies on an error.
func (s *Scheduler) poll() (next time.Duration) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return s.defaultDelay()
	}
	defer s.inFlight.Store(false)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in reminder poll cycle: %v", r)
			utils.LogError(s.webhook, "Reminder", "Poll", fmt.Sprintf("panic: %v", r))
			next = s.defaultDelay()
		}
	}()

	now := s.now()
	due, err := database.GetDueReminders(s.db, now.UnixMilli(), s.cfg.BatchSize)
	if err != nil {
		log.Printf("Failed to fetch due reminders: %v", err)
		return s.defaultDelay()
	}

	failed := 0
	for _, r := range due {
		switch s.deliver(r, now) {
		case deliverRetry:
			failed++
		default:
		}
	}

	if len(due) > 0 {
		if failed > 0 {
			// Retry soon without hammering the API on every tick.
			return time.Duration(s.cfg.RetryDelayMs) * time.Millisecond
		}
		// Drain a possible backlog quickly.
		return time.Duration(s.cfg.DrainDelayMs) * time.Millisecond
	}

	nextDue, ok, err := database.NextDueTime(s.db)
	if err != nil {
		log.Printf("Failed to compute next reminder due time: %v", err)
		return s.defaultDelay()
	}
	if !ok {
		return s.defaultDelay()
	}
	return s.clampDelay(time.Duration(nextDue-now.UnixMilli()) * time.Millisecond)
}

func (s *Scheduler) deliver(r model.Reminder, now time.Time) deliveryResult {
	// Capture the payload under a one-shot token before the row goes
	// away, so a snooze press can resurrect it.
	token := utils.NewStateToken(r.UserID)
	payload := model.SnoozePayload{
		Version:     1,
		Type:        r.Type,
		UserID:      r.UserID,
		GuildID:     r.GuildID,
		ChannelID:   r.ChannelID,
		Info:        r.Info(),
		DeliverAsDM: r.DeliverAsDM,
	}
	if data, err := json.Marshal(payload); err == nil {
		if err := database.SaveState(s.db, token, model.StateTypeSnooze, string(data), false); err != nil {
			log.Printf("Failed to persist snooze payload for %s/%s: %v", r.Type, r.UserID, err)
		}
	}

	channelID := r.ChannelID
	if r.DeliverAsDM {
		channel, err := s.session.UserChannelCreate(r.UserID)
		if err != nil {
			log.Printf("Failed to open DM channel for user %s: %v", r.UserID, err)
			return s.pushBack(r, now, deliverRetry)
		}
		channelID = channel.ID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.limiter.Wait(ctx); err != nil {
		log.Printf("Rate limiter wait aborted for reminder %s/%s: %v", r.Type, r.UserID, err)
		return s.pushBack(r, now, deliverRetry)
	}

	_, err := s.session.ChannelMessageSendComplex(channelID, s.buildNotification(r, token))
	if err != nil {
		if r.DeliverAsDM && isDMClosed(err) {
			// The user has DMs closed. Keep the reminder queued at the
			// normal cadence instead of burning a retry every cycle.
			log.Printf("User %s has DMs closed, reminder %s stays queued", r.UserID, r.Type)
			utils.LogWarn(s.webhook, "Reminder", "Deliver",
				fmt.Sprintf("User %s has DMs closed, %s stays queued.", r.UserID, r.Type))
			return s.pushBack(r, now, deliverSkip)
		}
		log.Printf("Failed to deliver reminder %s to user %s: %v", r.Type, r.UserID, err)
		return s.pushBack(r, now, deliverRetry)
	}

	if err := database.DeleteReminder(s.db, r.Type, r.UserID); err != nil {
		log.Printf("Failed to delete delivered reminder %s/%s: %v", r.Type, r.UserID, err)
		return deliverRetry
	}
	return deliverOK
}

// pushBack moves the reminder one default poll interval into the future
// and returns the given result.
func (s *Scheduler) pushBack(r model.Reminder, now time.Time, result deliveryResult) deliveryResult {
	newDue := now.Add(s.defaultRetryBackoff()).UnixMilli()
	if err := database.PushBackReminder(s.db, r.Type, r.UserID, newDue); err != nil {
		log.Printf("Failed to push back reminder %s/%s: %v", r.Type, r.UserID, err)
	}
	return result
}

func (s *Scheduler) buildNotification(r model.Reminder, token string) *discordgo.MessageSend {
	info := r.Info()
	content := fmt.Sprintf("<@%s> ⏰ **%s**", r.UserID, r.Type)
	if info.Information != "" {
		content += "\n" + info.Information
	}
	if info.Command != "" {
		content += fmt.Sprintf("\nRun: `%s`", info.Command)
	}

	return &discordgo.MessageSend{
		Content: content,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Dismiss",
						Style:    discordgo.SecondaryButton,
						CustomID: utils.ComponentID{Route: RouteKey, Action: "dismiss", Token: token, Extra: r.UserID}.String(),
					},
					discordgo.Button{
						Label:    "Snooze 5 min",
						Style:    discordgo.PrimaryButton,
						CustomID: utils.ComponentID{Route: RouteKey, Action: "snooze", Token: token, Extra: r.UserID}.String(),
					},
				},
			},
		},
	}
}

func (s *Scheduler) defaultDelay() time.Duration {
	return time.Duration(s.cfg.DefaultDelaySec) * time.Second
}

func (s *Scheduler) defaultRetryBackoff() time.Duration {
	return time.Duration(s.cfg.DefaultDelaySec) * time.Second
}

func (s *Scheduler) clampDelay(d time.Duration) time.Duration {
	min := time.Duration(s.cfg.MinDelaySec) * time.Second
	max := time.Duration(s.cfg.MaxDelaySec) * time.Second
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}

func isDMClosed(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == discordgo.ErrCodeCannotSendMessagesToThisUser
	}
	return false
}
