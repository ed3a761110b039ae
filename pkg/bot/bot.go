// Package bot is a Telegram console for dispatch staff: debt follow-up,
// settlement and trip history lookups over the same services as the HTTP API.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v3"

	"taxidispatch/config"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/reqctx"
	"taxidispatch/service"
)

const (
	btnDebts    = "💸 Deudas"
	btnNoDebt   = "✅ Sin deuda"
	btnHistory  = "📜 Historial"
	btnClients  = "👥 Clientes"
	settleUniq  = "settle"
	listLimit   = 20
	callTimeout = 15 * time.Second
)

type Bot struct {
	Bot   *tele.Bot
	svc   service.IServiceManager
	log   logger.ILogger
	staff map[int64]bool
}

func New(cfg *config.Config, svc service.IServiceManager, log logger.ILogger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.Error("telegram handler failed", logger.Error(err))
		},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	bot := newBot(svc, log, cfg.StaffIDs)
	bot.Bot = b
	if len(bot.staff) == 0 {
		log.Warning("STAFF_IDS is empty; the bot will refuse every chat")
	}
	bot.registerHandlers()
	return bot, nil
}

func newBot(svc service.IServiceManager, log logger.ILogger, staffIDs []int64) *Bot {
	staff := make(map[int64]bool, len(staffIDs))
	for _, id := range staffIDs {
		staff[id] = true
	}
	return &Bot{svc: svc, log: log, staff: staff}
}

func (b *Bot) Start() {
	b.log.Info("🤖 Staff bot started", logger.String("username", b.Bot.Me.Username))
	b.Bot.Start()
}

func (b *Bot) Stop() {
	b.Bot.Stop()
}

var messages = map[string]string{
	"welcome":      "👋 Consola de despacho. Elige una opción:",
	"no_entry":     "🚫 Este bot es solo para el personal de despacho.",
	"no_debts":     "🎉 Ningún conductor tiene deuda pendiente.",
	"no_drivers":   "📭 No hay conductores sin deuda.",
	"no_history":   "📭 No hay registros para ese filtro.",
	"no_clients":   "📭 No hay clientes registrados.",
	"settled":      "✅ Deuda saldada: %s ya no debe nada.",
	"usage_settle": "Uso: /saldar <idConductor>",
	"usage_record": "Uso: /%s <id>",
	"usage_hist":   "Uso: /historial [idConductor] [desde AAAA-MM-DD] [hasta AAAA-MM-DD]",
}

func (b *Bot) registerHandlers() {
	b.Bot.Use(b.staffOnly)

	b.Bot.Handle("/start", b.handleStart)
	b.Bot.Handle(btnDebts, b.handleDebts)
	b.Bot.Handle(btnNoDebt, b.handleNoDebt)
	b.Bot.Handle(btnHistory, b.handleHistory)
	b.Bot.Handle(btnClients, b.handleClients)

	b.Bot.Handle("/deudas", b.handleDebts)
	b.Bot.Handle("/saldar", b.handleSettleCommand)
	b.Bot.Handle("/historial", b.handleHistory)
	b.Bot.Handle("/servicio", b.handleService)
	b.Bot.Handle("/reserva", b.handleReservation)
	b.Bot.Handle("/clientes", b.handleClients)

	settle := (&tele.ReplyMarkup{}).Data("", settleUniq)
	b.Bot.Handle(&settle, b.handleSettleCallback)
}

func (b *Bot) staffOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil || !b.staff[c.Sender().ID] {
			return c.Send(messages["no_entry"])
		}
		return next(c)
	}
}

func (b *Bot) handleStart(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnDebts), menu.Text(btnNoDebt)),
		menu.Row(menu.Text(btnHistory), menu.Text(btnClients)),
	)
	return c.Send(messages["welcome"], menu)
}

// requestCtx tags the call with a request id and the staff member's chat id.
func (b *Bot) requestCtx(c tele.Context) (context.Context, context.CancelFunc) {
	req := reqctx.Request{ID: reqctx.NewID()}
	if c.Sender() != nil {
		req.Actor = "telegram:" + strconv.FormatInt(c.Sender().ID, 10)
	}
	return context.WithTimeout(reqctx.With(context.Background(), req), callTimeout)
}

func argID(args []string, i int) (int64, bool) {
	if len(args) <= i {
		return 0, false
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	return id, err == nil && id > 0
}

func usage(key string, args ...interface{}) string {
	return fmt.Sprintf(messages[key], args...)
}
