package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/models"
	"taxidispatch/pkg/normalizer"
)

// handleHistory serves /historial [driverId] [desde] [hasta] and the menu
// button, which shows the most recent entries across all drivers.
func (b *Bot) handleHistory(c tele.Context) error {
	filter, ok := historyFilter(c.Args())
	if !ok {
		return c.Send(messages["usage_hist"])
	}

	ctx, cancel := b.requestCtx(c)
	defer cancel()

	entries, err := b.svc.History().History(ctx, filter)
	if err != nil {
		return c.Send(apperr.UserMessage(err))
	}
	if len(entries) == 0 {
		return c.Send(messages["no_history"])
	}
	return c.Send(historyText(entries), tele.ModeHTML)
}

func historyFilter(args []string) (models.HistoryFilter, bool) {
	var f models.HistoryFilter
	if len(args) == 0 {
		return f, true
	}
	id, ok := argID(args, 0)
	if !ok || len(args) > 3 {
		return f, false
	}
	f.DriverID = &id
	bounds := []**time.Time{&f.From, &f.To}
	for i, arg := range args[1:] {
		t, err := normalizer.ParseDate(arg)
		if err != nil {
			return f, false
		}
		*bounds[i] = &t
	}
	return f, true
}

func historyText(entries []*models.HistoryEntry) string {
	var sb strings.Builder
	sb.WriteString("<b>📜 Historial</b>\n")
	for i, e := range entries {
		if i == listLimit {
			fmt.Fprintf(&sb, "\n… y %d más", len(entries)-listLimit)
			break
		}
		fmt.Fprintf(&sb, "\n%s %s <b>%s</b> %s ➡️ %s\n   %s · %s · %s\n",
			kindIcon(e.Kind), e.Date.Format("02/01/2006"), escape(e.Time),
			escape(e.Origin), escape(e.Destination),
			money(e.Price), escape(e.DriverName), escape(e.ClientName))
	}
	return sb.String()
}

func (b *Bot) handleService(c tele.Context) error {
	return b.sendRecord(c, models.KindService, "servicio")
}

func (b *Bot) handleReservation(c tele.Context) error {
	return b.sendRecord(c, models.KindReservation, "reserva")
}

func (b *Bot) sendRecord(c tele.Context, kind models.Kind, command string) error {
	id, ok := argID(c.Args(), 0)
	if !ok {
		return c.Send(usage("usage_record", command))
	}

	ctx, cancel := b.requestCtx(c)
	defer cancel()

	rec, err := b.svc.Records(kind).Get(ctx, id)
	if err != nil {
		return c.Send(apperr.UserMessage(err))
	}
	return c.Send(recordText(rec), tele.ModeHTML)
}

func recordText(r *models.Record) string {
	driver, client := "N/A", "N/A"
	if r.Driver != nil {
		driver = r.Driver.Name
	}
	if r.Client != nil {
		client = r.Client.Name + " · " + r.Client.Phone
	}
	return fmt.Sprintf("%s <b>#%d</b> %s %s\n📍 %s ➡️ %s\n💰 %s (+10%%: %s)\n👥 %d\n🚖 %s\n👤 %s",
		kindIcon(r.Kind), r.ID, r.Date.Format("02/01/2006"), escape(r.Time),
		escape(r.Origin), escape(r.Destination),
		money(r.Price), money(r.Surcharge), r.Passengers,
		escape(driver), escape(client))
}

func (b *Bot) handleClients(c tele.Context) error {
	ctx, cancel := b.requestCtx(c)
	defer cancel()

	clients, err := b.svc.Client().List(ctx)
	if err != nil {
		return c.Send(apperr.UserMessage(err))
	}
	if len(clients) == 0 {
		return c.Send(messages["no_clients"])
	}

	var sb strings.Builder
	sb.WriteString("<b>👥 Clientes</b>\n\n")
	for i, cl := range clients {
		if i == listLimit {
			fmt.Fprintf(&sb, "\n… y %d más", len(clients)-listLimit)
			break
		}
		fmt.Fprintf(&sb, "#%d %s · %s · %d servicios, %d reservas\n",
			cl.ID, escape(cl.Name), escape(cl.Phone), cl.ServiceCount, cl.ReservationCount)
	}
	return c.Send(sb.String(), tele.ModeHTML)
}

func kindIcon(k models.Kind) string {
	if k == models.KindReservation {
		return "📅"
	}
	return "🚕"
}

func money(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}

func escape(s string) string {
	return html.EscapeString(s)
}
