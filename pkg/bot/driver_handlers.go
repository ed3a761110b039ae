package bot

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/models"
)

func (b *Bot) handleDebts(c tele.Context) error {
	ctx, cancel := b.requestCtx(c)
	defer cancel()

	drivers, err := b.svc.Ledger().WithDebt(ctx)
	if err != nil {
		return c.Send(apperr.UserMessage(err))
	}
	if len(drivers) == 0 {
		return c.Send(messages["no_debts"])
	}

	for _, d := range drivers {
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(menu.Data("💸 Saldar", settleUniq, strconv.FormatInt(d.ID, 10))))
		if err := c.Send(driverText(d), menu, tele.ModeHTML); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) handleNoDebt(c tele.Context) error {
	ctx, cancel := b.requestCtx(c)
	defer cancel()

	drivers, err := b.svc.Ledger().WithoutDebt(ctx)
	if err != nil {
		return c.Send(apperr.UserMessage(err))
	}
	if len(drivers) == 0 {
		return c.Send(messages["no_drivers"])
	}

	var sb strings.Builder
	sb.WriteString("<b>✅ Conductores sin deuda</b>\n\n")
	for _, d := range drivers {
		fmt.Fprintf(&sb, "#%d %s · %s\n", d.ID, escape(d.Name), escape(d.Phone))
	}
	return c.Send(sb.String(), tele.ModeHTML)
}

func (b *Bot) handleSettleCommand(c tele.Context) error {
	id, ok := argID(c.Args(), 0)
	if !ok {
		return c.Send(messages["usage_settle"])
	}
	text, _ := b.settle(c, id)
	return c.Send(text)
}

func (b *Bot) handleSettleCallback(c tele.Context) error {
	id, err := strconv.ParseInt(c.Data(), 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Conductor no válido", ShowAlert: true})
	}
	text, ok := b.settle(c, id)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	if err := c.Respond(&tele.CallbackResponse{Text: "✅"}); err != nil {
		return err
	}
	return c.Send(text)
}

// settle reports the outcome as staff-facing text; ok is false when nothing
// was written.
func (b *Bot) settle(c tele.Context, driverID int64) (string, bool) {
	ctx, cancel := b.requestCtx(c)
	defer cancel()

	d, err := b.svc.Ledger().SettleDebt(ctx, driverID)
	if err != nil {
		if !apperr.IsUserError(err) {
			b.log.Error("settle from telegram failed", logger.Int64("driver_id", driverID), logger.Error(err))
		}
		return apperr.UserMessage(err), false
	}
	return fmt.Sprintf(messages["settled"], d.Name), true
}

func driverText(d *models.Driver) string {
	debt := "?"
	if d.Debt != nil {
		debt = money(*d.Debt)
	}
	return fmt.Sprintf("🚖 <b>%s</b> (#%d)\n📞 %s\n💸 Deuda: %s", escape(d.Name), d.ID, escape(d.Phone), debt)
}
