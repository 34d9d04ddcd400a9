package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"restaurant-ops/config"
	"restaurant-ops/models"
	"restaurant-ops/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is the staff operations console: open orders, the floor plan, and
// today's reservations, each with next-action buttons wired straight into
// the service layer.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config
	log *slog.Logger
}

func New(cfg *config.Config, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, cfg: cfg, log: log}, nil
}

func (b *Bot) Start() {
	_ = b.setBotCommands()
	if b.cfg.Telegram.AdminChatID != 0 {
		b.send(b.cfg.Telegram.AdminChatID, "Operations console online.")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil {
			continue
		}
		msg := update.Message
		text := strings.TrimSpace(msg.Text)

		switch {
		case text == "/start":
			b.handleStart(msg.Chat.ID)
		case text == "/orders":
			b.handleOrders(msg.Chat.ID)
		case text == "/tables":
			b.handleTables(msg.Chat.ID)
		case text == "/reservations":
			b.handleReservations(msg.Chat.ID)
		case text == "/menu":
			b.handleMenu(msg.Chat.ID)
		case text == "/sales":
			b.handleSales(msg.Chat.ID)
		}
	}
}

func (b *Bot) setBotCommands() error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "orders", Description: "Open orders"},
		tgbotapi.BotCommand{Command: "tables", Description: "Floor plan"},
		tgbotapi.BotCommand{Command: "reservations", Description: "Today's reservations"},
		tgbotapi.BotCommand{Command: "menu", Description: "Menu items"},
		tgbotapi.BotCommand{Command: "sales", Description: "Today's sales"},
	)
	_, err := b.api.Request(commands)
	return err
}

func (b *Bot) handleStart(chatID int64) {
	b.send(chatID, "Restaurant operations console.\n\n"+
		"/orders — open orders\n"+
		"/tables — floor plan\n"+
		"/reservations — today's reservations\n"+
		"/menu — menu items\n"+
		"/sales — today's sales")
}

func (b *Bot) handleOrders(chatID int64) {
	ctx := context.Background()
	open := []string{models.OrderPending, models.OrderPreparing, models.OrderReady}
	orders, err := services.ListOrders(ctx, open, "")
	if err != nil {
		b.fail(chatID, "list orders", err)
		return
	}
	if len(orders) == 0 {
		b.send(chatID, "No open orders.")
		return
	}
	for i := range orders {
		o := &orders[i]
		lines, err := services.GetOrderLines(ctx, o.ID)
		if err != nil {
			b.fail(chatID, "get order lines", err)
			return
		}
		b.sendCard(chatID, BuildOrderCard(o, lines))
	}
}

func (b *Bot) handleTables(chatID int64) {
	tables, err := services.ListTables(context.Background(), "")
	if err != nil {
		b.fail(chatID, "list tables", err)
		return
	}
	if len(tables) == 0 {
		b.send(chatID, "No tables configured.")
		return
	}
	for _, t := range tables {
		b.sendCard(chatID, BuildTableCard(t))
	}
}

func (b *Bot) handleReservations(chatID int64) {
	today := time.Now().Format("2006-01-02")
	reservations, err := services.ListReservations(context.Background(), today, "")
	if err != nil {
		b.fail(chatID, "list reservations", err)
		return
	}
	if len(reservations) == 0 {
		b.send(chatID, "No reservations for today.")
		return
	}
	for _, r := range reservations {
		b.sendCard(chatID, BuildReservationCard(r))
	}
}

func (b *Bot) handleMenu(chatID int64) {
	items, err := services.ListMenuItems(context.Background(), nil)
	if err != nil {
		b.fail(chatID, "list menu", err)
		return
	}
	if len(items) == 0 {
		b.send(chatID, "The menu is empty.")
		return
	}
	var sb strings.Builder
	category := ""
	for _, it := range items {
		if it.CategoryName != category {
			if category != "" {
				sb.WriteString("\n")
			}
			category = it.CategoryName
			sb.WriteString(category + "\n")
		}
		sb.WriteString("  " + it.Name + " — " + strconv.FormatFloat(it.Price, 'f', 2, 64) + "\n")
	}
	b.send(chatID, strings.TrimRight(sb.String(), "\n"))
}

func (b *Bot) handleSales(chatID int64) {
	ctx := context.Background()
	today := time.Now().Format("2006-01-02")
	days, err := services.SalesByDate(ctx, today, today)
	if err != nil {
		b.fail(chatID, "sales by date", err)
		return
	}
	top, err := services.TopMenuItems(ctx, today, today, 5)
	if err != nil {
		b.fail(chatID, "top items", err)
		return
	}
	b.send(chatID, BuildSalesSummary(days, top))
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	data := cq.Data

	b.api.Request(tgbotapi.NewCallback(cq.ID, ""))

	kind, id, state, ok := parseStateCallback(data)
	if !ok {
		return
	}

	ctx := context.Background()
	changedBy := cq.From.UserName
	if changedBy == "" {
		changedBy = strconv.FormatInt(cq.From.ID, 10)
	}

	var err error
	switch kind {
	case "order_state":
		err = services.SetOrderState(ctx, id, state, changedBy)
	case "table_state":
		err = services.SetTableState(ctx, id, state)
	case "res_state":
		err = services.SetReservationState(ctx, id, state)
	default:
		return
	}
	if err != nil {
		b.fail(chatID, kind, err)
		return
	}
	b.refreshCard(cq, kind, id)
}

// parseStateCallback splits "<kind>:<id>:<state>" callback data.
func parseStateCallback(data string) (kind string, id int64, state string, ok bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 {
		return "", 0, "", false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, "", false
	}
	return parts[0], id, parts[2], true
}

// refreshCard re-renders the card the button lived on so the staff see the
// new state in place.
func (b *Bot) refreshCard(cq *tgbotapi.CallbackQuery, kind string, id int64) {
	ctx := context.Background()
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID

	var card Card
	switch kind {
	case "order_state":
		o, err := services.GetOrder(ctx, id)
		if err != nil {
			b.fail(chatID, "get order", err)
			return
		}
		lines, err := services.GetOrderLines(ctx, id)
		if err != nil {
			b.fail(chatID, "get order lines", err)
			return
		}
		card = BuildOrderCard(o, lines)
	case "table_state":
		t, err := services.GetTable(ctx, id)
		if err != nil {
			b.fail(chatID, "get table", err)
			return
		}
		card = BuildTableCard(*t)
	case "res_state":
		r, err := services.GetReservation(ctx, id)
		if err != nil {
			b.fail(chatID, "get reservation", err)
			return
		}
		card = BuildReservationCard(*r)
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, card.Text, inlineKeyboard(card.Buttons))
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("edit card", "error", err)
	}
}

func inlineKeyboard(buttons [][]Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		var r []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			r = append(r, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
		}
		rows = append(rows, r)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func (b *Bot) sendCard(chatID int64, card Card) {
	msg := tgbotapi.NewMessage(chatID, card.Text)
	if len(card.Buttons) > 0 {
		msg.ReplyMarkup = inlineKeyboard(card.Buttons)
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send card", "error", err)
	}
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("send message", "error", err)
	}
}

// fail reports a service error back to the chat; typed errors read well
// as-is, everything else gets a generic notice.
func (b *Bot) fail(chatID int64, action string, err error) {
	b.log.Error(action, "error", err)
	switch err.(type) {
	case services.ValidationError, services.NotFoundError, services.InvalidTransitionError:
		b.send(chatID, "⚠️ "+err.Error())
	default:
		b.send(chatID, "Something went wrong, try again.")
	}
}
