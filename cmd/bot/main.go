// cmd/bot/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"expense-tracker/internal/config"
	"expense-tracker/internal/domain"
	"expense-tracker/internal/stats"
	"expense-tracker/internal/storage"
	"expense-tracker/internal/storage/postgres"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/text/encoding/charmap"
)

const helpText = "*Expense tracker*\n\n" +
	"Commands:\n" +
	"`/add Coffee 4.50 Food` — record an expense for today\n" +
	"`/month` — spending summary for the current month\n" +
	"`/budgets` — budget consumption for the current month\n" +
	"`/help` — this message"

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN not set")
		os.Exit(1)
	}

	cfg := config.MustLoad()
	pool, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewStorage(pool)

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		slog.Error("Failed to initialize Telegram bot", "error", err)
		os.Exit(1)
	}

	slog.Info("Bot started", "username", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		chatID := update.Message.Chat.ID
		text := sanitizeInput(fixEncoding(update.Message.Text))
		slog.Info("Message received", "chat_id", chatID, "text", text)

		var msgText string
		var err error

		switch {
		case text == "/start" || text == "/help":
			msgText = helpText

		case text == "/month":
			msgText, err = handleMonth(store)

		case text == "/budgets":
			msgText, err = handleBudgets(store)

		case strings.HasPrefix(text, "/add"):
			input := strings.TrimSpace(strings.TrimPrefix(text, "/add"))
			if input == "" {
				msgText = "Send an expense like: `/add Coffee 4.50 Food`"
			} else {
				msgText, err = handleAdd(store, input)
			}

		default:
			msgText = "Unknown command. Send /help"
		}

		if err != nil {
			msgText = "Error: " + err.Error()
		}

		msg := tgbotapi.NewMessage(chatID, msgText)
		msg.ParseMode = "Markdown"
		if _, err := bot.Send(msg); err != nil {
			slog.Error("Failed to send message", "error", err, "chat_id", chatID)
		}
	}
}

// handleAdd parses "<title...> <amount> <category>" and records the expense
// dated today.
func handleAdd(store *postgres.Storage, input string) (string, error) {
	fields := strings.Fields(input)
	if len(fields) < 3 {
		return "", fmt.Errorf("use the format: Title Amount Category")
	}

	category := fields[len(fields)-1]
	if !domain.ValidCategory(category) {
		return "", fmt.Errorf("category must be one of: %s", strings.Join(domain.Categories, ", "))
	}

	amountStr := strings.ReplaceAll(fields[len(fields)-2], ",", ".")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		return "", fmt.Errorf("invalid amount: %q", fields[len(fields)-2])
	}

	title := strings.Join(fields[:len(fields)-2], " ")
	if len(title) > 80 {
		return "", fmt.Errorf("title cannot exceed 80 characters")
	}

	expense, err := store.Create(context.Background(), domain.Expense{
		Title:    title,
		Amount:   amount,
		Category: category,
		Date:     time.Now().Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Saved: %s — %.2f (%s)", expense.Title, expense.Amount, expense.Category), nil
}

func handleMonth(store *postgres.Storage) (string, error) {
	month := time.Now().Format("2006-01")
	expenses, err := store.List(context.Background(), storage.ExpenseFilter{Month: month})
	if err != nil {
		return "", err
	}
	if len(expenses) == 0 {
		return "No expenses for " + month, nil
	}

	summary := stats.MonthlySummary(month, expenses)
	var lines []string
	lines = append(lines, fmt.Sprintf("*Spending for %s*: %.2f", summary.Month, summary.Total))
	for _, row := range summary.ChartData {
		lines = append(lines, fmt.Sprintf("- %s: %.2f", row.Category, row.Amount))
	}
	return strings.Join(lines, "\n"), nil
}

func handleBudgets(store *postgres.Storage) (string, error) {
	month := time.Now().Format("2006-01")
	budgets, err := store.ListBudgets(context.Background(), month)
	if err != nil {
		return "", err
	}
	if len(budgets) == 0 {
		return "No budgets for " + month, nil
	}

	expenses, err := store.List(context.Background(), storage.ExpenseFilter{Month: month})
	if err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("*Budgets for %s*", month))
	for _, st := range stats.BudgetStatuses(budgets, expenses) {
		lines = append(lines, fmt.Sprintf("- %s: %.2f of %.2f (%d%%)", st.Category, st.Spent, st.Limit, st.Percentage))
	}
	return strings.Join(lines, "\n"), nil
}

func sanitizeInput(s string) string {
	result := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(result), " ")
}

func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	// Telegram clients occasionally deliver windows-1251 bytes
	decoder := charmap.Windows1251.NewDecoder()
	fixed, err := decoder.String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}

	return strings.ToValidUTF8(s, "")
}
