package menu

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Подписи кнопок совпадают с командами, см. bot.route.
const (
	BtnStats  = "📊 Stats"
	BtnRecent = "🕒 Recent"
	BtnHelp   = "❓ Help"
)

// Main возвращает клавиатуру. Удаление доступно только админам и только командой.
func Main(isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnStats),
			tgbotapi.NewKeyboardButton(BtnRecent),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnHelp),
		),
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	if isAdmin {
		kb.InputFieldPlaceholder = "/add, /delete <id>"
	}
	return kb
}
