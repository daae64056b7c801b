package models

// UserState is the per-user session kept by the bot for the lifetime of the process.
type UserState struct {
	UserID   int64 `json:"userID"`   // Telegram ID пользователя
	ChatID   int64 `json:"chatID"`   // Идентификатор последнего чата пользователя
	ChatMode bool  `json:"chatMode"` // Флаг режима общения с ИИ
}
