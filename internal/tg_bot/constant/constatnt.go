package constant

const (
	BUTTON_TEXT_STUDENT    = "Student"
	BUTTON_TEXT_IT_TECH    = "IT-technologies"
	BUTTON_TEXT_CONTACTS   = "Contacts"
	BUTTON_TEXT_AI_CHAT    = "ChatGPT"
	BUTTON_TEXT_PRINT_MENU = "Назад"

	COMMAND_START = "start"

	MSG_WELCOME     = "Вас вітає чат-бот! Виберіть відповідну команду"
	MSG_STUDENT     = "Студент: Заіченко Мирослава, Група ІП-22"
	MSG_IT_TECH     = "IT-технології:\n- Front-end\n- Back-end\n- WEB-технології"
	MSG_CONTACTS    = "Контакти:\nтел. 050-55-55-55"
	MSG_AI_MODE_ON  = "Режим ШІ (Gemini) активовано. Пишіть запитання."
	MSG_MENU        = "Меню"
	MSG_USE_MENU    = "Будь ласка, скористайтеся меню."
	MSG_AI_THINKING = "Gemini думає..."

	MSG_AI_EMPTY       = "ШІ не зміг згенерувати текстову відповідь (можливо, фільтри безпеки)."
	MSG_AI_ERROR       = "Помилка: "
	MSG_AI_TIMEOUT     = "ШІ не відповів вчасно, спробуйте ще раз. Помилка: "
	MSG_AI_NOT_FOUND   = "Помилка моделі: модель не знайдена, перевірте GENERATIVE_MODEL. Помилка: "
	MSG_AI_AUTH        = "Помилка доступу до ШІ, перевірте API-ключ. Помилка: "
	MSG_AI_QUOTA       = "Перевищено ліміт запитів до ШІ, спробуйте пізніше. Помилка: "
	MSG_AI_UNAVAILABLE = "Сервіс ШІ тимчасово недоступний. Помилка: "
	MSG_AI_CONFIG      = "ШІ не налаштовано. Помилка: "
)
