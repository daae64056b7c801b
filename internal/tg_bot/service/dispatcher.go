package service

import (
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/constant"
	"strings"
)

// Keyboard identifies the reply keyboard shown with a message.
type Keyboard int

const (
	KeyboardNone Keyboard = iota // keep whatever keyboard the client shows
	KeyboardMain                 // Student, IT-technologies, Contacts, ChatGPT
	KeyboardBack                 // Назад
)

// ActionKind tells the bot what to do with an incoming message.
type ActionKind int

const (
	ActionReply  ActionKind = iota // send Action.Text with Action.Keyboard
	ActionRelay                    // forward Action.Text to the generative model
	ActionIgnore                   // unsupported command, nothing is sent
)

// String returns the action name used in logs and metric labels.
func (k ActionKind) String() string {
	switch k {
	case ActionReply:
		return "reply"
	case ActionRelay:
		return "relay"
	case ActionIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// Action is the result of dispatching one message.
type Action struct {
	Kind     ActionKind
	Text     string   // reply text for ActionReply, prompt for ActionRelay
	Keyboard Keyboard // keyboard for ActionReply
	ChatMode bool     // user's AI chat mode after the message
}

// menuReplies maps menu buttons that only print a fixed text.
var menuReplies = map[string]string{
	constant.BUTTON_TEXT_STUDENT:  constant.MSG_STUDENT,
	constant.BUTTON_TEXT_IT_TECH:  constant.MSG_IT_TECH,
	constant.BUTTON_TEXT_CONTACTS: constant.MSG_CONTACTS,
}

// Dispatch routes a message given the user's current AI chat mode.
// Arguments:
//   - chatMode: the user's flag before the message.
//   - command: bot command without the slash, empty for plain text.
//   - text: raw message text.
//
// Button texts are matched exactly after trimming surrounding whitespace.
func Dispatch(chatMode bool, command, text string) Action {
	if command != "" {
		if command == constant.COMMAND_START {
			return Action{Kind: ActionReply, Text: constant.MSG_WELCOME, Keyboard: KeyboardMain, ChatMode: chatMode}
		}
		return Action{Kind: ActionIgnore, ChatMode: chatMode}
	}

	input := strings.TrimSpace(text)
	if reply, ok := menuReplies[input]; ok {
		return Action{Kind: ActionReply, Text: reply, Keyboard: KeyboardBack, ChatMode: chatMode}
	}

	switch input {
	case constant.BUTTON_TEXT_AI_CHAT:
		return Action{Kind: ActionReply, Text: constant.MSG_AI_MODE_ON, Keyboard: KeyboardBack, ChatMode: true}
	case constant.BUTTON_TEXT_PRINT_MENU:
		return Action{Kind: ActionReply, Text: constant.MSG_MENU, Keyboard: KeyboardMain, ChatMode: false}
	}

	if chatMode {
		return Action{Kind: ActionRelay, Text: text, ChatMode: true}
	}
	return Action{Kind: ActionReply, Text: constant.MSG_USE_MENU, Keyboard: KeyboardMain, ChatMode: false}
}
