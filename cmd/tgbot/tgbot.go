package main

import (
	"context"
	"github.com/DenisKhanov/GeminiMenuBot/internal/app/tbot"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx := context.Background()

	app, err := tbot.NewApp(ctx)
	if err != nil {
		logrus.Fatalf("failed to init app: %v", err)
	}
	logrus.Info("Бот з Gemini запущений...")

	if err = app.Run(); err != nil {
		logrus.Fatalf("bot stopped: %v", err)
	}
}
