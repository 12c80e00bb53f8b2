package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/api"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/config"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/notification"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/prefs"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/service/camera"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/service/session"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/service/speech"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env file, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	prefsStore := prefs.Open(cfg.App.PrefsPath)
	localizer := i18n.NewLocalizer(prefsStore.Current().Language, prefsStore)

	client := api.NewWithHTTPClient(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout})

	var recognizer speech.Recognizer = speech.Unsupported{}
	if cfg.Speech.Enabled {
		recognizer = speech.NewGatewayRecognizer(speech.GatewayOptions{
			URL:         cfg.Speech.GatewayURL,
			AppID:       cfg.Speech.AppID,
			AccessToken: cfg.Speech.AccessToken,
			SampleRate:  cfg.Speech.SampleRate,
			Language:    localizer.Language(),
			Timeout:     cfg.Speech.Timeout,
		})
		log.Println("[main] speech gateway configured")
	} else {
		log.Println("[main] speech gateway not configured, voice input disabled")
	}

	player := speech.NewCommandPlayer()
	chat := session.New(client, localizer, recognizer, player)
	cam := camera.NewController(nil)

	deps := ui.Deps{
		API:           client,
		Localizer:     localizer,
		Prefs:         prefsStore,
		Session:       chat,
		Camera:        cam,
		Notifications: notification.NewStore(notification.Seed(time.Now())),
		Location:      cfg.App.Location,
	}

	program := tea.NewProgram(ui.NewApp(deps), tea.WithAltScreen())

	go func() {
		if err := prefsStore.Watch(ctx, func(p prefs.Prefs) {
			program.Send(ui.PrefsChangedMsg{Prefs: p})
		}); err != nil {
			log.Printf("[main] preferences watcher stopped: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	_, runErr := program.Run()

	// Release exclusive resources whether we exited by key or by signal.
	chat.StopReading()
	chat.StopRecognition()
	cam.Close()

	if runErr != nil {
		log.Fatalf("ui error: %v", runErr)
	}
}
