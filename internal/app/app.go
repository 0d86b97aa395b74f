package app

import (
	"github.com/forayconsulting/meeting-recorder/config"
	"github.com/forayconsulting/meeting-recorder/internal/audio"
	"github.com/forayconsulting/meeting-recorder/internal/session"
)

type App struct {
	Supervisor *session.Supervisor
	Enumerator audio.Enumerator
}

func New(cfg *config.Config) (*App, error) {
	supervisor, err := session.New(
		session.Config{TranscriptDir: cfg.TranscriptDir},
		session.NewSelfSpawner(),
		session.NewWatcher(),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		Supervisor: supervisor,
		Enumerator: audio.NewEnumerator(),
	}, nil
}
