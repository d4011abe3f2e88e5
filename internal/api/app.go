package api

import (
	"github.com/giovanaluizapereira/planner-2026/internal"
	"github.com/giovanaluizapereira/planner-2026/internal/auth"
	"github.com/giovanaluizapereira/planner-2026/internal/service"
	"github.com/giovanaluizapereira/planner-2026/internal/vision"
)

// App bundles what handlers need; tests substitute fakes through it.
type App interface {
	Logger() internal.Logger
	Runs() *service.Manager
	Auth() auth.Provider
	Vision() *vision.Client
}

type app struct {
	logger internal.Logger
	runs   *service.Manager
	auth   auth.Provider
	vision *vision.Client
}

func NewApp(logger internal.Logger, runs *service.Manager, provider auth.Provider, visionClient *vision.Client) App {
	return &app{logger: logger, runs: runs, auth: provider, vision: visionClient}
}

func (a *app) Logger() internal.Logger  { return a.logger }
func (a *app) Runs() *service.Manager   { return a.runs }
func (a *app) Auth() auth.Provider      { return a.auth }
func (a *app) Vision() *vision.Client   { return a.vision }
