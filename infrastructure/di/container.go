package di

import (
	"notes-backend/application/commands/bus"
	"notes-backend/application/ports"
	querybus "notes-backend/application/queries/bus"
	"notes-backend/infrastructure/config"
	"notes-backend/interfaces/http/rest"
	"notes-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Tracer     *observability.Tracer
	Store      ports.NoteStore
	Metrics    *observability.Metrics
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Router     *rest.Router
}
