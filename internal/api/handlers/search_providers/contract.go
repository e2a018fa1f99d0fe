package search_providers

import (
	"context"

	searchProviders "github.com/ruedapp/RuedApp-CoreService/internal/usecase/search_providers"
)

type SearchProvidersUseCase interface {
	Execute(ctx context.Context, req *searchProviders.Request) (*searchProviders.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
