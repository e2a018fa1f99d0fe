package check_restriction

import (
	"context"

	checkRestriction "github.com/ruedapp/RuedApp-CoreService/internal/usecase/check_restriction"
)

type CheckRestrictionUseCase interface {
	Execute(ctx context.Context, req *checkRestriction.Request) (*checkRestriction.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
