package get_week

import (
	"context"

	getWeekSnapshot "github.com/m04kA/SMC-ChairReservation/internal/usecase/get_week_snapshot"
)

type GetWeekSnapshotUseCase interface {
	Execute(ctx context.Context, req *getWeekSnapshot.Request) (*getWeekSnapshot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
