package list_locations

import (
	"context"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/internal/service/locations/models"
)

type LocationService interface {
	Overview(ctx context.Context, identity domain.Identity) (*models.OverviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
