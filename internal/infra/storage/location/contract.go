package location

import (
	"github.com/m04kA/SMC-ChairReservation/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
