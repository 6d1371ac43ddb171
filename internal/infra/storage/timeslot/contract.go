package timeslot

import "github.com/m04kA/SMC-SlotReservation/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
