package settings

import "github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
