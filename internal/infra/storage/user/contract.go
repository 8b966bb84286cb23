package user

import "github.com/m04kA/BBQ-RentalService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
