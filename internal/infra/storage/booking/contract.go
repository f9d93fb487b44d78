package booking

import "github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/dbtx"

// DBExecutor is the database handle the repository runs against.
type DBExecutor = dbtx.Executor
