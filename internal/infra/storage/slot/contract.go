package slot

import "github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/dbtx"

// DBExecutor is the database handle the repository runs against. Repository
// methods resolve a transaction from the context when one is active.
type DBExecutor = dbtx.Executor
