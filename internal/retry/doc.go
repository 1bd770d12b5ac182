// Package retry re-runs sink operations that fail for transient reasons,
// such as a PostgreSQL server that is still starting or an SQLite database
// locked by another writer.
//
//	executor := retry.NewExecutor(retry.NewPostgreSQLClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy.
package retry
