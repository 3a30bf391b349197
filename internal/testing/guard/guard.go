// Package guard flips the runtime into test mode when imported from a
// test binary, so package init code never reaches Postgres or Redis.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("RENTIER_TEST_MODE") == "" {
			_ = os.Setenv("RENTIER_TEST_MODE", "1")
		}
	})
}
