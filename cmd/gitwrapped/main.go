// Command gitwrapped summarizes a year of public GitHub activity.
package main

import (
	"github.com/huangsam/gitwrapped/cmd"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/iocache"
)

func main() {
	defer iocache.CloseCaching()

	cmd.SetCacheManager(iocache.Manager)
	if err := cmd.Execute(); err != nil {
		// LogFatal exits, so close the stores first
		iocache.CloseCaching()
		contract.LogFatal("Error starting CLI", err)
	}
	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Error stopping profiling", err)
	}
}
