package crash

// firstPresent tries each lookup in order and returns the first present
// value. Later lookups are not called once one succeeds.
func firstPresent[T any](lookups ...func() (T, bool)) (T, bool) {
	for _, l := range lookups {
		if v, ok := l(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (c *ProcessedCrash) resolveCrashingThread() (int, bool) {
	return firstPresent(
		func() (int, bool) {
			if c.CrashingThread == nil {
				return 0, false
			}
			return *c.CrashingThread, true
		},
		func() (int, bool) {
			if c.CrashInfo == nil || c.CrashInfo.CrashingThread == nil {
				return 0, false
			}
			return *c.CrashInfo.CrashingThread, true
		},
		c.dumpCrashingThread,
	)
}

func (c *ProcessedCrash) resolveThreads() ([]Thread, bool) {
	return firstPresent(
		func() ([]Thread, bool) { return c.Threads, c.Threads != nil },
		c.dumpThreads,
	)
}

func (c *ProcessedCrash) resolveCrashInfo() (*CrashInfo, bool) {
	return firstPresent(
		func() (*CrashInfo, bool) { return c.CrashInfo, c.CrashInfo != nil },
		c.dumpCrashInfo,
	)
}
