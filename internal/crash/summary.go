package crash

// Unknown is substituted for missing signature, product, version and OS name.
const Unknown = "Unknown"

// CrashSummary is a display-ready projection of a ProcessedCrash with every
// fallback resolved and every frame list truncated.
type CrashSummary struct {
	CrashID        string  `json:"crash_id"`
	Signature      string  `json:"signature"`
	Reason         *string `json:"reason"`
	Address        *string `json:"address"`
	MozCrashReason *string `json:"moz_crash_reason"`
	AbortMessage   *string `json:"abort_message"`

	Product  string `json:"product"`
	Version  string `json:"version"`
	Platform string `json:"platform"`

	AndroidVersion *string `json:"android_version"`
	AndroidModel   *string `json:"android_model"`

	CrashingThreadName *string         `json:"crashing_thread_name"`
	Frames             []StackFrame    `json:"frames"`
	AllThreads         []ThreadSummary `json:"all_threads"`
	Modules            []Module        `json:"modules,omitempty"`
}

// ThreadSummary is one thread of an all-threads summary.
type ThreadSummary struct {
	ThreadIndex int          `json:"thread_index"`
	ThreadName  *string      `json:"thread_name"`
	Frames      []StackFrame `json:"frames"`
	IsCrashing  bool         `json:"is_crashing"`
}

// SummaryOption configures optional parts of a summary.
type SummaryOption func(*summaryConfig)

type summaryConfig struct {
	modules bool
}

// WithModules includes the json_dump module list in the summary.
func WithModules() SummaryOption {
	return func(cfg *summaryConfig) { cfg.modules = true }
}

// Summarize derives a CrashSummary keeping at most depth frames per thread.
// When allThreads is set every thread is summarized, otherwise only the
// crashing thread is. Missing data never fails; it degrades to nil, empty
// or Unknown.
//
// The crashing-thread index, the thread list and the crash info are each
// taken from the top level of the record first and from json_dump
// otherwise. The first index found wins even when it is out of range for
// the thread list, in which case no crashing thread is reported.
func (c *ProcessedCrash) Summarize(depth int, allThreads bool, opts ...SummaryOption) CrashSummary {
	var cfg summaryConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if depth < 0 {
		depth = 0
	}

	s := CrashSummary{
		CrashID:        c.UUID,
		Signature:      orUnknown(c.Signature),
		MozCrashReason: c.MozCrashReason,
		AbortMessage:   c.AbortMessage,
		Product:        orUnknown(c.Product),
		Version:        orUnknown(c.Version),
		Platform:       platform(c.OSName, c.OSVersion),
		AndroidVersion: c.AndroidVersion,
		AndroidModel:   c.AndroidModel,
		Frames:         []StackFrame{},
		AllThreads:     []ThreadSummary{},
	}

	crashingIdx, haveIdx := c.resolveCrashingThread()

	if threads, ok := c.resolveThreads(); ok {
		if allThreads {
			s.AllThreads = make([]ThreadSummary, 0, len(threads))
			for i, t := range threads {
				s.AllThreads = append(s.AllThreads, ThreadSummary{
					ThreadIndex: i,
					ThreadName:  t.ThreadName,
					Frames:      truncate(t.Frames, depth),
					IsCrashing:  haveIdx && i == crashingIdx,
				})
			}
		}
		if haveIdx && crashingIdx >= 0 && crashingIdx < len(threads) {
			t := threads[crashingIdx]
			s.CrashingThreadName = t.ThreadName
			s.Frames = truncate(t.Frames, depth)
		}
	}

	if ci, ok := c.resolveCrashInfo(); ok {
		s.Reason = ci.Type
		s.Address = ci.Address
	}

	if cfg.modules {
		if modules, ok := c.dumpModules(); ok {
			s.Modules = modules
		}
	}
	return s
}

// truncate copies the first depth frames.
func truncate(frames []StackFrame, depth int) []StackFrame {
	n := min(depth, len(frames))
	out := make([]StackFrame, n)
	copy(out, frames[:n])
	return out
}

func orUnknown(s *string) string {
	if s == nil {
		return Unknown
	}
	return *s
}

// platform joins the OS name and version, omitting the separator when the
// version is missing.
func platform(name, version *string) string {
	p := orUnknown(name)
	if version != nil {
		p += " " + *version
	}
	return p
}
