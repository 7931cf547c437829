// Command scanwedge-replay feeds a recorded keylog through the scanner classifier
// so thresholds can be calibrated offline. With -gen it writes a synthetic keylog instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"scanwedge/internal/adapters/keylog"
	"scanwedge/internal/modkit"
	"scanwedge/internal/modkit/module"
	"scanwedge/internal/platform/config"
	"scanwedge/internal/platform/logger"
	pstrings "scanwedge/internal/platform/strings"

	replaydom "scanwedge/internal/services/replay/domain"
	replaymod "scanwedge/internal/services/replay/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	var (
		fIn       = flag.String("in", "-", "keylog file (.jsonl or .jsonl.gz), - for stdin")
		fDebounce = flag.Duration("debounce", 0, "idle window that ends a burst (default from CORE_SCANNER_DEBOUNCE or 150ms)")
		fThresh   = flag.Duration("threshold", 0, "mean interval below which a burst is a scan (default 50ms)")
		fMinLen   = flag.Int("min-len", 0, "shortest burst that can be a scan (default 6)")
		fTerms    = flag.String("terminators", "", "comma-separated terminator keys (default Enter)")
		fCapture  = flag.String("capture-ids", "", "comma-separated capture field ids, empty admits any")
		fDoc      = flag.String("allow-document", "", "true|false: accept keys with no focused field")
		fJSON     = flag.Bool("json", false, "print the report as JSON")
		fGen      = flag.String("gen", "", "write a synthetic keylog typing this text instead of replaying")
		fGenStep  = flag.Duration("gen-step", 10*time.Millisecond, "gap between generated key presses")
		fGenTerm  = flag.String("gen-terminator", "Enter", "key appended after the generated text, empty for none")
	)
	flag.Parse()

	// bring up logging after flags so LOG_* still applies
	l := logger.Get()

	if *fGen != "" {
		if err := generate(os.Stdout, *fGen, *fGenStep, *fGenTerm); err != nil {
			l.Fatal().Err(err).Msg("keylog generation failed")
		}
		return
	}

	// export as env so the module reads the same keys as the api
	mustSetEnv("CORE_SCANNER_ALLOW_DOCUMENT", *fDoc)

	root := config.New()
	deps := modkit.Deps{Cfg: root, Log: *l}

	mod, err := replaymod.New(deps, replaymod.Options{
		Debounce:          *fDebounce,
		IntervalThreshold: *fThresh,
		MinLength:         *fMinLen,
		Terminators:       pstrings.SplitList(*fTerms),
		CaptureIDs:        pstrings.SplitList(*fCapture),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("invalid replay options")
	}
	ports := module.MustPortsOf[replaymod.Ports](mod)

	rd, err := keylog.Open(*fIn)
	if err != nil {
		l.Fatal().Err(err).Str("in", *fIn).Msg("open keylog")
	}
	defer func() {
		if err := rd.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close keylog")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := ports.Replayer.Replay(ctx, rd)
	if err != nil {
		l.Fatal().Err(err).Msg("replay failed")
	}
	if _, skipped := rd.Stats(); skipped > 0 {
		l.Warn().Int("skipped", skipped).Msg("malformed keylog lines ignored")
	}

	if *fJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			l.Fatal().Err(err).Msg("encode report")
		}
		return
	}
	if err := printReport(os.Stdout, rep); err != nil {
		l.Fatal().Err(err).Msg("print report")
	}
}

func generate(w io.Writer, text string, step time.Duration, terminator string) error {
	kw := keylog.NewWriter(w)
	start := time.Now().UnixMilli()
	if err := kw.Write(keylog.Burst(text, start, step.Milliseconds(), "document", terminator)...); err != nil {
		return err
	}
	return kw.Flush()
}

func printReport(w io.Writer, rep replaydom.Report) error {
	th := rep.Thresholds
	fmt.Fprintf(w, "thresholds: debounce=%dms interval<%dms min_length=%d terminators=%s allow_document=%t\n\n",
		th.DebounceMs, th.IntervalThresholdMs, th.MinLength, strings.Join(th.Terminators, ","), th.AllowDocument)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tVERDICT\tLEN\tAVG_MS\tTRIGGER\tTEXT\tBARCODE")
	for i, b := range rep.Bursts {
		verdict := "typed"
		if b.IsScanner {
			verdict = "scan"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.1f\t%s\t%q\t%s\n", i+1, verdict, b.Length, b.AverageIntervalMs, b.Trigger, b.Text, b.Barcode)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := rep.Summary
	_, err := fmt.Fprintf(w, "\nkeys=%d accepted=%d denied=%d bursts=%d scans=%d typed=%d mean_ms=%.1f scan_mean_ms=%.1f typed_mean_ms=%.1f\n",
		s.Keys, s.Accepted, s.Denied, s.Bursts, s.Scans, s.Typed, s.MeanIntervalMs, s.ScanMeanIntervalMs, s.TypedMeanIntervalMs)
	return err
}
