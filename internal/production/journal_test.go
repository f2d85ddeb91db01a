package production

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/comalice/navperf/internal/core"
	"github.com/comalice/navperf/internal/primitives"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenJournal(filepath.Join(t.TempDir(), "journal.db"), discardLogger())
	if err != nil {
		t.Fatalf("OpenJournal failed: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestOpenJournal_RequiresPath(t *testing.T) {
	if _, err := OpenJournal("  ", nil); err == nil {
		t.Error("expected error for blank path")
	}
}

func TestJournal_AppendAndQuery(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	events := []primitives.Event{
		primitives.NavigationStart{Screen: "gradeOne", Detail: primitives.Detail{"from": "home"}},
		primitives.MeasureRecorded{Measure: primitives.Measure{Name: "screen-transition:gradeOne", Duration: 280}},
		primitives.NavigationComplete{Screen: "gradeOne", Detail: primitives.Detail{"from": "home"}, Measure: primitives.Measure{Name: "screen-transition:gradeOne", Duration: 280}},
		primitives.NativeMark{Entry: primitives.Entry{Name: "bundle.js", EntryType: "resource", Duration: 42}},
	}
	for _, evt := range events {
		if err := j.Append(ctx, "gen-1", evt); err != nil {
			t.Fatalf("Append(%s) failed: %v", evt.Kind(), err)
		}
	}
	if err := j.Append(ctx, "gen-2", primitives.AppInteractive{Measure: primitives.Measure{Name: "appStartup", Duration: 900}}); err != nil {
		t.Fatal(err)
	}

	all, err := j.Events(ctx, Query{Generation: "gen-1"})
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len(Events) = %d, want 4", len(all))
	}
	for i, rec := range all {
		if rec.Kind != events[i].Kind() {
			t.Errorf("record %d kind = %s, want %s", i, rec.Kind, events[i].Kind())
		}
		if rec.Event.Kind() != rec.Kind {
			t.Errorf("record %d decoded as %T", i, rec.Event)
		}
	}
	if all[0].Screen != "gradeOne" || all[0].Duration != nil {
		t.Errorf("start record = %+v", all[0])
	}
	if all[2].Duration == nil || *all[2].Duration != 280 {
		t.Errorf("complete record duration = %v", all[2].Duration)
	}
	if all[3].Name != "bundle.js" {
		t.Errorf("native record name = %q", all[3].Name)
	}
	complete := all[2].Event.(primitives.NavigationComplete)
	if complete.Detail.String("from") != "home" {
		t.Errorf("decoded detail = %v", complete.Detail)
	}

	byKind, err := j.Events(ctx, Query{Kind: primitives.KindAppInteractive})
	if err != nil {
		t.Fatal(err)
	}
	if len(byKind) != 1 || byKind[0].Generation != "gen-2" {
		t.Errorf("appInteractive records = %+v", byKind)
	}

	limited, err := j.Events(ctx, Query{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("len(limited) = %d, want 2", len(limited))
	}
}

func TestJournal_TransitionStats(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	for _, d := range []float64{200, 300} {
		evt := primitives.NavigationComplete{Screen: "gradeOne", Measure: primitives.Measure{Duration: d}}
		if err := j.Append(ctx, "gen-1", evt); err != nil {
			t.Fatal(err)
		}
	}
	if err := j.Append(ctx, "gen-2", primitives.NavigationComplete{Screen: "home", Measure: primitives.Measure{Duration: 100}}); err != nil {
		t.Fatal(err)
	}

	stats, err := j.TransitionStats(ctx, "gen-1")
	if err != nil {
		t.Fatalf("TransitionStats failed: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("stats = %+v, want one screen", stats)
	}
	if s := stats[0]; s.Screen != "gradeOne" || s.Count != 2 || s.Mean != 250 || s.Max != 300 {
		t.Errorf("stats = %+v", s)
	}

	all, err := j.TransitionStats(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Screen != "gradeOne" || all[1].Screen != "home" {
		t.Errorf("all stats = %+v", all)
	}
}

func TestJournal_ListenerRecordsPerformanceEvents(t *testing.T) {
	j := openTestJournal(t)
	perf := core.NewPerformance(core.WithLogger(discardLogger()))
	perf.Subscribe(j.Listener(perf.Generation))

	perf.MarkNavigationStart("gradeOne", primitives.Detail{"from": "home"})
	perf.MarkNavigationComplete("gradeOne", primitives.Detail{"from": "home"})
	first := perf.Generation()
	perf.UnsafeReset()
	perf.Subscribe(j.Listener(perf.Generation))
	perf.MarkNavigationStart("home", nil)

	recs, err := j.Events(context.Background(), Query{Generation: first})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("len(first generation) = %d, want 3", len(recs))
	}
	recs, err = j.Events(context.Background(), Query{Screen: "home"})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Generation == first {
		t.Errorf("second generation records = %+v", recs)
	}
}

func TestJournal_CancelledAppend(t *testing.T) {
	j := openTestJournal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := j.Append(ctx, "gen", primitives.MeasureRecorded{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
