package sdk

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

// memSink captures audit entries in call order.
type memSink struct {
	entries []sinkEntry
}

type sinkEntry struct {
	path   string
	status Status
	size   int64
	err    error
}

func (s *memSink) Record(d Decision, status Status, size int64, err error) {
	s.entries = append(s.entries, sinkEntry{d.Candidate.Path, status, size, err})
}

// failingFs fails RemoveAll for one path and delegates everything else.
type failingFs struct {
	afero.Fs
	failPath string
}

var errDenied = errors.New("operation not permitted")

func (f *failingFs) RemoveAll(path string) error {
	if path == f.failPath {
		return errDenied
	}
	return f.Fs.RemoveAll(path)
}

func seedBundle(t *testing.T, fsys afero.Fs, path string, bytes int) {
	t.Helper()
	if err := fsys.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, path+"/usr", make([]byte, bytes), 0o644); err != nil {
		t.Fatal(err)
	}
}

func decisionFor(path string, action Action, rank int) Decision {
	return Decision{
		Candidate: Candidate{Platform: "iPhoneOS", Path: path, RawName: "x.sdk"},
		Action:    action,
		Rank:      rank,
	}
}

func TestExecutorDryRunTouchesNothing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedBundle(t, fsys, "/sdks/iPhoneOS15.5.sdk", 100)

	sink := &memSink{}
	exec := &Executor{FS: fsys, Mode: DryRun, Audit: sink}
	results := exec.Apply([]Decision{decisionFor("/sdks/iPhoneOS15.5.sdk", ActionRemove, 2)})

	if results[0].Status != StatusPlanned {
		t.Errorf("status = %s, want %s", results[0].Status, StatusPlanned)
	}
	if results[0].Size != 100 {
		t.Errorf("size = %d, want 100", results[0].Size)
	}

	exists, _ := afero.DirExists(fsys, "/sdks/iPhoneOS15.5.sdk")
	if !exists {
		t.Error("dry-run removed the bundle")
	}
	if len(sink.entries) != 1 || sink.entries[0].status != StatusPlanned {
		t.Errorf("audit entries = %+v", sink.entries)
	}
}

func TestExecutorApplyRemoves(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedBundle(t, fsys, "/sdks/iPhoneOS15.5.sdk", 64)

	exec := &Executor{FS: fsys, Mode: Apply}
	results := exec.Apply([]Decision{decisionFor("/sdks/iPhoneOS15.5.sdk", ActionRemove, 2)})

	if results[0].Status != StatusSucceeded {
		t.Fatalf("status = %s, want %s", results[0].Status, StatusSucceeded)
	}
	if results[0].Size != 64 {
		t.Errorf("size = %d, want 64", results[0].Size)
	}
	exists, _ := afero.DirExists(fsys, "/sdks/iPhoneOS15.5.sdk")
	if exists {
		t.Error("apply left the bundle in place")
	}
}

func TestExecutorKeepSkipsFilesystem(t *testing.T) {
	// A nil FS would panic on any access; KEEP must never reach it.
	exec := &Executor{FS: nil, Mode: Apply}
	results := exec.Apply([]Decision{decisionFor("/sdks/iPhoneOS16.2.sdk", ActionKeep, 1)})

	if results[0].Status != StatusSkippedKept {
		t.Errorf("status = %s, want %s", results[0].Status, StatusSkippedKept)
	}
	if results[0].Size != -1 {
		t.Errorf("size = %d, want -1 for kept candidate", results[0].Size)
	}
}

func TestExecutorAbsentPath(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		want Status
	}{
		{"apply reports already absent", Apply, StatusSkippedAbsent},
		{"dry run still records the intent", DryRun, StatusPlanned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &Executor{FS: afero.NewMemMapFs(), Mode: tt.mode}
			results := exec.Apply([]Decision{decisionFor("/sdks/gone.sdk", ActionRemove, 2)})

			if results[0].Status != tt.want {
				t.Errorf("status = %s, want %s", results[0].Status, tt.want)
			}
			if results[0].Size != 0 {
				t.Errorf("size = %d, want 0 for absent path", results[0].Size)
			}
		})
	}
}

func TestExecutorPartialFailureIsolation(t *testing.T) {
	base := afero.NewMemMapFs()
	seedBundle(t, base, "/sdks/iPhoneOS16.0.sdk", 10)
	seedBundle(t, base, "/sdks/iPhoneOS15.5.sdk", 20)
	seedBundle(t, base, "/sdks/iPhoneOS15.0.sdk", 30)

	fsys := &failingFs{Fs: base, failPath: "/sdks/iPhoneOS15.5.sdk"}
	sink := &memSink{}
	exec := &Executor{FS: fsys, Mode: Apply, Audit: sink}

	decisions := []Decision{
		decisionFor("/sdks/iPhoneOS16.0.sdk", ActionRemove, 2),
		decisionFor("/sdks/iPhoneOS15.5.sdk", ActionRemove, 3),
		decisionFor("/sdks/iPhoneOS15.0.sdk", ActionRemove, 4),
	}
	results := exec.Apply(decisions)

	wantStatus := []Status{StatusSucceeded, StatusFailed, StatusSucceeded}
	for i, r := range results {
		if r.Status != wantStatus[i] {
			t.Errorf("result %d: status = %s, want %s", i, r.Status, wantStatus[i])
		}
	}
	if !errors.Is(results[1].Err, errDenied) {
		t.Errorf("failed result error = %v, want %v", results[1].Err, errDenied)
	}

	// The failing candidate stays; both neighbors are gone.
	if exists, _ := afero.DirExists(base, "/sdks/iPhoneOS15.5.sdk"); !exists {
		t.Error("failing bundle was removed")
	}
	for _, gone := range []string{"/sdks/iPhoneOS16.0.sdk", "/sdks/iPhoneOS15.0.sdk"} {
		if exists, _ := afero.DirExists(base, gone); exists {
			t.Errorf("%s should have been removed", gone)
		}
	}
}

func TestExecutorAuditOrderMatchesInput(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedBundle(t, fsys, "/sdks/b.sdk", 1)
	seedBundle(t, fsys, "/sdks/c.sdk", 1)

	sink := &memSink{}
	exec := &Executor{FS: fsys, Mode: DryRun, Audit: sink}
	exec.Apply([]Decision{
		decisionFor("/sdks/a.sdk", ActionKeep, 1),
		decisionFor("/sdks/b.sdk", ActionRemove, 2),
		decisionFor("/sdks/c.sdk", ActionRemove, 3),
	})

	want := []string{"/sdks/a.sdk", "/sdks/b.sdk", "/sdks/c.sdk"}
	if len(sink.entries) != len(want) {
		t.Fatalf("got %d audit entries, want %d", len(sink.entries), len(want))
	}
	for i, e := range sink.entries {
		if e.path != want[i] {
			t.Errorf("entry %d: path = %s, want %s", i, e.path, want[i])
		}
	}
}

func TestSizeOfUnknown(t *testing.T) {
	exec := &Executor{FS: afero.NewMemMapFs()}
	if got := exec.SizeOf("/nope"); got != -1 {
		t.Errorf("SizeOf(absent) = %d, want -1", got)
	}
}

func TestModeString(t *testing.T) {
	if DryRun.String() != "dry-run" || Apply.String() != "apply" {
		t.Errorf("mode strings = %q, %q", DryRun.String(), Apply.String())
	}
}
