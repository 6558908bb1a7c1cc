package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"todo/internal/prompt"
	"todo/internal/store"
	"todo/pkg/task"
)

// harness wires a store over an in-memory backend to a scripted stdin.
type harness struct {
	t       *testing.T
	backend *store.MemoryBackend
	out     bytes.Buffer
}

func newHarness(t *testing.T, titles ...string) *harness {
	t.Helper()
	h := &harness{t: t, backend: store.NewMemoryBackend(nil)}
	if len(titles) > 0 {
		s := h.open()
		for _, title := range titles {
			if err := s.Append(task.New(title)); err != nil {
				t.Fatalf("seed %q: %v", title, err)
			}
		}
	}
	return h
}

func (h *harness) open() *store.Store {
	h.t.Helper()
	s, err := store.Open(h.backend, nil)
	if err != nil {
		h.t.Fatalf("store.Open failed: %v", err)
	}
	return s
}

// env opens the store afresh, as a new process would, with input as the
// lines typed by the user.
func (h *harness) env(input string) *Env {
	h.t.Helper()
	h.out.Reset()
	return &Env{
		Store:  h.open(),
		Prompt: prompt.New(strings.NewReader(input), &h.out),
		Out:    &h.out,
		Styles: PlainStyles(),
	}
}

func (h *harness) get() string {
	h.t.Helper()
	if err := Get(h.env("")); err != nil {
		h.t.Fatalf("Get failed: %v", err)
	}
	return h.out.String()
}

func (h *harness) tasks() []task.Task {
	h.t.Helper()
	return h.open().All()
}

func TestScenario(t *testing.T) {
	h := newHarness(t)

	for _, title := range []string{"a", "b"} {
		if err := New(h.env(title + "\n")); err != nil {
			t.Fatalf("New(%q) failed: %v", title, err)
		}
	}
	if got, want := h.get(), "1. a\n2. b\n"; got != want {
		t.Errorf("after new: get = %q, want %q", got, want)
	}

	if err := Complete(h.env(""), []string{"1"}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got, want := h.get(), "1. a ✔\n2. b\n"; got != want {
		t.Errorf("after complete: get = %q, want %q", got, want)
	}

	if err := Delete(h.env("y\n"), []string{"1"}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got, want := h.get(), "1. b\n"; got != want {
		t.Errorf("after delete: get = %q, want %q", got, want)
	}
}

func TestNew_AppendsInOrder(t *testing.T) {
	h := newHarness(t)
	titles := []string{"buy milk", "call mom", "buy milk", "write report"}
	for _, title := range titles {
		env := h.env(title + "\n")
		if err := New(env); err != nil {
			t.Fatalf("New(%q) failed: %v", title, err)
		}
		if !strings.HasPrefix(h.out.String(), "Type in your todo\n") {
			t.Errorf("prompt not shown, output %q", h.out.String())
		}
	}

	var want strings.Builder
	for i, title := range titles {
		want.WriteString(task.New(title).Line(i + 1))
		want.WriteByte('\n')
	}
	if got := h.get(); got != want.String() {
		t.Errorf("get = %q, want %q", got, want.String())
	}
}

func TestNew_TrimsTitle(t *testing.T) {
	h := newHarness(t)
	if err := New(h.env("   buy milk \r\n")); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	want := []task.Task{{Title: "buy milk"}}
	if got := h.tasks(); !reflect.DeepEqual(got, want) {
		t.Errorf("tasks = %+v, want %+v", got, want)
	}
}

func TestNew_RejectsUnusableInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty line", "\n"},
		{"whitespace", "  \t \n"},
		{"closed input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			env := h.env(tt.input)
			before := h.backend.Saves()

			err := New(env)
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InputError, got %v", err)
			}
			if h.backend.Saves() != before {
				t.Errorf("store written despite rejected input")
			}
		})
	}
}

func TestComplete_OnlyTargetChanges(t *testing.T) {
	h := newHarness(t, "a", "b", "c")
	if err := Complete(h.env(""), []string{"2"}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	want := []task.Task{{Title: "a"}, {Title: "b", Complete: true}, {Title: "c"}}
	if got := h.tasks(); !reflect.DeepEqual(got, want) {
		t.Errorf("tasks = %+v, want %+v", got, want)
	}
}

func TestComplete_IsIdempotent(t *testing.T) {
	h := newHarness(t, "a")
	for i := 0; i < 2; i++ {
		if err := Complete(h.env(""), []string{"1"}); err != nil {
			t.Fatalf("Complete #%d failed: %v", i+1, err)
		}
	}
	if got := h.tasks(); !got[0].Complete {
		t.Errorf("task not complete: %+v", got)
	}
}

func TestPositionArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr any
		wantMsg string
	}{
		{"no argument", nil, &ArgumentCountError{}, "invalid number of arguments passed for %s command"},
		{"two arguments", []string{"1", "2"}, &ArgumentCountError{}, "invalid number of arguments passed for %s command"},
		{"not a number", []string{"abc"}, &ArgumentTypeError{}, "please provide a valid number for %s command"},
		{"fraction", []string{"1.5"}, &ArgumentTypeError{}, "please provide a valid number for %s command"},
		{"zero", []string{"0"}, &ArgumentRangeError{}, "invalid number passed for %s command."},
		{"negative", []string{"-1"}, &ArgumentRangeError{}, "invalid number passed for %s command."},
		{"past the end", []string{"3"}, &ArgumentRangeError{}, "invalid number passed for %s command."},
		{"overflow", []string{"99999999999999999999"}, &ArgumentRangeError{}, "invalid number passed for %s command."},
	}

	commands := map[string]func(*Env, []string) error{
		"complete": Complete,
		"delete":   Delete,
	}

	for command, run := range commands {
		for _, tt := range tests {
			t.Run(command+"/"+tt.name, func(t *testing.T) {
				h := newHarness(t, "a", "b")
				before := h.backend.Bytes()

				err := run(h.env("y\n"), tt.args)
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if reflect.TypeOf(err) != reflect.TypeOf(tt.wantErr) {
					t.Errorf("error type = %T, want %T", err, tt.wantErr)
				}
				if want := strings.Replace(tt.wantMsg, "%s", command, 1); err.Error() != want {
					t.Errorf("error = %q, want %q", err.Error(), want)
				}
				if !IsUserError(err) {
					t.Errorf("%T is not a user error", err)
				}
				if !bytes.Equal(h.backend.Bytes(), before) {
					t.Errorf("store changed on invalid input")
				}
				if h.out.Len() != 0 {
					t.Errorf("no prompt expected, got %q", h.out.String())
				}
			})
		}
	}
}

func TestDelete_Confirmed(t *testing.T) {
	h := newHarness(t, "a", "b", "c")
	if err := Delete(h.env("Y\n"), []string{"2"}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	out := h.out.String()
	if !strings.HasPrefix(out, "Are you sure you want to delete b? (Y/N)\n") {
		t.Errorf("unexpected prompt in %q", out)
	}
	if !strings.Contains(out, "b has been deleted\n") {
		t.Errorf("missing confirmation in %q", out)
	}

	if got, want := h.get(), "1. a\n2. c\n"; got != want {
		t.Errorf("get = %q, want %q", got, want)
	}
}

func TestDelete_NotConfirmedLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		input   string
		wantOut string
	}{
		{"n\n", "ok\n"},
		{"N\n", "ok\n"},
		{"yes\n", "Command not found\n"},
		{"\n", "Command not found\n"},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			h := newHarness(t, "a", "b")
			before := h.backend.Bytes()
			saves := h.backend.Saves()

			if err := Delete(h.env(tt.input), []string{"1"}); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if !strings.HasSuffix(h.out.String(), tt.wantOut) {
				t.Errorf("output %q does not end with %q", h.out.String(), tt.wantOut)
			}
			if h.backend.Saves() != saves || !bytes.Equal(h.backend.Bytes(), before) {
				t.Errorf("store changed without confirmation")
			}
		})
	}
}

func TestDelete_ClosedInput(t *testing.T) {
	h := newHarness(t, "a")
	err := Delete(h.env(""), []string{"1"})
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InputError, got %v", err)
	}
	if got := h.tasks(); len(got) != 1 {
		t.Errorf("task removed without an answer: %+v", got)
	}
}

func TestDelete_DuplicateTitlesRemovesSelectedPosition(t *testing.T) {
	h := newHarness(t, "same", "same")
	if err := Complete(h.env(""), []string{"1"}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if err := Delete(h.env("y\n"), []string{"2"}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	want := []task.Task{{Title: "same", Complete: true}}
	if got := h.tasks(); !reflect.DeepEqual(got, want) {
		t.Errorf("tasks = %+v, want %+v", got, want)
	}
}

func TestClear(t *testing.T) {
	h := newHarness(t, "a", "b")
	if err := Clear(h.env("")); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := h.get(); got != "" {
		t.Errorf("get after clear = %q, want empty", got)
	}
}

func TestGet_Empty(t *testing.T) {
	h := newHarness(t)
	if got := h.get(); got != "" {
		t.Errorf("get = %q, want empty", got)
	}
}

func TestPersistenceAcrossProcesses(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "db.json")
	run := func(input string, fn func(*Env) error) string {
		t.Helper()
		s, err := store.Open(store.NewFileBackend(dbFile), nil)
		if err != nil {
			t.Fatalf("store.Open failed: %v", err)
		}
		var out bytes.Buffer
		env := &Env{Store: s, Prompt: prompt.New(strings.NewReader(input), &out), Out: &out, Styles: PlainStyles()}
		if err := fn(env); err != nil {
			t.Fatalf("command failed: %v", err)
		}
		return out.String()
	}

	run("buy milk\n", New)
	if got := run("", Get); got != "1. buy milk\n" {
		t.Errorf("get after restart = %q, want %q", got, "1. buy milk\n")
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	mdFile := filepath.Join(dir, "tasks.md")
	if err := os.WriteFile(mdFile, []byte("# Week\n\n- [ ] plan\n- [x] ship\n- notes\n"), 0o644); err != nil {
		t.Fatalf("failed to create temp markdown file: %v", err)
	}

	h := newHarness(t, "existing")
	if err := Import(h.env(""), []string{mdFile}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !strings.Contains(h.out.String(), "Imported 2 todos") {
		t.Errorf("unexpected import output %q", h.out.String())
	}
	if got, want := h.get(), "1. existing\n2. plan\n3. ship ✔\n"; got != want {
		t.Errorf("get = %q, want %q", got, want)
	}

	if err := Export(h.env("")); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if got, want := h.out.String(), "- [ ] existing\n- [ ] plan\n- [x] ship\n"; got != want {
		t.Errorf("export = %q, want %q", got, want)
	}
}

func TestImport_Errors(t *testing.T) {
	h := newHarness(t)

	err := Import(h.env(""), nil)
	var countErr *ArgumentCountError
	if !errors.As(err, &countErr) || countErr.Command != "import" {
		t.Errorf("expected import ArgumentCountError, got %v", err)
	}

	err = Import(h.env(""), []string{filepath.Join(t.TempDir(), "missing.md")})
	if !IsUserError(err) {
		t.Errorf("missing file should be a user error, got %T: %v", err, err)
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantUsage bool
	}{
		{"unknown command", &UnknownCommandError{Name: "foo"}, true},
		{"extra argument", &ArgumentCountError{Got: 1}, true},
		{"complete count", &ArgumentCountError{Command: "complete", Got: 0}, false},
		{"range", &ArgumentRangeError{Command: "delete", N: 9, Len: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Report(&buf, PlainStyles(), tt.err)
			out := buf.String()
			if !strings.HasPrefix(out, tt.err.Error()+"\n") {
				t.Errorf("report %q does not start with the error", out)
			}
			if got := strings.Contains(out, "usage:"); got != tt.wantUsage {
				t.Errorf("usage shown = %v, want %v", got, tt.wantUsage)
			}
		})
	}
}

func TestIsUserError(t *testing.T) {
	if IsUserError(errors.New("disk on fire")) {
		t.Error("plain error reported as user error")
	}
	wrapped := errors.Join(errors.New("context"), &UnknownCommandError{Name: "x"})
	if !IsUserError(wrapped) {
		t.Error("wrapped user error not detected")
	}
	if IsUserError(&store.IOError{Op: "read", Path: "db.json", Err: os.ErrPermission}) {
		t.Error("IOError reported as user error")
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	if buf.String() != "1.0.0\n" {
		t.Errorf("PrintVersion = %q", buf.String())
	}
}

func TestTitlesKeepTabs(t *testing.T) {
	h := newHarness(t)
	if err := New(h.env("buy\tmilk\n")); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := h.get(); got != "1. buy\tmilk\n" {
		t.Errorf("get = %q, want %q", got, "1. buy\tmilk\n")
	}

	if err := Delete(h.env("n\n"), []string{"1"}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !strings.Contains(h.out.String(), "delete buy\tmilk? (Y/N)") {
		t.Errorf("delete prompt = %q", h.out.String())
	}
}
