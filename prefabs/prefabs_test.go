package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/ringworld/input"
	"github.com/milk9111/ringworld/script"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	settings, err := LoadCameraSettings("")
	if err != nil {
		t.Fatalf("camera settings: %v", err)
	}
	if settings.TopDown.DefaultDistance != 800 || settings.ThirdPerson.FieldOfView != 90 {
		t.Fatalf("unexpected camera settings %+v", settings.TopDown)
	}

	controls, err := LoadControls()
	if err != nil {
		t.Fatalf("controls: %v", err)
	}
	for _, a := range []input.Action{input.ActionMove, input.ActionSelect, input.ActionSelectCancel, input.ActionTopDownZoom} {
		if len(controls.Actions[a]) == 0 {
			t.Fatalf("controls missing action %s", a)
		}
	}
	if controls.Look.YawRate != 240 {
		t.Fatalf("look settings not decoded: %+v", controls.Look)
	}

	effects, err := LoadEffects()
	if err != nil {
		t.Fatalf("effects: %v", err)
	}
	if e, ok := effects["fortify"]; !ok || e.Duration != 10 || e.Name != "fortify" {
		t.Fatalf("fortify effect not decoded: %+v", e)
	}

	level, err := LoadLevel("")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	spawns := append([]SpawnSpec{level.Player}, level.Spawns...)
	for _, s := range spawns {
		spec, err := LoadEntityBuildSpec(s.Prefab)
		if err != nil {
			t.Fatalf("spawn %s: %v", s.Prefab, err)
		}
		if len(spec.Components) == 0 {
			t.Fatalf("prefab %s has no components", s.Prefab)
		}
		if raw, ok := spec.Components["vitality"]; ok {
			v, err := DecodeComponentSpec[VitalityComponentSpec](raw)
			if err != nil {
				t.Fatalf("prefab %s vitality: %v", s.Prefab, err)
			}
			for _, name := range v.StartupEffects {
				if _, ok := effects[name]; !ok {
					t.Fatalf("prefab %s references unknown effect %s", s.Prefab, name)
				}
			}
		}
	}

	src, err := LoadScript("selectable")
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if _, err := script.Compile("selectable", src); err != nil {
		t.Fatalf("compile selectable: %v", err)
	}
}

func TestCleanScriptPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"selectable", "scripts/selectable.tengo"},
		{"selectable.tengo", "scripts/selectable.tengo"},
		{"scripts/selectable.tengo", "scripts/selectable.tengo"},
		{"prefabs/scripts/selectable.tengo", "scripts/selectable.tengo"},
	}
	for _, tc := range tests {
		if got := cleanScriptPath(tc.in); got != tc.want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func useDiskDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })
	return dir
}

func TestDiskOverrideKeepsDefaults(t *testing.T) {
	dir := useDiskDir(t)
	if err := os.WriteFile(filepath.Join(dir, CameraFile), []byte("top_down:\n  max_distance: 2000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings, err := LoadCameraSettings("")
	if err != nil {
		t.Fatalf("camera settings: %v", err)
	}
	if settings.TopDown.MaxDistance != 2000 || settings.TopDown.DefaultDistance != 800 {
		t.Fatalf("override not layered over defaults: %+v", settings.TopDown)
	}
}

func TestBrokenCameraFileFallsBack(t *testing.T) {
	dir := useDiskDir(t)
	if err := os.WriteFile(filepath.Join(dir, CameraFile), []byte("top_down: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings, err := LoadCameraSettings("")
	if err == nil {
		t.Fatalf("expected a decode error")
	}
	if settings.TopDown.DefaultDistance != 800 {
		t.Fatalf("expected defaults on error, got %+v", settings.TopDown)
	}
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, CameraFile)
	if err := os.WriteFile(target, []byte("teleport_distance_threshold: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != CameraFile {
			t.Fatalf("unexpected event for %s", name)
		}
		if Name(name) != CameraFile {
			t.Fatalf("Name(%q) = %q", name, Name(name))
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", target)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for range w.Events {
	}
}
