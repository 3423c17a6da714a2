package main

import (
	"context"
	"io"
	"log"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/netrpc"
	"github.com/milk9111/ringworld/selection"
)

func TestSelectServerResolvesRemoteMarquee(t *testing.T) {
	srv, err := newSelectServer("", log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	for i := 0; i < 3; i++ {
		srv.Step(1.0 / 30)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := netrpc.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", netrpc.ClientConfig{Controller: "local"})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	// Eye level with the grunts, looking down +X at grunt_b.
	view := camera.ViewInfo{Location: common.Vec3{Z: 40}, FieldOfView: 90}
	if err := client.SendView(view, camera.Viewport{Width: 1280, Height: 720}); err != nil {
		t.Fatalf("send view: %v", err)
	}
	req := selection.Request{Start: common.Vec2{X: 600, Y: 320}, End: common.Vec2{X: 680, Y: 400}}
	if err := client.SendSelection("local", req); err != nil {
		t.Fatalf("send: %v", err)
	}

	var result netrpc.Result
	select {
	case result = <-client.Results():
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for result")
	}
	if result.Error != "" {
		t.Fatalf("unexpected error %q", result.Error)
	}

	target := srv.level.Units[1]
	want := []selection.Handle{selection.Handle(target)}
	if !reflect.DeepEqual(result.Selected, want) {
		t.Fatalf("selected %v, want grunt_b %v", result.Selected, want)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if !ecs.Has(srv.world, target, component.SelectedComponent.Kind()) {
		t.Fatalf("server world should mark grunt_b selected")
	}
}

func TestSelectServerHealth(t *testing.T) {
	srv, err := newSelectServer("", log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Fatalf("health body %q", body)
	}
}
