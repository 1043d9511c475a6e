package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/walexbarnes/nosey-web-sdk/internal/model"
)

func TestReadFile(t *testing.T) {
	raw := `{"hook":"sendHeaders","requestId":"r1","url":"https://x.com/ee/v1?configId=1&requestId=r1","method":"POST"}

not valid json
{"hook":"beforeRequest","requestId":"r1","url":"https://x.com/ee/v1?configId=1&requestId=r1","method":"POST","body":{"events":[{"xdm":{"eventType":"click"}}]}}
`
	path := filepath.Join(t.TempDir(), "capture.ndjson")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	var got []model.NetworkEvent
	delivered, skipped, err := ReadFile(path, func(ev model.NetworkEvent) {
		got = append(got, ev)
	})
	if err != nil {
		t.Fatal(err)
	}

	if delivered != 2 {
		t.Errorf("expected 2 delivered events, got %d", delivered)
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", skipped)
	}
	if got[0].Hook != model.HookSendHeaders || got[1].Hook != model.HookBeforeRequest {
		t.Errorf("expected file order preserved, got %v then %v", got[0].Hook, got[1].Hook)
	}
	if len(got[1].Body) == 0 {
		t.Error("expected body carried through for beforeRequest")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, _, err := ReadFile("/does/not/exist.ndjson", func(model.NetworkEvent) {}); err == nil {
		t.Error("expected error for missing file")
	}
}
