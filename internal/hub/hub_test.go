package hub

import (
	"errors"
	"sync"
	"testing"

	"github.com/walexbarnes/nosey-web-sdk/internal/model"
)

// fakeSender records delivered messages and can be told to fail.
type fakeSender struct {
	mu   sync.Mutex
	got  []*model.ResultMessage
	fail bool
}

func (f *fakeSender) Send(msg *model.ResultMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("connection gone")
	}
	f.got = append(f.got, msg)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.got)
}

func msg() *model.ResultMessage {
	r := model.NewResults()
	r.Set("eventType", "click")
	return &model.ResultMessage{
		Action:  model.ActionDisplayResults,
		Results: r,
		URL:     "https://x.com/ee/v1?configId=1&requestId=2",
	}
}

func TestBroadcastToPanels(t *testing.T) {
	h := New(nil)
	a := &fakeSender{}
	b := &fakeSender{}
	h.AddPanel("a", a)
	h.AddPanel("b", b)

	h.Broadcast(msg())

	if a.count() != 1 || b.count() != 1 {
		t.Errorf("expected both panels to receive, got a=%d b=%d", a.count(), b.count())
	}
}

func TestDeadPanelRemovedOthersStillDelivered(t *testing.T) {
	h := New(nil)
	dead := &fakeSender{fail: true}
	live := &fakeSender{}
	h.AddPanel("dead", dead)
	h.AddPanel("live", live)

	h.Broadcast(msg())

	if live.count() != 1 {
		t.Errorf("expected live panel to receive despite dead sibling, got %d", live.count())
	}
	if h.Panels() != 1 {
		t.Errorf("expected dead panel removed from set, have %d panels", h.Panels())
	}

	// Subsequent broadcasts only reach the survivor.
	h.Broadcast(msg())
	if live.count() != 2 {
		t.Errorf("expected 2 deliveries to live panel, got %d", live.count())
	}
}

func TestTabResolvedPerSend(t *testing.T) {
	h := New(nil)
	first := &fakeSender{}
	second := &fakeSender{}

	h.SetTab(first)
	h.Broadcast(msg())

	// Destination changes between messages.
	h.SetTab(second)
	h.Broadcast(msg())

	if first.count() != 1 {
		t.Errorf("expected first tab to receive 1, got %d", first.count())
	}
	if second.count() != 1 {
		t.Errorf("expected second tab to receive 1, got %d", second.count())
	}
}

func TestTabFailureSwallowed(t *testing.T) {
	h := New(nil)
	h.SetTab(&fakeSender{fail: true})
	panel := &fakeSender{}
	h.AddPanel("p", panel)

	h.Broadcast(msg()) // must not panic or block

	if panel.count() != 1 {
		t.Errorf("expected panel delivery despite tab failure, got %d", panel.count())
	}
}

func TestClearTabOnlyIfCurrent(t *testing.T) {
	h := New(nil)
	old := &fakeSender{}
	current := &fakeSender{}

	h.SetTab(old)
	h.SetTab(current)
	h.ClearTab(old) // stale disconnect

	h.Broadcast(msg())
	if current.count() != 1 {
		t.Error("stale ClearTab removed the current tab")
	}

	h.ClearTab(current)
	h.Broadcast(msg())
	if current.count() != 1 {
		t.Error("expected no delivery after current tab cleared")
	}
}

func TestNoTabNoPanelsFallbackDelivery(t *testing.T) {
	h := New(nil)
	sub := h.Subscribe()

	h.Broadcast(msg())

	select {
	case m := <-sub:
		if m.Action != model.ActionDisplayResults {
			t.Errorf("expected displayResults action, got %q", m.Action)
		}
	default:
		t.Fatal("expected fallback subscriber to receive the message")
	}
}

func TestSlowSubscriberDrops(t *testing.T) {
	h := New(nil)
	_ = h.Subscribe() // never read

	for i := 0; i < subscriberBuffer+50; i++ {
		h.Broadcast(msg())
	}

	if h.Dropped() == 0 {
		t.Error("expected drops for a full subscriber channel")
	}
}

func TestCloseSubscribers(t *testing.T) {
	h := New(nil)
	sub := h.Subscribe()

	h.CloseSubscribers()

	if _, open := <-sub; open {
		t.Error("expected subscriber channel to be closed")
	}

	// Broadcasting after close must not panic.
	h.Broadcast(msg())
}
