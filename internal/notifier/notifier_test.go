package notifier

import (
	"testing"
	"time"

	"github.com/julianstephens/habitflow/internal/constants"
)

func TestNotifyReplacesCurrent(t *testing.T) {
	c := New(time.Minute)

	first := c.Info("Habit created.")
	second := c.Error("Title is required")

	if second <= first {
		t.Errorf("ids not increasing: first=%d second=%d", first, second)
	}

	n := c.Current()
	if n.ID != second || n.Message != "Title is required" || !n.Visible {
		t.Errorf("Current() = %+v", n)
	}
	if !n.IsError() {
		t.Errorf("Current().Severity = %q, want error", n.Severity)
	}
}

func TestDefaultSeverityAndDuration(t *testing.T) {
	c := New(0)
	if c.Duration() != constants.NotificationDuration {
		t.Errorf("Duration() = %v, want %v", c.Duration(), constants.NotificationDuration)
	}

	c.Notify("Dashboard refreshed.", "")
	if got := c.Current().Severity; got != constants.SeverityInfo {
		t.Errorf("Severity = %q, want info", got)
	}
}

func TestStaleTimerDoesNotHideNewerMessage(t *testing.T) {
	c := New(time.Minute)

	first := c.Info("Welcome back, Ava!")
	c.Info("Habit created.")

	// the first notification's timer fires after the second was set
	c.hide(first)

	n := c.Current()
	if !n.Visible || n.Message != "Habit created." {
		t.Errorf("Current() = %+v, want visible second message", n)
	}

	c.hide(n.ID)
	if c.Current().Visible {
		t.Error("Current().Visible = true after its own timer fired")
	}
}

func TestAutoHide(t *testing.T) {
	c := New(400 * time.Millisecond)

	c.Info("first")
	time.Sleep(150 * time.Millisecond)
	c.Info("second")

	// past the first timer, before the second
	time.Sleep(300 * time.Millisecond)
	n := c.Current()
	if !n.Visible || n.Message != "second" {
		t.Fatalf("Current() at 450ms = %+v, want second still visible", n)
	}

	time.Sleep(400 * time.Millisecond)
	if c.Current().Visible {
		t.Error("Current().Visible = true after the second timer elapsed")
	}
}

func TestDismiss(t *testing.T) {
	c := New(time.Minute)
	c.Info("You have been logged out.")
	c.Dismiss()

	n := c.Current()
	if n.Visible {
		t.Error("Visible = true after Dismiss")
	}
	if n.Message != "You have been logged out." {
		t.Errorf("Message = %q, dismiss should keep the text", n.Message)
	}
}

func TestSubscribe(t *testing.T) {
	c := New(time.Minute)
	ch, cancel := c.Subscribe()

	c.Info("one")
	select {
	case n := <-ch:
		if n.Message != "one" || !n.Visible {
			t.Errorf("received %+v", n)
		}
	case <-time.After(time.Second):
		t.Fatal("no notification received")
	}

	// an unread channel keeps only the newest value
	c.Info("two")
	c.Info("three")
	n := <-ch
	if n.Message != "three" {
		t.Errorf("received %q, want three", n.Message)
	}

	c.Dismiss()
	if n := <-ch; n.Visible {
		t.Error("dismiss not published")
	}

	cancel()
	cancel()
	c.Info("four")
	select {
	case n := <-ch:
		t.Errorf("received %+v after cancel", n)
	default:
	}
}
