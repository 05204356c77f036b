// Package notify carries the transient messages the interactive controls
// raise after a social action settles.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

type Notifier interface {
	Notify(n Notification)
}

// Error builds a destructive notification, using fallback when message is empty.
func Error(message, fallback string) Notification {
	if message == "" {
		message = fallback
	}
	return Notification{Title: "Error", Description: message, Variant: VariantDestructive}
}

func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

type console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole prints each notification as a single line to out.
func NewConsole(out io.Writer) Notifier {
	return &console{out: out}
}

func (c *console) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := "*"
	if n.Variant == VariantDestructive {
		prefix = "!"
	}
	fmt.Fprintf(c.out, "%s %s: %s\n", prefix, n.Title, n.Description)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.list...)
}

func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.list) == 0 {
		return Notification{}, false
	}
	return r.list[len(r.list)-1], true
}
