package mailer

import (
	"log"
	"sync"
)

// fakeOutbox captures deliveries when SMTP is unconfigured.
type fakeOutbox struct {
	mu       sync.Mutex
	messages []Message
}

func newFakeOutbox() *fakeOutbox {
	return &fakeOutbox{}
}

func (f *fakeOutbox) record(msg Message) {
	f.mu.Lock()
	f.messages = append(f.messages, msg)
	f.mu.Unlock()
	log.Printf("mailer: SMTP unconfigured, captured contact message %s from %s", msg.SubmissionID, msg.Email)
}

func (f *fakeOutbox) all() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.messages))
	copy(out, f.messages)
	return out
}
