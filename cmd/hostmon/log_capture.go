package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"sync"
)

// logInterceptor buffers log output so background messages do not
// write over the interactive display.
type logInterceptor struct {
	keep     int
	mtx      sync.Mutex
	messages []string
}

func interceptLog(keep int) *logInterceptor {
	li := &logInterceptor{keep: keep}
	log.SetOutput(li)
	return li
}

func (li *logInterceptor) Write(p []byte) (n int, err error) {
	li.mtx.Lock()
	defer li.mtx.Unlock()

	li.messages = append(li.messages, string(bytes.TrimSpace(p)))

	if li.keep > 0 {
		li.truncate()
	}

	return len(p), nil
}

func (li *logInterceptor) truncate() {
	if delta := len(li.messages) - li.keep; delta > 0 {
		li.messages = li.messages[delta:]
	}
}

// flush writes the captured messages to out and resets the buffer.
func (li *logInterceptor) flush(out io.Writer) {
	li.mtx.Lock()
	defer li.mtx.Unlock()

	for _, msg := range li.messages {
		fmt.Fprintln(out, msg)
	}
	li.messages = nil
}
