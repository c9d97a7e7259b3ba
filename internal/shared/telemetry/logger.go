package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	out    io.Writer
	common = map[string]any{}
)

// SetOutput redirects log lines. A nil writer restores stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetCommonFields attaches fields to every subsequent log line.
func SetCommonFields(fields map[string]any) {
	mu.Lock()
	defer mu.Unlock()
	common = make(map[string]any, len(fields))
	for k, v := range fields {
		common[k] = v
	}
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write("info", msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write("warn", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write("error", msg, fields)
}

func write(level, msg string, fields map[string]any) {
	mu.Lock()
	defer mu.Unlock()

	w := out
	if w == nil {
		w = os.Stdout
	}

	now := time.Now().UTC().Format(time.RFC3339)
	entry := make(map[string]any, len(common)+len(fields)+3)
	for k, v := range common {
		entry[k] = v
	}
	for k, v := range fields {
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		entry[k] = v
	}
	entry["ts"] = now
	entry["level"] = level
	entry["msg"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(w, `{"ts":"%s","level":"error","msg":"logger marshal failed","err":%q}`+"\n", now, err.Error())
		return
	}
	fmt.Fprintln(w, string(data))
}
