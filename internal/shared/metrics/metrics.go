package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	uploadsReceived = newCounterVec()
	uploadsFailed   = newCounterVec()
	retentionPurged = newCounterVec()

	uploadBytes = newHistogram([]float64{1 << 10, 16 << 10, 128 << 10, 1 << 20, 4 << 20, 10 << 20})
)

// IncUploadReceived counts a stored upload for the given endpoint.
func IncUploadReceived(endpoint string) {
	uploadsReceived.Inc(label("endpoint", endpoint))
}

// IncUploadFailed counts a rejected or failed upload.
func IncUploadFailed(endpoint, reason string) {
	uploadsFailed.Inc(label("endpoint", endpoint) + "," + label("reason", reason))
}

// AddRetentionPurged counts files removed by the retention sweeper.
func AddRetentionPurged(n int) {
	for i := 0; i < n; i++ {
		retentionPurged.Inc("")
	}
}

// ObserveUploadBytes records the size of a stored upload.
func ObserveUploadBytes(size int64) {
	if size < 0 {
		size = 0
	}
	uploadBytes.Observe(float64(size))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounterVec(&buf, "uploads_received_total", "Total uploads stored", uploadsReceived.Snapshot())
	writeCounterVec(&buf, "uploads_failed_total", "Total uploads rejected or failed", uploadsFailed.Snapshot())
	writeCounterVec(&buf, "retention_purged_total", "Total stored files removed by retention", retentionPurged.Snapshot())
	writeHistogram(&buf, "upload_bytes", "Stored upload size in bytes", uploadBytes.Snapshot())
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newCounterVec() *counterVec {
	return &counterVec{values: make(map[string]uint64)}
}

func (v *counterVec) Inc(labels string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[labels]++
}

func (v *counterVec) Snapshot() map[string]uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]uint64, len(v.values))
	for k, n := range v.values {
		out[k] = n
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func label(name, value string) string {
	value = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(value)
	return fmt.Sprintf(`%s="%s"`, name, value)
}

func writeCounterVec(buf *bytes.Buffer, name, help string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	if len(values) == 0 {
		fmt.Fprintf(buf, "%s 0\n", name)
		return
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "" {
			fmt.Fprintf(buf, "%s %d\n", name, values[k])
			continue
		}
		fmt.Fprintf(buf, "%s{%s} %d\n", name, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
